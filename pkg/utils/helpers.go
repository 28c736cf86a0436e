package utils

import (
	"database/sql"
	"strings"
)

func NullStringToString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

func NullTimeToEmptyString(nt sql.NullTime) string {
	if nt.Valid {
		return nt.Time.Local().Format("2006-01-02 15:04:05")
	}
	return ""
}

// SimpleClientName возвращает отображаемую часть имени клиента —
// сегмент до первого разделителя '|'.
func SimpleClientName(name string) string {
	if idx := strings.Index(name, "|"); idx >= 0 {
		name = name[:idx]
	}
	return strings.TrimSpace(name)
}
