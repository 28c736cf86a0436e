package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureSchema приводит схему собственных таблиц движка к актуальному виду.
// Только аддитивные изменения: CREATE TABLE IF NOT EXISTS плюс точечные
// ALTER TABLE ... ADD COLUMN для колонок, появившихся после первого релиза.
// Типы колонок никогда не меняются, колонки никогда не удаляются.
// Вызывается при каждом старте процесса; повторный вызов ничего не меняет.
// Ошибка здесь фатальна для приложения: остальной код рассчитывает на
// итоговую форму схемы.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, ddl := range ownedTables {
		if _, err := pool.Exec(ctx, ddl); err != nil {
			return fmt.Errorf("ошибка миграции схемы (создание таблицы): %w", err)
		}
	}

	for _, col := range lateColumns {
		if err := ensureColumn(ctx, pool, col); err != nil {
			return err
		}
	}

	return nil
}

type columnSpec struct {
	table  string
	column string
	ddl    string
}

// Таблицы в форме первого релиза. Колонки, добавленные позже, живут в lateColumns,
// чтобы база любого возраста доросла до одной и той же схемы.
var ownedTables = []string{
	`CREATE TABLE IF NOT EXISTS clients (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		phone TEXT NOT NULL DEFAULT '',
		address TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS service_sheets (
		id BIGSERIAL PRIMARY KEY,
		order_number TEXT NOT NULL UNIQUE,
		client_id BIGINT NOT NULL REFERENCES clients(id),
		order_date DATE,
		delivery_date DATE,
		remarks TEXT NOT NULL DEFAULT '',
		subtotal NUMERIC(12,2) NOT NULL DEFAULT 0,
		advance_payment NUMERIC(12,2) NOT NULL DEFAULT 0,
		status TEXT NOT NULL DEFAULT 'OPEN',
		asset_id BIGINT,
		serial TEXT NOT NULL DEFAULT '',
		type TEXT NOT NULL DEFAULT '',
		manufacturer TEXT NOT NULL DEFAULT '',
		model TEXT NOT NULL DEFAULT '',
		reported_fault TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS service_sheet_items (
		id BIGSERIAL PRIMARY KEY,
		sheet_id BIGINT NOT NULL REFERENCES service_sheets(id) ON DELETE CASCADE,
		asset_id BIGINT,
		serial TEXT NOT NULL DEFAULT '',
		type TEXT NOT NULL DEFAULT '',
		manufacturer TEXT NOT NULL DEFAULT '',
		model TEXT NOT NULL DEFAULT '',
		reported_fault TEXT NOT NULL DEFAULT '',
		physical_condition TEXT NOT NULL DEFAULT '',
		accessories TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS accessory_suggestions (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL DEFAULT ''
	)`,
}

var lateColumns = []columnSpec{
	{"service_sheets", "previous_sheet_id", `ALTER TABLE service_sheets ADD COLUMN previous_sheet_id BIGINT`},
	{"service_sheets", "general_technical_report", `ALTER TABLE service_sheets ADD COLUMN general_technical_report TEXT NOT NULL DEFAULT ''`},
	{"service_sheets", "signature", `ALTER TABLE service_sheets ADD COLUMN signature TEXT NOT NULL DEFAULT ''`},
	{"service_sheets", "cost_report", `ALTER TABLE service_sheets ADD COLUMN cost_report TEXT NOT NULL DEFAULT ''`},
	{"service_sheet_items", "technical_report", `ALTER TABLE service_sheet_items ADD COLUMN technical_report TEXT NOT NULL DEFAULT ''`},
	{"service_sheet_items", "cost", `ALTER TABLE service_sheet_items ADD COLUMN cost NUMERIC(12,2) NOT NULL DEFAULT 0`},
}

func ensureColumn(ctx context.Context, pool *pgxpool.Pool, col columnSpec) error {
	exists, err := columnExists(ctx, pool, col.table, col.column)
	if err != nil {
		return fmt.Errorf("ошибка миграции схемы (проверка колонки %s.%s): %w", col.table, col.column, err)
	}
	if exists {
		return nil
	}

	if _, err := pool.Exec(ctx, col.ddl); err != nil {
		// Два процесса могли добавлять колонку одновременно. Если она
		// уже на месте — это не ошибка.
		exists, checkErr := columnExists(ctx, pool, col.table, col.column)
		if checkErr == nil && exists {
			return nil
		}
		return fmt.Errorf("ошибка миграции схемы (добавление колонки %s.%s): %w", col.table, col.column, err)
	}
	return nil
}

func columnExists(ctx context.Context, pool *pgxpool.Pool, table, column string) (bool, error) {
	var exists bool
	err := pool.QueryRow(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM information_schema.columns
			WHERE table_schema = current_schema() AND table_name = $1 AND column_name = $2
		)`, table, column).Scan(&exists)
	return exists, err
}
