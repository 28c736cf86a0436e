package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimpleClientName(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"Иванов Иван | ООО Ромашка", "Иванов Иван"},
		{"Иванов Иван", "Иванов Иван"},
		{"  Иванов Иван  ", "Иванов Иван"},
		{"| только компания", ""},
		{"", ""},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, SimpleClientName(tc.input), "вход: %q", tc.input)
	}
}
