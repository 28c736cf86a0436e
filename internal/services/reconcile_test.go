package services

import (
	"database/sql"
	"testing"

	"workshop-system/internal/dto"
	"workshop-system/internal/repositories"
	"workshop-system/pkg/constants"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAssetDisplayName(t *testing.T) {
	testCases := []struct {
		name     string
		item     dto.EquipmentItemDTO
		expected string
	}{
		{
			name:     "производитель и модель",
			item:     dto.EquipmentItemDTO{Manufacturer: "Dell", Model: "Latitude 5520"},
			expected: "Dell Latitude 5520",
		},
		{
			name:     "только модель",
			item:     dto.EquipmentItemDTO{Model: "Latitude 5520"},
			expected: "Latitude 5520",
		},
		{
			name:     "только тип",
			item:     dto.EquipmentItemDTO{Type: "Laptop"},
			expected: "Laptop",
		},
		{
			name:     "всё пусто",
			item:     dto.EquipmentItemDTO{},
			expected: constants.AssetNamePlaceholder,
		},
		{
			name:     "пробелы не считаются именем",
			item:     dto.EquipmentItemDTO{Manufacturer: "  ", Model: " ", Type: "  Printer "},
			expected: "Printer",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, assetDisplayName(tc.item))
		})
	}
}

func TestCarryOverCosts(t *testing.T) {
	previous := []repositories.SheetItemRow{
		{
			ID:              10,
			Serial:          "SN-A",
			TechnicalReport: "Заменён экран",
			Cost:            decimal.NewFromInt(300),
			AssetID:         sql.NullInt64{Int64: 1, Valid: true},
		},
		{
			ID:              11,
			Serial:          "SN-B",
			TechnicalReport: "Чистка",
			Cost:            decimal.NewFromInt(50),
		},
	}

	items := []dto.EquipmentItemDTO{
		{ID: 10, Serial: "SN-A"},                                    // совпадение по id
		{Serial: "SN-B"},                                            // совпадение по серийнику
		{Serial: "SN-C"},                                            // новая позиция, переносить нечего
		{ID: 11, Cost: decimal.NewFromInt(75), TechnicalReport: "x"}, // свои значения не затираются
	}

	result := carryOverCosts(items, previous)

	assert.True(t, result[0].Cost.Equal(decimal.NewFromInt(300)))
	assert.Equal(t, "Заменён экран", result[0].TechnicalReport)

	assert.True(t, result[1].Cost.Equal(decimal.NewFromInt(50)))
	assert.Equal(t, "Чистка", result[1].TechnicalReport)

	assert.True(t, result[2].Cost.Equal(decimal.Zero))
	assert.Empty(t, result[2].TechnicalReport)

	assert.True(t, result[3].Cost.Equal(decimal.NewFromInt(75)))
	assert.Equal(t, "x", result[3].TechnicalReport)
}
