package dto

import (
	"github.com/aarondl/null/v8"
	"github.com/shopspring/decimal"
)

// EquipmentItemDTO — одна позиция оборудования в квитанции, как её присылает форма приёмки.
type EquipmentItemDTO struct {
	ID              uint64          `json:"id,omitempty"`
	Serial          string          `json:"serial" validate:"max=100"`
	Type            string          `json:"type" validate:"max=100"`
	Manufacturer    string          `json:"manufacturer" validate:"max=150"`
	Model           string          `json:"model" validate:"max=150"`
	ReportedFault   string          `json:"reported_fault" validate:"max=2000"`
	PhysicalState   string          `json:"physical_condition" validate:"max=2000"`
	Accessories     string          `json:"accessories" validate:"max=1000"`
	TechnicalReport string          `json:"technical_report,omitempty" validate:"max=4000"`
	Cost            decimal.Decimal `json:"cost"`
}

type CreateSheetDTO struct {
	ClientName     string             `json:"client_name" validate:"required,min=2,max=255"`
	ClientPhone    string             `json:"client_phone" validate:"max=50"`
	ClientAddress  string             `json:"client_address" validate:"max=255"`
	Items          []EquipmentItemDTO `json:"items" validate:"required,min=1,dive"`
	OrderDate      string             `json:"order_date" validate:"required,datetime=2006-01-02"`
	DeliveryDate   null.String        `json:"delivery_date,omitempty"`
	Remarks        string             `json:"remarks" validate:"max=2000"`
	Subtotal       decimal.Decimal    `json:"subtotal"`
	AdvancePayment decimal.Decimal    `json:"advance_payment"`
	Signature      string             `json:"signature" validate:"max=255"`
}

type UpdateOpenSheetDTO struct {
	ClientName     string             `json:"client_name" validate:"required,min=2,max=255"`
	Items          []EquipmentItemDTO `json:"items" validate:"required,min=1,dive"`
	OrderDate      string             `json:"order_date" validate:"required,datetime=2006-01-02"`
	DeliveryDate   null.String        `json:"delivery_date,omitempty"`
	Remarks        string             `json:"remarks" validate:"max=2000"`
	AdvancePayment decimal.Decimal    `json:"advance_payment"`
}

// CloseSheetItemDTO несёт итоговую стоимость и техническое заключение по позиции.
type CloseSheetItemDTO struct {
	ID              uint64          `json:"id" validate:"required,gt=0"`
	Cost            decimal.Decimal `json:"cost"`
	TechnicalReport string          `json:"technical_report" validate:"max=4000"`
}

type CloseSheetDTO struct {
	GeneralTechnicalReport string              `json:"general_technical_report" validate:"max=4000"`
	Items                  []CloseSheetItemDTO `json:"items" validate:"dive"`
	TotalCost              decimal.Decimal     `json:"total_cost"`
	DeliveryDate           null.String         `json:"delivery_date,omitempty"`
}

// ReviseSheetDTO — данные для новой квитанции, заменяющей аннулированную.
type ReviseSheetDTO struct {
	ClientName     string             `json:"client_name" validate:"required,min=2,max=255"`
	ClientPhone    string             `json:"client_phone" validate:"max=50"`
	ClientAddress  string             `json:"client_address" validate:"max=255"`
	Items          []EquipmentItemDTO `json:"items" validate:"required,min=1,dive"`
	OrderDate      string             `json:"order_date" validate:"required,datetime=2006-01-02"`
	DeliveryDate   null.String        `json:"delivery_date,omitempty"`
	Remarks        string             `json:"remarks" validate:"max=2000"`
	Subtotal       decimal.Decimal    `json:"subtotal"`
	AdvancePayment decimal.Decimal    `json:"advance_payment"`
}

type SheetItemDTO struct {
	ID              uint64          `json:"id"`
	AssetID         uint64          `json:"asset_id,omitempty"`
	Serial          string          `json:"serial"`
	Type            string          `json:"type"`
	Manufacturer    string          `json:"manufacturer"`
	Model           string          `json:"model"`
	ReportedFault   string          `json:"reported_fault"`
	PhysicalState   string          `json:"physical_condition"`
	Accessories     string          `json:"accessories"`
	TechnicalReport string          `json:"technical_report"`
	Cost            decimal.Decimal `json:"cost"`
}

// SheetDTO — полная проекция квитанции: шапка, клиент и все позиции.
type SheetDTO struct {
	ID                     uint64          `json:"id"`
	OrderNumber            string          `json:"order_number"`
	Status                 string          `json:"status"`
	PreviousSheetID        uint64          `json:"previous_sheet_id,omitempty"`
	Client                 ClientDTO       `json:"client"`
	OrderDate              string          `json:"order_date"`
	DeliveryDate           string          `json:"delivery_date,omitempty"`
	Remarks                string          `json:"remarks"`
	GeneralTechnicalReport string          `json:"general_technical_report"`
	Subtotal               decimal.Decimal `json:"subtotal"`
	AdvancePayment         decimal.Decimal `json:"advance_payment"`
	Signature              string          `json:"signature,omitempty"`
	Items                  []SheetItemDTO  `json:"items"`
	CreatedAt              string          `json:"created_at"`
}

// SheetListItemDTO — строка реестра квитанций.
type SheetListItemDTO struct {
	ID             uint64          `json:"id"`
	OrderNumber    string          `json:"order_number"`
	Status         string          `json:"status"`
	ClientName     string          `json:"client_name"`
	OrderDate      string          `json:"order_date"`
	DeliveryDate   string          `json:"delivery_date,omitempty"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	AdvancePayment decimal.Decimal `json:"advance_payment"`
	ItemCount      uint64          `json:"item_count"`
}
