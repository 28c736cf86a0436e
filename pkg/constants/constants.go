package constants

// Статусы квитанций. Хранятся в колонке service_sheets.status как есть.
const (
	SheetStatusOpen   = "OPEN"
	SheetStatusClosed = "CLOSED"
	SheetStatusVoid   = "VOID"
)

const (
	// OrderNumberPrefix — префикс номера заказа: TM-<год>-<id>.
	OrderNumberPrefix = "TM"

	// RevisionSuffix — маркер ревизии в номере заказа: <база>-REV<n>.
	RevisionSuffix = "-REV"

	// AssetTagPrefix — префикс синтетического инвентарного тега нового оборудования.
	AssetTagPrefix = "TEC-"

	// PendingStatusName — имя статуса инвентаря по умолчанию,
	// если ни один статус не помечен флагом pending.
	PendingStatusName = "Pendiente"

	// AssetNamePlaceholder — имя оборудования, когда нет ни производителя, ни типа.
	AssetNamePlaceholder = "Equipo recibido"
)

// Ключи настроек, которые читает слой печати. Движок хранит их как непрозрачные строки.
const (
	SettingShopName      = "shop_name"
	SettingShopAddress   = "shop_address"
	SettingShopPhone     = "shop_phone"
	SettingPdfFooterText = "pdf_footer_text"
	SettingPdfFooterSize = "pdf_footer_size"
)
