package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"workshop-system/internal/dto"
	apperrors "workshop-system/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// SheetItemRow — строка позиции квитанции в том виде, в котором она лежит в базе.
type SheetItemRow struct {
	ID              uint64
	AssetID         sql.NullInt64
	Serial          string
	Type            string
	Manufacturer    string
	Model           string
	ReportedFault   string
	PhysicalState   string
	Accessories     string
	TechnicalReport string
	Cost            decimal.Decimal
}

func (row *SheetItemRow) ToDTO() dto.SheetItemDTO {
	item := dto.SheetItemDTO{
		ID:              row.ID,
		Serial:          row.Serial,
		Type:            row.Type,
		Manufacturer:    row.Manufacturer,
		Model:           row.Model,
		ReportedFault:   row.ReportedFault,
		PhysicalState:   row.PhysicalState,
		Accessories:     row.Accessories,
		TechnicalReport: row.TechnicalReport,
		Cost:            row.Cost,
	}
	if row.AssetID.Valid {
		item.AssetID = uint64(row.AssetID.Int64)
	}
	return item
}

const sheetItemFields = `id, asset_id, serial, type, manufacturer, model, reported_fault,
	physical_condition, accessories, technical_report, cost`

type SheetItemRepositoryInterface interface {
	ListBySheet(ctx context.Context, sheetID uint64) ([]SheetItemRow, error)
	ListBySheetInTx(ctx context.Context, tx pgx.Tx, sheetID uint64) ([]SheetItemRow, error)
	InsertInTx(ctx context.Context, tx pgx.Tx, sheetID uint64, item dto.EquipmentItemDTO, assetID uint64) (uint64, error)
	UpdateInTx(ctx context.Context, tx pgx.Tx, id uint64, item dto.EquipmentItemDTO, assetID uint64) error
	DeleteInTx(ctx context.Context, tx pgx.Tx, id uint64) error
	SetCostReportInTx(ctx context.Context, tx pgx.Tx, sheetID, id uint64, cost decimal.Decimal, report string) error
}

type sheetItemRepository struct{ storage *pgxpool.Pool }

func NewSheetItemRepository(storage *pgxpool.Pool) SheetItemRepositoryInterface {
	return &sheetItemRepository{storage: storage}
}

func (r *sheetItemRepository) ListBySheet(ctx context.Context, sheetID uint64) ([]SheetItemRow, error) {
	return listItems(ctx, r.storage, sheetID)
}

func (r *sheetItemRepository) ListBySheetInTx(ctx context.Context, tx pgx.Tx, sheetID uint64) ([]SheetItemRow, error) {
	return listItems(ctx, tx, sheetID)
}

func listItems(ctx context.Context, q querier, sheetID uint64) ([]SheetItemRow, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM service_sheet_items WHERE sheet_id = $1 ORDER BY id`, sheetItemFields)
	rows, err := q.Query(ctx, query, sheetID)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения позиций квитанции: %w", err)
	}
	defer rows.Close()

	items := make([]SheetItemRow, 0)
	for rows.Next() {
		var row SheetItemRow
		if err := rows.Scan(
			&row.ID, &row.AssetID, &row.Serial, &row.Type, &row.Manufacturer, &row.Model,
			&row.ReportedFault, &row.PhysicalState, &row.Accessories, &row.TechnicalReport, &row.Cost,
		); err != nil {
			return nil, err
		}
		items = append(items, row)
	}
	return items, rows.Err()
}

func (r *sheetItemRepository) InsertInTx(ctx context.Context, tx pgx.Tx, sheetID uint64, item dto.EquipmentItemDTO, assetID uint64) (uint64, error) {
	var id uint64
	err := tx.QueryRow(ctx,
		`INSERT INTO service_sheet_items
			(sheet_id, asset_id, serial, type, manufacturer, model, reported_fault,
			 physical_condition, accessories, technical_report, cost)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 RETURNING id`,
		sheetID, nullableID(assetID), item.Serial, item.Type, item.Manufacturer, item.Model,
		item.ReportedFault, item.PhysicalState, item.Accessories, item.TechnicalReport, item.Cost,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("ошибка вставки позиции квитанции: %w", err)
	}
	return id, nil
}

func (r *sheetItemRepository) UpdateInTx(ctx context.Context, tx pgx.Tx, id uint64, item dto.EquipmentItemDTO, assetID uint64) error {
	_, err := tx.Exec(ctx,
		`UPDATE service_sheet_items
		 SET asset_id = $1, serial = $2, type = $3, manufacturer = $4, model = $5,
		     reported_fault = $6, physical_condition = $7, accessories = $8,
		     technical_report = $9, cost = $10, updated_at = NOW()
		 WHERE id = $11`,
		nullableID(assetID), item.Serial, item.Type, item.Manufacturer, item.Model,
		item.ReportedFault, item.PhysicalState, item.Accessories, item.TechnicalReport, item.Cost, id)
	if err != nil {
		return fmt.Errorf("ошибка обновления позиции квитанции: %w", err)
	}
	return nil
}

func (r *sheetItemRepository) DeleteInTx(ctx context.Context, tx pgx.Tx, id uint64) error {
	if _, err := tx.Exec(ctx, `DELETE FROM service_sheet_items WHERE id = $1`, id); err != nil {
		return fmt.Errorf("ошибка удаления позиции квитанции: %w", err)
	}
	return nil
}

// SetCostReportInTx пишет стоимость только в позицию своей квитанции:
// чужой id в теле запроса не должен трогать другие квитанции.
func (r *sheetItemRepository) SetCostReportInTx(ctx context.Context, tx pgx.Tx, sheetID, id uint64, cost decimal.Decimal, report string) error {
	tag, err := tx.Exec(ctx,
		`UPDATE service_sheet_items
		 SET cost = $1, technical_report = $2, updated_at = NOW()
		 WHERE id = $3 AND sheet_id = $4`,
		cost, report, id, sheetID)
	if err != nil {
		return fmt.Errorf("ошибка записи стоимости позиции: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func nullableID(id uint64) sql.NullInt64 {
	if id == 0 {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(id), Valid: true}
}
