package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"workshop-system/internal/dto"
	apperrors "workshop-system/pkg/errors"
	"workshop-system/pkg/types"
	"workshop-system/pkg/utils"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// SheetHead — строка шапки квитанции, заблокированная на время транзакции.
type SheetHead struct {
	ID          uint64
	OrderNumber string
	Status      string
	ClientID    uint64
}

// InsertSheetParams — поля новой квитанции. PreviousSheetID заполняется
// только на путях ревизии.
type InsertSheetParams struct {
	OrderNumber            string
	ClientID               uint64
	OrderDate              string
	DeliveryDate           *string
	Remarks                string
	GeneralTechnicalReport string
	Subtotal               decimal.Decimal
	AdvancePayment         decimal.Decimal
	Status                 string
	Signature              string
	PreviousSheetID        *uint64
}

type SheetRepositoryInterface interface {
	InsertInTx(ctx context.Context, tx pgx.Tx, p InsertSheetParams) (uint64, error)
	SetOrderNumberInTx(ctx context.Context, tx pgx.Tx, id uint64, orderNumber string) error
	LockHeadInTx(ctx context.Context, tx pgx.Tx, id uint64) (*SheetHead, error)
	UpdateOpenScalarsInTx(ctx context.Context, tx pgx.Tx, id uint64, orderDate string, deliveryDate *string, remarks string, advance decimal.Decimal) error
	CloseInTx(ctx context.Context, tx pgx.Tx, id uint64, report string, totalCost decimal.Decimal, deliveryDate *string) error
	VoidInTx(ctx context.Context, tx pgx.Tx, id uint64) error
	ChainLinkInTx(ctx context.Context, tx pgx.Tx, id uint64) (string, sql.NullInt64, error)
	CountRevisionsInTx(ctx context.Context, tx pgx.Tx, base string) (uint64, error)
	GetSheets(ctx context.Context, filter types.Filter) ([]dto.SheetListItemDTO, uint64, error)
	FindSheetHeader(ctx context.Context, id uint64) (*dto.SheetDTO, error)
}

type sheetRepository struct{ storage *pgxpool.Pool }

func NewSheetRepository(storage *pgxpool.Pool) SheetRepositoryInterface {
	return &sheetRepository{storage: storage}
}

func (r *sheetRepository) InsertInTx(ctx context.Context, tx pgx.Tx, p InsertSheetParams) (uint64, error) {
	var id uint64
	err := tx.QueryRow(ctx,
		`INSERT INTO service_sheets
			(order_number, client_id, order_date, delivery_date, remarks,
			 general_technical_report, subtotal, advance_payment, status, signature, previous_sheet_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 RETURNING id`,
		p.OrderNumber, p.ClientID, p.OrderDate, p.DeliveryDate, p.Remarks,
		p.GeneralTechnicalReport, p.Subtotal, p.AdvancePayment, p.Status, p.Signature, p.PreviousSheetID,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("ошибка вставки квитанции: %w", err)
	}
	return id, nil
}

func (r *sheetRepository) SetOrderNumberInTx(ctx context.Context, tx pgx.Tx, id uint64, orderNumber string) error {
	tag, err := tx.Exec(ctx,
		`UPDATE service_sheets SET order_number = $1, updated_at = NOW() WHERE id = $2`,
		orderNumber, id)
	if err != nil {
		return fmt.Errorf("ошибка установки номера заказа: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrSheetNotFound
	}
	return nil
}

// LockHeadInTx читает шапку с FOR UPDATE: переходы статуса всегда идут
// через заблокированную строку.
func (r *sheetRepository) LockHeadInTx(ctx context.Context, tx pgx.Tx, id uint64) (*SheetHead, error) {
	var head SheetHead
	err := tx.QueryRow(ctx,
		`SELECT id, order_number, status, client_id FROM service_sheets WHERE id = $1 FOR UPDATE`,
		id).Scan(&head.ID, &head.OrderNumber, &head.Status, &head.ClientID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSheetNotFound
		}
		return nil, fmt.Errorf("ошибка чтения квитанции: %w", err)
	}
	return &head, nil
}

func (r *sheetRepository) UpdateOpenScalarsInTx(ctx context.Context, tx pgx.Tx, id uint64, orderDate string, deliveryDate *string, remarks string, advance decimal.Decimal) error {
	_, err := tx.Exec(ctx,
		`UPDATE service_sheets
		 SET order_date = $1, delivery_date = $2, remarks = $3, advance_payment = $4, updated_at = NOW()
		 WHERE id = $5`,
		orderDate, deliveryDate, remarks, advance, id)
	if err != nil {
		return fmt.Errorf("ошибка обновления квитанции: %w", err)
	}
	return nil
}

func (r *sheetRepository) CloseInTx(ctx context.Context, tx pgx.Tx, id uint64, report string, totalCost decimal.Decimal, deliveryDate *string) error {
	_, err := tx.Exec(ctx,
		`UPDATE service_sheets
		 SET status = 'CLOSED', general_technical_report = $1, subtotal = $2,
		     delivery_date = COALESCE($3, delivery_date), updated_at = NOW()
		 WHERE id = $4`,
		report, totalCost, deliveryDate, id)
	if err != nil {
		return fmt.Errorf("ошибка закрытия квитанции: %w", err)
	}
	return nil
}

func (r *sheetRepository) VoidInTx(ctx context.Context, tx pgx.Tx, id uint64) error {
	_, err := tx.Exec(ctx,
		`UPDATE service_sheets SET status = 'VOID', updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("ошибка аннулирования квитанции: %w", err)
	}
	return nil
}

// ChainLinkInTx возвращает номер заказа и ссылку на предыдущую квитанцию —
// одно звено цепочки ревизий.
func (r *sheetRepository) ChainLinkInTx(ctx context.Context, tx pgx.Tx, id uint64) (string, sql.NullInt64, error) {
	var orderNumber string
	var prev sql.NullInt64
	err := tx.QueryRow(ctx,
		`SELECT order_number, previous_sheet_id FROM service_sheets WHERE id = $1`,
		id).Scan(&orderNumber, &prev)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", sql.NullInt64{}, apperrors.ErrSheetNotFound
		}
		return "", sql.NullInt64{}, fmt.Errorf("ошибка чтения звена цепочки ревизий: %w", err)
	}
	return orderNumber, prev, nil
}

// CountRevisionsInTx считает ревизии именно этой базы. Шаблон
// "<база>-REV%" не цепляет чужие базы, у которых текущая — строковый
// префикс (TM-2026-1 против TM-2026-10).
func (r *sheetRepository) CountRevisionsInTx(ctx context.Context, tx pgx.Tx, base string) (uint64, error) {
	var count uint64
	err := tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM service_sheets WHERE order_number LIKE $1`,
		base+"-REV%").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("ошибка подсчета ревизий: %w", err)
	}
	return count, nil
}

func (r *sheetRepository) GetSheets(ctx context.Context, filter types.Filter) ([]dto.SheetListItemDTO, uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	base := psql.Select(
		"s.id", "s.order_number", "s.status", "c.name",
		"s.order_date", "s.delivery_date", "s.subtotal", "s.advance_payment",
		"(SELECT COUNT(*) FROM service_sheet_items i WHERE i.sheet_id = s.id)",
	).From("service_sheets s").LeftJoin("clients c ON s.client_id = c.id")

	countBase := psql.Select("COUNT(*)").From("service_sheets s").LeftJoin("clients c ON s.client_id = c.id")

	if status, ok := filter.Filter["status"]; ok {
		base = base.Where(sq.Eq{"s.status": status})
		countBase = countBase.Where(sq.Eq{"s.status": status})
	}
	if from, ok := filter.Filter["date_from"]; ok {
		base = base.Where(sq.GtOrEq{"s.order_date": from})
		countBase = countBase.Where(sq.GtOrEq{"s.order_date": from})
	}
	if to, ok := filter.Filter["date_to"]; ok {
		base = base.Where(sq.LtOrEq{"s.order_date": to})
		countBase = countBase.Where(sq.LtOrEq{"s.order_date": to})
	}
	if filter.Search != "" {
		cond := sq.Or{
			sq.ILike{"c.name": "%" + filter.Search + "%"},
			sq.ILike{"s.order_number": "%" + filter.Search + "%"},
		}
		base = base.Where(cond)
		countBase = countBase.Where(cond)
	}

	countQuery, countArgs, err := countBase.ToSql()
	if err != nil {
		return nil, 0, err
	}
	var total uint64
	if err := r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("ошибка подсчета квитанций: %w", err)
	}
	if total == 0 {
		return []dto.SheetListItemDTO{}, 0, nil
	}

	base = base.OrderBy("s.id DESC")
	if filter.WithPagination {
		if filter.Limit > 0 {
			base = base.Limit(uint64(filter.Limit))
		}
		if filter.Offset >= 0 {
			base = base.Offset(uint64(filter.Offset))
		}
	}

	query, args, err := base.ToSql()
	if err != nil {
		return nil, 0, err
	}
	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка получения реестра квитанций: %w", err)
	}
	defer rows.Close()

	sheets := make([]dto.SheetListItemDTO, 0)
	for rows.Next() {
		var item dto.SheetListItemDTO
		var clientName sql.NullString
		var orderDate, deliveryDate sql.NullTime
		if err := rows.Scan(
			&item.ID, &item.OrderNumber, &item.Status, &clientName,
			&orderDate, &deliveryDate, &item.Subtotal, &item.AdvancePayment, &item.ItemCount,
		); err != nil {
			return nil, 0, err
		}
		item.ClientName = utils.NullStringToString(clientName)
		if orderDate.Valid {
			item.OrderDate = orderDate.Time.Format("2006-01-02")
		}
		if deliveryDate.Valid {
			item.DeliveryDate = deliveryDate.Time.Format("2006-01-02")
		}
		sheets = append(sheets, item)
	}
	return sheets, total, rows.Err()
}

// FindSheetHeader читает шапку квитанции вместе с клиентом; позиции
// загружаются отдельно репозиторием позиций.
func (r *sheetRepository) FindSheetHeader(ctx context.Context, id uint64) (*dto.SheetDTO, error) {
	query := `
		SELECT
			s.id, s.order_number, s.status, s.previous_sheet_id,
			s.order_date, s.delivery_date, s.remarks, s.general_technical_report,
			s.subtotal, s.advance_payment, s.signature, s.created_at,
			c.id, c.name, c.phone, c.address
		FROM service_sheets s
		LEFT JOIN clients c ON s.client_id = c.id
		WHERE s.id = $1`

	var sheet dto.SheetDTO
	var prev sql.NullInt64
	var orderDate, deliveryDate sql.NullTime
	var createdAt sql.NullTime
	var clientID sql.NullInt64
	var clientName, clientPhone, clientAddress sql.NullString

	err := r.storage.QueryRow(ctx, query, id).Scan(
		&sheet.ID, &sheet.OrderNumber, &sheet.Status, &prev,
		&orderDate, &deliveryDate, &sheet.Remarks, &sheet.GeneralTechnicalReport,
		&sheet.Subtotal, &sheet.AdvancePayment, &sheet.Signature, &createdAt,
		&clientID, &clientName, &clientPhone, &clientAddress,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSheetNotFound
		}
		return nil, fmt.Errorf("ошибка чтения квитанции: %w", err)
	}

	if prev.Valid {
		sheet.PreviousSheetID = uint64(prev.Int64)
	}
	if orderDate.Valid {
		sheet.OrderDate = orderDate.Time.Format("2006-01-02")
	}
	if deliveryDate.Valid {
		sheet.DeliveryDate = deliveryDate.Time.Format("2006-01-02")
	}
	if createdAt.Valid {
		sheet.CreatedAt = createdAt.Time.Local().Format("2006-01-02 15:04:05")
	}
	if clientID.Valid {
		sheet.Client = dto.ClientDTO{
			ID:      uint64(clientID.Int64),
			Name:    utils.NullStringToString(clientName),
			Phone:   utils.NullStringToString(clientPhone),
			Address: utils.NullStringToString(clientAddress),
		}
	}
	return &sheet, nil
}
