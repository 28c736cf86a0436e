package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	apperrors "workshop-system/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AssetRow — то, что нужно движку из строки инвентаря: идентификатор и
// признак архивации.
type AssetRow struct {
	ID        uint64
	DeletedAt sql.NullTime
}

type AssetRepositoryInterface interface {
	FindBySerialInTx(ctx context.Context, tx pgx.Tx, serial string) (*AssetRow, error)
	ReactivateInTx(ctx context.Context, tx pgx.Tx, id uint64) error
	SetClientLabelInTx(ctx context.Context, tx pgx.Tx, id uint64, label string) error
	CreateInTx(ctx context.Context, tx pgx.Tx, tag, serial, name string, modelID, statusID uint64, clientLabel string) (uint64, error)
	ArchiveInTx(ctx context.Context, tx pgx.Tx, id uint64) error
}

type assetRepository struct{ storage *pgxpool.Pool }

func NewAssetRepository(storage *pgxpool.Pool) AssetRepositoryInterface {
	return &assetRepository{storage: storage}
}

func (r *assetRepository) FindBySerialInTx(ctx context.Context, tx pgx.Tx, serial string) (*AssetRow, error) {
	var asset AssetRow
	err := tx.QueryRow(ctx,
		`SELECT id, deleted_at FROM assets WHERE serial = $1 ORDER BY id LIMIT 1`,
		serial).Scan(&asset.ID, &asset.DeletedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка поиска оборудования по серийному номеру: %w", err)
	}
	return &asset, nil
}

// ReactivateInTx снимает отметку архивации: оборудование снова в работе.
func (r *assetRepository) ReactivateInTx(ctx context.Context, tx pgx.Tx, id uint64) error {
	if _, err := tx.Exec(ctx, `UPDATE assets SET deleted_at = NULL WHERE id = $1`, id); err != nil {
		return fmt.Errorf("ошибка реактивации оборудования: %w", err)
	}
	return nil
}

func (r *assetRepository) SetClientLabelInTx(ctx context.Context, tx pgx.Tx, id uint64, label string) error {
	if _, err := tx.Exec(ctx, `UPDATE assets SET client_label = $1 WHERE id = $2`, label, id); err != nil {
		return fmt.Errorf("ошибка обновления метки клиента: %w", err)
	}
	return nil
}

// CreateInTx заводит новую строку инвентаря. modelID = 0 означает
// оборудование без распознанной модели.
func (r *assetRepository) CreateInTx(ctx context.Context, tx pgx.Tx, tag, serial, name string, modelID, statusID uint64, clientLabel string) (uint64, error) {
	var id uint64
	err := tx.QueryRow(ctx,
		`INSERT INTO assets (tag, serial, name, model_id, status_id, client_label)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		tag, serial, name, nullableID(modelID), statusID, clientLabel).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("ошибка создания оборудования в инвентаре: %w", err)
	}
	return id, nil
}

func (r *assetRepository) ArchiveInTx(ctx context.Context, tx pgx.Tx, id uint64) error {
	if _, err := tx.Exec(ctx, `UPDATE assets SET deleted_at = NOW() WHERE id = $1`, id); err != nil {
		return fmt.Errorf("ошибка архивации оборудования: %w", err)
	}
	return nil
}
