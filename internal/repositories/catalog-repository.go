package repositories

import (
	"context"
	"errors"
	"fmt"

	"workshop-system/internal/dto"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// catalogKind — закрытый набор простых справочников инвентаря.
// Имя таблицы никогда не приходит снаружи, только из этих констант.
type catalogKind int

const (
	catalogManufacturers catalogKind = iota
	catalogCategories
)

func (k catalogKind) table() string {
	switch k {
	case catalogManufacturers:
		return "manufacturers"
	case catalogCategories:
		return "categories"
	}
	panic(fmt.Sprintf("неизвестный справочник: %d", int(k)))
}

type CatalogRepositoryInterface interface {
	GetManufacturers(ctx context.Context) ([]dto.NamedDTO, error)
	GetCategories(ctx context.Context) ([]dto.NamedDTO, error)
	FindManufacturerInTx(ctx context.Context, tx pgx.Tx, name string) (uint64, bool, error)
	FindCategoryInTx(ctx context.Context, tx pgx.Tx, name string) (uint64, bool, error)
	CreateManufacturerInTx(ctx context.Context, tx pgx.Tx, name string) (uint64, error)
	CreateCategoryInTx(ctx context.Context, tx pgx.Tx, name string) (uint64, error)
}

type catalogRepository struct{ storage *pgxpool.Pool }

func NewCatalogRepository(storage *pgxpool.Pool) CatalogRepositoryInterface {
	return &catalogRepository{storage: storage}
}

func (r *catalogRepository) GetManufacturers(ctx context.Context) ([]dto.NamedDTO, error) {
	return r.list(ctx, catalogManufacturers)
}

func (r *catalogRepository) GetCategories(ctx context.Context) ([]dto.NamedDTO, error) {
	return r.list(ctx, catalogCategories)
}

func (r *catalogRepository) list(ctx context.Context, kind catalogKind) ([]dto.NamedDTO, error) {
	query := fmt.Sprintf("SELECT id, name FROM %s ORDER BY name", kind.table())
	rows, err := r.storage.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения справочника %s: %w", kind.table(), err)
	}
	defer rows.Close()

	list := make([]dto.NamedDTO, 0)
	for rows.Next() {
		var item dto.NamedDTO
		if err := rows.Scan(&item.ID, &item.Name); err != nil {
			return nil, err
		}
		list = append(list, item)
	}
	return list, rows.Err()
}

func (r *catalogRepository) FindManufacturerInTx(ctx context.Context, tx pgx.Tx, name string) (uint64, bool, error) {
	return find(ctx, tx, catalogManufacturers, name)
}

func (r *catalogRepository) FindCategoryInTx(ctx context.Context, tx pgx.Tx, name string) (uint64, bool, error) {
	return find(ctx, tx, catalogCategories, name)
}

func (r *catalogRepository) CreateManufacturerInTx(ctx context.Context, tx pgx.Tx, name string) (uint64, error) {
	return create(ctx, tx, catalogManufacturers, name)
}

func (r *catalogRepository) CreateCategoryInTx(ctx context.Context, tx pgx.Tx, name string) (uint64, error) {
	return create(ctx, tx, catalogCategories, name)
}

// Совпадение по имени строгое, с учётом регистра.
func find(ctx context.Context, q querier, kind catalogKind, name string) (uint64, bool, error) {
	query := fmt.Sprintf("SELECT id FROM %s WHERE name = $1 ORDER BY id LIMIT 1", kind.table())
	var id uint64
	err := q.QueryRow(ctx, query, name).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("ошибка поиска в %s: %w", kind.table(), err)
	}
	return id, true, nil
}

func create(ctx context.Context, q querier, kind catalogKind, name string) (uint64, error) {
	query := fmt.Sprintf("INSERT INTO %s (name) VALUES ($1) RETURNING id", kind.table())
	var id uint64
	if err := q.QueryRow(ctx, query, name).Scan(&id); err != nil {
		return 0, fmt.Errorf("ошибка создания записи в %s: %w", kind.table(), err)
	}
	return id, nil
}
