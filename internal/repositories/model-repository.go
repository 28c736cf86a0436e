package repositories

import (
	"context"
	"errors"
	"fmt"

	"workshop-system/internal/dto"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ModelRepositoryInterface interface {
	GetModels(ctx context.Context) ([]dto.ModelDTO, error)
	FindInTx(ctx context.Context, tx pgx.Tx, name string, manufacturerID, categoryID uint64) (uint64, bool, error)
	CreateInTx(ctx context.Context, tx pgx.Tx, name string, manufacturerID, categoryID uint64) (uint64, error)
}

type modelRepository struct{ storage *pgxpool.Pool }

func NewModelRepository(storage *pgxpool.Pool) ModelRepositoryInterface {
	return &modelRepository{storage: storage}
}

func (r *modelRepository) GetModels(ctx context.Context) ([]dto.ModelDTO, error) {
	query := `
		SELECT m.id, m.name, mf.name, c.name
		FROM models m
		LEFT JOIN manufacturers mf ON m.manufacturer_id = mf.id
		LEFT JOIN categories c ON m.category_id = c.id
		ORDER BY m.name`

	rows, err := r.storage.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения списка моделей: %w", err)
	}
	defer rows.Close()

	models := make([]dto.ModelDTO, 0)
	for rows.Next() {
		var m dto.ModelDTO
		var manufacturer, category *string
		if err := rows.Scan(&m.ID, &m.Name, &manufacturer, &category); err != nil {
			return nil, err
		}
		if manufacturer != nil {
			m.Manufacturer = *manufacturer
		}
		if category != nil {
			m.Category = *category
		}
		models = append(models, m)
	}
	return models, rows.Err()
}

// FindInTx ищет модель по тройке (имя, производитель, категория).
func (r *modelRepository) FindInTx(ctx context.Context, tx pgx.Tx, name string, manufacturerID, categoryID uint64) (uint64, bool, error) {
	var id uint64
	err := tx.QueryRow(ctx,
		`SELECT id FROM models WHERE name = $1 AND manufacturer_id = $2 AND category_id = $3 ORDER BY id LIMIT 1`,
		name, manufacturerID, categoryID).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("ошибка поиска модели: %w", err)
	}
	return id, true, nil
}

func (r *modelRepository) CreateInTx(ctx context.Context, tx pgx.Tx, name string, manufacturerID, categoryID uint64) (uint64, error) {
	var id uint64
	err := tx.QueryRow(ctx,
		`INSERT INTO models (name, manufacturer_id, category_id) VALUES ($1, $2, $3) RETURNING id`,
		name, manufacturerID, categoryID).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("ошибка создания модели: %w", err)
	}
	return id, nil
}
