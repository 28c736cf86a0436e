package repositories

import (
	"context"
	"errors"
	"fmt"

	"workshop-system/internal/dto"
	apperrors "workshop-system/pkg/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AccessoryRepositoryInterface interface {
	GetSuggestions(ctx context.Context) ([]dto.SuggestionDTO, error)
	AddSuggestion(ctx context.Context, name string) (*dto.SuggestionDTO, error)
	RemoveSuggestion(ctx context.Context, id uint64) error
}

type accessoryRepository struct{ storage *pgxpool.Pool }

func NewAccessoryRepository(storage *pgxpool.Pool) AccessoryRepositoryInterface {
	return &accessoryRepository{storage: storage}
}

func (r *accessoryRepository) GetSuggestions(ctx context.Context) ([]dto.SuggestionDTO, error) {
	rows, err := r.storage.Query(ctx, `SELECT id, name FROM accessory_suggestions ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения подсказок аксессуаров: %w", err)
	}
	defer rows.Close()

	suggestions := make([]dto.SuggestionDTO, 0)
	for rows.Next() {
		var s dto.SuggestionDTO
		if err := rows.Scan(&s.ID, &s.Name); err != nil {
			return nil, err
		}
		suggestions = append(suggestions, s)
	}
	return suggestions, rows.Err()
}

func (r *accessoryRepository) AddSuggestion(ctx context.Context, name string) (*dto.SuggestionDTO, error) {
	var s dto.SuggestionDTO
	err := r.storage.QueryRow(ctx,
		`INSERT INTO accessory_suggestions (name) VALUES ($1) RETURNING id, name`,
		name).Scan(&s.ID, &s.Name)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, apperrors.ErrConflict
		}
		return nil, fmt.Errorf("ошибка добавления подсказки: %w", err)
	}
	return &s, nil
}

func (r *accessoryRepository) RemoveSuggestion(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, `DELETE FROM accessory_suggestions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("ошибка удаления подсказки: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
