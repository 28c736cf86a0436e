package repositories

import (
	"context"
	"errors"
	"fmt"

	"workshop-system/internal/dto"
	apperrors "workshop-system/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SettingsRepositoryInterface interface {
	GetAll(ctx context.Context) ([]dto.SettingDTO, error)
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

type settingsRepository struct{ storage *pgxpool.Pool }

func NewSettingsRepository(storage *pgxpool.Pool) SettingsRepositoryInterface {
	return &settingsRepository{storage: storage}
}

func (r *settingsRepository) GetAll(ctx context.Context) ([]dto.SettingDTO, error) {
	rows, err := r.storage.Query(ctx, `SELECT key, value FROM settings ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения настроек: %w", err)
	}
	defer rows.Close()

	settings := make([]dto.SettingDTO, 0)
	for rows.Next() {
		var s dto.SettingDTO
		if err := rows.Scan(&s.Key, &s.Value); err != nil {
			return nil, err
		}
		settings = append(settings, s)
	}
	return settings, rows.Err()
}

func (r *settingsRepository) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := r.storage.QueryRow(ctx, `SELECT value FROM settings WHERE key = $1`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.ErrNotFound
		}
		return "", fmt.Errorf("ошибка чтения настройки %q: %w", key, err)
	}
	return value, nil
}

func (r *settingsRepository) Set(ctx context.Context, key, value string) error {
	_, err := r.storage.Exec(ctx,
		`INSERT INTO settings (key, value) VALUES ($1, $2)
		 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`,
		key, value)
	if err != nil {
		return fmt.Errorf("ошибка записи настройки %q: %w", key, err)
	}
	return nil
}
