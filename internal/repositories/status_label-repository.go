package repositories

import (
	"context"
	"errors"
	"fmt"

	"workshop-system/pkg/constants"
	apperrors "workshop-system/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Таблица status_labels принадлежит инвентарю; движок её только читает
// и никогда не создаёт в ней записей.
type StatusLabelRepositoryInterface interface {
	FindPendingInTx(ctx context.Context, tx pgx.Tx) (uint64, error)
}

type statusLabelRepository struct{ storage *pgxpool.Pool }

func NewStatusLabelRepository(storage *pgxpool.Pool) StatusLabelRepositoryInterface {
	return &statusLabelRepository{storage: storage}
}

// FindPendingInTx ищет статус "ожидание": сначала по флагу pending,
// затем по буквальному имени. Отсутствие обоих — фатальная ошибка конфигурации.
func (r *statusLabelRepository) FindPendingInTx(ctx context.Context, tx pgx.Tx) (uint64, error) {
	var id uint64
	err := tx.QueryRow(ctx,
		`SELECT id FROM status_labels WHERE pending = TRUE ORDER BY id LIMIT 1`).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("ошибка поиска статуса ожидания: %w", err)
	}

	err = tx.QueryRow(ctx,
		`SELECT id FROM status_labels WHERE name = $1 ORDER BY id LIMIT 1`,
		constants.PendingStatusName).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.ErrNoPendingStatus
		}
		return 0, fmt.Errorf("ошибка поиска статуса ожидания: %w", err)
	}
	return id, nil
}
