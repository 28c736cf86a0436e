package repositories

import (
	"context"
	"errors"
	"fmt"

	"workshop-system/internal/dto"
	apperrors "workshop-system/pkg/errors"
	"workshop-system/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	clientTable  = "clients"
	clientFields = "id, name, phone, address"
)

type ClientRepositoryInterface interface {
	GetClients(ctx context.Context, filter types.Filter) ([]dto.ClientDTO, uint64, error)
	FindClient(ctx context.Context, id uint64) (*dto.ClientDTO, error)
	UpdateClient(ctx context.Context, id uint64, payload dto.UpdateClientDTO) (*dto.ClientDTO, error)
	FindByNaturalKeyInTx(ctx context.Context, tx pgx.Tx, name, phone string) (uint64, error)
	CreateInTx(ctx context.Context, tx pgx.Tx, name, phone, address string) (uint64, error)
}

type clientRepository struct{ storage *pgxpool.Pool }

func NewClientRepository(storage *pgxpool.Pool) ClientRepositoryInterface {
	return &clientRepository{storage: storage}
}

func (r *clientRepository) GetClients(ctx context.Context, filter types.Filter) ([]dto.ClientDTO, uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	base := psql.Select(clientFields).From(clientTable)
	countBase := psql.Select("COUNT(*)").From(clientTable)
	if filter.Search != "" {
		cond := sq.Or{
			sq.ILike{"name": "%" + filter.Search + "%"},
			sq.ILike{"phone": "%" + filter.Search + "%"},
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
		return nil, 0, fmt.Errorf("ошибка подсчета клиентов: %w", err)
	}
	if total == 0 {
		return []dto.ClientDTO{}, 0, nil
	}

	base = base.OrderBy("name ASC")
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
		return nil, 0, fmt.Errorf("ошибка получения списка клиентов: %w", err)
	}
	defer rows.Close()

	clients := make([]dto.ClientDTO, 0)
	for rows.Next() {
		var c dto.ClientDTO
		if err := rows.Scan(&c.ID, &c.Name, &c.Phone, &c.Address); err != nil {
			return nil, 0, err
		}
		clients = append(clients, c)
	}
	return clients, total, rows.Err()
}

func (r *clientRepository) FindClient(ctx context.Context, id uint64) (*dto.ClientDTO, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", clientFields, clientTable)
	var c dto.ClientDTO
	err := r.storage.QueryRow(ctx, query, id).Scan(&c.ID, &c.Name, &c.Phone, &c.Address)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *clientRepository) UpdateClient(ctx context.Context, id uint64, payload dto.UpdateClientDTO) (*dto.ClientDTO, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	builder := psql.Update(clientTable).Set("updated_at", sq.Expr("NOW()"))
	if payload.Name != nil {
		builder = builder.Set("name", *payload.Name)
	}
	if payload.Phone != nil {
		builder = builder.Set("phone", *payload.Phone)
	}
	if payload.Address != nil {
		builder = builder.Set("address", *payload.Address)
	}
	builder = builder.Where(sq.Eq{"id": id}).Suffix("RETURNING " + clientFields)

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}
	var c dto.ClientDTO
	if err := r.storage.QueryRow(ctx, query, args...).Scan(&c.ID, &c.Name, &c.Phone, &c.Address); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// FindByNaturalKeyInTx ищет клиента по естественному ключу (имя, телефон).
// Уникального индекса в базе нет, поэтому берём первую подходящую строку —
// поиск и возможная вставка обязаны идти в одной транзакции.
func (r *clientRepository) FindByNaturalKeyInTx(ctx context.Context, tx pgx.Tx, name, phone string) (uint64, error) {
	var id uint64
	err := tx.QueryRow(ctx,
		`SELECT id FROM clients WHERE name = $1 AND phone = $2 ORDER BY id LIMIT 1`,
		name, phone).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.ErrNotFound
		}
		return 0, fmt.Errorf("ошибка поиска клиента: %w", err)
	}
	return id, nil
}

func (r *clientRepository) CreateInTx(ctx context.Context, tx pgx.Tx, name, phone, address string) (uint64, error) {
	var id uint64
	err := tx.QueryRow(ctx,
		`INSERT INTO clients (name, phone, address) VALUES ($1, $2, $3) RETURNING id`,
		name, phone, address).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("ошибка создания клиента: %w", err)
	}
	return id, nil
}
