package services

import (
	"context"
	"strings"

	"workshop-system/internal/repositories"
	"workshop-system/pkg/constants"
	apperrors "workshop-system/pkg/errors"

	"github.com/jackc/pgx/v5"
)

// maxRevisionChainDepth ограничивает проход по цепочке ревизий: длиннее
// она может стать только при повреждении данных.
const maxRevisionChainDepth = 64

// RevisionResolver вычисляет базовый номер заказа и порядковый номер
// следующей ревизии для заданной квитанции.
type RevisionResolverInterface interface {
	ResolveInTx(ctx context.Context, tx pgx.Tx, sheetID uint64) (string, uint64, error)
}

type RevisionResolver struct {
	sheetRepo repositories.SheetRepositoryInterface
}

func NewRevisionResolver(sheetRepo repositories.SheetRepositoryInterface) RevisionResolverInterface {
	return &RevisionResolver{sheetRepo: sheetRepo}
}

// ResolveInTx идёт по previous_sheet_id до корня цепочки, срезает суффикс
// -REV с номера корня и считает уже существующие ревизии этой базы.
// Цикл или чрезмерная глубина означают повреждение данных — ErrCorruptRevisionChain.
func (r *RevisionResolver) ResolveInTx(ctx context.Context, tx pgx.Tx, sheetID uint64) (string, uint64, error) {
	visited := make(map[uint64]bool)
	current := sheetID
	var rootOrderNumber string

	for depth := 0; ; depth++ {
		if depth >= maxRevisionChainDepth || visited[current] {
			return "", 0, apperrors.ErrCorruptRevisionChain
		}
		visited[current] = true

		orderNumber, prev, err := r.sheetRepo.ChainLinkInTx(ctx, tx, current)
		if err != nil {
			return "", 0, err
		}
		if !prev.Valid || prev.Int64 == 0 {
			rootOrderNumber = orderNumber
			break
		}
		current = uint64(prev.Int64)
	}

	base := rootOrderNumber
	if idx := strings.Index(base, constants.RevisionSuffix); idx >= 0 {
		base = base[:idx]
	}

	count, err := r.sheetRepo.CountRevisionsInTx(ctx, tx, base)
	if err != nil {
		return "", 0, err
	}
	return base, count + 1, nil
}
