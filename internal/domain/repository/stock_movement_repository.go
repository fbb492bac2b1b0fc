package repository

import (
	"context"

	"github.com/jhoicas/ledger-api/internal/domain/entity"
)

// StockMovementRepository puerto del libro de estoque (solo agregar y leer).
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	ListByProduct(ctx context.Context, productID int64) ([]*entity.StockMovement, error)
	List(ctx context.Context) ([]*entity.StockMovement, error)
}
