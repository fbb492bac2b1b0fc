package sqlite

import (
	"context"
	"database/sql"

	"github.com/jhoicas/ledger-api/internal/domain/entity"
	"github.com/jhoicas/ledger-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo libro de estoque sobre SQLite.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el repositorio.
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

const movementColumns = `id, product_id, quantity, movement_type, reference, source, is_paid, unit_cost, created_at`

func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	err := r.q.QueryRowContext(ctx,
		`INSERT INTO stock_movements (product_id, quantity, movement_type, reference, source, is_paid, unit_cost, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?) RETURNING id`,
		m.ProductID, m.Quantity, m.Type, m.Reference, m.Source, m.IsPaid, m.UnitCost, m.CreatedAt,
	).Scan(&m.ID)
	return mapRefError("insert stock movement", "produto", m.ProductID, err)
}

func (r *StockMovementRepo) ListByProduct(ctx context.Context, productID int64) ([]*entity.StockMovement, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+movementColumns+` FROM stock_movements WHERE product_id = ? ORDER BY id`, productID)
	return scanMovements(rows, err)
}

func (r *StockMovementRepo) List(ctx context.Context) ([]*entity.StockMovement, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT `+movementColumns+` FROM stock_movements ORDER BY id`)
	return scanMovements(rows, err)
}

func scanMovements(rows *sql.Rows, err error) ([]*entity.StockMovement, error) {
	if err != nil {
		return nil, mapError("list stock movements", "produto", err)
	}
	defer rows.Close()
	var out []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(&m.ID, &m.ProductID, &m.Quantity, &m.Type, &m.Reference,
			&m.Source, &m.IsPaid, &m.UnitCost, &m.CreatedAt); err != nil {
			return nil, mapError("scan stock movement", "produto", err)
		}
		out = append(out, &m)
	}
	return out, mapError("list stock movements", "produto", rows.Err())
}
