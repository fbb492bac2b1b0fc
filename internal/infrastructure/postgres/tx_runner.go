package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/ledger-api/internal/application/ledger"
	"github.com/jhoicas/ledger-api/internal/domain"
)

var _ ledger.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL (READ COMMITTED).
// La consistencia de la venta la da el SELECT ... FOR UPDATE sobre la fila del producto.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(repos ledger.TxRepos) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return domain.WrapStorage("begin transaction", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(Repos(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return domain.WrapStorage("commit transaction", err)
	}
	return nil
}

// Repos construye el juego completo de repositorios sobre q (pool o tx).
func Repos(q Querier) ledger.TxRepos {
	return ledger.TxRepos{
		Companies:    NewCompanyRepository(q),
		Partners:     NewPartnerRepository(q),
		Products:     NewProductRepository(q),
		Movements:    NewStockMovementRepository(q),
		Transactions: NewTransactionRepository(q),
		Equity:       NewEquityRepository(q),
	}
}
