package sqlite

import (
	"context"
	"database/sql"

	"github.com/jhoicas/ledger-api/internal/application/ledger"
	"github.com/jhoicas/ledger-api/internal/domain"
)

var _ ledger.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción SQLite (BEGIN IMMEDIATE).
type TxRunner struct {
	db *sql.DB
}

// NewTxRunner construye el runner.
func NewTxRunner(db *sql.DB) *TxRunner {
	return &TxRunner{db: db}
}

// Run inicia la transacción, ejecuta fn con repos atados a ella y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(repos ledger.TxRepos) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.WrapStorage("begin transaction", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(Repos(tx)); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return domain.WrapStorage("commit transaction", err)
	}
	return nil
}

// Repos construye el juego completo de repositorios sobre q (base o transacción).
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
