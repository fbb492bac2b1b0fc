// Package ledger contiene las operaciones que escriben en los libros de estoque,
// financiero y de patrimonio. Cada operación es atómica.
package ledger

import (
	"context"

	"github.com/jhoicas/ledger-api/internal/domain/repository"
)

// TxRepos repositorios atados a una misma transacción de BD.
type TxRepos struct {
	Companies    repository.CompanyRepository
	Partners     repository.PartnerRepository
	Products     repository.ProductRepository
	Movements    repository.StockMovementRepository
	Transactions repository.TransactionRepository
	Equity       repository.EquityRepository
}

// TxRunner ejecuta fn dentro de una transacción: Commit si fn devuelve nil, Rollback en otro caso.
// Las implementaciones deben serializar las escrituras concurrentes sobre el mismo producto
// cuando fn usa Products.GetForUpdate.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos TxRepos) error) error
}
