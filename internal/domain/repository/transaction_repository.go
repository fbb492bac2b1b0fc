package repository

import (
	"context"
	"time"

	"github.com/jhoicas/ledger-api/internal/domain/entity"
)

// TransactionFilter filtros opcionales del libro financiero. Campos nil/vacíos no filtran.
type TransactionFilter struct {
	Type      string
	CompanyID *int64
	ProductID *int64
	PartnerID *int64
	From      *time.Time // inclusive
	To        *time.Time // inclusive
	Limit     int        // 0 = sin límite
}

// TransactionRepository puerto del libro financiero.
type TransactionRepository interface {
	Create(ctx context.Context, tx *entity.Transaction) error
	GetByID(ctx context.Context, id int64) (*entity.Transaction, error)
	// Delete borra físicamente; false si no existía.
	Delete(ctx context.Context, id int64) (bool, error)
	// List ordena por fecha descendente y luego por id descendente.
	List(ctx context.Context, filter TransactionFilter) ([]*entity.Transaction, error)
}
