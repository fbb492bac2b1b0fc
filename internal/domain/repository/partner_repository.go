package repository

import (
	"context"

	"github.com/jhoicas/ledger-api/internal/domain/entity"
)

// PartnerRepository define el puerto de persistencia para Partner (DIP).
type PartnerRepository interface {
	Create(ctx context.Context, partner *entity.Partner) error
	GetByID(ctx context.Context, id int64) (*entity.Partner, error)
	// List con companyID nil devuelve todos los socios.
	List(ctx context.Context, companyID *int64) ([]*entity.Partner, error)
}
