package repository

import (
	"context"

	"github.com/jhoicas/ledger-api/internal/domain/entity"
)

// EquityRepository puerto del libro de patrimonio (aportes y retiros).
// partnerID nil en los listados devuelve los asientos de todos los socios.
type EquityRepository interface {
	CreateContribution(ctx context.Context, c *entity.Contribution) error
	CreateWithdrawal(ctx context.Context, w *entity.Withdrawal) error
	ListContributions(ctx context.Context, partnerID *int64) ([]*entity.Contribution, error)
	ListWithdrawals(ctx context.Context, partnerID *int64) ([]*entity.Withdrawal, error)
}
