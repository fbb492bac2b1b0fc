package repository

import (
	"context"

	"github.com/jhoicas/ledger-api/internal/domain/entity"
)

// FixedExpenseRepository puerto de gastos fijos.
type FixedExpenseRepository interface {
	Create(ctx context.Context, fe *entity.FixedExpense) error
	List(ctx context.Context, companyID *int64) ([]*entity.FixedExpense, error)
}
