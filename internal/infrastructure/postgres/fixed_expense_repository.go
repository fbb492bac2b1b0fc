package postgres

import (
	"context"

	"github.com/jhoicas/ledger-api/internal/domain/entity"
	"github.com/jhoicas/ledger-api/internal/domain/repository"
)

var _ repository.FixedExpenseRepository = (*FixedExpenseRepo)(nil)

// FixedExpenseRepo gastos fijos sobre PostgreSQL.
type FixedExpenseRepo struct {
	q Querier
}

// NewFixedExpenseRepository construye el adaptador. Pasar pool o tx (Querier).
func NewFixedExpenseRepository(q Querier) *FixedExpenseRepo {
	return &FixedExpenseRepo{q: q}
}

func (r *FixedExpenseRepo) Create(ctx context.Context, fe *entity.FixedExpense) error {
	err := r.q.QueryRow(ctx,
		`INSERT INTO fixed_expenses (company_id, name, amount, due_day, start_date, end_date, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
		fe.CompanyID, fe.Name, fe.Amount, fe.DueDay, fe.StartDate, fe.EndDate, fe.CreatedAt,
	).Scan(&fe.ID)
	return mapRefError("insert fixed expense", "empresa", fe.CompanyID, err)
}

func (r *FixedExpenseRepo) List(ctx context.Context, companyID *int64) ([]*entity.FixedExpense, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, company_id, name, amount, due_day, start_date, end_date, created_at
		 FROM fixed_expenses WHERE ($1::bigint IS NULL OR company_id = $1) ORDER BY due_day, id`, companyID)
	if err != nil {
		return nil, mapError("list fixed expenses", "empresa", err)
	}
	defer rows.Close()
	var out []*entity.FixedExpense
	for rows.Next() {
		var fe entity.FixedExpense
		if err := rows.Scan(&fe.ID, &fe.CompanyID, &fe.Name, &fe.Amount, &fe.DueDay,
			&fe.StartDate, &fe.EndDate, &fe.CreatedAt); err != nil {
			return nil, mapError("scan fixed expense", "empresa", err)
		}
		out = append(out, &fe)
	}
	return out, mapError("list fixed expenses", "empresa", rows.Err())
}
