package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/jhoicas/ledger-api/internal/domain/entity"
	"github.com/jhoicas/ledger-api/internal/domain/repository"
)

var _ repository.FixedExpenseRepository = (*FixedExpenseRepo)(nil)

// FixedExpenseRepo gastos fijos sobre SQLite.
type FixedExpenseRepo struct {
	q Querier
}

// NewFixedExpenseRepository construye el repositorio.
func NewFixedExpenseRepository(q Querier) *FixedExpenseRepo {
	return &FixedExpenseRepo{q: q}
}

func (r *FixedExpenseRepo) Create(ctx context.Context, fe *entity.FixedExpense) error {
	err := r.q.QueryRowContext(ctx,
		`INSERT INTO fixed_expenses (company_id, name, amount, due_day, start_date, end_date, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?) RETURNING id`,
		fe.CompanyID, fe.Name, fe.Amount, fe.DueDay, nullTime(fe.StartDate), nullTime(fe.EndDate), fe.CreatedAt,
	).Scan(&fe.ID)
	return mapRefError("insert fixed expense", "empresa", fe.CompanyID, err)
}

func (r *FixedExpenseRepo) List(ctx context.Context, companyID *int64) ([]*entity.FixedExpense, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT id, company_id, name, amount, due_day, start_date, end_date, created_at
		 FROM fixed_expenses WHERE (? IS NULL OR company_id = ?) ORDER BY due_day, id`,
		nullInt64(companyID), nullInt64(companyID),
	)
	if err != nil {
		return nil, mapError("list fixed expenses", "empresa", err)
	}
	defer rows.Close()
	var out []*entity.FixedExpense
	for rows.Next() {
		var (
			fe         entity.FixedExpense
			start, end sql.NullTime
		)
		if err := rows.Scan(&fe.ID, &fe.CompanyID, &fe.Name, &fe.Amount, &fe.DueDay, &start, &end, &fe.CreatedAt); err != nil {
			return nil, mapError("scan fixed expense", "empresa", err)
		}
		fe.StartDate = timePtr(start)
		fe.EndDate = timePtr(end)
		out = append(out, &fe)
	}
	return out, mapError("list fixed expenses", "empresa", rows.Err())
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func timePtr(n sql.NullTime) *time.Time {
	if !n.Valid {
		return nil
	}
	v := n.Time
	return &v
}
