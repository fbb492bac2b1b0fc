package postgres

import (
	"context"

	"github.com/jhoicas/ledger-api/internal/domain/entity"
	"github.com/jhoicas/ledger-api/internal/domain/repository"
)

var _ repository.EquityRepository = (*EquityRepo)(nil)

// EquityRepo libro de patrimonio sobre PostgreSQL.
type EquityRepo struct {
	q Querier
}

// NewEquityRepository construye el adaptador. Pasar pool o tx (Querier).
func NewEquityRepository(q Querier) *EquityRepo {
	return &EquityRepo{q: q}
}

func (r *EquityRepo) CreateContribution(ctx context.Context, c *entity.Contribution) error {
	err := r.q.QueryRow(ctx,
		`INSERT INTO contributions (partner_id, amount, date, note, created_at) VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		c.PartnerID, c.Amount, c.Date, c.Note, c.CreatedAt,
	).Scan(&c.ID)
	return mapRefError("insert contribution", "sócio", c.PartnerID, err)
}

func (r *EquityRepo) CreateWithdrawal(ctx context.Context, w *entity.Withdrawal) error {
	err := r.q.QueryRow(ctx,
		`INSERT INTO withdrawals (partner_id, amount, date, reason, created_at) VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		w.PartnerID, w.Amount, w.Date, w.Reason, w.CreatedAt,
	).Scan(&w.ID)
	return mapRefError("insert withdrawal", "sócio", w.PartnerID, err)
}

func (r *EquityRepo) ListContributions(ctx context.Context, partnerID *int64) ([]*entity.Contribution, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, partner_id, amount, date, note, created_at FROM contributions
		 WHERE ($1::bigint IS NULL OR partner_id = $1) ORDER BY date, id`, partnerID)
	if err != nil {
		return nil, mapError("list contributions", "sócio", err)
	}
	defer rows.Close()
	var out []*entity.Contribution
	for rows.Next() {
		var c entity.Contribution
		if err := rows.Scan(&c.ID, &c.PartnerID, &c.Amount, &c.Date, &c.Note, &c.CreatedAt); err != nil {
			return nil, mapError("scan contribution", "sócio", err)
		}
		out = append(out, &c)
	}
	return out, mapError("list contributions", "sócio", rows.Err())
}

func (r *EquityRepo) ListWithdrawals(ctx context.Context, partnerID *int64) ([]*entity.Withdrawal, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, partner_id, amount, date, reason, created_at FROM withdrawals
		 WHERE ($1::bigint IS NULL OR partner_id = $1) ORDER BY date, id`, partnerID)
	if err != nil {
		return nil, mapError("list withdrawals", "sócio", err)
	}
	defer rows.Close()
	var out []*entity.Withdrawal
	for rows.Next() {
		var w entity.Withdrawal
		if err := rows.Scan(&w.ID, &w.PartnerID, &w.Amount, &w.Date, &w.Reason, &w.CreatedAt); err != nil {
			return nil, mapError("scan withdrawal", "sócio", err)
		}
		out = append(out, &w)
	}
	return out, mapError("list withdrawals", "sócio", rows.Err())
}
