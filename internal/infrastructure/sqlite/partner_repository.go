package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jhoicas/ledger-api/internal/domain/entity"
	"github.com/jhoicas/ledger-api/internal/domain/repository"
)

var _ repository.PartnerRepository = (*PartnerRepo)(nil)

// PartnerRepo implementación de PartnerRepository sobre SQLite.
type PartnerRepo struct {
	q Querier
}

// NewPartnerRepository construye el repositorio.
func NewPartnerRepository(q Querier) *PartnerRepo {
	return &PartnerRepo{q: q}
}

const partnerColumns = `id, company_id, name, share_pct, created_at`

func (r *PartnerRepo) Create(ctx context.Context, p *entity.Partner) error {
	err := r.q.QueryRowContext(ctx,
		`INSERT INTO partners (company_id, name, share_pct, created_at) VALUES (?, ?, ?, ?) RETURNING id`,
		p.CompanyID, p.Name, p.SharePct, p.CreatedAt,
	).Scan(&p.ID)
	return mapRefError("insert partner", "empresa", p.CompanyID, err)
}

func (r *PartnerRepo) GetByID(ctx context.Context, id int64) (*entity.Partner, error) {
	var p entity.Partner
	err := r.q.QueryRowContext(ctx,
		`SELECT `+partnerColumns+` FROM partners WHERE id = ?`, id,
	).Scan(&p.ID, &p.CompanyID, &p.Name, &p.SharePct, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, mapError("get partner", "sócio", err)
	}
	return &p, nil
}

func (r *PartnerRepo) List(ctx context.Context, companyID *int64) ([]*entity.Partner, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+partnerColumns+` FROM partners WHERE (? IS NULL OR company_id = ?) ORDER BY id`,
		nullInt64(companyID), nullInt64(companyID),
	)
	if err != nil {
		return nil, mapError("list partners", "sócio", err)
	}
	defer rows.Close()
	var out []*entity.Partner
	for rows.Next() {
		var p entity.Partner
		if err := rows.Scan(&p.ID, &p.CompanyID, &p.Name, &p.SharePct, &p.CreatedAt); err != nil {
			return nil, mapError("scan partner", "sócio", err)
		}
		out = append(out, &p)
	}
	return out, mapError("list partners", "sócio", rows.Err())
}
