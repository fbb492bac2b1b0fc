package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jhoicas/ledger-api/internal/domain/entity"
	"github.com/jhoicas/ledger-api/internal/domain/repository"
)

var _ repository.CompanyRepository = (*CompanyRepo)(nil)

// CompanyRepo implementación de CompanyRepository sobre SQLite.
type CompanyRepo struct {
	q Querier
}

// NewCompanyRepository construye el repositorio.
func NewCompanyRepository(q Querier) *CompanyRepo {
	return &CompanyRepo{q: q}
}

func (r *CompanyRepo) Create(ctx context.Context, c *entity.Company) error {
	err := r.q.QueryRowContext(ctx,
		`INSERT INTO companies (name, created_at) VALUES (?, ?) RETURNING id`,
		c.Name, c.CreatedAt,
	).Scan(&c.ID)
	return mapError("companies.name", "empresa", err)
}

func (r *CompanyRepo) GetByID(ctx context.Context, id int64) (*entity.Company, error) {
	var c entity.Company
	err := r.q.QueryRowContext(ctx,
		`SELECT id, name, created_at FROM companies WHERE id = ?`, id,
	).Scan(&c.ID, &c.Name, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, mapError("get company", "empresa", err)
	}
	return &c, nil
}

func (r *CompanyRepo) List(ctx context.Context) ([]*entity.Company, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT id, name, created_at FROM companies ORDER BY id`)
	if err != nil {
		return nil, mapError("list companies", "empresa", err)
	}
	defer rows.Close()
	var out []*entity.Company
	for rows.Next() {
		var c entity.Company
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
			return nil, mapError("scan company", "empresa", err)
		}
		out = append(out, &c)
	}
	return out, mapError("list companies", "empresa", rows.Err())
}

func (r *CompanyRepo) Rename(ctx context.Context, id int64, name string) (bool, error) {
	res, err := r.q.ExecContext(ctx, `UPDATE companies SET name = ? WHERE id = ?`, name, id)
	if err != nil {
		return false, mapError("companies.name", "empresa", err)
	}
	return affected(res)
}

func (r *CompanyRepo) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.q.ExecContext(ctx, `DELETE FROM companies WHERE id = ?`, id)
	if err != nil {
		return false, mapError("delete company", "empresa", err)
	}
	return affected(res)
}
