package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/ledger-api/internal/domain/entity"
	"github.com/jhoicas/ledger-api/internal/domain/repository"
)

var _ repository.CompanyRepository = (*CompanyRepo)(nil)

// CompanyRepo implementación del puerto CompanyRepository sobre PostgreSQL (usable con pool o tx).
type CompanyRepo struct {
	q Querier
}

// NewCompanyRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCompanyRepository(q Querier) *CompanyRepo {
	return &CompanyRepo{q: q}
}

// Create persiste la empresa y completa su ID. Nombre repetido -> ConstraintError.
func (r *CompanyRepo) Create(ctx context.Context, c *entity.Company) error {
	err := r.q.QueryRow(ctx,
		`INSERT INTO companies (name, created_at) VALUES ($1, $2) RETURNING id`,
		c.Name, c.CreatedAt,
	).Scan(&c.ID)
	return mapError("insert company", "empresa", err)
}

// GetByID devuelve (nil, nil) si no existe.
func (r *CompanyRepo) GetByID(ctx context.Context, id int64) (*entity.Company, error) {
	var c entity.Company
	err := r.q.QueryRow(ctx, `SELECT id, name, created_at FROM companies WHERE id = $1`, id).
		Scan(&c.ID, &c.Name, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, mapError("get company", "empresa", err)
	}
	return &c, nil
}

// List devuelve todas las empresas por id.
func (r *CompanyRepo) List(ctx context.Context) ([]*entity.Company, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name, created_at FROM companies ORDER BY id`)
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

// Rename cambia el nombre (única mutación permitida sobre la empresa).
func (r *CompanyRepo) Rename(ctx context.Context, id int64, name string) (bool, error) {
	tag, err := r.q.Exec(ctx, `UPDATE companies SET name = $2 WHERE id = $1`, id, name)
	if err != nil {
		return false, mapError("rename company", "empresa", err)
	}
	return tag.RowsAffected() > 0, nil
}

// Delete borra la empresa; socios, productos y gastos fijos caen en cascada.
func (r *CompanyRepo) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM companies WHERE id = $1`, id)
	if err != nil {
		return false, mapError("delete company", "empresa", err)
	}
	return tag.RowsAffected() > 0, nil
}
