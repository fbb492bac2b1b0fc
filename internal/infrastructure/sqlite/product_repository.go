package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ledger-api/internal/domain/entity"
	"github.com/jhoicas/ledger-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación de ProductRepository sobre SQLite.
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el repositorio.
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, company_id, sku, name, price, created_at`

func scanProduct(s interface{ Scan(...any) error }) (*entity.Product, error) {
	var (
		p   entity.Product
		sku sql.NullString
	)
	if err := s.Scan(&p.ID, &p.CompanyID, &sku, &p.Name, &p.Price, &p.CreatedAt); err != nil {
		return nil, err
	}
	p.SKU = sku.String
	return &p, nil
}

func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	err := r.q.QueryRowContext(ctx,
		`INSERT INTO products (company_id, sku, name, price, created_at) VALUES (?, ?, ?, ?, ?) RETURNING id`,
		p.CompanyID, nullString(p.SKU), p.Name, p.Price, p.CreatedAt,
	).Scan(&p.ID)
	return mapRefError("insert product", "empresa", p.CompanyID, err)
}

func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRowContext(ctx, `SELECT `+productColumns+` FROM products WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, mapError("get product", "produto", err)
	}
	return p, nil
}

// GetForUpdate en SQLite equivale a GetByID: la transacción IMMEDIATE ya tiene el
// bloqueo de escritura de toda la base.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *ProductRepo) List(ctx context.Context, companyID *int64) ([]*entity.Product, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE (? IS NULL OR company_id = ?) ORDER BY name, id`,
		nullInt64(companyID), nullInt64(companyID),
	)
	if err != nil {
		return nil, mapError("list products", "produto", err)
	}
	defer rows.Close()
	var out []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, mapError("scan product", "produto", err)
		}
		out = append(out, p)
	}
	return out, mapError("list products", "produto", rows.Err())
}

func (r *ProductRepo) UpdatePrice(ctx context.Context, id int64, price decimal.Decimal) (bool, error) {
	res, err := r.q.ExecContext(ctx, `UPDATE products SET price = ? WHERE id = ?`, price, id)
	if err != nil {
		return false, mapError("update product price", "produto", err)
	}
	return affected(res)
}

func (r *ProductRepo) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.q.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return false, mapError("delete product", "produto", err)
	}
	return affected(res)
}
