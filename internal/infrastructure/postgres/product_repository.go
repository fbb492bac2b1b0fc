package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ledger-api/internal/domain/entity"
	"github.com/jhoicas/ledger-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, company_id, sku, name, price, created_at`

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var (
		p   entity.Product
		sku *string
	)
	if err := row.Scan(&p.ID, &p.CompanyID, &sku, &p.Name, &p.Price, &p.CreatedAt); err != nil {
		return nil, err
	}
	if sku != nil {
		p.SKU = *sku
	}
	return &p, nil
}

// Create persiste un nuevo producto. SKU vacío se guarda como NULL.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	var sku *string
	if p.SKU != "" {
		sku = &p.SKU
	}
	err := r.q.QueryRow(ctx,
		`INSERT INTO products (company_id, sku, name, price, created_at) VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		p.CompanyID, sku, p.Name, p.Price, p.CreatedAt,
	).Scan(&p.ID)
	return mapRefError("insert product", "empresa", p.CompanyID, err)
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	return r.get(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
}

// GetForUpdate obtiene el producto y bloquea su fila hasta el fin de la transacción (SELECT FOR UPDATE).
// Serializa las ventas concurrentes del mismo producto.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Product, error) {
	return r.get(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1 FOR UPDATE`, id)
}

func (r *ProductRepo) get(ctx context.Context, query string, id int64) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, mapError("get product", "produto", err)
	}
	return p, nil
}

// List lista productos, opcionalmente de una empresa.
func (r *ProductRepo) List(ctx context.Context, companyID *int64) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+productColumns+` FROM products WHERE ($1::bigint IS NULL OR company_id = $1) ORDER BY name, id`,
		companyID)
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

// UpdatePrice edita el precio por defecto. Las ventas ya registradas no cambian.
func (r *ProductRepo) UpdatePrice(ctx context.Context, id int64, price decimal.Decimal) (bool, error) {
	tag, err := r.q.Exec(ctx, `UPDATE products SET price = $2 WHERE id = $1`, id, price)
	if err != nil {
		return false, mapError("update product price", "produto", err)
	}
	return tag.RowsAffected() > 0, nil
}

// Delete borra el producto y, en cascada, sus movimientos.
func (r *ProductRepo) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return false, mapError("delete product", "produto", err)
	}
	return tag.RowsAffected() > 0, nil
}
