package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jhoicas/ledger-api/internal/domain/entity"
	"github.com/jhoicas/ledger-api/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo libro financiero sobre SQLite.
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository construye el repositorio.
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

const transactionColumns = `id, type, amount, category, description, date, product_id, partner_id, company_id, created_at`

func scanTransaction(s interface{ Scan(...any) error }) (*entity.Transaction, error) {
	var (
		t                             entity.Transaction
		productID, partnerID, company sql.NullInt64
	)
	if err := s.Scan(&t.ID, &t.Type, &t.Amount, &t.Category, &t.Description, &t.Date,
		&productID, &partnerID, &company, &t.CreatedAt); err != nil {
		return nil, err
	}
	t.ProductID = int64Ptr(productID)
	t.PartnerID = int64Ptr(partnerID)
	t.CompanyID = int64Ptr(company)
	return &t, nil
}

func (r *TransactionRepo) Create(ctx context.Context, t *entity.Transaction) error {
	err := r.q.QueryRowContext(ctx,
		`INSERT INTO transactions (type, amount, category, description, date, product_id, partner_id, company_id, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?) RETURNING id`,
		t.Type, t.Amount, t.Category, t.Description, t.Date,
		nullInt64(t.ProductID), nullInt64(t.PartnerID), nullInt64(t.CompanyID), t.CreatedAt,
	).Scan(&t.ID)
	return mapError("insert transaction", "vínculo da transação", err)
}

func (r *TransactionRepo) GetByID(ctx context.Context, id int64) (*entity.Transaction, error) {
	t, err := scanTransaction(r.q.QueryRowContext(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, mapError("get transaction", "transação", err)
	}
	return t, nil
}

func (r *TransactionRepo) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.q.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id)
	if err != nil {
		return false, mapError("delete transaction", "transação", err)
	}
	return affected(res)
}

func (r *TransactionRepo) List(ctx context.Context, f repository.TransactionFilter) ([]*entity.Transaction, error) {
	var (
		where []string
		args  []any
	)
	if f.Type != "" {
		where = append(where, "type = ?")
		args = append(args, f.Type)
	}
	if f.CompanyID != nil {
		where = append(where, "company_id = ?")
		args = append(args, *f.CompanyID)
	}
	if f.ProductID != nil {
		where = append(where, "product_id = ?")
		args = append(args, *f.ProductID)
	}
	if f.PartnerID != nil {
		where = append(where, "partner_id = ?")
		args = append(args, *f.PartnerID)
	}
	if f.From != nil {
		where = append(where, "date >= ?")
		args = append(args, *f.From)
	}
	if f.To != nil {
		where = append(where, "date <= ?")
		args = append(args, *f.To)
	}
	query := `SELECT ` + transactionColumns + ` FROM transactions`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY date DESC, id DESC`
	if f.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, f.Limit)
	}

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError("list transactions", "transação", err)
	}
	defer rows.Close()
	var out []*entity.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, mapError("scan transaction", "transação", err)
		}
		out = append(out, t)
	}
	return out, mapError("list transactions", "transação", rows.Err())
}
