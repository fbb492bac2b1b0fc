package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/mattn/go-sqlite3"

	"github.com/jhoicas/ledger-api/internal/domain"
)

// Querier abstrae *sql.DB y *sql.Tx para que los repos funcionen con o sin transacción.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// mapError traduce errores del driver a la taxonomía de dominio.
// Unicidad -> ConstraintError; clave foránea -> NotFoundError(entity); resto -> StorageError.
func mapError(op, entity string, err error) error {
	return mapRefError(op, entity, 0, err)
}

// mapRefError como mapError, pero con el id referenciado cuando el insert solo
// tiene una clave foránea (0 si no se conoce).
func mapRefError(op, entity string, refID int64, err error) error {
	if err == nil {
		return nil
	}
	var se sqlite3.Error
	if errors.As(err, &se) {
		switch se.ExtendedCode {
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return &domain.ConstraintError{Constraint: op}
		case sqlite3.ErrConstraintForeignKey:
			return domain.NewNotFoundError(entity, refID)
		}
	}
	return domain.WrapStorage(op, err)
}

func nullInt64(p *int64) sql.NullInt64 {
	if p == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *p, Valid: true}
}

func int64Ptr(n sql.NullInt64) *int64 {
	if !n.Valid {
		return nil
	}
	v := n.Int64
	return &v
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func affected(res sql.Result) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
