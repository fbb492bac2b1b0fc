package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/ledger-api/internal/domain"
)

// Querier abstrae pgxpool.Pool y pgx.Tx para que los repos funcionen con o sin transacción.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Códigos SQLSTATE relevantes.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

// mapError traduce errores de PostgreSQL a la taxonomía de dominio.
func mapError(op, entity string, err error) error {
	return mapRefError(op, entity, 0, err)
}

// mapRefError como mapError, pero con el id referenciado cuando el insert solo
// tiene una clave foránea (0 si no se conoce).
func mapRefError(op, entity string, refID int64, err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			return &domain.ConstraintError{Constraint: pgErr.ConstraintName}
		case codeForeignKeyViolation:
			return domain.NewNotFoundError(entity, refID)
		}
	}
	return domain.WrapStorage(op, err)
}
