// Package migrations embebe el esquema del libro (un directorio por motor) y lo aplica con goose.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
)

//go:embed postgres/*.sql sqlite/*.sql
var migrationsFS embed.FS

// Motores soportados.
const (
	EnginePostgres = "postgres"
	EngineSQLite   = "sqlite"
)

// NewProvider construye el provider de goose para el motor indicado.
func NewProvider(db *sql.DB, engine string) (*goose.Provider, error) {
	var dialect goose.Dialect
	switch engine {
	case EnginePostgres:
		dialect = goose.DialectPostgres
	case EngineSQLite:
		dialect = goose.DialectSQLite3
	default:
		return nil, fmt.Errorf("migraciones: motor desconocido %q", engine)
	}
	sub, err := fs.Sub(migrationsFS, engine)
	if err != nil {
		return nil, fmt.Errorf("migraciones: %w", err)
	}
	return goose.NewProvider(dialect, db, sub)
}

// Up aplica todas las migraciones pendientes.
func Up(ctx context.Context, db *sql.DB, engine string) error {
	p, err := NewProvider(db, engine)
	if err != nil {
		return err
	}
	if _, err := p.Up(ctx); err != nil {
		return fmt.Errorf("migraciones up: %w", err)
	}
	return nil
}
