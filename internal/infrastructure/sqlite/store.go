// Package sqlite implementa los puertos de persistencia sobre SQLite (mattn/go-sqlite3).
//
// Las transacciones se abren con BEGIN IMMEDIATE (_txlock=immediate): el bloqueo de
// escritura se toma al inicio, por lo que dos ventas concurrentes se serializan y la
// segunda relee el estoque ya descontado. busy_timeout hace que la espera no falle.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"

	_ "github.com/mattn/go-sqlite3"

	"github.com/jhoicas/ledger-api/internal/infrastructure/migrations"
)

// Store conexión SQLite con el esquema del libro aplicado.
type Store struct {
	db *sql.DB
}

// Options ajustes de apertura.
type Options struct {
	BusyTimeoutMS int // 0 = 5000
}

// Open abre (o crea) la base en path y aplica las migraciones. ":memory:" usa una base en memoria.
func Open(ctx context.Context, path string, opts Options) (*Store, error) {
	if opts.BusyTimeoutMS <= 0 {
		opts.BusyTimeoutMS = 5000
	}
	params := url.Values{}
	params.Set("_foreign_keys", "on")
	params.Set("_journal_mode", "WAL")
	params.Set("_busy_timeout", fmt.Sprint(opts.BusyTimeoutMS))
	params.Set("_txlock", "immediate")
	dsn := "file:" + path + "?" + params.Encode()

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("abrir sqlite: %w", err)
	}
	if path == ":memory:" {
		// cada conexión tendría su propia base en memoria
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if err := migrations.Up(ctx, db, migrations.EngineSQLite); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// DB expone el *sql.DB para construir repositorios fuera de transacción.
func (s *Store) DB() *sql.DB { return s.db }

// Close cierra la base.
func (s *Store) Close() error { return s.db.Close() }
