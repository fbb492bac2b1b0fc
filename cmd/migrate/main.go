// Command migrate aplica, revierte o lista las migraciones del esquema del libro.
//
//	migrate up | down | status
package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/pressly/goose/v3"

	"github.com/jhoicas/ledger-api/internal/infrastructure/migrations"
	"github.com/jhoicas/ledger-api/internal/infrastructure/postgres"
	"github.com/jhoicas/ledger-api/pkg/config"
	"github.com/jhoicas/ledger-api/pkg/logger"

	_ "github.com/mattn/go-sqlite3"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "uso: migrate up|down|status")
		os.Exit(2)
	}
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level})
	ctx := context.Background()

	db, closeDB, err := openDB(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir base de datos")
	}
	defer closeDB()

	provider, err := migrations.NewProvider(db, cfg.DB.Driver)
	if err != nil {
		log.Fatal().Err(err).Msg("provider de migraciones")
	}

	switch os.Args[1] {
	case "up":
		results, err := provider.Up(ctx)
		logResults(log, results)
		if err != nil {
			log.Fatal().Err(err).Msg("migrate up")
		}
	case "down":
		result, err := provider.Down(ctx)
		if result != nil {
			logResults(log, []*goose.MigrationResult{result})
		}
		if err != nil {
			log.Fatal().Err(err).Msg("migrate down")
		}
	case "status":
		statuses, err := provider.Status(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("migrate status")
		}
		for _, s := range statuses {
			log.Info().
				Int64("version", s.Source.Version).
				Str("file", s.Source.Path).
				Str("state", string(s.State)).
				Msg("migración")
		}
	default:
		log.Fatal().Str("command", os.Args[1]).Msg("comando desconocido (up|down|status)")
	}
}

func openDB(ctx context.Context, cfg config.DBConfig) (*sql.DB, func(), error) {
	if cfg.Driver == config.DriverSQLite {
		db, err := sql.Open("sqlite3", "file:"+cfg.SQLitePath+"?_foreign_keys=on")
		if err != nil {
			return nil, nil, err
		}
		return db, func() { _ = db.Close() }, nil
	}
	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	db := postgres.OpenSQL(pool)
	return db, func() { _ = db.Close(); pool.Close() }, nil
}

func logResults(log *logger.Logger, results []*goose.MigrationResult) {
	for _, r := range results {
		ev := log.Info()
		if r.Error != nil {
			ev = log.Error().Err(r.Error)
		}
		ev.Int64("version", r.Source.Version).
			Str("direction", r.Direction).
			Dur("duration", r.Duration).
			Msg("migración aplicada")
	}
}
