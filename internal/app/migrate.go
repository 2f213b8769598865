package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver for database/sql
	"github.com/pressly/goose/v3"

	"github.com/gigfrog/backend/internal/config"
	"github.com/gigfrog/backend/migrations"
)

// migrate applies embedded goose migrations. goose requires *sql.DB, so a
// short-lived database/sql connection is opened alongside the pgx pool.
func migrate(ctx context.Context, log *slog.Logger, cfg config.DatabaseConfig) error {
	db, err := sql.Open("pgx", cfg.DSN)
	if err != nil {
		return fmt.Errorf("sql.Open: %w", err)
	}
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return fmt.Errorf("goose new provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("goose up: %w", err)
	}

	log.InfoContext(ctx, "migrations applied", slog.Int("count", len(results)))

	return nil
}
