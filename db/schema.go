// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/pressly/goose/v3"

	"github.com/AamirAbdullahKhan1/Da-Wheel/cliparse"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// Migrate applies all pending migrations for the given database type.
// Safe to call on every start.
func Migrate(ctx context.Context, conn *sql.DB, databaseType string) error {
	dialect := goose.DialectPostgres
	if databaseType == cliparse.DatabaseSQLite {
		dialect = goose.DialectSQLite3
	}

	migrations, err := fs.Sub(embedMigrations, "migrations")
	if err != nil {
		return fmt.Errorf("failed to open migrations: %w", err)
	}

	provider, err := goose.NewProvider(dialect, conn, migrations)
	if err != nil {
		return fmt.Errorf("failed to create migration provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	for _, r := range results {
		slog.Info("migration applied", "version", r.Source.Version, "path", r.Source.Path, "duration_ms", r.Duration.Milliseconds())
	}

	return nil
}
