// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/AamirAbdullahKhan1/Da-Wheel/cliparse"
	"github.com/AamirAbdullahKhan1/Da-Wheel/db"
	"github.com/AamirAbdullahKhan1/Da-Wheel/middleware"
)

var (
	// flags
	databaseURL  string
	databaseType string
	logLevel     string

	cfg  cliparse.Config
	conn *sql.DB
)

func init() {
	RootCmd.PersistentFlags().StringVarP(&databaseURL, "database", "d", "", "database URL or SQLite path (env DATABASE_URL)")
	RootCmd.PersistentFlags().StringVarP(&databaseType, "type", "t", "", "postgres or sqlite (env DATABASE_TYPE)")
	RootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level")
}

var RootCmd = cobra.Command{
	Use:           "wheelctl",
	Short:         "Operate the Da-Wheel theme ledger",
	Long:          "Provision, inspect and repair the theme ledger behind the Da-Wheel API.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load .env: %w", err)
		}

		logger, err := middleware.NewLogger(os.Stderr, logLevel, "text")
		if err != nil {
			return err
		}
		slog.SetDefault(logger)

		cfg, err = cliparse.ParseDatabaseFlags(databaseURL, databaseType)
		if err != nil {
			return err
		}

		// PersistentPostRun is skipped when RunE fails
		if conn != nil {
			conn.Close()
		}
		conn, err = db.Open(cmd.Context(), cfg)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if conn != nil {
			conn.Close()
			conn = nil
		}
	},
}

// migrated makes sure the schema exists before a command touches it
func migrated(ctx context.Context) error {
	return db.Migrate(ctx, conn, cfg.DatabaseType)
}

func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
