// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package provision

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/AamirAbdullahKhan1/Da-Wheel/db"
	"github.com/AamirAbdullahKhan1/Da-Wheel/models"
	"github.com/AamirAbdullahKhan1/Da-Wheel/quota"
)

// SeedResult reports what a seeding run added
type SeedResult struct {
	ThemesInserted int                    `json:"themes_inserted"`
	TeamsInserted  int                    `json:"teams_inserted"`
	Ledger         models.ReconcileReport `json:"ledger"`
}

// Seed inserts the catalog's themes and teams, leaving existing rows
// untouched, then reconciles the ledger. Running it twice is a no-op.
func Seed(ctx context.Context, conn *sql.DB, c Catalog) (SeedResult, error) {
	if err := c.Validate(); err != nil {
		return SeedResult{}, err
	}

	var result SeedResult
	err := db.RunInTx(ctx, conn, func(tx *sql.Tx) error {
		for _, t := range c.Themes {
			res, err := tx.ExecContext(ctx, `
				INSERT INTO theme_quotas (theme_name, count, max_count, is_full)
				VALUES ($1, 0, $2, $3)
				ON CONFLICT (theme_name) DO NOTHING
			`, t.Name, t.MaxCount, t.MaxCount == 0)
			if err != nil {
				return fmt.Errorf("failed to insert theme %q: %w", t.Name, err)
			}
			if n, _ := res.RowsAffected(); n > 0 {
				result.ThemesInserted++
			}
		}

		for _, t := range c.Teams {
			res, err := tx.ExecContext(ctx, `
				INSERT INTO teams (login_id, team_name, password, spin_completed)
				VALUES ($1, $2, $3, FALSE)
				ON CONFLICT (login_id) DO NOTHING
			`, t.LoginID, t.TeamName, t.Password)
			if err != nil {
				return fmt.Errorf("failed to insert team %q: %w", t.LoginID, err)
			}
			if n, _ := res.RowsAffected(); n > 0 {
				result.TeamsInserted++
			}
		}
		return nil
	})
	if err != nil {
		return SeedResult{}, err
	}

	slog.Info("catalog seeded",
		"themes", len(c.Themes),
		"themes_inserted", result.ThemesInserted,
		"teams", len(c.Teams),
		"teams_inserted", result.TeamsInserted,
	)

	result.Ledger, err = quota.NewLedger(conn).Reconcile(ctx)
	if err != nil {
		return result, fmt.Errorf("failed to reconcile after seeding: %w", err)
	}
	return result, nil
}
