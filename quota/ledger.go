// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package quota

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/AamirAbdullahKhan1/Da-Wheel/db"
	"github.com/AamirAbdullahKhan1/Da-Wheel/models"
)

// Both drivers accept $n placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Ledger is the per-theme count/full summary. Counts are a cache over the
// teams table and can always be rebuilt with Reconcile.
type Ledger struct {
	db *sql.DB
}

func NewLedger(conn *sql.DB) *Ledger {
	return &Ledger{db: conn}
}

// ListThemes returns every theme ordered by name. A store failure is
// returned as *StoreError, never as an empty catalog.
func (l *Ledger) ListThemes(ctx context.Context) ([]models.Theme, error) {
	var themes []models.Theme
	err := withRetry(ctx, "list themes", func(ctx context.Context) error {
		var err error
		themes, err = queryThemes(ctx, l.db)
		return err
	})
	return themes, err
}

// Team returns one team's assignment state.
func (l *Ledger) Team(ctx context.Context, loginID string) (models.Team, error) {
	loginID = strings.TrimSpace(loginID)
	if loginID == "" {
		return models.Team{}, fmt.Errorf("%w: login_id is required", ErrInvalidInput)
	}

	var team models.Team
	err := withRetry(ctx, "get team", func(ctx context.Context) error {
		var theme sql.NullString
		var at sql.NullTime
		err := l.db.QueryRowContext(ctx, `
			SELECT login_id, team_name, spin_completed, assigned_theme, assigned_at
			FROM teams WHERE login_id = $1
		`, loginID).Scan(&team.LoginID, &team.TeamName, &team.SpinCompleted, &theme, &at)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("team %q: %w", loginID, ErrUnknownTeam)
		}
		if err != nil {
			return err
		}
		if theme.Valid {
			team.AssignedTheme = &theme.String
		}
		if at.Valid {
			team.AssignedAt = &at.Time
		}
		return nil
	})
	return team, err
}

// Reconcile recomputes every theme's count from the teams table and its
// full flag from count vs capacity. Themes holding more teams than their
// capacity are reported and logged, never trimmed. Idempotent.
func (l *Ledger) Reconcile(ctx context.Context) (models.ReconcileReport, error) {
	var report models.ReconcileReport
	err := withRetry(ctx, "reconcile", func(ctx context.Context) error {
		return db.RunInTx(ctx, l.db, func(tx *sql.Tx) error {
			var err error
			report, err = reconcile(ctx, tx)
			return err
		})
	})
	if err != nil {
		return models.ReconcileReport{}, err
	}

	logReport("ledger reconciled", report)
	return report, nil
}

// SetCapacity changes a theme's capacity and re-derives the full flag of
// every theme. Lowering capacity below the current count is allowed; the
// theme shows up in OverCapacity.
func (l *Ledger) SetCapacity(ctx context.Context, theme string, capacity int) (models.ReconcileReport, error) {
	theme = strings.TrimSpace(theme)
	if theme == "" {
		return models.ReconcileReport{}, fmt.Errorf("%w: theme is required", ErrInvalidInput)
	}
	if capacity < 0 {
		return models.ReconcileReport{}, fmt.Errorf("%w: capacity must not be negative", ErrInvalidInput)
	}

	var report models.ReconcileReport
	err := withRetry(ctx, "set capacity", func(ctx context.Context) error {
		return db.RunInTx(ctx, l.db, func(tx *sql.Tx) error {
			res, err := tx.ExecContext(ctx, `UPDATE theme_quotas SET max_count = $1 WHERE theme_name = $2`, capacity, theme)
			if err != nil {
				return err
			}
			if n, err := res.RowsAffected(); err != nil {
				return err
			} else if n == 0 {
				return fmt.Errorf("theme %q: %w", theme, ErrUnknownTheme)
			}

			if _, err := tx.ExecContext(ctx, `UPDATE theme_quotas SET is_full = (count >= max_count)`); err != nil {
				return err
			}

			report.Themes, err = queryThemes(ctx, tx)
			report.OverCapacity = overCapacity(report.Themes)
			return err
		})
	})
	if err != nil {
		return models.ReconcileReport{}, err
	}

	slog.Info("theme capacity changed", "theme", theme, "max_count", capacity)
	logReport("capacity applied", report)
	return report, nil
}

// ResetTeams clears the assignment of the given teams, or of every team
// when none are given, and reconciles the ledger in the same transaction.
// A list made only of blank ids is rejected rather than read as "all".
func (l *Ledger) ResetTeams(ctx context.Context, loginIDs ...string) (models.ResetResponse, error) {
	ids := make([]string, 0, len(loginIDs))
	for _, id := range loginIDs {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	if len(loginIDs) > 0 && len(ids) == 0 {
		return models.ResetResponse{}, fmt.Errorf("%w: login_ids must not be blank", ErrInvalidInput)
	}

	var out models.ResetResponse
	err := withRetry(ctx, "reset teams", func(ctx context.Context) error {
		out = models.ResetResponse{NotFound: []string{}}
		return db.RunInTx(ctx, l.db, func(tx *sql.Tx) error {
			update := psql.Update("teams").
				Set("spin_completed", false).
				Set("assigned_theme", nil).
				Set("assigned_at", nil)

			if len(ids) > 0 {
				update = update.Where(sq.Eq{"login_id": ids})

				found, err := existingTeams(ctx, tx, ids)
				if err != nil {
					return err
				}
				for _, id := range ids {
					if !found[id] {
						out.NotFound = append(out.NotFound, id)
					}
				}
			}

			query, args, err := update.ToSql()
			if err != nil {
				return err
			}
			res, err := tx.ExecContext(ctx, query, args...)
			if err != nil {
				return err
			}
			if out.Reset, err = res.RowsAffected(); err != nil {
				return err
			}

			out.Ledger, err = reconcile(ctx, tx)
			return err
		})
	})
	if err != nil {
		return models.ResetResponse{}, err
	}

	slog.Info("teams reset", "requested", len(ids), "reset", out.Reset, "not_found", out.NotFound)
	logReport("ledger reconciled after reset", out.Ledger)
	return out, nil
}

func reconcile(ctx context.Context, tx *sql.Tx) (models.ReconcileReport, error) {
	var report models.ReconcileReport

	// Lock every ledger row before counting so in-flight assignments either
	// finish first or wait for us.
	if _, err := tx.ExecContext(ctx, `UPDATE theme_quotas SET count = count`); err != nil {
		return report, err
	}

	before, err := queryThemes(ctx, tx)
	if err != nil {
		return report, err
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE theme_quotas
		SET count = (SELECT COUNT(*) FROM teams WHERE teams.assigned_theme = theme_quotas.theme_name)
	`); err != nil {
		return report, err
	}
	if _, err := tx.ExecContext(ctx, `UPDATE theme_quotas SET is_full = (count >= max_count)`); err != nil {
		return report, err
	}

	report.Themes, err = queryThemes(ctx, tx)
	if err != nil {
		return report, err
	}

	previous := make(map[string]int, len(before))
	for _, t := range before {
		previous[t.Name] = t.Count
	}
	report.Drift = []models.ThemeDrift{}
	for _, t := range report.Themes {
		if previous[t.Name] != t.Count {
			report.Drift = append(report.Drift, models.ThemeDrift{
				Theme:         t.Name,
				PreviousCount: previous[t.Name],
				Count:         t.Count,
			})
		}
	}
	report.OverCapacity = overCapacity(report.Themes)

	return report, nil
}

func queryThemes(ctx context.Context, q querier) ([]models.Theme, error) {
	query, args, err := psql.
		Select("theme_name", "count", "max_count", "is_full").
		From("theme_quotas").
		OrderBy("theme_name").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	themes := []models.Theme{}
	for rows.Next() {
		var t models.Theme
		if err := rows.Scan(&t.Name, &t.Count, &t.MaxCount, &t.IsFull); err != nil {
			return nil, err
		}
		themes = append(themes, t)
	}
	return themes, rows.Err()
}

func existingTeams(ctx context.Context, q querier, ids []string) (map[string]bool, error) {
	query, args, err := psql.Select("login_id").From("teams").Where(sq.Eq{"login_id": ids}).ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	found := make(map[string]bool, len(ids))
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		found[id] = true
	}
	return found, rows.Err()
}

func overCapacity(themes []models.Theme) []models.Theme {
	out := []models.Theme{}
	for _, t := range themes {
		if t.Count > t.MaxCount {
			out = append(out, t)
		}
	}
	return out
}

func logReport(msg string, report models.ReconcileReport) {
	for _, d := range report.Drift {
		slog.Info(msg, "theme", d.Theme, "previous_count", d.PreviousCount, "count", d.Count)
	}
	for _, t := range report.OverCapacity {
		slog.Warn("data integrity alert: theme over capacity",
			"theme", t.Name,
			"count", t.Count,
			"max_count", t.MaxCount,
		)
	}
}
