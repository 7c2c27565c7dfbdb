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
	"time"

	"github.com/AamirAbdullahKhan1/Da-Wheel/db"
	"github.com/AamirAbdullahKhan1/Da-Wheel/models"
)

// Team row first, theme row second. Every assignment takes its write locks
// in this order, so two attempts can wait on each other but never deadlock.
const (
	claimTeamSQL = `
		UPDATE teams
		SET spin_completed = TRUE, assigned_theme = $1, assigned_at = $2
		WHERE login_id = $3 AND spin_completed = FALSE`

	incrementThemeSQL = `
		UPDATE theme_quotas
		SET count = count + 1, is_full = (count + 1 >= max_count)
		WHERE theme_name = $1 AND is_full = FALSE AND count < max_count
		RETURNING count, is_full`
)

// Allocator binds a team to a theme exactly once, within the theme's quota.
type Allocator struct {
	db  *sql.DB
	now func() time.Time
}

func NewAllocator(conn *sql.DB) *Allocator {
	return &Allocator{db: conn, now: time.Now}
}

// Assign commits loginID to theme, or rejects with ErrUnknownTeam,
// ErrAlreadyAssigned, ErrUnknownTheme or ErrThemeFull (checked in that
// order). Fullness is re-validated at commit time; whatever quota snapshot
// the client picked from is only a hint.
func (a *Allocator) Assign(ctx context.Context, loginID, theme string) (models.Assignment, error) {
	loginID = strings.TrimSpace(loginID)
	theme = strings.TrimSpace(theme)
	if loginID == "" || theme == "" {
		return models.Assignment{}, fmt.Errorf("%w: login_id and theme are required", ErrInvalidInput)
	}

	var out models.Assignment
	err := withRetry(ctx, "assign", func(ctx context.Context) error {
		var err error
		out, err = a.assignOnce(ctx, loginID, theme)
		return err
	})
	if err != nil {
		return models.Assignment{}, err
	}

	slog.Info("theme assigned",
		"login_id", out.LoginID,
		"theme", out.Theme,
		"count", out.Count,
		"is_full", out.IsFull,
	)
	return out, nil
}

func (a *Allocator) assignOnce(ctx context.Context, loginID, theme string) (models.Assignment, error) {
	out := models.Assignment{
		LoginID:    loginID,
		Theme:      theme,
		AssignedAt: a.now().UTC().Truncate(time.Microsecond),
	}

	err := db.RunInTx(ctx, a.db, func(tx *sql.Tx) error {
		if err := claimTeam(ctx, tx, loginID, theme, out.AssignedAt); err != nil {
			return err
		}

		err := tx.QueryRowContext(ctx, incrementThemeSQL, theme).Scan(&out.Count, &out.IsFull)
		if errors.Is(err, sql.ErrNoRows) {
			return themeRejection(ctx, tx, theme)
		}
		return err
	})
	if err != nil {
		return models.Assignment{}, err
	}
	return out, nil
}

// claimTeam marks the team as assigned if it has not spun yet. When the
// conditional update matches nothing it works out why.
func claimTeam(ctx context.Context, tx *sql.Tx, loginID, theme string, at time.Time) error {
	res, err := tx.ExecContext(ctx, claimTeamSQL, theme, at, loginID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 1 {
		return nil
	}

	var completed bool
	err = tx.QueryRowContext(ctx, `SELECT spin_completed FROM teams WHERE login_id = $1`, loginID).Scan(&completed)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return fmt.Errorf("team %q: %w", loginID, ErrUnknownTeam)
	case err != nil:
		return err
	case completed:
		return fmt.Errorf("team %q: %w", loginID, ErrAlreadyAssigned)
	}
	// reset between our update and this read
	return errLostRace
}

func themeRejection(ctx context.Context, tx *sql.Tx, theme string) error {
	var exists int
	err := tx.QueryRowContext(ctx, `SELECT 1 FROM theme_quotas WHERE theme_name = $1`, theme).Scan(&exists)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return fmt.Errorf("theme %q: %w", theme, ErrUnknownTheme)
	case err != nil:
		return err
	}
	return fmt.Errorf("theme %q: %w", theme, ErrThemeFull)
}
