// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package quota

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"

	"github.com/AamirAbdullahKhan1/Da-Wheel/models"
)

// PickTheme draws uniformly among the themes not flagged full in the given
// snapshot. It returns false when every theme is full. A nil rng uses the
// process-wide source.
func PickTheme(themes []models.Theme, rng *rand.Rand) (string, bool) {
	open := make([]string, 0, len(themes))
	for _, t := range themes {
		if !t.IsFull {
			open = append(open, t.Name)
		}
	}
	if len(open) == 0 {
		return "", false
	}
	if rng == nil {
		return open[rand.IntN(len(open))], true
	}
	return open[rng.IntN(len(open))], true
}

// Spinner runs the client half of the protocol: read the ledger, pick a
// theme that looked open, submit it, and on ErrThemeFull start over with a
// fresh snapshot.
type Spinner struct {
	Ledger      *Ledger
	Allocator   *Allocator
	Rand        *rand.Rand // nil uses the process-wide source
	MaxAttempts int
}

func (s Spinner) Spin(ctx context.Context, loginID string) (models.Assignment, error) {
	attempts := s.MaxAttempts
	if attempts <= 0 {
		attempts = 5
	}

	var lastErr error
	for i := 0; i < attempts; i++ {
		themes, err := s.Ledger.ListThemes(ctx)
		if err != nil {
			return models.Assignment{}, err
		}

		theme, ok := PickTheme(themes, s.Rand)
		if !ok {
			return models.Assignment{}, ErrCatalogFull
		}

		assignment, err := s.Allocator.Assign(ctx, loginID, theme)
		if !errors.Is(err, ErrThemeFull) {
			return assignment, err
		}

		slog.Info("theme filled before spin landed, spinning again", "login_id", loginID, "theme", theme, "attempt", i+1)
		lastErr = err
	}
	return models.Assignment{}, lastErr
}
