// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package quota

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/AamirAbdullahKhan1/Da-Wheel/db"
	"github.com/AamirAbdullahKhan1/Da-Wheel/models"
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrUnknownTeam     = errors.New("team not found")
	ErrAlreadyAssigned = errors.New("team has already spun the wheel")
	ErrUnknownTheme    = errors.New("theme not found")
	ErrThemeFull       = errors.New("theme is full")
	ErrCatalogFull     = errors.New("every theme is full")

	// ErrUnavailable matches every *StoreError.
	ErrUnavailable = errors.New("store unavailable")

	// errLostRace marks a conditional write that matched nothing although the
	// row looked eligible when re-read; the whole transaction is retried.
	errLostRace = errors.New("concurrent update changed the row")
)

// StoreError is an infrastructure failure. Nothing was committed and the
// whole operation is safe to retry.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string { return e.Op + ": " + ErrUnavailable.Error() + ": " + e.Err.Error() }

func (e *StoreError) Unwrap() error { return e.Err }

func (e *StoreError) Is(target error) bool { return target == ErrUnavailable }

// Outcome is the tagged result of an assignment attempt.
type Outcome int

const (
	OutcomeAssigned Outcome = iota
	OutcomeInvalid
	OutcomeUnknownTeam
	OutcomeAlreadyAssigned
	OutcomeUnknownTheme
	OutcomeThemeFull
	OutcomeTransient
)

// Classify maps an error returned by this package to its outcome.
// Errors from outside the package are treated as transient.
func Classify(err error) Outcome {
	switch {
	case err == nil:
		return OutcomeAssigned
	case errors.Is(err, ErrInvalidInput):
		return OutcomeInvalid
	case errors.Is(err, ErrUnknownTeam):
		return OutcomeUnknownTeam
	case errors.Is(err, ErrAlreadyAssigned):
		return OutcomeAlreadyAssigned
	case errors.Is(err, ErrUnknownTheme):
		return OutcomeUnknownTheme
	case errors.Is(err, ErrThemeFull), errors.Is(err, ErrCatalogFull):
		return OutcomeThemeFull
	default:
		return OutcomeTransient
	}
}

// Retryable reports whether the client may try again: re-spin on a full
// theme, resubmit on store trouble. Everything else is final.
func (o Outcome) Retryable() bool {
	return o == OutcomeThemeFull || o == OutcomeTransient
}

// Conflict reports whether the outcome is an expected state conflict
// rather than a fault.
func (o Outcome) Conflict() bool {
	switch o {
	case OutcomeUnknownTeam, OutcomeAlreadyAssigned, OutcomeUnknownTheme, OutcomeThemeFull:
		return true
	}
	return false
}

func (o Outcome) Reason() string {
	switch o {
	case OutcomeInvalid:
		return models.ReasonInvalidInput
	case OutcomeUnknownTeam:
		return models.ReasonUnknownTeam
	case OutcomeAlreadyAssigned:
		return models.ReasonAlreadyAssigned
	case OutcomeUnknownTheme:
		return models.ReasonUnknownTheme
	case OutcomeThemeFull:
		return models.ReasonThemeFull
	case OutcomeTransient:
		return models.ReasonUnavailable
	}
	return ""
}

func (o Outcome) String() string {
	switch o {
	case OutcomeAssigned:
		return "assigned"
	case OutcomeTransient:
		return "transient"
	}
	return o.Reason()
}

// Transactions are retried a few times on transient store errors before
// the failure is surfaced.
const (
	retryBase     = 20 * time.Millisecond
	retryAttempts = 3
)

func withRetry(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	backoff := retry.WithMaxRetries(retryAttempts, retry.NewExponential(retryBase))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := fn(ctx)
		if errors.Is(err, errLostRace) || db.IsTransient(err) {
			slog.Warn("transient store error, retrying", "op", op, "error", err)
			return retry.RetryableError(err)
		}
		return err
	})
	if err == nil || isDomainError(err) {
		return err
	}
	return &StoreError{Op: op, Err: err}
}

func isDomainError(err error) bool {
	o := Classify(err)
	return o == OutcomeInvalid || o.Conflict()
}
