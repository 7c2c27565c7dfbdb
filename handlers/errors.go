// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/AamirAbdullahKhan1/Da-Wheel/middleware"
	"github.com/AamirAbdullahKhan1/Da-Wheel/quota"
)

// Client-facing text for each quota outcome
var outcomeMessages = map[quota.Outcome]string{
	quota.OutcomeInvalid:         "login_id and theme are required.",
	quota.OutcomeUnknownTeam:     "Team not found.",
	quota.OutcomeAlreadyAssigned: "This team has already spun the wheel.",
	quota.OutcomeUnknownTheme:    "Invalid theme.",
	quota.OutcomeThemeFull:       "This theme is already full. Please spin again.",
	quota.OutcomeTransient:       "The server is busy. Please try again.",
}

// OutcomeStatus is the HTTP status for a quota outcome
func OutcomeStatus(o quota.Outcome) int {
	switch o {
	case quota.OutcomeAssigned:
		return http.StatusOK
	case quota.OutcomeInvalid, quota.OutcomeUnknownTheme:
		return http.StatusBadRequest
	case quota.OutcomeUnknownTeam:
		return http.StatusNotFound
	case quota.OutcomeAlreadyAssigned:
		return http.StatusForbidden
	case quota.OutcomeThemeFull:
		return http.StatusConflict
	default:
		return http.StatusServiceUnavailable
	}
}

// writeQuotaError answers with the status and reason for err. Conflicts are
// expected traffic and logged at info; store failures at error.
func writeQuotaError(w http.ResponseWriter, r *http.Request, op string, err error) {
	outcome := quota.Classify(err)
	requestID := middleware.RequestIDFromContext(r.Context())

	if outcome == quota.OutcomeTransient {
		slog.Error(op+" failed", "request_id", requestID, "error", err)
		w.Header().Set("Retry-After", "1")
	} else {
		slog.Info(op+" rejected", "request_id", requestID, "reason", outcome.Reason(), "error", err)
	}

	middleware.ReasonResponse(w, OutcomeStatus(outcome), outcomeMessages[outcome], outcome.Reason(), outcome.Retryable())
}
