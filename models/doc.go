// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

  - LoginRequest: login_id, password
  - SpinRequest: login_id, theme
  - ResetRequest: login_ids (empty resets every team)
  - SetCapacityRequest: max_count

# Response Types

  - LoginResponse: team state plus the spin token
  - SpinResponse: assigned_theme, theme_count, theme_full
  - ResetResponse: reset count, unknown ids, ledger report
  - ErrorResponse: error, message, reason, retryable

# Domain Types

  - Team: registrant and its one-time assignment
  - Theme: one ledger row (count, max_count, is_full)
  - Assignment: the committed result of a spin
  - ReconcileReport: ledger state after a recount, with drift and
    over-capacity themes

# Reasons

Conflict reasons let clients tell outcomes apart without parsing
messages:

	ReasonInvalidInput    = "invalid_input"
	ReasonUnknownTeam     = "unknown_team"
	ReasonAlreadyAssigned = "already_assigned"
	ReasonUnknownTheme    = "unknown_theme"
	ReasonThemeFull       = "theme_full"     // retryable: spin again
	ReasonUnavailable     = "unavailable"    // retryable: store trouble
*/
package models
