// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Da-Wheel API.

# Handler Types

Each handler is a struct with database and config dependencies:

  - ThemeHandler: the theme catalog with live counts
  - AuthHandler: team login and spin tokens
  - SpinHandler: commits the theme a team's wheel landed on
  - AdminHandler: ledger maintenance

Handlers are created via constructor functions that accept *sql.DB and Config:

	spinHandler := handlers.NewSpinHandler(db, cfg)

# Spin Flow

The wheel is drawn by the client from a snapshot of the catalog:

	GET  /themes → ListThemes
	POST /login  → Login (returns token)
	POST /spin   → Spin (requires X-Team-Token)

Spin takes the same {login_id, theme} body older clients sent, but it also
needs the X-Team-Token header carrying the token Login returned; a request
without it is refused with 401 before the ledger is touched.

The snapshot is only a hint. Spin re-checks everything when it commits and
answers with a reason the client can act on:

	200              assigned
	400 invalid_input / unknown_theme
	403 already_assigned
	404 unknown_team
	409 theme_full   retryable: re-read /themes and spin again
	503 unavailable  retryable: resubmit the same theme

# Admin Routes

Every admin route requires the X-Admin-Key header:

	POST /admin/reconcile              → Reconcile
	POST /admin/reset                  → ResetTeams ({"login_ids": [...]}, no list resets all,
	                                     blank ids are 400)
	PUT  /admin/themes/{name}/capacity → SetCapacity ({"max_count": n})
	GET  /admin/teams/{id}             → GetTeam

An empty configured key disables them (403).
*/
package handlers
