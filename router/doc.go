// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Da-Wheel API.

# Route Registration

NewRouter returns the full handler, already wrapped with CORS, request IDs
and panic recovery:

	handler := router.NewRouter(db, cfg)

# Endpoints

Health:

	GET /health

Teams:

	GET  /themes - Catalog with counts, capacity and full flags
	POST /login  - Credentials in, spin token out
	POST /spin   - Commit a theme (requires X-Team-Token)

Maintenance (requires X-Admin-Key):

	POST /admin/reconcile              - Recount the ledger from team rows
	POST /admin/reset                  - Clear assignments
	PUT  /admin/themes/{name}/capacity - Change a theme's capacity
	GET  /admin/teams/{id}             - One team's assignment state
*/
package router
