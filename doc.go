// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Da-Wheel API server.

Da-Wheel runs the theme draw for a team event: every team logs in, spins a
wheel once, and is bound to the theme it lands on. Each theme takes a
limited number of teams, and concurrent spins are serialized by the store
so no theme ever goes over capacity and no team is assigned twice.

# Starting the Server

The server requires environment variables or CLI flags for configuration.
A .env file in the working directory is loaded first:

	DATABASE_URL=postgres://... TEAM_TOKEN_SALT=... go run .

Or with flags, against SQLite:

	go run . -t sqlite -d wheel.db -token-salt dev-salt -admin-key dev-admin

# Configuration

Required settings:

  - DATABASE_URL (-d): Postgres connection string or SQLite path
  - TEAM_TOKEN_SALT (-token-salt): Secret for spin token HMAC

Optional settings:

  - PORT (-p): Server port (default: 3001)
  - DATABASE_TYPE (-t): postgres or sqlite (default: postgres)
  - ADMIN_KEY (-admin-key): Enables /admin routes
  - ALLOWED_ORIGINS (-origins): CORS allow-list (default: http://localhost:5173)
  - LOG_LEVEL, LOG_FORMAT: slog level and text/json output

# Architecture

  - quota: the allocator, ledger and client selection policy
  - handlers: HTTP request handlers (themes, login, spin, admin)
  - router: Route definitions using Go 1.22+ routing
  - middleware: request IDs, logging, recovery, CORS, JSON helpers
  - models: Request/response and domain types
  - auth: Credentials, spin tokens, admin key
  - db: Drivers, migrations, transient error classification
  - provision: Catalog loading and seeding
  - cliparse: Configuration parsing
  - cmd/wheelctl: Operator CLI

See package documentation for each component.
*/
package main
