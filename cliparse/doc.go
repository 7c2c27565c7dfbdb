// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3001)
  - DatabaseURL: Postgres DSN or SQLite file path (required)
  - DatabaseType: postgres or sqlite (default: postgres)
  - TeamTokenSalt: Secret for team spin tokens (required)
  - AdminKey: Key for the maintenance routes (empty disables them)
  - AllowedOrigins: CORS allow-list
  - LogLevel, LogFormat: slog handler settings

# Environment Variables

Flags fall back to environment variables:

	PORT            → -p
	DATABASE_URL    → -d
	DATABASE_TYPE   → -t
	TEAM_TOKEN_SALT → -token-salt
	ADMIN_KEY       → -admin-key
	ALLOWED_ORIGINS → -origins
	LOG_LEVEL       → -log-level
	LOG_FORMAT      → -log-format

CLI flags take precedence over environment variables.

The operator CLI only needs a store and uses ParseDatabaseFlags.
*/
package cliparse
