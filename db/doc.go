// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the store, applies schema migrations and classifies
driver errors.

# Drivers

Open picks the driver from the configured database type:

	conn, err := db.Open(ctx, cfg)

  - postgres: github.com/lib/pq
  - sqlite: modernc.org/sqlite (single connection, foreign keys on)

# Migrations

Migrate applies the embedded goose migrations:

	if err := db.Migrate(ctx, conn, cfg.DatabaseType); err != nil {
		log.Fatal(err)
	}

Safe to call on every start. The SQL is portable between both drivers.

# Tables

  - theme_quotas: per-theme count, capacity (max_count) and full flag
  - teams: credentials and the one-time assignment (spin_completed,
    assigned_theme, assigned_at)

# Relationships

	theme_quotas 1──* teams (assigned_theme, deferred foreign key)

teams has a CHECK that spin_completed is true exactly when
assigned_theme is set.

# Transactions

RunInTx commits on success and rolls back on error or panic.
IsTransient reports driver errors (connection loss, serialization
failure, deadlock, SQLITE_BUSY) that are safe to retry.
*/
package db
