// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package provision populates the store before the event opens.

# Catalog

A Catalog holds the themes (with per-theme capacity) and the teams (with
their credentials). The built-in one matches the event roster:

	c := provision.DefaultCatalog()

Or load one from YAML:

	c, err := provision.LoadCatalog("catalog.yaml")

# Seeding

	result, err := provision.Seed(ctx, conn, c)

Rows that already exist are left alone (ON CONFLICT DO NOTHING), so
capacities edited afterwards survive a re-seed. The ledger is reconciled
once the inserts commit.
*/
package provision
