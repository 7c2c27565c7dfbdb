// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package quota implements the theme allocation protocol.

# Ledger

Ledger holds the per-theme count and full flag:

	ledger := quota.NewLedger(conn)
	themes, err := ledger.ListThemes(ctx)

Counts are a cache over the teams table. Reconcile rebuilds them and the
full flags (full ⇔ count ≥ max_count); SetCapacity and ResetTeams keep
the same invariant. Themes with more teams than capacity are reported as
a data-integrity alert and left as they are.

# Allocator

Allocator.Assign is the only write path for a spin:

	assignment, err := quota.NewAllocator(conn).Assign(ctx, "team01", "FinTech")

In one transaction it claims the team (must exist and not have spun) and
then takes a seat on the theme (must exist and have room). The two
conditional updates hold row write locks until commit, so concurrent
attempts on the same team or the same theme are serialized by the store.

# Outcomes

Classify turns an error into a tagged Outcome:

	Assigned | Invalid | UnknownTeam | AlreadyAssigned | UnknownTheme | ThemeFull | Transient

Only ThemeFull and Transient are retryable. Transient errors are
*StoreError values and match ErrUnavailable.

# Selection

PickTheme is the client policy: uniform among themes not seen as full.
Spinner combines it with the allocator and re-spins on ThemeFull.
*/
package quota
