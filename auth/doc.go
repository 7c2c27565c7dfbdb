// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides credential checks and token utilities.

# Credentials

Teams log in with the login id and password provisioned for them:

	team, err := auth.VerifyCredentials(ctx, db, "team01", "play@T01")

A mismatch returns ErrInvalidCredentials. The check is a plain equality
lookup; the allocator never authenticates on its own.

# Team Tokens

Login hands back a token that the spin endpoint requires in the
X-Team-Token header:

	token := auth.GenerateTeamToken(loginID, salt)
	err := auth.ValidateTeamToken(loginID, token, salt)

Tokens are HMAC-SHA256 of the login id, URL-safe base64 without padding.
Since they're deterministic, nothing is stored in the database.

# Admin Key

Maintenance routes compare X-Admin-Key with the configured key:

	err := auth.ValidateAdminKey(r.Header.Get("X-Admin-Key"), cfg.AdminKey)

An empty configured key returns ErrAdminDisabled.
*/
package auth
