// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"database/sql"
	"encoding/base64"
	"errors"
	"strings"

	"github.com/AamirAbdullahKhan1/Da-Wheel/models"
)

var (
	ErrInvalidCredentials = errors.New("invalid team id or password")
	ErrInvalidToken       = errors.New("invalid team token")
	ErrInvalidAdminKey    = errors.New("invalid admin key")
	ErrAdminDisabled      = errors.New("admin routes are disabled")
)

// VerifyCredentials looks the team up by login id and password.
// Passwords are compared as stored; this is an event utility, not an
// identity provider.
func VerifyCredentials(ctx context.Context, db *sql.DB, loginID, password string) (models.Team, error) {
	var team models.Team
	var theme sql.NullString
	err := db.QueryRowContext(ctx, `
		SELECT login_id, team_name, spin_completed, assigned_theme
		FROM teams
		WHERE login_id = $1 AND password = $2
	`, loginID, password).Scan(&team.LoginID, &team.TeamName, &team.SpinCompleted, &theme)
	if err == sql.ErrNoRows {
		return models.Team{}, ErrInvalidCredentials
	}
	if err != nil {
		return models.Team{}, err
	}

	if theme.Valid {
		team.AssignedTheme = &theme.String
	}
	return team, nil
}

// GenerateTeamToken creates an HMAC-based token binding a client session
// to a login id. Deterministic, so nothing is stored.
func GenerateTeamToken(loginID, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(loginID))
	sum := h.Sum(nil)
	// Use URL-safe base64 and trim padding for cleaner tokens
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sum), "=")
}

// ValidateTeamToken checks that token was issued for loginID
func ValidateTeamToken(loginID, token, salt string) error {
	expected := GenerateTeamToken(loginID, salt)
	if !hmac.Equal([]byte(token), []byte(expected)) {
		return ErrInvalidToken
	}
	return nil
}

// ValidateAdminKey compares the presented key with the configured one in
// constant time. An empty configured key disables admin access.
func ValidateAdminKey(presented, configured string) error {
	if configured == "" {
		return ErrAdminDisabled
	}
	if !hmac.Equal([]byte(presented), []byte(configured)) {
		return ErrInvalidAdminKey
	}
	return nil
}
