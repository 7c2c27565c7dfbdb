// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/AamirAbdullahKhan1/Da-Wheel/auth"
	"github.com/AamirAbdullahKhan1/Da-Wheel/cliparse"
	"github.com/AamirAbdullahKhan1/Da-Wheel/db"
)

// TestDBURLEnv points the tests at a Postgres database instead of the
// default in-memory SQLite one. Its tables are dropped and recreated.
const TestDBURLEnv = "TEST_DATABASE_URL"

// Admin key used by GetTestConfig
const TestAdminKey = "test-admin-key"

// SetupTestDB creates a fresh test database with the full schema.
// The connection is closed when the test ends.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	cfg := cliparse.Config{DatabaseType: cliparse.DatabaseSQLite, DatabaseURL: ":memory:"}
	if url := os.Getenv(TestDBURLEnv); url != "" {
		cfg = cliparse.Config{DatabaseType: cliparse.DatabasePostgres, DatabaseURL: url}
	}

	conn := openTestDB(t, cfg)
	migrateTestDB(t, conn, cfg.DatabaseType)
	return conn
}

// SetupSharedTestDB opens n independent connection pools on one database,
// the way n server processes would share it. Without TEST_DATABASE_URL the
// database is a SQLite file in the test's temp dir.
func SetupSharedTestDB(t *testing.T, n int) []*sql.DB {
	t.Helper()

	cfg := cliparse.Config{
		DatabaseType: cliparse.DatabaseSQLite,
		DatabaseURL:  filepath.Join(t.TempDir(), "shared.db"),
	}
	if url := os.Getenv(TestDBURLEnv); url != "" {
		cfg = cliparse.Config{DatabaseType: cliparse.DatabasePostgres, DatabaseURL: url}
	}

	pools := make([]*sql.DB, n)
	for i := range pools {
		pools[i] = openTestDB(t, cfg)
	}
	migrateTestDB(t, pools[0], cfg.DatabaseType)
	return pools
}

func openTestDB(t *testing.T, cfg cliparse.Config) *sql.DB {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	conn, err := db.Open(ctx, cfg)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func migrateTestDB(t *testing.T, conn *sql.DB, dbType string) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if dbType == cliparse.DatabasePostgres {
		// Clean up tables before each test
		_, err := conn.ExecContext(ctx, `
			DROP TABLE IF EXISTS teams CASCADE;
			DROP TABLE IF EXISTS theme_quotas CASCADE;
			DROP TABLE IF EXISTS goose_db_version CASCADE;
		`)
		if err != nil {
			t.Fatalf("Failed to clean database: %v", err)
		}
	}

	if err := db.Migrate(ctx, conn, dbType); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:           3001,
		DatabaseURL:    ":memory:",
		DatabaseType:   cliparse.DatabaseSQLite,
		TeamTokenSalt:  "test-token-salt",
		AdminKey:       TestAdminKey,
		AllowedOrigins: []string{"http://localhost:5173"},
		LogLevel:       "info",
		LogFormat:      "text",
	}
}

// CreateTestTheme inserts a ledger row with the given count and capacity;
// the full flag is derived from them.
func CreateTestTheme(t *testing.T, db *sql.DB, name string, count, maxCount int) {
	t.Helper()

	_, err := db.Exec(`
		INSERT INTO theme_quotas (theme_name, count, max_count, is_full)
		VALUES ($1, $2, $3, $4)
	`, name, count, maxCount, count >= maxCount)
	if err != nil {
		t.Fatalf("Failed to create test theme: %v", err)
	}
}

// CreateTestTeam inserts an unassigned team and returns its password
func CreateTestTeam(t *testing.T, db *sql.DB, loginID string) string {
	t.Helper()

	password := "play@" + loginID
	_, err := db.Exec(`
		INSERT INTO teams (login_id, team_name, password, spin_completed)
		VALUES ($1, $2, $3, FALSE)
	`, loginID, "Team "+loginID, password)
	if err != nil {
		t.Fatalf("Failed to create test team: %v", err)
	}

	return password
}

// AssignTestTeam writes an assignment straight to the teams table without
// touching the ledger, the way a manual edit would.
func AssignTestTeam(t *testing.T, db *sql.DB, loginID, theme string) {
	t.Helper()

	_, err := db.Exec(`
		UPDATE teams SET spin_completed = TRUE, assigned_theme = $1, assigned_at = $2
		WHERE login_id = $3
	`, theme, time.Now().UTC(), loginID)
	if err != nil {
		t.Fatalf("Failed to assign test team: %v", err)
	}
}

// ThemeState reads a ledger row
func ThemeState(t *testing.T, db *sql.DB, name string) (count, maxCount int, isFull bool) {
	t.Helper()

	err := db.QueryRow(`
		SELECT count, max_count, is_full FROM theme_quotas WHERE theme_name = $1
	`, name).Scan(&count, &maxCount, &isFull)
	if err != nil {
		t.Fatalf("Failed to read theme %s: %v", name, err)
	}
	return count, maxCount, isFull
}

// CountAssigned counts the teams whose assigned theme is name
func CountAssigned(t *testing.T, db *sql.DB, name string) int {
	t.Helper()

	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM teams WHERE assigned_theme = $1`, name).Scan(&n); err != nil {
		t.Fatalf("Failed to count teams for %s: %v", name, err)
	}
	return n
}

// TeamToken returns the spin token login would issue for loginID
func TeamToken(cfg cliparse.Config, loginID string) string {
	return auth.GenerateTeamToken(loginID, cfg.TeamTokenSalt)
}

// TeamIDs returns n login ids with the given prefix
func TeamIDs(prefix string, n int) []string {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("%s%02d", prefix, i+1)
	}
	return ids
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
