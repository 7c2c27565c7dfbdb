// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/AamirAbdullahKhan1/Da-Wheel/models"
	"github.com/AamirAbdullahKhan1/Da-Wheel/testutil"
)

// TestConcurrentSpinsSameTheme verifies that when more teams than seats spin
// onto one theme at once, exactly capacity of them land and the rest are told
// to spin again
func TestConcurrentSpinsSameTheme(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	spinHandler := NewSpinHandler(db, cfg)

	const capacity = 3
	testutil.CreateTestTheme(t, db, "FinTech", 0, capacity)

	teams := testutil.TeamIDs("team", 12)
	for _, id := range teams {
		testutil.CreateTestTeam(t, db, id)
	}

	var successCount, fullCount atomic.Int32
	var wg sync.WaitGroup

	for _, id := range teams {
		wg.Add(1)
		go func(loginID string) {
			defer wg.Done()

			req := testutil.MakeRequest("POST", "/spin", models.SpinRequest{LoginID: loginID, Theme: "FinTech"},
				map[string]string{"X-Team-Token": testutil.TeamToken(cfg, loginID)})
			w := httptest.NewRecorder()

			spinHandler.Spin(w, req)

			switch w.Code {
			case http.StatusOK:
				successCount.Add(1)
			case http.StatusConflict:
				fullCount.Add(1)
			default:
				t.Errorf("Unexpected status for %s: %d - %s", loginID, w.Code, w.Body.String())
			}
		}(id)
	}

	wg.Wait()

	if successCount.Load() != capacity {
		t.Errorf("Expected %d successful spins, got %d", capacity, successCount.Load())
	}
	if int(fullCount.Load()) != len(teams)-capacity {
		t.Errorf("Expected %d theme-full rejections, got %d", len(teams)-capacity, fullCount.Load())
	}

	count, maxCount, isFull := testutil.ThemeState(t, db, "FinTech")
	if count != capacity || count > maxCount || !isFull {
		t.Errorf("Ledger out of bounds: count=%d max=%d full=%v", count, maxCount, isFull)
	}
	if n := testutil.CountAssigned(t, db, "FinTech"); n != count {
		t.Errorf("Ledger count %d disagrees with %d assigned teams", count, n)
	}
}

// TestConcurrentSpinsSameTeam verifies that a team double-submitting (two
// tabs, a retried request) is assigned exactly once
func TestConcurrentSpinsSameTeam(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	spinHandler := NewSpinHandler(db, cfg)

	themes := []string{"AgriTech", "EdTech", "GameTech", "HealthTech"}
	for _, name := range themes {
		testutil.CreateTestTheme(t, db, name, 0, 2)
	}
	testutil.CreateTestTeam(t, db, "team01")
	token := testutil.TeamToken(cfg, "team01")

	numAttempts := 8
	var successCount, alreadyCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < numAttempts; i++ {
		wg.Add(1)
		go func(attempt int) {
			defer wg.Done()

			theme := themes[attempt%len(themes)]
			req := testutil.MakeRequest("POST", "/spin", models.SpinRequest{LoginID: "team01", Theme: theme},
				map[string]string{"X-Team-Token": token})
			w := httptest.NewRecorder()

			spinHandler.Spin(w, req)

			switch w.Code {
			case http.StatusOK:
				successCount.Add(1)
			case http.StatusForbidden:
				alreadyCount.Add(1)
			default:
				t.Errorf("Unexpected status on attempt %d: %d - %s", attempt, w.Code, w.Body.String())
			}
		}(i)
	}

	wg.Wait()

	if successCount.Load() != 1 {
		t.Errorf("Expected exactly 1 successful spin, got %d", successCount.Load())
	}
	if int(alreadyCount.Load()) != numAttempts-1 {
		t.Errorf("Expected %d already-assigned rejections, got %d", numAttempts-1, alreadyCount.Load())
	}

	total := 0
	for _, name := range themes {
		count, _, _ := testutil.ThemeState(t, db, name)
		total += count
	}
	if total != 1 {
		t.Errorf("Expected ledger total 1, got %d", total)
	}
}

// TestConcurrentSpinsAcrossThemes fills the whole catalog at once and checks
// every theme ends at or under capacity with the ledger matching the teams
func TestConcurrentSpinsAcrossThemes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	spinHandler := NewSpinHandler(db, cfg)

	themes := map[string]int{"FinTech": 3, "IoT": 2, "CivicTech": 2}
	for name, capacity := range themes {
		testutil.CreateTestTheme(t, db, name, 0, capacity)
	}
	names := []string{"FinTech", "IoT", "CivicTech"}

	teams := testutil.TeamIDs("team", 15)
	for _, id := range teams {
		testutil.CreateTestTeam(t, db, id)
	}

	var wg sync.WaitGroup
	for i, id := range teams {
		wg.Add(1)
		go func(loginID, theme string) {
			defer wg.Done()

			req := testutil.MakeRequest("POST", "/spin", models.SpinRequest{LoginID: loginID, Theme: theme},
				map[string]string{"X-Team-Token": testutil.TeamToken(cfg, loginID)})
			w := httptest.NewRecorder()
			spinHandler.Spin(w, req)

			if w.Code != http.StatusOK && w.Code != http.StatusConflict {
				t.Errorf("Unexpected status for %s: %d", loginID, w.Code)
			}
		}(id, names[i%len(names)])
	}

	wg.Wait()

	for name, capacity := range themes {
		count, _, isFull := testutil.ThemeState(t, db, name)
		if count != capacity || !isFull {
			t.Errorf("%s: expected full at %d, got count=%d full=%v", name, capacity, count, isFull)
		}
		if n := testutil.CountAssigned(t, db, name); n != count {
			t.Errorf("%s: ledger count %d disagrees with %d assigned teams", name, count, n)
		}
	}
}
