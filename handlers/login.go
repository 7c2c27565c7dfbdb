// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/AamirAbdullahKhan1/Da-Wheel/auth"
	"github.com/AamirAbdullahKhan1/Da-Wheel/cliparse"
	"github.com/AamirAbdullahKhan1/Da-Wheel/middleware"
	"github.com/AamirAbdullahKhan1/Da-Wheel/models"
)

type AuthHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewAuthHandler(db *sql.DB, cfg cliparse.Config) *AuthHandler {
	return &AuthHandler{db: db, cfg: cfg}
}

// Login handles POST /login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.LoginID == "" || req.Password == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "login_id and password are required.")
		return
	}

	team, err := auth.VerifyCredentials(r.Context(), h.db, req.LoginID, req.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		slog.Info("login rejected", "login_id", req.LoginID, "client_ip", middleware.GetClientIP(r))
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid Team ID or password.")
		return
	}
	if err != nil {
		slog.Error("failed to verify credentials", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Server error.")
		return
	}

	slog.Info("team logged in", "login_id", team.LoginID, "spin_completed", team.SpinCompleted)

	middleware.JSONResponse(w, http.StatusOK, models.LoginResponse{
		TeamName:      team.TeamName,
		LoginID:       team.LoginID,
		SpinCompleted: team.SpinCompleted,
		AssignedTheme: team.AssignedTheme,
		Token:         auth.GenerateTeamToken(team.LoginID, h.cfg.TeamTokenSalt),
	})
}
