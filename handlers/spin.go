// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"net/http"
	"strings"

	"github.com/AamirAbdullahKhan1/Da-Wheel/auth"
	"github.com/AamirAbdullahKhan1/Da-Wheel/cliparse"
	"github.com/AamirAbdullahKhan1/Da-Wheel/middleware"
	"github.com/AamirAbdullahKhan1/Da-Wheel/models"
	"github.com/AamirAbdullahKhan1/Da-Wheel/quota"
)

type SpinHandler struct {
	db        *sql.DB
	cfg       cliparse.Config
	allocator *quota.Allocator
}

func NewSpinHandler(db *sql.DB, cfg cliparse.Config) *SpinHandler {
	return &SpinHandler{db: db, cfg: cfg, allocator: quota.NewAllocator(db)}
}

// Spin handles POST /spin. The wheel is drawn client-side; this commits the
// theme it landed on, or tells the client why not and whether to spin again.
func (h *SpinHandler) Spin(w http.ResponseWriter, r *http.Request) {
	var req models.SpinRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	req.LoginID = strings.TrimSpace(req.LoginID)
	req.Theme = strings.TrimSpace(req.Theme)
	if req.LoginID == "" || req.Theme == "" {
		writeQuotaError(w, r, "spin", quota.ErrInvalidInput)
		return
	}

	// Validate team token
	token := r.Header.Get("X-Team-Token")
	if err := auth.ValidateTeamToken(req.LoginID, token, h.cfg.TeamTokenSalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid team token")
		return
	}

	assignment, err := h.allocator.Assign(r.Context(), req.LoginID, req.Theme)
	if err != nil {
		writeQuotaError(w, r, "spin", err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.SpinResponse{
		Success:       true,
		AssignedTheme: assignment.Theme,
		ThemeCount:    assignment.Count,
		ThemeFull:     assignment.IsFull,
	})
}
