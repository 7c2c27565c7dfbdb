// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/AamirAbdullahKhan1/Da-Wheel/auth"
	"github.com/AamirAbdullahKhan1/Da-Wheel/cliparse"
	"github.com/AamirAbdullahKhan1/Da-Wheel/middleware"
	"github.com/AamirAbdullahKhan1/Da-Wheel/models"
	"github.com/AamirAbdullahKhan1/Da-Wheel/quota"
)

// AdminHandler exposes ledger maintenance. Every route requires X-Admin-Key.
type AdminHandler struct {
	db     *sql.DB
	cfg    cliparse.Config
	ledger *quota.Ledger
}

func NewAdminHandler(db *sql.DB, cfg cliparse.Config) *AdminHandler {
	return &AdminHandler{db: db, cfg: cfg, ledger: quota.NewLedger(db)}
}

func (h *AdminHandler) authorize(w http.ResponseWriter, r *http.Request) bool {
	err := auth.ValidateAdminKey(r.Header.Get("X-Admin-Key"), h.cfg.AdminKey)
	switch {
	case err == nil:
		return true
	case errors.Is(err, auth.ErrAdminDisabled):
		middleware.ErrorResponse(w, http.StatusForbidden, "Admin routes are disabled")
	default:
		slog.Warn("admin key rejected", "path", r.URL.Path, "client_ip", middleware.GetClientIP(r))
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
	}
	return false
}

// Reconcile handles POST /admin/reconcile
func (h *AdminHandler) Reconcile(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(w, r) {
		return
	}

	report, err := h.ledger.Reconcile(r.Context())
	if err != nil {
		writeQuotaError(w, r, "reconcile", err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, report)
}

// ResetTeams handles POST /admin/reset. An empty or missing body resets
// every team; a list of only blank ids is rejected with 400.
func (h *AdminHandler) ResetTeams(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(w, r) {
		return
	}

	var req models.ResetRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil && !errors.Is(err, io.EOF) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	out, err := h.ledger.ResetTeams(r.Context(), req.LoginIDs...)
	if err != nil {
		writeQuotaError(w, r, "reset", err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, out)
}

// SetCapacity handles PUT /admin/themes/{name}/capacity
func (h *AdminHandler) SetCapacity(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(w, r) {
		return
	}

	theme := r.PathValue("name")

	var req models.SetCapacityRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.MaxCount == nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "max_count is required")
		return
	}
	if *req.MaxCount < 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "max_count must not be negative")
		return
	}

	report, err := h.ledger.SetCapacity(r.Context(), theme, *req.MaxCount)
	if errors.Is(err, quota.ErrUnknownTheme) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Theme not found")
		return
	}
	if err != nil {
		writeQuotaError(w, r, "set capacity", err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, report)
}

// GetTeam handles GET /admin/teams/{id}
func (h *AdminHandler) GetTeam(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(w, r) {
		return
	}

	team, err := h.ledger.Team(r.Context(), r.PathValue("id"))
	if err != nil {
		writeQuotaError(w, r, "get team", err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, team)
}
