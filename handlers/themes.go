// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"net/http"

	"github.com/AamirAbdullahKhan1/Da-Wheel/cliparse"
	"github.com/AamirAbdullahKhan1/Da-Wheel/middleware"
	"github.com/AamirAbdullahKhan1/Da-Wheel/quota"
)

type ThemeHandler struct {
	db     *sql.DB
	cfg    cliparse.Config
	ledger *quota.Ledger
}

func NewThemeHandler(db *sql.DB, cfg cliparse.Config) *ThemeHandler {
	return &ThemeHandler{db: db, cfg: cfg, ledger: quota.NewLedger(db)}
}

// ListThemes handles GET /themes
func (h *ThemeHandler) ListThemes(w http.ResponseWriter, r *http.Request) {
	themes, err := h.ledger.ListThemes(r.Context())
	if err != nil {
		writeQuotaError(w, r, "list themes", err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, themes)
}
