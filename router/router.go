// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/AamirAbdullahKhan1/Da-Wheel/cliparse"
	"github.com/AamirAbdullahKhan1/Da-Wheel/handlers"
	"github.com/AamirAbdullahKhan1/Da-Wheel/middleware"
)

// NewRouter builds the route table and wraps it with request IDs, panic
// recovery and CORS.
func NewRouter(db *sql.DB, cfg cliparse.Config) http.Handler {
	mux := http.NewServeMux()

	// Initialize handlers
	themeHandler := handlers.NewThemeHandler(db, cfg)
	authHandler := handlers.NewAuthHandler(db, cfg)
	spinHandler := handlers.NewSpinHandler(db, cfg)
	adminHandler := handlers.NewAdminHandler(db, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Team operations
	mux.HandleFunc("GET /themes", middleware.WithLogging(themeHandler.ListThemes))
	mux.HandleFunc("POST /login", middleware.WithLogging(authHandler.Login))
	mux.HandleFunc("POST /spin", middleware.WithLogging(spinHandler.Spin))

	// Maintenance (requires X-Admin-Key)
	mux.HandleFunc("POST /admin/reconcile", middleware.WithLogging(adminHandler.Reconcile))
	mux.HandleFunc("POST /admin/reset", middleware.WithLogging(adminHandler.ResetTeams))
	mux.HandleFunc("PUT /admin/themes/{name}/capacity", middleware.WithLogging(adminHandler.SetCapacity))
	mux.HandleFunc("GET /admin/teams/{id}", middleware.WithLogging(adminHandler.GetTeam))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("da-wheel API v1"))
	})

	var handler http.Handler = mux
	handler = middleware.Recovery(handler)
	handler = middleware.RequestID(handler)
	handler = middleware.CORS(cfg.AllowedOrigins)(handler)
	return handler
}
