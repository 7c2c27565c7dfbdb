// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request IDs and Logging

RequestID wraps the whole mux; WithLogging wraps each route:

	mux.HandleFunc("POST /spin", middleware.WithLogging(spinHandler.Spin))
	handler := middleware.RequestID(mux)

Every request gets an id (X-Request-Id is honoured, otherwise a UUID is
generated) that is echoed in the response and appears in the start and
completion log lines alongside method, path, client IP, status and
duration_ms.

NewLogger builds the process logger from the configured level and format
(text or json).

# Recovery

Recovery answers a panicking handler with a 500 JSON error and logs the
stack. The server keeps serving.

# CORS Middleware

	handler := middleware.CORS(cfg.AllowedOrigins)(mux)

Only listed origins (or any, with "*") receive CORS headers. Allows
Content-Type, X-Team-Token, X-Admin-Key and X-Request-Id.

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")
	middleware.ReasonResponse(w, http.StatusConflict, "theme is full", models.ReasonThemeFull, true)

ReasonResponse adds the machine-readable reason and retryable flag spin
clients branch on.

# Client IP Extraction

	ip := middleware.GetClientIP(r)

Checks X-Forwarded-For, then X-Real-IP, then RemoteAddr. Logged only.
*/
package middleware
