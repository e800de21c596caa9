// Copyright (c) 2025-2026 Avenra GmbH
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/avenra/website/internal/logging"
)

// RequestLogContext attaches request attributes to the context so the slog
// request handler can annotate every record logged during the request.
// Must run after chi's RequestID middleware.
func RequestLogContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := logging.WithRequestInfo(r.Context(), logging.RequestInfo{
			ID:     chimw.GetReqID(r.Context()),
			Method: r.Method,
			Path:   r.URL.Path,
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
