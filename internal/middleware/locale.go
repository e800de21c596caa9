// Copyright (c) 2025-2026 Avenra GmbH
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/avenra/website/internal/locale"
)

// Locale creates middleware that resolves the {lang} URL segment on public
// routes. The match is exact: unknown or differently-cased codes get a 404
// rather than a fallback, so every public URL names its language
// unambiguously.
func Locale(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		code := chi.URLParam(r, "lang")
		if !locale.IsSupported(code) {
			http.NotFound(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), ContextKeyLocale, code)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetLocale retrieves the resolved locale from the request context,
// falling back to the default locale.
func GetLocale(r *http.Request) string {
	if code, ok := r.Context().Value(ContextKeyLocale).(string); ok {
		return code
	}
	return locale.Default
}
