// Copyright (c) 2025-2026 Avenra GmbH
// SPDX-License-Identifier: GPL-3.0-or-later

package render

import (
	"net/http"
	"net/url"
	"strings"
)

// Flash messages ride in a short-lived cookie because sessions are
// stateless. The cookie is cleared on the first render that shows it.
const flashCookieName = "avenra_flash"

// SetFlash stores a flash message shown on the next rendered page.
// flashType is one of "success", "error" or "info".
func SetFlash(w http.ResponseWriter, message, flashType string) {
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    url.QueryEscape(flashType + "|" + message),
		Path:     "/",
		MaxAge:   60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// PopFlash reads and clears the flash cookie. Returns empty strings when no
// flash is set.
func PopFlash(w http.ResponseWriter, r *http.Request) (message, flashType string) {
	cookie, err := r.Cookie(flashCookieName)
	if err != nil {
		return "", ""
	}

	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	raw, err := url.QueryUnescape(cookie.Value)
	if err != nil {
		return "", ""
	}

	flashType, message, found := strings.Cut(raw, "|")
	if !found || message == "" {
		return "", ""
	}
	if flashType == "" {
		flashType = "info"
	}
	return message, flashType
}
