// Copyright (c) 2025-2026 Avenra GmbH
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/avenra/website/internal/auth"
	"github.com/avenra/website/internal/middleware"
	"github.com/avenra/website/internal/render"
	"github.com/avenra/website/internal/store"
)

// AuthHandler handles authentication routes.
type AuthHandler struct {
	queries         *store.Queries
	renderer        *render.Renderer
	sessionSecret   []byte
	loginProtection *middleware.LoginProtection
	isDev           bool
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(db *sql.DB, renderer *render.Renderer, secret []byte, lp *middleware.LoginProtection, isDev bool) *AuthHandler {
	return &AuthHandler{
		queries:         store.New(db),
		renderer:        renderer,
		sessionSecret:   secret,
		loginProtection: lp,
		isDev:           isDev,
	}
}

// LoginForm renders the login page. Already-authenticated users are sent
// straight to the dashboard.
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	if claims := auth.SessionFromRequest(r, h.sessionSecret); claims != nil {
		http.Redirect(w, r, redirectAdmin, http.StatusSeeOther)
		return
	}

	if err := h.renderer.Render(w, r, "auth/login", render.TemplateData{
		Title: "Login",
	}); err != nil {
		logAndInternalError(w, "render error", "error", err)
	}
}

// Login handles the login form submission. Unknown emails and wrong
// passwords produce the same flash message so accounts cannot be
// enumerated through the login form.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, redirectAdminLogin) {
		return
	}

	email := store.NormalizeEmail(r.FormValue("email"))
	password := r.FormValue("password")

	if email == "" || password == "" {
		flashError(w, r, redirectAdminLogin, "Email and password are required")
		return
	}

	if h.loginProtection != nil {
		if locked, remaining := h.loginProtection.IsAccountLocked(email); locked {
			flashError(w, r, redirectAdminLogin, "Account temporarily locked, try again in "+formatDuration(remaining))
			return
		}
	}

	user, err := h.queries.GetUserByEmail(r.Context(), email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			slog.Debug("login attempt for non-existent user", "email", email)
		} else {
			slog.Error("database error during login", "error", err)
		}
		// Record failed attempt even for non-existent users to prevent enumeration
		if h.loginProtection != nil {
			if locked, lockDuration := h.loginProtection.RecordFailedAttempt(email); locked {
				flashError(w, r, redirectAdminLogin, "Too many failed attempts, account locked for "+formatDuration(lockDuration))
				return
			}
		}
		flashError(w, r, redirectAdminLogin, "Invalid credentials")
		return
	}

	valid, err := auth.CheckPassword(password, user.PasswordHash)
	if err != nil {
		slog.Error("password check error", "error", err)
		flashError(w, r, redirectAdminLogin, "Invalid credentials")
		return
	}

	if !valid {
		slog.Debug("invalid password attempt", "email", email)
		if h.loginProtection != nil {
			if locked, lockDuration := h.loginProtection.RecordFailedAttempt(email); locked {
				flashError(w, r, redirectAdminLogin, "Too many failed attempts, account locked for "+formatDuration(lockDuration))
				return
			}
		}
		flashError(w, r, redirectAdminLogin, "Invalid credentials")
		return
	}

	if h.loginProtection != nil {
		h.loginProtection.RecordSuccessfulLogin(email)
	}

	// Re-hash password if it uses old parameters
	if auth.NeedsRehash(user.PasswordHash) {
		if newHash, err := auth.HashPassword(password); err == nil {
			if err := h.queries.UpdateUserPassword(r.Context(), store.UpdateUserPasswordParams{
				ID:           user.ID,
				PasswordHash: newHash,
				UpdatedAt:    time.Now(),
			}); err != nil {
				slog.Error("failed to re-hash password", "error", err, "user_id", user.ID)
			} else {
				slog.Info("password re-hashed with updated parameters", "user_id", user.ID)
			}
		}
	}

	if err := h.queries.UpdateUserLastLogin(r.Context(), user.ID, time.Now()); err != nil {
		// Don't block login on this error
		slog.Error("failed to update last login time", "error", err, "user_id", user.ID)
	}

	token, err := auth.NewSessionToken(h.sessionSecret, user.ID, user.Email, user.Role, time.Now())
	if err != nil {
		logAndInternalError(w, "failed to sign session token", "error", err, "user_id", user.ID)
		return
	}
	auth.SetSessionCookie(w, token, h.isDev)

	slog.Info("user logged in", "user_id", user.ID, "email", user.Email)

	flashAndRedirect(w, r, redirectAdmin, "Welcome back, "+user.Name, "success")
}

// Logout clears the session cookie.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if user := middleware.GetUser(r); user != nil {
		slog.Info("user logged out", "user_id", user.ID)
	}
	auth.ClearSessionCookie(w, h.isDev)
	flashAndRedirect(w, r, redirectAdminLogin, "You have been logged out", "info")
}

// formatDuration formats a duration into a human-readable string.
func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%d seconds", int(d.Seconds()))
	}
	if d < time.Hour {
		mins := int(d.Minutes())
		if mins == 1 {
			return "1 minute"
		}
		return fmt.Sprintf("%d minutes", mins)
	}
	hours := int(d.Hours())
	if hours == 1 {
		return "1 hour"
	}
	return fmt.Sprintf("%d hours", hours)
}
