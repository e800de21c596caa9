// Copyright (c) 2025-2026 Avenra GmbH
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/avenra/website/internal/auth"
	"github.com/avenra/website/internal/middleware"
	"github.com/avenra/website/internal/model"
	"github.com/avenra/website/internal/store"
)

// AuthHandler handles the JSON authentication endpoints.
type AuthHandler struct {
	queries         *store.Queries
	sessionSecret   []byte
	loginProtection *middleware.LoginProtection
	isDev           bool
}

// NewAuthHandler creates a new API AuthHandler.
func NewAuthHandler(db *sql.DB, secret []byte, lp *middleware.LoginProtection, isDev bool) *AuthHandler {
	return &AuthHandler{
		queries:         store.New(db),
		sessionSecret:   secret,
		loginProtection: lp,
		isDev:           isDev,
	}
}

// LoginRequest is the JSON body for POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SessionResponse describes the authenticated user.
type SessionResponse struct {
	User *model.User `json:"user"`
}

// Login authenticates the credentials and sets the session cookie.
// Unknown emails and wrong passwords return the same response so the
// endpoint cannot be used to probe which accounts exist.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	if req.Email == "" || req.Password == "" {
		WriteBadRequest(w, "Email and password are required", nil)
		return
	}

	// Case-fold so lookups and lockout counters are insensitive to how
	// the address was typed.
	req.Email = store.NormalizeEmail(req.Email)

	if h.loginProtection != nil {
		if locked, _ := h.loginProtection.IsAccountLocked(req.Email); locked {
			WriteError(w, http.StatusTooManyRequests, "account_locked", "Too many failed attempts, try again later", nil)
			return
		}
	}

	user, err := h.queries.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			slog.Error("database error during login", "error", err)
		}
		if h.loginProtection != nil {
			h.loginProtection.RecordFailedAttempt(req.Email)
		}
		WriteUnauthorized(w, "Invalid credentials")
		return
	}

	valid, err := auth.CheckPassword(req.Password, user.PasswordHash)
	if err != nil || !valid {
		if err != nil {
			slog.Error("password check error", "error", err)
		}
		if h.loginProtection != nil {
			h.loginProtection.RecordFailedAttempt(req.Email)
		}
		WriteUnauthorized(w, "Invalid credentials")
		return
	}

	if h.loginProtection != nil {
		h.loginProtection.RecordSuccessfulLogin(req.Email)
	}

	if auth.NeedsRehash(user.PasswordHash) {
		if newHash, err := auth.HashPassword(req.Password); err == nil {
			if err := h.queries.UpdateUserPassword(r.Context(), store.UpdateUserPasswordParams{
				ID:           user.ID,
				PasswordHash: newHash,
				UpdatedAt:    time.Now(),
			}); err != nil {
				slog.Error("failed to re-hash password", "error", err, "user_id", user.ID)
			}
		}
	}

	if err := h.queries.UpdateUserLastLogin(r.Context(), user.ID, time.Now()); err != nil {
		slog.Error("failed to update last login time", "error", err, "user_id", user.ID)
	}

	token, err := auth.NewSessionToken(h.sessionSecret, user.ID, user.Email, user.Role, time.Now())
	if err != nil {
		slog.Error("failed to sign session token", "error", err, "user_id", user.ID)
		WriteInternalError(w, "Failed to create session")
		return
	}
	auth.SetSessionCookie(w, token, h.isDev)

	slog.Info("user logged in", "user_id", user.ID, "email", user.Email)
	WriteSuccess(w, SessionResponse{User: &user}, nil)
}

// Session returns the currently authenticated user, or 401.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	claims := auth.SessionFromRequest(r, h.sessionSecret)
	if claims == nil {
		WriteUnauthorized(w, "Not authenticated")
		return
	}

	user, err := h.queries.GetUserByID(r.Context(), claims.UserID)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			slog.Error("failed to load session user", "error", err, "user_id", claims.UserID)
		}
		WriteUnauthorized(w, "Not authenticated")
		return
	}

	WriteSuccess(w, SessionResponse{User: &user}, nil)
}

// Logout clears the session cookie.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if claims := auth.SessionFromRequest(r, h.sessionSecret); claims != nil {
		slog.Info("user logged out", "user_id", claims.UserID)
	}
	auth.ClearSessionCookie(w, h.isDev)
	WriteSuccess(w, map[string]string{"status": "logged_out"}, nil)
}
