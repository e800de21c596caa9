// Copyright (c) 2025-2026 Avenra GmbH
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/avenra/website/internal/auth"
	"github.com/avenra/website/internal/middleware"
	"github.com/avenra/website/internal/render"
	"github.com/avenra/website/internal/store"
)

// minPasswordLength is the minimum accepted password length.
const minPasswordLength = 8

// SettingsHandler handles the account settings screen.
type SettingsHandler struct {
	queries  *store.Queries
	renderer *render.Renderer
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(db *sql.DB, renderer *render.Renderer) *SettingsHandler {
	return &SettingsHandler{
		queries:  store.New(db),
		renderer: renderer,
	}
}

// Show handles GET /admin/settings.
func (h *SettingsHandler) Show(w http.ResponseWriter, r *http.Request) {
	if err := h.renderer.Render(w, r, "admin/settings", render.TemplateData{
		Title: "Settings",
		User:  middleware.GetUser(r),
	}); err != nil {
		logAndInternalError(w, "render error", "error", err)
	}
}

// ChangePassword handles POST /admin/settings/password.
func (h *SettingsHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)

	if !parseFormOrRedirect(w, r, redirectAdminSettings) {
		return
	}

	current := r.FormValue("current_password")
	newPassword := r.FormValue("new_password")
	confirm := r.FormValue("confirm_password")

	if current == "" || newPassword == "" || confirm == "" {
		flashError(w, r, redirectAdminSettings, "All password fields are required")
		return
	}
	if newPassword != confirm {
		flashError(w, r, redirectAdminSettings, "New passwords do not match")
		return
	}
	if len(newPassword) < minPasswordLength {
		flashError(w, r, redirectAdminSettings, "New password must be at least 8 characters")
		return
	}

	valid, err := auth.CheckPassword(current, user.PasswordHash)
	if err != nil {
		logAndInternalError(w, "password check error", "error", err)
		return
	}
	if !valid {
		flashError(w, r, redirectAdminSettings, "Current password is incorrect")
		return
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		logAndInternalError(w, "failed to hash password", "error", err)
		return
	}

	if err := h.queries.UpdateUserPassword(r.Context(), store.UpdateUserPasswordParams{
		ID:           user.ID,
		PasswordHash: hash,
		UpdatedAt:    time.Now(),
	}); err != nil {
		slog.Error("failed to update password", "error", err, "user_id", user.ID)
		flashError(w, r, redirectAdminSettings, "Error updating password")
		return
	}

	slog.Info("password changed", "user_id", user.ID)
	flashSuccess(w, r, redirectAdminSettings, "Password updated successfully")
}
