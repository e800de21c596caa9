// Copyright (c) 2025-2026 Avenra GmbH
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/avenra/website/internal/imaging"
	"github.com/avenra/website/internal/middleware"
	"github.com/avenra/website/internal/model"
	"github.com/avenra/website/internal/render"
	"github.com/avenra/website/internal/store"
)

// maxPhotoUploadSize limits team photo uploads to 10 MB.
const maxPhotoUploadSize = 10 << 20

// TeamHandler handles team member management routes.
type TeamHandler struct {
	queries   *store.Queries
	renderer  *render.Renderer
	processor *imaging.Processor
}

// NewTeamHandler creates a new TeamHandler.
func NewTeamHandler(db *sql.DB, renderer *render.Renderer, processor *imaging.Processor) *TeamHandler {
	return &TeamHandler{
		queries:   store.New(db),
		renderer:  renderer,
		processor: processor,
	}
}

// List handles GET /admin/team.
func (h *TeamHandler) List(w http.ResponseWriter, r *http.Request) {
	members, err := h.queries.ListTeamMembers(r.Context())
	if err != nil {
		logAndInternalError(w, "failed to list team members", "error", err)
		return
	}

	if err := h.renderer.Render(w, r, "admin/team", render.TemplateData{
		Title: "Team",
		User:  middleware.GetUser(r),
		Data:  members,
	}); err != nil {
		logAndInternalError(w, "render error", "error", err)
	}
}

// TeamFormData holds data for the team member form template.
type TeamFormData struct {
	Member     *model.TeamMember
	Errors     map[string]string
	FormValues map[string]string
	IsEdit     bool
}

// NewForm handles GET /admin/team/new.
func (h *TeamHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, TeamFormData{
		Errors:     make(map[string]string),
		FormValues: make(map[string]string),
	}, "New Team Member")
}

// Create handles POST /admin/team.
func (h *TeamHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)

	if !parseFormOrRedirect(w, r, redirectAdminTeamNew) {
		return
	}

	input, formValues := teamInputFromForm(r)
	if errs := validateTeamInput(input); len(errs) > 0 {
		h.renderForm(w, r, TeamFormData{
			Errors:     errs,
			FormValues: formValues,
		}, "New Team Member")
		return
	}

	now := time.Now()
	member, err := h.queries.CreateTeamMember(r.Context(), store.CreateTeamMemberParams{
		Name:      input.Name,
		Position:  input.Position,
		ImageURL:  input.ImageURL,
		SortOrder: input.SortOrder,
		Visible:   input.Visible,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		slog.Error("failed to create team member", "error", err)
		flashError(w, r, redirectAdminTeamNew, "Error creating team member")
		return
	}

	slog.Info("team member created", "member_id", member.ID, "created_by", user.ID)
	flashSuccess(w, r, redirectAdminTeam, "Team member created successfully")
}

// EditForm handles GET /admin/team/{id}.
func (h *TeamHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	id, ok := h.memberID(w, r)
	if !ok {
		return
	}

	member, ok := requireEntityWithRedirect(w, r, redirectAdminTeam, "team member", id,
		func(id int64) (model.TeamMember, error) { return h.queries.GetTeamMemberByID(r.Context(), id) })
	if !ok {
		return
	}

	h.renderForm(w, r, TeamFormData{
		Member:     &member,
		Errors:     make(map[string]string),
		FormValues: teamFormValues(member),
		IsEdit:     true,
	}, "Edit Team Member")
}

// Update handles POST /admin/team/{id}.
func (h *TeamHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)

	id, ok := h.memberID(w, r)
	if !ok {
		return
	}

	member, ok := requireEntityWithRedirect(w, r, redirectAdminTeam, "team member", id,
		func(id int64) (model.TeamMember, error) { return h.queries.GetTeamMemberByID(r.Context(), id) })
	if !ok {
		return
	}

	editURL := fmt.Sprintf(redirectAdminTeamID, id)
	if !parseFormOrRedirect(w, r, editURL) {
		return
	}

	input, formValues := teamInputFromForm(r)
	if input.ImageURL == "" {
		input.ImageURL = member.ImageURL
	}
	if errs := validateTeamInput(input); len(errs) > 0 {
		h.renderForm(w, r, TeamFormData{
			Member:     &member,
			Errors:     errs,
			FormValues: formValues,
			IsEdit:     true,
		}, "Edit Team Member")
		return
	}

	if _, err := h.queries.UpdateTeamMember(r.Context(), store.UpdateTeamMemberParams{
		ID:        id,
		Name:      input.Name,
		Position:  input.Position,
		ImageURL:  input.ImageURL,
		SortOrder: input.SortOrder,
		Visible:   input.Visible,
		UpdatedAt: time.Now(),
	}); err != nil {
		slog.Error("failed to update team member", "error", err, "member_id", id)
		flashError(w, r, editURL, "Error updating team member")
		return
	}

	slog.Info("team member updated", "member_id", id, "updated_by", user.ID)
	flashSuccess(w, r, redirectAdminTeam, "Team member updated successfully")
}

// UploadPhoto handles POST /admin/team/{id}/upload. The uploaded image is
// resized, re-encoded and stored under the uploads directory; the previous
// photo is removed afterwards.
func (h *TeamHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)

	id, ok := h.memberID(w, r)
	if !ok {
		return
	}

	member, ok := requireEntityWithRedirect(w, r, redirectAdminTeam, "team member", id,
		func(id int64) (model.TeamMember, error) { return h.queries.GetTeamMemberByID(r.Context(), id) })
	if !ok {
		return
	}

	editURL := fmt.Sprintf(redirectAdminTeamID, id)

	if err := r.ParseMultipartForm(maxPhotoUploadSize); err != nil {
		flashError(w, r, editURL, "Photo upload too large or malformed")
		return
	}

	file, _, err := r.FormFile("photo")
	if err != nil {
		flashError(w, r, editURL, "No photo provided")
		return
	}
	defer func() { _ = file.Close() }()

	result, err := h.processor.ProcessTeamPhoto(file)
	if err != nil {
		slog.Error("failed to process team photo", "error", err, "member_id", id)
		flashError(w, r, editURL, "Could not process photo: unsupported or corrupt image")
		return
	}

	if err := h.queries.UpdateTeamMemberImage(r.Context(), id, result.URL, time.Now()); err != nil {
		slog.Error("failed to store team photo URL", "error", err, "member_id", id)
		if delErr := h.processor.DeletePhoto(result.URL); delErr != nil {
			slog.Error("failed to clean up orphaned photo", "error", delErr)
		}
		flashError(w, r, editURL, "Error saving photo")
		return
	}

	if member.ImageURL != "" && member.ImageURL != result.URL {
		if err := h.processor.DeletePhoto(member.ImageURL); err != nil {
			slog.Warn("failed to delete previous photo", "error", err, "url", member.ImageURL)
		}
	}

	slog.Info("team photo uploaded", "member_id", id, "url", result.URL, "uploaded_by", user.ID)
	flashSuccess(w, r, editURL, "Photo uploaded successfully")
}

// ToggleVisibility handles POST /admin/team/{id}/visibility.
func (h *TeamHandler) ToggleVisibility(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)

	id, ok := h.memberID(w, r)
	if !ok {
		return
	}

	member, ok := requireEntityWithRedirect(w, r, redirectAdminTeam, "team member", id,
		func(id int64) (model.TeamMember, error) { return h.queries.GetTeamMemberByID(r.Context(), id) })
	if !ok {
		return
	}

	message := "Team member is now visible"
	if member.Visible {
		message = "Team member is now hidden"
	}

	if err := h.queries.SetTeamMemberVisible(r.Context(), id, !member.Visible, time.Now()); err != nil {
		slog.Error("failed to toggle team member visibility", "error", err, "member_id", id)
		flashError(w, r, redirectAdminTeam, "Error updating visibility")
		return
	}

	slog.Info("team member visibility toggled", "member_id", id, "visible", !member.Visible, "toggled_by", user.ID)
	flashSuccess(w, r, redirectAdminTeam, message)
}

// Delete handles POST /admin/team/{id}/delete.
func (h *TeamHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)

	id, ok := h.memberID(w, r)
	if !ok {
		return
	}

	member, ok := requireEntityWithRedirect(w, r, redirectAdminTeam, "team member", id,
		func(id int64) (model.TeamMember, error) { return h.queries.GetTeamMemberByID(r.Context(), id) })
	if !ok {
		return
	}

	if err := h.queries.DeleteTeamMember(r.Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			flashError(w, r, redirectAdminTeam, "Team member not found")
		} else {
			slog.Error("failed to delete team member", "error", err, "member_id", id)
			flashError(w, r, redirectAdminTeam, "Error deleting team member")
		}
		return
	}

	if member.ImageURL != "" {
		if err := h.processor.DeletePhoto(member.ImageURL); err != nil {
			slog.Warn("failed to delete team photo", "error", err, "url", member.ImageURL)
		}
	}

	slog.Info("team member deleted", "member_id", id, "deleted_by", user.ID)
	flashSuccess(w, r, redirectAdminTeam, "Team member deleted successfully")
}

func (h *TeamHandler) memberID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		flashError(w, r, redirectAdminTeam, "Invalid team member ID")
		return 0, false
	}
	return id, true
}

func (h *TeamHandler) renderForm(w http.ResponseWriter, r *http.Request, data TeamFormData, title string) {
	if err := h.renderer.Render(w, r, "admin/team_form", render.TemplateData{
		Title: title,
		User:  middleware.GetUser(r),
		Data:  data,
	}); err != nil {
		logAndInternalError(w, "render error", "error", err)
	}
}

// teamInput holds the parsed team member form fields.
type teamInput struct {
	Name      string
	Position  string
	ImageURL  string
	SortOrder int64
	Visible   bool
}

func teamInputFromForm(r *http.Request) (teamInput, map[string]string) {
	sortOrder, _ := strconv.ParseInt(strings.TrimSpace(r.FormValue("sort_order")), 10, 64)
	input := teamInput{
		Name:      strings.TrimSpace(r.FormValue("name")),
		Position:  strings.TrimSpace(r.FormValue("position")),
		ImageURL:  strings.TrimSpace(r.FormValue("image_url")),
		SortOrder: sortOrder,
		Visible:   r.FormValue("visible") == "on" || r.FormValue("visible") == "true",
	}

	formValues := map[string]string{
		"name":       input.Name,
		"position":   input.Position,
		"image_url":  input.ImageURL,
		"sort_order": strconv.FormatInt(input.SortOrder, 10),
	}
	if input.Visible {
		formValues["visible"] = "on"
	}
	return input, formValues
}

func teamFormValues(m model.TeamMember) map[string]string {
	values := map[string]string{
		"name":       m.Name,
		"position":   m.Position,
		"image_url":  m.ImageURL,
		"sort_order": strconv.FormatInt(m.SortOrder, 10),
	}
	if m.Visible {
		values["visible"] = "on"
	}
	return values
}

func validateTeamInput(input teamInput) map[string]string {
	errs := make(map[string]string)
	if input.Name == "" {
		errs["name"] = "Name is required"
	}
	if input.Position == "" {
		errs["position"] = "Position is required"
	}
	return errs
}
