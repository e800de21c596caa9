// Copyright (c) 2025-2026 Avenra GmbH
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/avenra/website/internal/imaging"
	"github.com/avenra/website/internal/model"
	"github.com/avenra/website/internal/store"
)

// maxPhotoUploadSize limits team photo uploads to 10 MB.
const maxPhotoUploadSize = 10 << 20

// TeamHandler handles team member API routes, including photo upload.
type TeamHandler struct {
	queries   *store.Queries
	processor *imaging.Processor
}

// NewTeamHandler creates a new API TeamHandler.
func NewTeamHandler(db *sql.DB, processor *imaging.Processor) *TeamHandler {
	return &TeamHandler{
		queries:   store.New(db),
		processor: processor,
	}
}

// TeamMemberInput is the JSON body for creating or updating a team member.
type TeamMemberInput struct {
	Name      string `json:"name"`
	Position  string `json:"position"`
	ImageURL  string `json:"image_url"`
	SortOrder int64  `json:"sort_order"`
	Visible   bool   `json:"visible"`
}

func (in *TeamMemberInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Position = strings.TrimSpace(in.Position)
	in.ImageURL = strings.TrimSpace(in.ImageURL)
}

// teamMemberInputFrom seeds an input with a member's stored values,
// the starting point for a partial update.
func teamMemberInputFrom(m model.TeamMember) TeamMemberInput {
	return TeamMemberInput{
		Name:      m.Name,
		Position:  m.Position,
		ImageURL:  m.ImageURL,
		SortOrder: m.SortOrder,
		Visible:   m.Visible,
	}
}

// TeamMemberPatch is the JSON body for a partial team member update.
// Nil fields keep their stored value.
type TeamMemberPatch struct {
	Name      *string `json:"name"`
	Position  *string `json:"position"`
	ImageURL  *string `json:"image_url"`
	SortOrder *int64  `json:"sort_order"`
	Visible   *bool   `json:"visible"`
}

func (p TeamMemberPatch) apply(in *TeamMemberInput) {
	if p.Name != nil {
		in.Name = *p.Name
	}
	if p.Position != nil {
		in.Position = *p.Position
	}
	if p.ImageURL != nil {
		in.ImageURL = *p.ImageURL
	}
	if p.SortOrder != nil {
		in.SortOrder = *p.SortOrder
	}
	if p.Visible != nil {
		in.Visible = *p.Visible
	}
}

func validateTeamMemberInput(in TeamMemberInput) map[string]string {
	errs := make(map[string]string)
	if in.Name == "" {
		errs["name"] = "Name is required"
	}
	if in.Position == "" {
		errs["position"] = "Position is required"
	}
	return errs
}

// List handles GET /api/admin/team.
func (h *TeamHandler) List(w http.ResponseWriter, r *http.Request) {
	members, err := h.queries.ListTeamMembers(r.Context())
	if err != nil {
		slog.Error("failed to list team members", "error", err)
		WriteInternalError(w, "Failed to list team members")
		return
	}
	WriteSuccess(w, members, &Meta{Total: int64(len(members))})
}

// Get handles GET /api/admin/team/{id}.
func (h *TeamHandler) Get(w http.ResponseWriter, r *http.Request) {
	member, ok := requireEntityByID(w, r, "team member",
		func(id int64) (model.TeamMember, error) { return h.queries.GetTeamMemberByID(r.Context(), id) })
	if !ok {
		return
	}
	WriteSuccess(w, member, nil)
}

// Create handles POST /api/admin/team.
func (h *TeamHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input TeamMemberInput
	if !decodeJSONBody(w, r, &input) {
		return
	}
	input.normalize()

	if errs := validateTeamMemberInput(input); len(errs) > 0 {
		WriteValidationError(w, errs)
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
		WriteInternalError(w, "Failed to create team member")
		return
	}

	WriteCreated(w, member)
}

// Update handles PUT /api/admin/team/{id}. The body is a full
// replacement.
func (h *TeamHandler) Update(w http.ResponseWriter, r *http.Request) {
	existing, ok := requireEntityByID(w, r, "team member",
		func(id int64) (model.TeamMember, error) { return h.queries.GetTeamMemberByID(r.Context(), id) })
	if !ok {
		return
	}

	var input TeamMemberInput
	if !decodeJSONBody(w, r, &input) {
		return
	}
	input.normalize()

	h.save(w, r, existing, input)
}

// Patch handles PATCH /api/admin/team/{id}. Fields absent from the
// body keep their stored value.
func (h *TeamHandler) Patch(w http.ResponseWriter, r *http.Request) {
	existing, ok := requireEntityByID(w, r, "team member",
		func(id int64) (model.TeamMember, error) { return h.queries.GetTeamMemberByID(r.Context(), id) })
	if !ok {
		return
	}

	var patch TeamMemberPatch
	if !decodeJSONBody(w, r, &patch) {
		return
	}
	input := teamMemberInputFrom(existing)
	patch.apply(&input)
	input.normalize()

	h.save(w, r, existing, input)
}

func (h *TeamHandler) save(w http.ResponseWriter, r *http.Request, existing model.TeamMember, input TeamMemberInput) {
	if errs := validateTeamMemberInput(input); len(errs) > 0 {
		WriteValidationError(w, errs)
		return
	}
	if input.ImageURL == "" {
		input.ImageURL = existing.ImageURL
	}

	member, err := h.queries.UpdateTeamMember(r.Context(), store.UpdateTeamMemberParams{
		ID:        existing.ID,
		Name:      input.Name,
		Position:  input.Position,
		ImageURL:  input.ImageURL,
		SortOrder: input.SortOrder,
		Visible:   input.Visible,
		UpdatedAt: time.Now(),
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Team member not found")
		} else {
			slog.Error("failed to update team member", "error", err, "member_id", existing.ID)
			WriteInternalError(w, "Failed to update team member")
		}
		return
	}

	WriteSuccess(w, member, nil)
}

// UploadPhoto handles POST /api/admin/team/{id}/upload. Accepts a
// multipart form with a "photo" file field.
func (h *TeamHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	member, ok := requireEntityByID(w, r, "team member",
		func(id int64) (model.TeamMember, error) { return h.queries.GetTeamMemberByID(r.Context(), id) })
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(maxPhotoUploadSize); err != nil {
		WriteBadRequest(w, "Photo upload too large or malformed", nil)
		return
	}

	file, _, err := r.FormFile("photo")
	if err != nil {
		WriteBadRequest(w, "No photo provided", nil)
		return
	}
	defer func() { _ = file.Close() }()

	result, err := h.processor.ProcessTeamPhoto(file)
	if err != nil {
		slog.Error("failed to process team photo", "error", err, "member_id", member.ID)
		WriteValidationError(w, map[string]string{"photo": "Unsupported or corrupt image"})
		return
	}

	if err := h.queries.UpdateTeamMemberImage(r.Context(), member.ID, result.URL, time.Now()); err != nil {
		slog.Error("failed to store team photo URL", "error", err, "member_id", member.ID)
		if delErr := h.processor.DeletePhoto(result.URL); delErr != nil {
			slog.Error("failed to clean up orphaned photo", "error", delErr)
		}
		WriteInternalError(w, "Failed to save photo")
		return
	}

	if member.ImageURL != "" && member.ImageURL != result.URL {
		if err := h.processor.DeletePhoto(member.ImageURL); err != nil {
			slog.Warn("failed to delete previous photo", "error", err, "url", member.ImageURL)
		}
	}

	WriteSuccess(w, result, nil)
}

// ToggleVisibility handles POST /api/admin/team/{id}/toggle-visibility.
func (h *TeamHandler) ToggleVisibility(w http.ResponseWriter, r *http.Request) {
	member, ok := requireEntityByID(w, r, "team member",
		func(id int64) (model.TeamMember, error) { return h.queries.GetTeamMemberByID(r.Context(), id) })
	if !ok {
		return
	}

	if err := h.queries.SetTeamMemberVisible(r.Context(), member.ID, !member.Visible, time.Now()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Team member not found")
		} else {
			slog.Error("failed to toggle team member visibility", "error", err, "member_id", member.ID)
			WriteInternalError(w, "Failed to update team member")
		}
		return
	}

	updated, err := h.queries.GetTeamMemberByID(r.Context(), member.ID)
	if err != nil {
		WriteInternalError(w, "Failed to retrieve team member")
		return
	}
	WriteSuccess(w, updated, nil)
}

// Delete handles DELETE /api/admin/team/{id}.
func (h *TeamHandler) Delete(w http.ResponseWriter, r *http.Request) {
	member, ok := requireEntityByID(w, r, "team member",
		func(id int64) (model.TeamMember, error) { return h.queries.GetTeamMemberByID(r.Context(), id) })
	if !ok {
		return
	}

	if err := h.queries.DeleteTeamMember(r.Context(), member.ID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Team member not found")
		} else {
			slog.Error("failed to delete team member", "error", err, "member_id", member.ID)
			WriteInternalError(w, "Failed to delete team member")
		}
		return
	}

	if member.ImageURL != "" {
		if err := h.processor.DeletePhoto(member.ImageURL); err != nil {
			slog.Warn("failed to delete team photo", "error", err, "url", member.ImageURL)
		}
	}

	WriteSuccess(w, map[string]any{"deleted": member.ID}, nil)
}
