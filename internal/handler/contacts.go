// Copyright (c) 2025-2026 Avenra GmbH
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/avenra/website/internal/middleware"
	"github.com/avenra/website/internal/model"
	"github.com/avenra/website/internal/render"
	"github.com/avenra/website/internal/store"
)

// ContactsHandler handles the read-only contact submission screens.
type ContactsHandler struct {
	queries  *store.Queries
	renderer *render.Renderer
}

// NewContactsHandler creates a new ContactsHandler.
func NewContactsHandler(db *sql.DB, renderer *render.Renderer) *ContactsHandler {
	return &ContactsHandler{
		queries:  store.New(db),
		renderer: renderer,
	}
}

// ContactsListData holds data for the contacts list template.
type ContactsListData struct {
	Submissions []model.ContactSubmission
	Pagination  AdminPagination
}

// List handles GET /admin/contacts.
func (h *ContactsHandler) List(w http.ResponseWriter, r *http.Request) {
	total, err := h.queries.CountContactSubmissions(r.Context())
	if err != nil {
		logAndInternalError(w, "failed to count contact submissions", "error", err)
		return
	}

	pagination := BuildAdminPagination(getPageNum(r), total, contactsPerPage, redirectAdminContacts, r.URL.Query())

	submissions, err := h.queries.ListContactSubmissions(r.Context(), store.ListContactSubmissionsParams{
		Limit:  int64(contactsPerPage),
		Offset: int64((pagination.CurrentPage - 1) * contactsPerPage),
	})
	if err != nil {
		logAndInternalError(w, "failed to list contact submissions", "error", err)
		return
	}

	if err := h.renderer.Render(w, r, "admin/contacts", render.TemplateData{
		Title: "Contact Submissions",
		User:  middleware.GetUser(r),
		Data: ContactsListData{
			Submissions: submissions,
			Pagination:  pagination,
		},
	}); err != nil {
		logAndInternalError(w, "render error", "error", err)
	}
}

// Detail handles GET /admin/contacts/{id}.
func (h *ContactsHandler) Detail(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		flashError(w, r, redirectAdminContacts, "Invalid submission ID")
		return
	}

	submission, ok := requireEntityWithRedirect(w, r, redirectAdminContacts, "submission", id,
		func(id int64) (model.ContactSubmission, error) {
			return h.queries.GetContactSubmissionByID(r.Context(), id)
		})
	if !ok {
		return
	}

	if err := h.renderer.Render(w, r, "admin/contact_detail", render.TemplateData{
		Title: "Submission from " + submission.Name,
		User:  middleware.GetUser(r),
		Data:  submission,
	}); err != nil {
		logAndInternalError(w, "render error", "error", err)
	}
}

// Delete handles POST /admin/contacts/{id}/delete.
func (h *ContactsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		flashError(w, r, redirectAdminContacts, "Invalid submission ID")
		return
	}

	if err := h.queries.DeleteContactSubmission(r.Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			flashError(w, r, redirectAdminContacts, "Submission not found")
		} else {
			slog.Error("failed to delete contact submission", "error", err, "submission_id", id)
			flashError(w, r, redirectAdminContacts, "Error deleting submission")
		}
		return
	}

	slog.Info("contact submission deleted", "submission_id", id, "deleted_by", user.ID)
	flashSuccess(w, r, redirectAdminContacts, "Submission deleted successfully")
}
