// Copyright (c) 2025-2026 Avenra GmbH
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"log/slog"
	"net/http"

	"github.com/avenra/website/internal/model"
	"github.com/avenra/website/internal/store"
)

// contactsPerPage is the API page size for contact submissions.
const contactsPerPage = 25

// ListContacts handles GET /api/admin/contacts.
func (h *Handler) ListContacts(w http.ResponseWriter, r *http.Request) {
	total, err := h.queries.CountContactSubmissions(r.Context())
	if err != nil {
		slog.Error("failed to count contact submissions", "error", err)
		WriteInternalError(w, "Failed to list submissions")
		return
	}

	page := 1
	if p := r.URL.Query().Get("page"); p != "" {
		if n, err := parsePositiveInt(p); err == nil {
			page = n
		}
	}
	pages := int((total + contactsPerPage - 1) / contactsPerPage)
	if pages < 1 {
		pages = 1
	}
	if page > pages {
		page = pages
	}

	submissions, err := h.queries.ListContactSubmissions(r.Context(), store.ListContactSubmissionsParams{
		Limit:  contactsPerPage,
		Offset: int64((page - 1) * contactsPerPage),
	})
	if err != nil {
		slog.Error("failed to list contact submissions", "error", err)
		WriteInternalError(w, "Failed to list submissions")
		return
	}

	WriteSuccess(w, submissions, &Meta{
		Total:   total,
		Page:    page,
		PerPage: contactsPerPage,
		Pages:   pages,
	})
}

// GetContact handles GET /api/admin/contacts/{id}.
func (h *Handler) GetContact(w http.ResponseWriter, r *http.Request) {
	submission, ok := requireEntityByID(w, r, "submission",
		func(id int64) (model.ContactSubmission, error) {
			return h.queries.GetContactSubmissionByID(r.Context(), id)
		})
	if !ok {
		return
	}
	WriteSuccess(w, submission, nil)
}
