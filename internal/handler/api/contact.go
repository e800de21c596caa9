// Copyright (c) 2025-2026 Avenra GmbH
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/avenra/website/internal/handler"
	"github.com/avenra/website/internal/relay"
	"github.com/avenra/website/internal/store"
)

// ContactHandler handles the public JSON contact endpoint.
type ContactHandler struct {
	queries *store.Queries
	relay   *relay.Relay
}

// NewContactHandler creates a new ContactHandler.
func NewContactHandler(db *sql.DB, rl *relay.Relay) *ContactHandler {
	return &ContactHandler{
		queries: store.New(db),
		relay:   rl,
	}
}

// Submit handles POST /api/contact: validate, persist, relay asynchronously.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var input handler.ContactInput
	if !decodeJSONBody(w, r, &input) {
		return
	}
	input.Trim()

	if errs := handler.ValidateContactInput(input); len(errs) > 0 {
		WriteValidationError(w, errs)
		return
	}

	submission, err := h.queries.CreateContactSubmission(r.Context(), store.CreateContactSubmissionParams{
		Name:      input.Name,
		Email:     input.Email,
		Phone:     input.Phone,
		Company:   input.Company,
		Subject:   input.Subject,
		Message:   input.Message,
		CreatedAt: time.Now(),
	})
	if err != nil {
		slog.Error("failed to store contact submission", "error", err)
		WriteInternalError(w, "Failed to store submission")
		return
	}

	// Relay delivery is best effort; the submission is already stored.
	h.relay.ForwardAsync(submission)

	WriteCreated(w, submission)
}
