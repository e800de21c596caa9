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

	"github.com/avenra/website/internal/model"
	"github.com/avenra/website/internal/store"
)

// FaqInput is the JSON body for creating or updating a FAQ entry.
type FaqInput struct {
	QuestionEn string `json:"question_en"`
	QuestionDe string `json:"question_de"`
	AnswerEn   string `json:"answer_en"`
	AnswerDe   string `json:"answer_de"`
	SortOrder  int64  `json:"sort_order"`
	Visible    bool   `json:"visible"`
}

func (in *FaqInput) normalize() {
	in.QuestionEn = strings.TrimSpace(in.QuestionEn)
	in.QuestionDe = strings.TrimSpace(in.QuestionDe)
}

// faqInputFrom seeds an input with a FAQ's stored values, the starting
// point for a partial update.
func faqInputFrom(f model.Faq) FaqInput {
	return FaqInput{
		QuestionEn: f.QuestionEn,
		QuestionDe: f.QuestionDe,
		AnswerEn:   f.AnswerEn,
		AnswerDe:   f.AnswerDe,
		SortOrder:  f.SortOrder,
		Visible:    f.Visible,
	}
}

// FaqPatch is the JSON body for a partial FAQ update. Nil fields keep
// their stored value.
type FaqPatch struct {
	QuestionEn *string `json:"question_en"`
	QuestionDe *string `json:"question_de"`
	AnswerEn   *string `json:"answer_en"`
	AnswerDe   *string `json:"answer_de"`
	SortOrder  *int64  `json:"sort_order"`
	Visible    *bool   `json:"visible"`
}

func (p FaqPatch) apply(in *FaqInput) {
	if p.QuestionEn != nil {
		in.QuestionEn = *p.QuestionEn
	}
	if p.QuestionDe != nil {
		in.QuestionDe = *p.QuestionDe
	}
	if p.AnswerEn != nil {
		in.AnswerEn = *p.AnswerEn
	}
	if p.AnswerDe != nil {
		in.AnswerDe = *p.AnswerDe
	}
	if p.SortOrder != nil {
		in.SortOrder = *p.SortOrder
	}
	if p.Visible != nil {
		in.Visible = *p.Visible
	}
}

func validateFaqInput(in FaqInput) map[string]string {
	errs := make(map[string]string)
	if in.QuestionEn == "" {
		errs["question_en"] = "English question is required"
	}
	if in.QuestionDe == "" {
		errs["question_de"] = "German question is required"
	}
	if in.AnswerEn == "" {
		errs["answer_en"] = "English answer is required"
	}
	if in.AnswerDe == "" {
		errs["answer_de"] = "German answer is required"
	}
	return errs
}

// ListFaqs handles GET /api/admin/faqs.
func (h *Handler) ListFaqs(w http.ResponseWriter, r *http.Request) {
	faqs, err := h.queries.ListFaqs(r.Context())
	if err != nil {
		slog.Error("failed to list faqs", "error", err)
		WriteInternalError(w, "Failed to list FAQs")
		return
	}
	WriteSuccess(w, faqs, &Meta{Total: int64(len(faqs))})
}

// GetFaq handles GET /api/admin/faqs/{id}.
func (h *Handler) GetFaq(w http.ResponseWriter, r *http.Request) {
	faq, ok := requireEntityByID(w, r, "FAQ",
		func(id int64) (model.Faq, error) { return h.queries.GetFaqByID(r.Context(), id) })
	if !ok {
		return
	}
	WriteSuccess(w, faq, nil)
}

// CreateFaq handles POST /api/admin/faqs.
func (h *Handler) CreateFaq(w http.ResponseWriter, r *http.Request) {
	var input FaqInput
	if !decodeJSONBody(w, r, &input) {
		return
	}
	input.normalize()

	if errs := validateFaqInput(input); len(errs) > 0 {
		WriteValidationError(w, errs)
		return
	}

	now := time.Now()
	faq, err := h.queries.CreateFaq(r.Context(), store.CreateFaqParams{
		QuestionEn: input.QuestionEn,
		QuestionDe: input.QuestionDe,
		AnswerEn:   input.AnswerEn,
		AnswerDe:   input.AnswerDe,
		SortOrder:  input.SortOrder,
		Visible:    input.Visible,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		slog.Error("failed to create faq", "error", err)
		WriteInternalError(w, "Failed to create FAQ")
		return
	}

	WriteCreated(w, faq)
}

// UpdateFaq handles PUT /api/admin/faqs/{id}. The body is a full
// replacement.
func (h *Handler) UpdateFaq(w http.ResponseWriter, r *http.Request) {
	existing, ok := requireEntityByID(w, r, "FAQ",
		func(id int64) (model.Faq, error) { return h.queries.GetFaqByID(r.Context(), id) })
	if !ok {
		return
	}

	var input FaqInput
	if !decodeJSONBody(w, r, &input) {
		return
	}
	input.normalize()

	h.saveFaq(w, r, existing, input)
}

// PatchFaq handles PATCH /api/admin/faqs/{id}. Fields absent from the
// body keep their stored value.
func (h *Handler) PatchFaq(w http.ResponseWriter, r *http.Request) {
	existing, ok := requireEntityByID(w, r, "FAQ",
		func(id int64) (model.Faq, error) { return h.queries.GetFaqByID(r.Context(), id) })
	if !ok {
		return
	}

	var patch FaqPatch
	if !decodeJSONBody(w, r, &patch) {
		return
	}
	input := faqInputFrom(existing)
	patch.apply(&input)
	input.normalize()

	h.saveFaq(w, r, existing, input)
}

func (h *Handler) saveFaq(w http.ResponseWriter, r *http.Request, existing model.Faq, input FaqInput) {
	if errs := validateFaqInput(input); len(errs) > 0 {
		WriteValidationError(w, errs)
		return
	}

	faq, err := h.queries.UpdateFaq(r.Context(), store.UpdateFaqParams{
		ID:         existing.ID,
		QuestionEn: input.QuestionEn,
		QuestionDe: input.QuestionDe,
		AnswerEn:   input.AnswerEn,
		AnswerDe:   input.AnswerDe,
		SortOrder:  input.SortOrder,
		Visible:    input.Visible,
		UpdatedAt:  time.Now(),
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "FAQ not found")
		} else {
			slog.Error("failed to update faq", "error", err, "faq_id", existing.ID)
			WriteInternalError(w, "Failed to update FAQ")
		}
		return
	}

	WriteSuccess(w, faq, nil)
}

// ToggleFaqVisibility handles POST /api/admin/faqs/{id}/toggle-visibility.
func (h *Handler) ToggleFaqVisibility(w http.ResponseWriter, r *http.Request) {
	faq, ok := requireEntityByID(w, r, "FAQ",
		func(id int64) (model.Faq, error) { return h.queries.GetFaqByID(r.Context(), id) })
	if !ok {
		return
	}

	if err := h.queries.SetFaqVisible(r.Context(), faq.ID, !faq.Visible, time.Now()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "FAQ not found")
		} else {
			slog.Error("failed to toggle faq visibility", "error", err, "faq_id", faq.ID)
			WriteInternalError(w, "Failed to update FAQ")
		}
		return
	}

	updated, err := h.queries.GetFaqByID(r.Context(), faq.ID)
	if err != nil {
		WriteInternalError(w, "Failed to retrieve FAQ")
		return
	}
	WriteSuccess(w, updated, nil)
}

// DeleteFaq handles DELETE /api/admin/faqs/{id}.
func (h *Handler) DeleteFaq(w http.ResponseWriter, r *http.Request) {
	faq, ok := requireEntityByID(w, r, "FAQ",
		func(id int64) (model.Faq, error) { return h.queries.GetFaqByID(r.Context(), id) })
	if !ok {
		return
	}

	if err := h.queries.DeleteFaq(r.Context(), faq.ID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "FAQ not found")
		} else {
			slog.Error("failed to delete faq", "error", err, "faq_id", faq.ID)
			WriteInternalError(w, "Failed to delete FAQ")
		}
		return
	}

	WriteSuccess(w, map[string]any{"deleted": faq.ID}, nil)
}
