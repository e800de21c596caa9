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

	"github.com/avenra/website/internal/middleware"
	"github.com/avenra/website/internal/model"
	"github.com/avenra/website/internal/render"
	"github.com/avenra/website/internal/store"
)

// FaqsHandler handles FAQ management routes.
type FaqsHandler struct {
	queries  *store.Queries
	renderer *render.Renderer
}

// NewFaqsHandler creates a new FaqsHandler.
func NewFaqsHandler(db *sql.DB, renderer *render.Renderer) *FaqsHandler {
	return &FaqsHandler{
		queries:  store.New(db),
		renderer: renderer,
	}
}

// List handles GET /admin/faqs.
func (h *FaqsHandler) List(w http.ResponseWriter, r *http.Request) {
	faqs, err := h.queries.ListFaqs(r.Context())
	if err != nil {
		logAndInternalError(w, "failed to list faqs", "error", err)
		return
	}

	if err := h.renderer.Render(w, r, "admin/faqs", render.TemplateData{
		Title: "FAQs",
		User:  middleware.GetUser(r),
		Data:  faqs,
	}); err != nil {
		logAndInternalError(w, "render error", "error", err)
	}
}

// FaqFormData holds data for the FAQ form template.
type FaqFormData struct {
	Faq        *model.Faq
	Errors     map[string]string
	FormValues map[string]string
	IsEdit     bool
}

// NewForm handles GET /admin/faqs/new.
func (h *FaqsHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, FaqFormData{
		Errors:     make(map[string]string),
		FormValues: make(map[string]string),
	}, "New FAQ")
}

// Create handles POST /admin/faqs.
func (h *FaqsHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)

	if !parseFormOrRedirect(w, r, redirectAdminFaqsNew) {
		return
	}

	input, formValues := faqInputFromForm(r)
	if errs := validateFaqInput(input); len(errs) > 0 {
		h.renderForm(w, r, FaqFormData{
			Errors:     errs,
			FormValues: formValues,
		}, "New FAQ")
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
		flashError(w, r, redirectAdminFaqsNew, "Error creating FAQ")
		return
	}

	slog.Info("faq created", "faq_id", faq.ID, "created_by", user.ID)
	flashSuccess(w, r, redirectAdminFaqs, "FAQ created successfully")
}

// EditForm handles GET /admin/faqs/{id}.
func (h *FaqsHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	id, ok := h.faqID(w, r)
	if !ok {
		return
	}

	faq, ok := requireEntityWithRedirect(w, r, redirectAdminFaqs, "FAQ", id,
		func(id int64) (model.Faq, error) { return h.queries.GetFaqByID(r.Context(), id) })
	if !ok {
		return
	}

	h.renderForm(w, r, FaqFormData{
		Faq:        &faq,
		Errors:     make(map[string]string),
		FormValues: faqFormValues(faq),
		IsEdit:     true,
	}, "Edit FAQ")
}

// Update handles POST /admin/faqs/{id}.
func (h *FaqsHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)

	id, ok := h.faqID(w, r)
	if !ok {
		return
	}

	faq, ok := requireEntityWithRedirect(w, r, redirectAdminFaqs, "FAQ", id,
		func(id int64) (model.Faq, error) { return h.queries.GetFaqByID(r.Context(), id) })
	if !ok {
		return
	}

	editURL := fmt.Sprintf(redirectAdminFaqsID, id)
	if !parseFormOrRedirect(w, r, editURL) {
		return
	}

	input, formValues := faqInputFromForm(r)
	if errs := validateFaqInput(input); len(errs) > 0 {
		h.renderForm(w, r, FaqFormData{
			Faq:        &faq,
			Errors:     errs,
			FormValues: formValues,
			IsEdit:     true,
		}, "Edit FAQ")
		return
	}

	if _, err := h.queries.UpdateFaq(r.Context(), store.UpdateFaqParams{
		ID:         id,
		QuestionEn: input.QuestionEn,
		QuestionDe: input.QuestionDe,
		AnswerEn:   input.AnswerEn,
		AnswerDe:   input.AnswerDe,
		SortOrder:  input.SortOrder,
		Visible:    input.Visible,
		UpdatedAt:  time.Now(),
	}); err != nil {
		slog.Error("failed to update faq", "error", err, "faq_id", id)
		flashError(w, r, editURL, "Error updating FAQ")
		return
	}

	slog.Info("faq updated", "faq_id", id, "updated_by", user.ID)
	flashSuccess(w, r, redirectAdminFaqs, "FAQ updated successfully")
}

// ToggleVisibility handles POST /admin/faqs/{id}/visibility.
func (h *FaqsHandler) ToggleVisibility(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)

	id, ok := h.faqID(w, r)
	if !ok {
		return
	}

	faq, ok := requireEntityWithRedirect(w, r, redirectAdminFaqs, "FAQ", id,
		func(id int64) (model.Faq, error) { return h.queries.GetFaqByID(r.Context(), id) })
	if !ok {
		return
	}

	message := "FAQ is now visible"
	if faq.Visible {
		message = "FAQ is now hidden"
	}

	if err := h.queries.SetFaqVisible(r.Context(), id, !faq.Visible, time.Now()); err != nil {
		slog.Error("failed to toggle faq visibility", "error", err, "faq_id", id)
		flashError(w, r, redirectAdminFaqs, "Error updating FAQ visibility")
		return
	}

	slog.Info("faq visibility toggled", "faq_id", id, "visible", !faq.Visible, "toggled_by", user.ID)
	flashSuccess(w, r, redirectAdminFaqs, message)
}

// Delete handles POST /admin/faqs/{id}/delete.
func (h *FaqsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)

	id, ok := h.faqID(w, r)
	if !ok {
		return
	}

	if err := h.queries.DeleteFaq(r.Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			flashError(w, r, redirectAdminFaqs, "FAQ not found")
		} else {
			slog.Error("failed to delete faq", "error", err, "faq_id", id)
			flashError(w, r, redirectAdminFaqs, "Error deleting FAQ")
		}
		return
	}

	slog.Info("faq deleted", "faq_id", id, "deleted_by", user.ID)
	flashSuccess(w, r, redirectAdminFaqs, "FAQ deleted successfully")
}

func (h *FaqsHandler) faqID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		flashError(w, r, redirectAdminFaqs, "Invalid FAQ ID")
		return 0, false
	}
	return id, true
}

func (h *FaqsHandler) renderForm(w http.ResponseWriter, r *http.Request, data FaqFormData, title string) {
	if err := h.renderer.Render(w, r, "admin/faq_form", render.TemplateData{
		Title: title,
		User:  middleware.GetUser(r),
		Data:  data,
	}); err != nil {
		logAndInternalError(w, "render error", "error", err)
	}
}

// faqInput holds the parsed FAQ form fields.
type faqInput struct {
	QuestionEn string
	QuestionDe string
	AnswerEn   string
	AnswerDe   string
	SortOrder  int64
	Visible    bool
}

func faqInputFromForm(r *http.Request) (faqInput, map[string]string) {
	sortOrder, _ := strconv.ParseInt(strings.TrimSpace(r.FormValue("sort_order")), 10, 64)
	input := faqInput{
		QuestionEn: strings.TrimSpace(r.FormValue("question_en")),
		QuestionDe: strings.TrimSpace(r.FormValue("question_de")),
		AnswerEn:   r.FormValue("answer_en"),
		AnswerDe:   r.FormValue("answer_de"),
		SortOrder:  sortOrder,
		Visible:    r.FormValue("visible") == "on" || r.FormValue("visible") == "true",
	}

	formValues := map[string]string{
		"question_en": input.QuestionEn,
		"question_de": input.QuestionDe,
		"answer_en":   input.AnswerEn,
		"answer_de":   input.AnswerDe,
		"sort_order":  strconv.FormatInt(input.SortOrder, 10),
	}
	if input.Visible {
		formValues["visible"] = "on"
	}
	return input, formValues
}

func faqFormValues(f model.Faq) map[string]string {
	values := map[string]string{
		"question_en": f.QuestionEn,
		"question_de": f.QuestionDe,
		"answer_en":   f.AnswerEn,
		"answer_de":   f.AnswerDe,
		"sort_order":  strconv.FormatInt(f.SortOrder, 10),
	}
	if f.Visible {
		values["visible"] = "on"
	}
	return values
}

func validateFaqInput(input faqInput) map[string]string {
	errs := make(map[string]string)
	if input.QuestionEn == "" {
		errs["question_en"] = "English question is required"
	}
	if input.QuestionDe == "" {
		errs["question_de"] = "German question is required"
	}
	if input.AnswerEn == "" {
		errs["answer_en"] = "English answer is required"
	}
	if input.AnswerDe == "" {
		errs["answer_de"] = "German answer is required"
	}
	return errs
}
