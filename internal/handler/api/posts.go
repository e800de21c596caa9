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

	"github.com/avenra/website/internal/middleware"
	"github.com/avenra/website/internal/model"
	"github.com/avenra/website/internal/store"
	"github.com/avenra/website/internal/util"
)

// PostInput is the JSON body for creating or updating a post.
type PostInput struct {
	Slug        string `json:"slug"`
	TitleEn     string `json:"title_en"`
	TitleDe     string `json:"title_de"`
	ExcerptEn   string `json:"excerpt_en"`
	ExcerptDe   string `json:"excerpt_de"`
	ContentEn   string `json:"content_en"`
	ContentDe   string `json:"content_de"`
	ImageURL    string `json:"image_url"`
	ImageAlt    string `json:"image_alt"`
	MetaTitleEn string `json:"meta_title_en"`
	MetaTitleDe string `json:"meta_title_de"`
	MetaDescEn  string `json:"meta_desc_en"`
	MetaDescDe  string `json:"meta_desc_de"`
	Published   bool   `json:"published"`
}

func (in *PostInput) normalize() {
	in.Slug = strings.TrimSpace(in.Slug)
	in.TitleEn = strings.TrimSpace(in.TitleEn)
	in.TitleDe = strings.TrimSpace(in.TitleDe)
	if in.Slug == "" {
		in.Slug = util.Slugify(in.TitleEn)
	}
}

// postInputFrom seeds an input with a post's stored values, the
// starting point for a partial update.
func postInputFrom(p model.Post) PostInput {
	return PostInput{
		Slug:        p.Slug,
		TitleEn:     p.TitleEn,
		TitleDe:     p.TitleDe,
		ExcerptEn:   p.ExcerptEn,
		ExcerptDe:   p.ExcerptDe,
		ContentEn:   p.ContentEn,
		ContentDe:   p.ContentDe,
		ImageURL:    p.ImageURL,
		ImageAlt:    p.ImageAlt,
		MetaTitleEn: p.MetaTitleEn,
		MetaTitleDe: p.MetaTitleDe,
		MetaDescEn:  p.MetaDescEn,
		MetaDescDe:  p.MetaDescDe,
		Published:   p.Published,
	}
}

// PostPatch is the JSON body for a partial post update. Nil fields
// keep their stored value.
type PostPatch struct {
	Slug        *string `json:"slug"`
	TitleEn     *string `json:"title_en"`
	TitleDe     *string `json:"title_de"`
	ExcerptEn   *string `json:"excerpt_en"`
	ExcerptDe   *string `json:"excerpt_de"`
	ContentEn   *string `json:"content_en"`
	ContentDe   *string `json:"content_de"`
	ImageURL    *string `json:"image_url"`
	ImageAlt    *string `json:"image_alt"`
	MetaTitleEn *string `json:"meta_title_en"`
	MetaTitleDe *string `json:"meta_title_de"`
	MetaDescEn  *string `json:"meta_desc_en"`
	MetaDescDe  *string `json:"meta_desc_de"`
	Published   *bool   `json:"published"`
}

func (p PostPatch) apply(in *PostInput) {
	if p.Slug != nil {
		in.Slug = *p.Slug
	}
	if p.TitleEn != nil {
		in.TitleEn = *p.TitleEn
	}
	if p.TitleDe != nil {
		in.TitleDe = *p.TitleDe
	}
	if p.ExcerptEn != nil {
		in.ExcerptEn = *p.ExcerptEn
	}
	if p.ExcerptDe != nil {
		in.ExcerptDe = *p.ExcerptDe
	}
	if p.ContentEn != nil {
		in.ContentEn = *p.ContentEn
	}
	if p.ContentDe != nil {
		in.ContentDe = *p.ContentDe
	}
	if p.ImageURL != nil {
		in.ImageURL = *p.ImageURL
	}
	if p.ImageAlt != nil {
		in.ImageAlt = *p.ImageAlt
	}
	if p.MetaTitleEn != nil {
		in.MetaTitleEn = *p.MetaTitleEn
	}
	if p.MetaTitleDe != nil {
		in.MetaTitleDe = *p.MetaTitleDe
	}
	if p.MetaDescEn != nil {
		in.MetaDescEn = *p.MetaDescEn
	}
	if p.MetaDescDe != nil {
		in.MetaDescDe = *p.MetaDescDe
	}
	if p.Published != nil {
		in.Published = *p.Published
	}
}

// validate returns field errors. currentSlug is empty on create; an
// unchanged slug skips the uniqueness check on update.
func (h *Handler) validatePostInput(r *http.Request, in PostInput, currentSlug string) map[string]string {
	errs := make(map[string]string)

	if in.TitleEn == "" {
		errs["title_en"] = "English title is required"
	}
	if in.TitleDe == "" {
		errs["title_de"] = "German title is required"
	}

	if in.Slug == "" {
		errs["slug"] = "Slug is required"
	} else if !util.IsValidSlug(in.Slug) {
		errs["slug"] = "Invalid slug format (use lowercase letters, numbers, and hyphens)"
	} else if in.Slug != currentSlug {
		_, err := h.queries.GetPostBySlug(r.Context(), in.Slug)
		switch {
		case err == nil:
			errs["slug"] = "Slug already exists"
		case !errors.Is(err, sql.ErrNoRows):
			slog.Error("database error checking slug", "error", err)
			errs["slug"] = "Error checking slug"
		}
	}

	return errs
}

// ListPosts handles GET /api/admin/posts.
func (h *Handler) ListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.queries.ListPosts(r.Context())
	if err != nil {
		slog.Error("failed to list posts", "error", err)
		WriteInternalError(w, "Failed to list posts")
		return
	}
	WriteSuccess(w, posts, &Meta{Total: int64(len(posts))})
}

// GetPost handles GET /api/admin/posts/{id}.
func (h *Handler) GetPost(w http.ResponseWriter, r *http.Request) {
	post, ok := requireEntityByID(w, r, "post",
		func(id int64) (model.Post, error) { return h.queries.GetPostByID(r.Context(), id) })
	if !ok {
		return
	}
	WriteSuccess(w, post, nil)
}

// CreatePost handles POST /api/admin/posts.
func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	var input PostInput
	if !decodeJSONBody(w, r, &input) {
		return
	}
	input.normalize()

	if errs := h.validatePostInput(r, input, ""); len(errs) > 0 {
		WriteValidationError(w, errs)
		return
	}

	user := middleware.GetUser(r)
	authorID := sql.NullInt64{}
	if user != nil {
		authorID = sql.NullInt64{Int64: user.ID, Valid: true}
	}

	now := time.Now()
	post, err := h.queries.CreatePost(r.Context(), store.CreatePostParams{
		Slug:        input.Slug,
		TitleEn:     input.TitleEn,
		TitleDe:     input.TitleDe,
		ExcerptEn:   input.ExcerptEn,
		ExcerptDe:   input.ExcerptDe,
		ContentEn:   input.ContentEn,
		ContentDe:   input.ContentDe,
		ImageURL:    input.ImageURL,
		ImageAlt:    input.ImageAlt,
		MetaTitleEn: input.MetaTitleEn,
		MetaTitleDe: input.MetaTitleDe,
		MetaDescEn:  input.MetaDescEn,
		MetaDescDe:  input.MetaDescDe,
		Published:   input.Published,
		AuthorID:    authorID,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		slog.Error("failed to create post", "error", err)
		WriteInternalError(w, "Failed to create post")
		return
	}

	WriteCreated(w, post)
}

// UpdatePost handles PUT /api/admin/posts/{id}. The body is a full
// replacement.
func (h *Handler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	existing, ok := requireEntityByID(w, r, "post",
		func(id int64) (model.Post, error) { return h.queries.GetPostByID(r.Context(), id) })
	if !ok {
		return
	}

	var input PostInput
	if !decodeJSONBody(w, r, &input) {
		return
	}
	input.normalize()

	h.savePost(w, r, existing, input)
}

// PatchPost handles PATCH /api/admin/posts/{id}. Fields absent from
// the body keep their stored value.
func (h *Handler) PatchPost(w http.ResponseWriter, r *http.Request) {
	existing, ok := requireEntityByID(w, r, "post",
		func(id int64) (model.Post, error) { return h.queries.GetPostByID(r.Context(), id) })
	if !ok {
		return
	}

	var patch PostPatch
	if !decodeJSONBody(w, r, &patch) {
		return
	}
	input := postInputFrom(existing)
	patch.apply(&input)
	input.normalize()

	h.savePost(w, r, existing, input)
}

func (h *Handler) savePost(w http.ResponseWriter, r *http.Request, existing model.Post, input PostInput) {
	if errs := h.validatePostInput(r, input, existing.Slug); len(errs) > 0 {
		WriteValidationError(w, errs)
		return
	}

	post, err := h.queries.UpdatePost(r.Context(), store.UpdatePostParams{
		ID:          existing.ID,
		Slug:        input.Slug,
		TitleEn:     input.TitleEn,
		TitleDe:     input.TitleDe,
		ExcerptEn:   input.ExcerptEn,
		ExcerptDe:   input.ExcerptDe,
		ContentEn:   input.ContentEn,
		ContentDe:   input.ContentDe,
		ImageURL:    input.ImageURL,
		ImageAlt:    input.ImageAlt,
		MetaTitleEn: input.MetaTitleEn,
		MetaTitleDe: input.MetaTitleDe,
		MetaDescEn:  input.MetaDescEn,
		MetaDescDe:  input.MetaDescDe,
		Published:   input.Published,
		AuthorID:    existing.AuthorID,
		UpdatedAt:   time.Now(),
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Post not found")
		} else {
			slog.Error("failed to update post", "error", err, "post_id", existing.ID)
			WriteInternalError(w, "Failed to update post")
		}
		return
	}

	WriteSuccess(w, post, nil)
}

// TogglePostPublish handles POST /api/admin/posts/{id}/toggle-publish.
func (h *Handler) TogglePostPublish(w http.ResponseWriter, r *http.Request) {
	post, ok := requireEntityByID(w, r, "post",
		func(id int64) (model.Post, error) { return h.queries.GetPostByID(r.Context(), id) })
	if !ok {
		return
	}

	if err := h.queries.SetPostPublished(r.Context(), post.ID, !post.Published, time.Now()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Post not found")
		} else {
			slog.Error("failed to toggle publish status", "error", err, "post_id", post.ID)
			WriteInternalError(w, "Failed to update post")
		}
		return
	}

	updated, err := h.queries.GetPostByID(r.Context(), post.ID)
	if err != nil {
		WriteInternalError(w, "Failed to retrieve post")
		return
	}
	WriteSuccess(w, updated, nil)
}

// DeletePost handles DELETE /api/admin/posts/{id}.
func (h *Handler) DeletePost(w http.ResponseWriter, r *http.Request) {
	post, ok := requireEntityByID(w, r, "post",
		func(id int64) (model.Post, error) { return h.queries.GetPostByID(r.Context(), id) })
	if !ok {
		return
	}

	if err := h.queries.DeletePost(r.Context(), post.ID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Post not found")
		} else {
			slog.Error("failed to delete post", "error", err, "post_id", post.ID)
			WriteInternalError(w, "Failed to delete post")
		}
		return
	}

	WriteSuccess(w, map[string]any{"deleted": post.ID}, nil)
}
