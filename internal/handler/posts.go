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
	"github.com/avenra/website/internal/util"
)

// PostsHandler handles blog post management routes.
type PostsHandler struct {
	queries  *store.Queries
	renderer *render.Renderer
}

// NewPostsHandler creates a new PostsHandler.
func NewPostsHandler(db *sql.DB, renderer *render.Renderer) *PostsHandler {
	return &PostsHandler{
		queries:  store.New(db),
		renderer: renderer,
	}
}

// PostsListData holds data for the posts list template.
type PostsListData struct {
	Posts      []model.Post
	Pagination AdminPagination
}

// List handles GET /admin/posts.
func (h *PostsHandler) List(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)

	posts, err := h.queries.ListPosts(r.Context())
	if err != nil {
		logAndInternalError(w, "failed to list posts", "error", err)
		return
	}

	page := getPageNum(r)
	total := int64(len(posts))
	pagination := BuildAdminPagination(page, total, postsPerPage, redirectAdminPosts, r.URL.Query())

	start := (pagination.CurrentPage - 1) * postsPerPage
	end := start + postsPerPage
	if start > len(posts) {
		start = len(posts)
	}
	if end > len(posts) {
		end = len(posts)
	}

	if err := h.renderer.Render(w, r, "admin/posts", render.TemplateData{
		Title: "Posts",
		User:  user,
		Data: PostsListData{
			Posts:      posts[start:end],
			Pagination: pagination,
		},
	}); err != nil {
		logAndInternalError(w, "render error", "error", err)
	}
}

// PostFormData holds data for the post form template.
type PostFormData struct {
	Post       *model.Post
	Errors     map[string]string
	FormValues map[string]string
	IsEdit     bool
}

// NewForm handles GET /admin/posts/new.
func (h *PostsHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, PostFormData{
		Errors:     make(map[string]string),
		FormValues: make(map[string]string),
	}, "New Post")
}

// Create handles POST /admin/posts.
func (h *PostsHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)

	if !parseFormOrRedirect(w, r, redirectAdminPostsNew) {
		return
	}

	input, formValues := postInputFromForm(r)
	errs := h.validatePostInput(r, input, "")

	if len(errs) > 0 {
		h.renderForm(w, r, PostFormData{
			Errors:     errs,
			FormValues: formValues,
		}, "New Post")
		return
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
		AuthorID:    sql.NullInt64{Int64: user.ID, Valid: true},
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		slog.Error("failed to create post", "error", err)
		flashError(w, r, redirectAdminPostsNew, "Error creating post")
		return
	}

	slog.Info("post created", "post_id", post.ID, "slug", post.Slug, "created_by", user.ID)
	flashSuccess(w, r, redirectAdminPosts, "Post created successfully")
}

// EditForm handles GET /admin/posts/{id}.
func (h *PostsHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	id, ok := h.postID(w, r)
	if !ok {
		return
	}

	post, ok := requireEntityWithRedirect(w, r, redirectAdminPosts, "post", id,
		func(id int64) (model.Post, error) { return h.queries.GetPostByID(r.Context(), id) })
	if !ok {
		return
	}

	h.renderForm(w, r, PostFormData{
		Post:       &post,
		Errors:     make(map[string]string),
		FormValues: postFormValues(post),
		IsEdit:     true,
	}, "Edit Post")
}

// Update handles POST /admin/posts/{id}.
func (h *PostsHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)

	id, ok := h.postID(w, r)
	if !ok {
		return
	}

	post, ok := requireEntityWithRedirect(w, r, redirectAdminPosts, "post", id,
		func(id int64) (model.Post, error) { return h.queries.GetPostByID(r.Context(), id) })
	if !ok {
		return
	}

	editURL := fmt.Sprintf(redirectAdminPostsID, id)
	if !parseFormOrRedirect(w, r, editURL) {
		return
	}

	input, formValues := postInputFromForm(r)
	errs := h.validatePostInput(r, input, post.Slug)

	if len(errs) > 0 {
		h.renderForm(w, r, PostFormData{
			Post:       &post,
			Errors:     errs,
			FormValues: formValues,
			IsEdit:     true,
		}, "Edit Post")
		return
	}

	_, err := h.queries.UpdatePost(r.Context(), store.UpdatePostParams{
		ID:          id,
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
		AuthorID:    post.AuthorID,
		UpdatedAt:   time.Now(),
	})
	if err != nil {
		slog.Error("failed to update post", "error", err, "post_id", id)
		flashError(w, r, editURL, "Error updating post")
		return
	}

	slog.Info("post updated", "post_id", id, "slug", input.Slug, "updated_by", user.ID)
	flashSuccess(w, r, redirectAdminPosts, "Post updated successfully")
}

// TogglePublish handles POST /admin/posts/{id}/publish.
func (h *PostsHandler) TogglePublish(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)

	id, ok := h.postID(w, r)
	if !ok {
		return
	}

	post, ok := requireEntityWithRedirect(w, r, redirectAdminPosts, "post", id,
		func(id int64) (model.Post, error) { return h.queries.GetPostByID(r.Context(), id) })
	if !ok {
		return
	}

	message := "Post published successfully"
	if post.Published {
		message = "Post unpublished successfully"
	}

	if err := h.queries.SetPostPublished(r.Context(), id, !post.Published, time.Now()); err != nil {
		slog.Error("failed to toggle publish status", "error", err, "post_id", id)
		flashError(w, r, redirectAdminPosts, "Error updating post status")
		return
	}

	slog.Info("post publish toggled", "post_id", id, "published", !post.Published, "toggled_by", user.ID)
	flashSuccess(w, r, redirectAdminPosts, message)
}

// Delete handles POST /admin/posts/{id}/delete.
func (h *PostsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)

	id, ok := h.postID(w, r)
	if !ok {
		return
	}

	if err := h.queries.DeletePost(r.Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			flashError(w, r, redirectAdminPosts, "Post not found")
		} else {
			slog.Error("failed to delete post", "error", err, "post_id", id)
			flashError(w, r, redirectAdminPosts, "Error deleting post")
		}
		return
	}

	slog.Info("post deleted", "post_id", id, "deleted_by", user.ID)
	flashSuccess(w, r, redirectAdminPosts, "Post deleted successfully")
}

func (h *PostsHandler) postID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		flashError(w, r, redirectAdminPosts, "Invalid post ID")
		return 0, false
	}
	return id, true
}

func (h *PostsHandler) renderForm(w http.ResponseWriter, r *http.Request, data PostFormData, title string) {
	if err := h.renderer.Render(w, r, "admin/post_form", render.TemplateData{
		Title: title,
		User:  middleware.GetUser(r),
		Data:  data,
	}); err != nil {
		logAndInternalError(w, "render error", "error", err)
	}
}

// postInput holds the parsed post form fields.
type postInput struct {
	Slug        string
	TitleEn     string
	TitleDe     string
	ExcerptEn   string
	ExcerptDe   string
	ContentEn   string
	ContentDe   string
	ImageURL    string
	ImageAlt    string
	MetaTitleEn string
	MetaTitleDe string
	MetaDescEn  string
	MetaDescDe  string
	Published   bool
}

func postInputFromForm(r *http.Request) (postInput, map[string]string) {
	input := postInput{
		Slug:        strings.TrimSpace(r.FormValue("slug")),
		TitleEn:     strings.TrimSpace(r.FormValue("title_en")),
		TitleDe:     strings.TrimSpace(r.FormValue("title_de")),
		ExcerptEn:   r.FormValue("excerpt_en"),
		ExcerptDe:   r.FormValue("excerpt_de"),
		ContentEn:   r.FormValue("content_en"),
		ContentDe:   r.FormValue("content_de"),
		ImageURL:    strings.TrimSpace(r.FormValue("image_url")),
		ImageAlt:    strings.TrimSpace(r.FormValue("image_alt")),
		MetaTitleEn: strings.TrimSpace(r.FormValue("meta_title_en")),
		MetaTitleDe: strings.TrimSpace(r.FormValue("meta_title_de")),
		MetaDescEn:  strings.TrimSpace(r.FormValue("meta_desc_en")),
		MetaDescDe:  strings.TrimSpace(r.FormValue("meta_desc_de")),
		Published:   r.FormValue("published") == "on" || r.FormValue("published") == "true",
	}

	// Auto-generate the slug from the English title when left blank
	if input.Slug == "" {
		input.Slug = util.Slugify(input.TitleEn)
	}

	formValues := map[string]string{
		"slug":          input.Slug,
		"title_en":      input.TitleEn,
		"title_de":      input.TitleDe,
		"excerpt_en":    input.ExcerptEn,
		"excerpt_de":    input.ExcerptDe,
		"content_en":    input.ContentEn,
		"content_de":    input.ContentDe,
		"image_url":     input.ImageURL,
		"image_alt":     input.ImageAlt,
		"meta_title_en": input.MetaTitleEn,
		"meta_title_de": input.MetaTitleDe,
		"meta_desc_en":  input.MetaDescEn,
		"meta_desc_de":  input.MetaDescDe,
	}
	if input.Published {
		formValues["published"] = "on"
	}
	return input, formValues
}

func postFormValues(p model.Post) map[string]string {
	values := map[string]string{
		"slug":          p.Slug,
		"title_en":      p.TitleEn,
		"title_de":      p.TitleDe,
		"excerpt_en":    p.ExcerptEn,
		"excerpt_de":    p.ExcerptDe,
		"content_en":    p.ContentEn,
		"content_de":    p.ContentDe,
		"image_url":     p.ImageURL,
		"image_alt":     p.ImageAlt,
		"meta_title_en": p.MetaTitleEn,
		"meta_title_de": p.MetaTitleDe,
		"meta_desc_en":  p.MetaDescEn,
		"meta_desc_de":  p.MetaDescDe,
	}
	if p.Published {
		values["published"] = "on"
	}
	return values
}

// validatePostInput checks titles and the slug. currentSlug is empty for
// new posts; on update an unchanged slug skips the uniqueness check.
func (h *PostsHandler) validatePostInput(r *http.Request, input postInput, currentSlug string) map[string]string {
	errs := make(map[string]string)

	if input.TitleEn == "" {
		errs["title_en"] = "English title is required"
	}
	if input.TitleDe == "" {
		errs["title_de"] = "German title is required"
	}

	checkExists := func() (int64, error) {
		_, err := h.queries.GetPostBySlug(r.Context(), input.Slug)
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		if err != nil {
			return 0, err
		}
		return 1, nil
	}
	if msg := ValidateSlugForUpdate(input.Slug, currentSlug, checkExists); msg != "" {
		errs["slug"] = msg
	}

	return errs
}
