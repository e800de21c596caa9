// Copyright (c) 2025-2026 Avenra GmbH
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler implements HTTP handlers for the public site and the
// admin interface.
package handler

import (
	"context"
	"database/sql"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/avenra/website/internal/i18n"
	"github.com/avenra/website/internal/locale"
	"github.com/avenra/website/internal/middleware"
	"github.com/avenra/website/internal/model"
	"github.com/avenra/website/internal/relay"
	"github.com/avenra/website/internal/render"
	"github.com/avenra/website/internal/store"
)

// PostView represents a blog post with computed fields for template rendering.
type PostView struct {
	ID            int64
	Slug          string
	Title         string
	Excerpt       string
	Content       template.HTML
	ImageURL      string
	ImageAlt      string
	AuthorName    string
	URL           string
	Published     time.Time
	PublishedDate string
}

// TeamMemberView represents a team member for template rendering.
type TeamMemberView struct {
	Name     string
	Position string
	ImageURL string
}

// FaqView represents a FAQ entry for template rendering.
type FaqView struct {
	Question string
	Answer   template.HTML
}

// Pagination holds pagination data for the blog index.
type Pagination struct {
	CurrentPage int
	TotalPages  int
	HasPrev     bool
	HasNext     bool
	PrevURL     string
	NextURL     string
}

// FrontendHandler handles public site routes.
type FrontendHandler struct {
	queries  *store.Queries
	renderer *render.Renderer
	relay    *relay.Relay
}

// NewFrontendHandler creates a new FrontendHandler.
func NewFrontendHandler(db *sql.DB, renderer *render.Renderer, rl *relay.Relay) *FrontendHandler {
	return &FrontendHandler{
		queries:  store.New(db),
		renderer: renderer,
		relay:    rl,
	}
}

// RootRedirect sends visitors of the bare root path to the default locale.
func (h *FrontendHandler) RootRedirect(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/"+locale.Default, http.StatusFound)
}

// Home renders the landing page.
func (h *FrontendHandler) Home(w http.ResponseWriter, r *http.Request) {
	loc := middleware.GetLocale(r)
	h.render(w, r, "pages/home", render.TemplateData{
		Title:       i18n.T(loc, "home.hero.title"),
		Description: i18n.T(loc, "home.hero.subtitle"),
		Locale:      loc,
	})
}

// About renders the about page with the visible team roster.
func (h *FrontendHandler) About(w http.ResponseWriter, r *http.Request) {
	loc := middleware.GetLocale(r)

	var team []TeamMemberView
	members, err := h.queries.ListVisibleTeamMembers(r.Context())
	if err != nil {
		slog.Error("failed to list team members", "error", err)
	} else {
		for _, m := range members {
			team = append(team, TeamMemberView{
				Name:     m.Name,
				Position: m.Position,
				ImageURL: m.ImageURL,
			})
		}
	}

	h.render(w, r, "pages/about", render.TemplateData{
		Title:       i18n.T(loc, "about.title"),
		Description: i18n.T(loc, "about.intro"),
		Locale:      loc,
		Data:        team,
	})
}

// Services renders the services page.
func (h *FrontendHandler) Services(w http.ResponseWriter, r *http.Request) {
	loc := middleware.GetLocale(r)
	h.render(w, r, "pages/services", render.TemplateData{
		Title:       i18n.T(loc, "services.title"),
		Description: i18n.T(loc, "services.intro"),
		Locale:      loc,
	})
}

// BlogIndexData holds data for the blog index page.
type BlogIndexData struct {
	Posts      []PostView
	Pagination Pagination
}

// BlogIndex renders the paginated list of published posts.
func (h *FrontendHandler) BlogIndex(w http.ResponseWriter, r *http.Request) {
	loc := middleware.GetLocale(r)
	page := getPageNum(r)

	var views []PostView
	posts, err := h.queries.ListPublishedPosts(r.Context(), store.ListPublishedPostsParams{
		Limit:  int64(blogPerPage),
		Offset: int64((page - 1) * blogPerPage),
	})
	if err != nil {
		slog.Error("failed to list posts", "error", err)
	} else {
		authors := h.resolveAuthors(r.Context(), posts)
		for _, p := range posts {
			views = append(views, h.postToView(p, loc, authors, false))
		}
	}

	var total int64
	if total, err = h.queries.CountPublishedPosts(r.Context()); err != nil {
		slog.Error("failed to count posts", "error", err)
	}

	h.render(w, r, "pages/blog", render.TemplateData{
		Title:       i18n.T(loc, "blog.title"),
		Description: i18n.T(loc, "blog.intro"),
		Locale:      loc,
		Data: BlogIndexData{
			Posts:      views,
			Pagination: h.buildPagination(page, total, blogPerPage, "/"+loc+RouteBlog),
		},
	})
}

// BlogPost renders a single published post, or 404 for drafts and
// unknown slugs.
func (h *FrontendHandler) BlogPost(w http.ResponseWriter, r *http.Request) {
	loc := middleware.GetLocale(r)
	slug := chi.URLParam(r, "slug")

	post, err := h.queries.GetPublishedPostBySlug(r.Context(), slug)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			slog.Error("failed to get post", "error", err, "slug", slug)
		}
		h.renderNotFound(w, r)
		return
	}

	authors := h.resolveAuthors(r.Context(), []model.Post{post})
	view := h.postToView(post, loc, authors, true)

	h.render(w, r, "pages/blog_post", render.TemplateData{
		Title:       post.MetaTitle(loc),
		Description: post.MetaDesc(loc),
		Locale:      loc,
		Data:        view,
	})
}

// Faq renders the visible FAQ entries.
func (h *FrontendHandler) Faq(w http.ResponseWriter, r *http.Request) {
	loc := middleware.GetLocale(r)

	var views []FaqView
	faqs, err := h.queries.ListVisibleFaqs(r.Context())
	if err != nil {
		slog.Error("failed to list faqs", "error", err)
	} else {
		for _, f := range faqs {
			views = append(views, FaqView{
				Question: f.Question(loc),
				Answer:   render.Markdown(f.Answer(loc)),
			})
		}
	}

	h.render(w, r, "pages/faq", render.TemplateData{
		Title:       i18n.T(loc, "faq.title"),
		Description: i18n.T(loc, "faq.intro"),
		Locale:      loc,
		Data:        views,
	})
}

// ContactFormData holds data for re-rendering the contact form with errors.
type ContactFormData struct {
	Input  ContactInput
	Errors map[string]string
}

// ContactForm renders the contact page.
func (h *FrontendHandler) ContactForm(w http.ResponseWriter, r *http.Request) {
	loc := middleware.GetLocale(r)
	h.render(w, r, "pages/contact", render.TemplateData{
		Title:       i18n.T(loc, "contact.title"),
		Description: i18n.T(loc, "contact.intro"),
		Locale:      loc,
		Data:        ContactFormData{},
	})
}

// ContactSubmit handles the contact form submission: validate, persist,
// relay asynchronously, and redirect back with a flash message.
func (h *FrontendHandler) ContactSubmit(w http.ResponseWriter, r *http.Request) {
	loc := middleware.GetLocale(r)
	contactURL := "/" + loc + RouteContact

	if !parseFormOrRedirect(w, r, contactURL) {
		return
	}

	input := ContactInput{
		Name:    r.FormValue("name"),
		Email:   r.FormValue("email"),
		Phone:   r.FormValue("phone"),
		Company: r.FormValue("company"),
		Subject: r.FormValue("subject"),
		Message: r.FormValue("message"),
	}
	input.Trim()

	if errs := ValidateContactInput(input); len(errs) > 0 {
		h.render(w, r, "pages/contact", render.TemplateData{
			Title:  i18n.T(loc, "contact.title"),
			Locale: loc,
			Data:   ContactFormData{Input: input, Errors: errs},
		})
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
		flashError(w, r, contactURL, i18n.T(loc, "contact.form.error"))
		return
	}

	// Delivery failures are logged by the relay; the visitor's submission
	// is already stored.
	h.relay.ForwardAsync(submission)

	flashSuccess(w, r, contactURL, i18n.T(loc, "contact.form.success", i18n.Params{"name": submission.Name}))
}

// Privacy renders the privacy policy page.
func (h *FrontendHandler) Privacy(w http.ResponseWriter, r *http.Request) {
	loc := middleware.GetLocale(r)
	h.render(w, r, "pages/privacy", render.TemplateData{
		Title:  i18n.T(loc, "privacy.title"),
		Locale: loc,
	})
}

// Terms renders the terms of service page.
func (h *FrontendHandler) Terms(w http.ResponseWriter, r *http.Request) {
	loc := middleware.GetLocale(r)
	h.render(w, r, "pages/terms", render.TemplateData{
		Title:  i18n.T(loc, "terms.title"),
		Locale: loc,
	})
}

// NotFound renders the localized 404 page.
func (h *FrontendHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.renderNotFound(w, r)
}

// resolveAuthors fetches the distinct authors of the given posts with a
// single query and returns a map keyed by user ID. Lookup failures log
// and degrade to empty bylines.
func (h *FrontendHandler) resolveAuthors(ctx context.Context, posts []model.Post) map[int64]string {
	var ids []int64
	seen := make(map[int64]bool)
	for _, p := range posts {
		if !p.AuthorID.Valid || seen[p.AuthorID.Int64] {
			continue
		}
		seen[p.AuthorID.Int64] = true
		ids = append(ids, p.AuthorID.Int64)
	}
	if len(ids) == 0 {
		return nil
	}

	names := make(map[int64]string, len(ids))
	users, err := h.queries.ListUsersByIDs(ctx, ids)
	if err != nil {
		slog.Error("failed to resolve post authors", "error", err)
		return names
	}
	for _, u := range users {
		names[u.ID] = u.Name
	}
	return names
}

func (h *FrontendHandler) postToView(p model.Post, loc string, authors map[int64]string, fullContent bool) PostView {
	view := PostView{
		ID:            p.ID,
		Slug:          p.Slug,
		Title:         p.Title(loc),
		Excerpt:       p.Excerpt(loc),
		ImageURL:      p.ImageURL,
		ImageAlt:      p.ImageAlt,
		URL:           "/" + loc + RouteBlog + "/" + p.Slug,
		Published:     p.CreatedAt,
		PublishedDate: render.FormatDate(p.CreatedAt, loc),
	}
	if p.AuthorID.Valid {
		view.AuthorName = authors[p.AuthorID.Int64]
	}
	if fullContent {
		view.Content = render.Markdown(p.Content(loc))
	}
	return view
}

func (h *FrontendHandler) buildPagination(currentPage int, totalItems int64, perPage int, baseURL string) Pagination {
	totalPages := int((totalItems + int64(perPage) - 1) / int64(perPage))
	if totalPages < 1 {
		totalPages = 1
	}
	p := Pagination{
		CurrentPage: currentPage,
		TotalPages:  totalPages,
		HasPrev:     currentPage > 1,
		HasNext:     currentPage < totalPages,
	}
	if p.HasPrev {
		p.PrevURL = baseURL + "?page=" + strconv.Itoa(currentPage-1)
	}
	if p.HasNext {
		p.NextURL = baseURL + "?page=" + strconv.Itoa(currentPage+1)
	}
	return p
}

func (h *FrontendHandler) render(w http.ResponseWriter, r *http.Request, name string, data render.TemplateData) {
	if err := h.renderer.Render(w, r, name, data); err != nil {
		slog.Error("render error", "error", err, "template", name)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func (h *FrontendHandler) renderNotFound(w http.ResponseWriter, r *http.Request) {
	loc := middleware.GetLocale(r)
	w.WriteHeader(http.StatusNotFound)
	if err := h.renderer.Render(w, r, "pages/not_found", render.TemplateData{
		Title:  i18n.T(loc, "common.notFound"),
		Locale: loc,
	}); err != nil {
		slog.Error("render error", "error", err, "template", "pages/not_found")
	}
}
