// Copyright (c) 2025-2026 Avenra GmbH
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/avenra/website/internal/middleware"
	"github.com/avenra/website/internal/store"
)

func frontendRouter(t *testing.T, db *sql.DB) chi.Router {
	t.Helper()

	h := NewFrontendHandler(db, testRenderer(t), testRelay())

	r := chi.NewRouter()
	r.Get("/", h.RootRedirect)
	r.Route("/{lang}", func(r chi.Router) {
		r.Use(middleware.Locale)
		r.Get("/", h.Home)
		r.Get("/about", h.About)
		r.Get(RouteBlog, h.BlogIndex)
		r.Get(RouteBlog+RouteParamSlug, h.BlogPost)
		r.Get(RouteFaq, h.Faq)
		r.Get(RouteContact, h.ContactForm)
		r.Post(RouteContact, h.ContactSubmit)
	})
	return r
}

func createTestPost(t *testing.T, db *sql.DB, slug string, published bool, authorID sql.NullInt64) {
	t.Helper()

	now := time.Now()
	_, err := store.New(db).CreatePost(t.Context(), store.CreatePostParams{
		Slug:      slug,
		TitleEn:   "Title " + slug,
		TitleDe:   "Titel " + slug,
		ExcerptEn: "excerpt",
		ExcerptDe: "auszug",
		ContentEn: "# Heading\n\nbody",
		ContentDe: "# Titel\n\ninhalt",
		Published: published,
		AuthorID:  authorID,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}
}

func TestRootRedirect(t *testing.T) {
	db := testDB(t)
	router := frontendRouter(t, db)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/de" {
		t.Errorf("Location = %q, want /de", loc)
	}
}

func TestBlogIndex_ShowsOnlyPublished(t *testing.T) {
	db := testDB(t)
	authorID := createTestAdmin(t, db, "author@avenra.test", "hash")
	createTestPost(t, db, "visible-post", true, sql.NullInt64{Int64: authorID, Valid: true})
	createTestPost(t, db, "draft-post", false, sql.NullInt64{})
	router := frontendRouter(t, db)

	req := httptest.NewRequest(http.MethodGet, "/en/blog", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Title visible-post") {
		t.Error("published post missing from blog index")
	}
	if strings.Contains(body, "draft-post") {
		t.Error("draft post leaked into blog index")
	}
	if !strings.Contains(body, "Test Admin") {
		t.Error("author byline missing")
	}
}

func TestBlogPost_DraftIs404(t *testing.T) {
	db := testDB(t)
	createTestPost(t, db, "secret-draft", false, sql.NullInt64{})
	router := frontendRouter(t, db)

	req := httptest.NewRequest(http.MethodGet, "/en/blog/secret-draft", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("draft post status = %d, want 404", rec.Code)
	}
}

func TestBlogPost_GermanDate(t *testing.T) {
	db := testDB(t)
	createTestPost(t, db, "ein-beitrag", true, sql.NullInt64{})
	router := frontendRouter(t, db)

	req := httptest.NewRequest(http.MethodGet, "/de/blog/ein-beitrag", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Titel ein-beitrag") {
		t.Error("German title missing")
	}
	// German long date format: "2. Januar 2026"
	if !strings.Contains(body, ". ") {
		t.Errorf("expected formatted date in body: %s", body)
	}
}

func TestInvalidLocale_Is404(t *testing.T) {
	db := testDB(t)
	router := frontendRouter(t, db)

	for _, path := range []string{"/fr", "/EN/blog", "/en-US/contact"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusNotFound {
			t.Errorf("%s: status = %d, want 404", path, rec.Code)
		}
	}
}

func TestContactSubmit_Persists(t *testing.T) {
	db := testDB(t)
	router := frontendRouter(t, db)

	form := url.Values{
		"name":    {"Visitor"},
		"email":   {"visitor@example.com"},
		"subject": {"Question"},
		"message": {"Hello from the test"},
	}
	req := httptest.NewRequest(http.MethodPost, "/de/contact", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/de/contact" {
		t.Errorf("Location = %q", loc)
	}

	count, err := store.New(db).CountContactSubmissions(t.Context())
	if err != nil {
		t.Fatalf("CountContactSubmissions: %v", err)
	}
	if count != 1 {
		t.Errorf("stored submissions = %d, want 1", count)
	}
}

func TestContactSubmit_InvalidEmailRerenders(t *testing.T) {
	db := testDB(t)
	router := frontendRouter(t, db)

	form := url.Values{
		"name":    {"Visitor"},
		"email":   {"not-an-email"},
		"subject": {"Question"},
		"message": {"Hello"},
	}
	req := httptest.NewRequest(http.MethodPost, "/en/contact", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 re-render", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "err-email") {
		t.Error("email field error missing from re-render")
	}

	count, _ := store.New(db).CountContactSubmissions(t.Context())
	if count != 0 {
		t.Errorf("invalid submission was stored, count = %d", count)
	}
}
