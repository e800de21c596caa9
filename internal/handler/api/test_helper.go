// Copyright (c) 2025-2026 Avenra GmbH
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/avenra/website/internal/auth"
	"github.com/avenra/website/internal/imaging"
	"github.com/avenra/website/internal/middleware"
	"github.com/avenra/website/internal/relay"
	"github.com/avenra/website/internal/store"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

// testDB creates a temporary test database with migrations applied.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	f, err := os.CreateTemp("", "avenra-api-test-*.db")
	if err != nil {
		t.Fatalf("creating temp file: %v", err)
	}
	dbPath := f.Name()
	f.Close()

	db, err := store.Open(store.DriverSQLite, dbPath)
	if err != nil {
		os.Remove(dbPath)
		t.Fatalf("Open: %v", err)
	}
	if err := store.Migrate(db, store.DriverSQLite); err != nil {
		db.Close()
		os.Remove(dbPath)
		t.Fatalf("Migrate: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
		os.Remove(dbPath)
	})

	return db
}

// testRouter assembles the API routes the way main does, minus CSRF.
func testRouter(t *testing.T, db *sql.DB) chi.Router {
	t.Helper()

	h := NewHandler(db)
	authHandler := NewAuthHandler(db, testSecret, nil, true)
	contactHandler := NewContactHandler(db, relay.New("", slog.New(slog.DiscardHandler)))
	teamHandler := NewTeamHandler(db, imaging.NewProcessor(t.TempDir()))

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Get("/status", h.Status)
		r.Post("/contact", contactHandler.Submit)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.Get("/session", authHandler.Session)
			r.Post("/logout", authHandler.Logout)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireSession(testSecret, db))

			r.Route("/posts", func(r chi.Router) {
				r.Get("/", h.ListPosts)
				r.Post("/", h.CreatePost)
				r.Get("/{id}", h.GetPost)
				r.Put("/{id}", h.UpdatePost)
				r.Patch("/{id}", h.PatchPost)
				r.Delete("/{id}", h.DeletePost)
				r.Post("/{id}/toggle-publish", h.TogglePostPublish)
			})

			r.Route("/faqs", func(r chi.Router) {
				r.Get("/", h.ListFaqs)
				r.Post("/", h.CreateFaq)
				r.Get("/{id}", h.GetFaq)
				r.Put("/{id}", h.UpdateFaq)
				r.Patch("/{id}", h.PatchFaq)
				r.Delete("/{id}", h.DeleteFaq)
				r.Post("/{id}/toggle-visibility", h.ToggleFaqVisibility)
			})

			r.Route("/team", func(r chi.Router) {
				r.Get("/", teamHandler.List)
				r.Post("/", teamHandler.Create)
				r.Get("/{id}", teamHandler.Get)
				r.Put("/{id}", teamHandler.Update)
				r.Patch("/{id}", teamHandler.Patch)
				r.Delete("/{id}", teamHandler.Delete)
				r.Post("/{id}/upload", teamHandler.UploadPhoto)
				r.Post("/{id}/toggle-visibility", teamHandler.ToggleVisibility)
			})

			r.Get("/contacts", h.ListContacts)
			r.Get("/contacts/{id}", h.GetContact)
		})
	})
	return r
}

// createTestAdmin stores an admin user with the given plain password and
// returns its session cookie.
func createTestAdmin(t *testing.T, db *sql.DB, email, password string) *http.Cookie {
	t.Helper()

	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	now := time.Now()
	user, err := store.New(db).CreateUser(t.Context(), store.CreateUserParams{
		Email:        email,
		PasswordHash: hash,
		Name:         "Test Admin",
		Role:         "admin",
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	token, err := auth.NewSessionToken(testSecret, user.ID, user.Email, user.Role, time.Now())
	if err != nil {
		t.Fatalf("NewSessionToken: %v", err)
	}
	return &http.Cookie{Name: auth.SessionCookieName, Value: token}
}
