// Copyright (c) 2025-2026 Avenra GmbH
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"log/slog"
	"os"
	"testing"
	"testing/fstest"
	"time"

	"github.com/avenra/website/internal/relay"
	"github.com/avenra/website/internal/render"
	"github.com/avenra/website/internal/store"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

// testDB creates a temporary test database with migrations applied.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	f, err := os.CreateTemp("", "avenra-handler-test-*.db")
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

func testTemplatesFS() fstest.MapFS {
	content := func(body string) *fstest.MapFile {
		return &fstest.MapFile{Data: []byte(`{{define "content"}}` + body + `{{end}}`)}
	}
	return fstest.MapFS{
		"layouts/base.html": {Data: []byte(
			`{{define "base"}}<html><body>{{block "content" .}}{{end}}</body></html>{{end}}`)},
		"layouts/admin.html": {Data: []byte(
			`{{define "nav"}}<nav>admin</nav>{{end}}`)},
		"partials/flash.html": {Data: []byte(
			`{{define "flash"}}{{if .Flash}}<div class="flash-{{.FlashType}}">{{.Flash}}</div>{{end}}{{end}}`)},
		"pages/home.html":      content(`<h1>{{.Title}}</h1>`),
		"pages/about.html":     content(`{{range .Data}}<p>{{.Name}} - {{.Position}}</p>{{end}}`),
		"pages/services.html":  content(`<h1>{{.Title}}</h1>`),
		"pages/blog.html":      content(`{{range .Data.Posts}}<article>{{.Title}}|{{.AuthorName}}</article>{{end}}`),
		"pages/blog_post.html": content(`<h1>{{.Data.Title}}</h1><time>{{.Data.PublishedDate}}</time>{{.Data.Content}}`),
		"pages/faq.html":       content(`{{range .Data}}<dt>{{.Question}}</dt>{{end}}`),
		"pages/contact.html":   content(`{{template "flash" .}}{{range $f, $m := .Data.Errors}}<span class="err-{{$f}}">{{$m}}</span>{{end}}<form></form>`),
		"pages/privacy.html":   content(`<h1>{{.Title}}</h1>`),
		"pages/terms.html":     content(`<h1>{{.Title}}</h1>`),
		"pages/not_found.html": content(`<h1>{{.Title}}</h1>`),
		"auth/login.html":      content(`{{template "flash" .}}<form id="login"></form>`),
		"admin/dashboard.html": content(`{{template "nav" .}}<p>posts:{{.Data.Stats.TotalPosts}}</p>{{range .Data.RecentContacts}}<li>{{.Name}}</li>{{end}}`),
		"admin/settings.html":  content(`{{template "flash" .}}<form id="password"></form>`),
	}
}

func testRenderer(t *testing.T) *render.Renderer {
	t.Helper()

	r, err := render.New(render.Config{TemplatesFS: testTemplatesFS()})
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}
	return r
}

func testRelay() *relay.Relay {
	return relay.New("", slog.New(slog.DiscardHandler))
}

func createTestAdmin(t *testing.T, db *sql.DB, email, passwordHash string) int64 {
	t.Helper()

	now := time.Now()
	user, err := store.New(db).CreateUser(t.Context(), store.CreateUserParams{
		Email:        email,
		PasswordHash: passwordHash,
		Name:         "Test Admin",
		Role:         "admin",
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	return user.ID
}
