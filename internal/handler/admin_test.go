// Copyright (c) 2025-2026 Avenra GmbH
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/avenra/website/internal/store"
)

func TestDashboard_StatsAndRecentContacts(t *testing.T) {
	db := testDB(t)
	queries := store.New(db)

	now := time.Now()
	for i, name := range []string{"Alice", "Bruno", "Carla", "Dario", "Elena", "Franz", "Gina"} {
		_, err := queries.CreateContactSubmission(t.Context(), store.CreateContactSubmissionParams{
			Name:      name,
			Email:     strings.ToLower(name) + "@example.com",
			Subject:   "Subject",
			Message:   "Message",
			CreatedAt: now.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("CreateContactSubmission: %v", err)
		}
	}
	createTestPost(t, db, "one", true, sql.NullInt64{})
	createTestPost(t, db, "two", false, sql.NullInt64{})

	h := NewAdminHandler(db, testRenderer(t))
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	rec := httptest.NewRecorder()
	h.Dashboard(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "posts:2") {
		t.Errorf("post count missing: %s", body)
	}
	// Only the five newest submissions appear.
	if !strings.Contains(body, "Gina") || !strings.Contains(body, "Carla") {
		t.Error("recent contacts missing from dashboard")
	}
	if strings.Contains(body, "Alice") || strings.Contains(body, "Bruno") {
		t.Error("dashboard shows more than the five newest contacts")
	}
}
