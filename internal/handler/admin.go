// Copyright (c) 2025-2026 Avenra GmbH
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"log/slog"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/avenra/website/internal/middleware"
	"github.com/avenra/website/internal/model"
	"github.com/avenra/website/internal/render"
	"github.com/avenra/website/internal/store"
)

// DashboardStats holds the statistics displayed on the dashboard.
type DashboardStats struct {
	TotalPosts     int64
	PublishedPosts int64
	TotalFaqs      int64
	TotalTeam      int64
	TotalContacts  int64
}

// RecentContact represents a recent contact submission for dashboard display.
type RecentContact struct {
	ID        int64
	Name      string
	Email     string
	Subject   string
	CreatedAt string
}

// DashboardData holds all dashboard data including stats and recent items.
type DashboardData struct {
	Stats          DashboardStats
	RecentContacts []RecentContact
}

// AdminHandler handles the admin dashboard.
type AdminHandler struct {
	queries  *store.Queries
	renderer *render.Renderer
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(db *sql.DB, renderer *render.Renderer) *AdminHandler {
	return &AdminHandler{
		queries:  store.New(db),
		renderer: renderer,
	}
}

// Dashboard renders the admin dashboard with stats and recent activity.
// The counts are independent queries, so they run as a small fan-out.
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	ctx := r.Context()

	stats := DashboardStats{}
	var recent []model.ContactSubmission

	g, gctx := errgroup.WithContext(ctx)
	counts := []struct {
		dst   *int64
		name  string
		query func() (int64, error)
	}{
		{&stats.TotalPosts, "posts", func() (int64, error) { return h.queries.CountPosts(gctx) }},
		{&stats.PublishedPosts, "published posts", func() (int64, error) { return h.queries.CountPublishedPosts(gctx) }},
		{&stats.TotalFaqs, "faqs", func() (int64, error) { return h.queries.CountFaqs(gctx) }},
		{&stats.TotalTeam, "team members", func() (int64, error) { return h.queries.CountTeamMembers(gctx) }},
		{&stats.TotalContacts, "contacts", func() (int64, error) { return h.queries.CountContactSubmissions(gctx) }},
	}
	for _, c := range counts {
		g.Go(func() error {
			n, err := c.query()
			if err != nil {
				slog.Error("failed to count "+c.name, "error", err)
				return nil
			}
			*c.dst = n
			return nil
		})
	}
	g.Go(func() error {
		submissions, err := h.queries.ListRecentContactSubmissions(gctx, 5)
		if err != nil {
			slog.Error("failed to get recent contacts", "error", err)
			return nil
		}
		recent = submissions
		return nil
	})
	_ = g.Wait()

	data := DashboardData{Stats: stats}
	for _, s := range recent {
		data.RecentContacts = append(data.RecentContacts, RecentContact{
			ID:        s.ID,
			Name:      s.Name,
			Email:     s.Email,
			Subject:   s.Subject,
			CreatedAt: s.CreatedAt.Format("Jan 2, 2006 3:04 PM"),
		})
	}

	if err := h.renderer.Render(w, r, "admin/dashboard", render.TemplateData{
		Title: "Dashboard",
		User:  user,
		Data:  data,
	}); err != nil {
		logAndInternalError(w, "render error", "error", err)
	}
}
