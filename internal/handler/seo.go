// Copyright (c) 2025-2026 Avenra GmbH
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/avenra/website/internal/locale"
	"github.com/avenra/website/internal/seo"
	"github.com/avenra/website/internal/store"
)

// sitemapPostLimit caps how many posts the sitemap lists.
const sitemapPostLimit = 1000

// SEOHandler serves the crawler-facing files.
type SEOHandler struct {
	queries     *store.Queries
	siteURL     string
	disallowAll bool
}

// NewSEOHandler creates a new SEOHandler. disallowAll blocks all crawlers,
// for deployments that must stay out of search indexes.
func NewSEOHandler(db *sql.DB, siteURL string, disallowAll bool) *SEOHandler {
	return &SEOHandler{
		queries:     store.New(db),
		siteURL:     siteURL,
		disallowAll: disallowAll,
	}
}

// Sitemap serves sitemap.xml with the static pages and published posts.
func (h *SEOHandler) Sitemap(w http.ResponseWriter, r *http.Request) {
	var sitemapPosts []seo.SitemapPost
	posts, err := h.queries.ListPublishedPosts(r.Context(), store.ListPublishedPostsParams{
		Limit: sitemapPostLimit,
	})
	if err != nil {
		slog.Error("failed to list posts for sitemap", "error", err)
	} else {
		for _, p := range posts {
			sitemapPosts = append(sitemapPosts, seo.SitemapPost{
				Slug:      p.Slug,
				UpdatedAt: p.UpdatedAt,
			})
		}
	}

	data, err := seo.GenerateSitemap(h.siteURL, locale.Supported, sitemapPosts)
	if err != nil {
		logAndInternalError(w, "failed to generate sitemap", "error", err)
		return
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	_, _ = w.Write(data)
}

// Robots serves robots.txt.
func (h *SEOHandler) Robots(w http.ResponseWriter, _ *http.Request) {
	robots := seo.GenerateRobots(seo.RobotsConfig{
		SiteURL:     h.siteURL,
		DisallowAll: h.disallowAll,
	})
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(robots))
}

// SecurityTxt serves /.well-known/security.txt.
func (h *SEOHandler) SecurityTxt(w http.ResponseWriter, _ *http.Request) {
	txt := seo.GenerateSecurityTxt(seo.SecurityTxtConfig{
		Contact:            "mailto:security@avenra.ch",
		PreferredLanguages: "de, en",
		Canonical:          h.siteURL + "/.well-known/security.txt",
	})
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(txt))
}
