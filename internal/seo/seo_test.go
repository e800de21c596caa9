// Copyright (c) 2025-2026 Avenra GmbH
// SPDX-License-Identifier: GPL-3.0-or-later

package seo

import (
	"strings"
	"testing"
	"time"
)

func TestGenerateSitemap(t *testing.T) {
	posts := []SitemapPost{
		{Slug: "launch", UpdatedAt: time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)},
		{Slug: "hiring"},
	}

	data, err := GenerateSitemap("https://avenra.ch", []string{"de", "en"}, posts)
	if err != nil {
		t.Fatalf("GenerateSitemap: %v", err)
	}
	xml := string(data)

	if !strings.HasPrefix(xml, "<?xml") {
		t.Error("expected XML header")
	}
	for _, want := range []string{
		"<loc>https://avenra.ch/de</loc>",
		"<loc>https://avenra.ch/en</loc>",
		"<loc>https://avenra.ch/de/about</loc>",
		"<loc>https://avenra.ch/en/contact</loc>",
		"<loc>https://avenra.ch/de/blog/launch</loc>",
		"<loc>https://avenra.ch/en/blog/launch</loc>",
		"<lastmod>2026-03-02T12:00:00Z</lastmod>",
	} {
		if !strings.Contains(xml, want) {
			t.Errorf("sitemap missing %s", want)
		}
	}

	// A post without a timestamp gets no lastmod entry
	if strings.Count(xml, "<lastmod>") != 2 {
		t.Errorf("expected 2 lastmod entries, got %d", strings.Count(xml, "<lastmod>"))
	}
}

func TestGenerateRobots(t *testing.T) {
	robots := GenerateRobots(RobotsConfig{SiteURL: "https://avenra.ch/"})

	for _, want := range []string{
		"User-agent: *",
		"Disallow: /admin",
		"Disallow: /api",
		"Allow: /",
		"Sitemap: https://avenra.ch/sitemap.xml",
	} {
		if !strings.Contains(robots, want) {
			t.Errorf("robots.txt missing %q:\n%s", want, robots)
		}
	}
}

func TestGenerateRobots_DisallowAll(t *testing.T) {
	robots := GenerateRobots(RobotsConfig{SiteURL: "https://staging.avenra.ch", DisallowAll: true})

	if !strings.Contains(robots, "Disallow: /\n") {
		t.Errorf("expected full disallow:\n%s", robots)
	}
	if strings.Contains(robots, "Sitemap:") {
		t.Error("staging robots.txt must not advertise a sitemap")
	}
}

func TestGenerateSecurityTxt(t *testing.T) {
	txt := GenerateSecurityTxt(SecurityTxtConfig{
		Contact:            "mailto:security@avenra.ch",
		Expires:            time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC),
		PreferredLanguages: "de, en",
	})

	for _, want := range []string{
		"Contact: mailto:security@avenra.ch",
		"Expires: 2027-01-01T00:00:00Z",
		"Preferred-Languages: de, en",
	} {
		if !strings.Contains(txt, want) {
			t.Errorf("security.txt missing %q:\n%s", want, txt)
		}
	}
}

func TestGenerateSecurityTxt_DefaultExpiry(t *testing.T) {
	txt := GenerateSecurityTxt(SecurityTxtConfig{Contact: "mailto:security@avenra.ch"})

	if !strings.Contains(txt, "Expires: ") {
		t.Errorf("expected a default expiry:\n%s", txt)
	}
}
