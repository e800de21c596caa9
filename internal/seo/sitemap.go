// Copyright (c) 2025-2026 Avenra GmbH
// SPDX-License-Identifier: GPL-3.0-or-later

// Package seo generates the crawler-facing files: sitemap.xml, robots.txt
// and security.txt.
package seo

import (
	"encoding/xml"
	"time"
)

// XMLNamespace is the sitemap XML namespace.
const XMLNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// ChangeFreq represents the change frequency of a URL.
type ChangeFreq string

// Valid change frequency values.
const (
	ChangeFreqDaily   ChangeFreq = "daily"
	ChangeFreqWeekly  ChangeFreq = "weekly"
	ChangeFreqMonthly ChangeFreq = "monthly"
	ChangeFreqYearly  ChangeFreq = "yearly"
)

// SitemapURL represents a single URL entry in the sitemap.
type SitemapURL struct {
	Loc        string     `xml:"loc"`
	LastMod    string     `xml:"lastmod,omitempty"`
	ChangeFreq ChangeFreq `xml:"changefreq,omitempty"`
	Priority   string     `xml:"priority,omitempty"`
}

// Sitemap represents the complete sitemap document.
type Sitemap struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []SitemapURL `xml:"url"`
}

// SitemapPost contains the data needed to add a blog post to the sitemap.
type SitemapPost struct {
	Slug      string
	UpdatedAt time.Time
}

// staticPages are the fixed marketing pages under each language prefix,
// paired with their relative crawl priority.
var staticPages = []struct {
	path     string
	priority string
}{
	{"/about", "0.8"},
	{"/services", "0.8"},
	{"/blog", "0.7"},
	{"/faq", "0.6"},
	{"/contact", "0.6"},
}

// SitemapBuilder builds sitemap XML covering every supported language
// prefix plus the published posts.
type SitemapBuilder struct {
	siteURL string
	locales []string
	urls    []SitemapURL
}

// NewSitemapBuilder creates a builder for the given base URL and language
// prefixes. The base URL must not end with a slash.
func NewSitemapBuilder(siteURL string, locales []string) *SitemapBuilder {
	return &SitemapBuilder{
		siteURL: siteURL,
		locales: locales,
	}
}

// AddStaticPages adds the language homes and fixed marketing pages.
func (b *SitemapBuilder) AddStaticPages() {
	for _, loc := range b.locales {
		base := b.siteURL + "/" + loc
		b.urls = append(b.urls, SitemapURL{
			Loc:        base,
			ChangeFreq: ChangeFreqWeekly,
			Priority:   "1.0",
		})
		for _, p := range staticPages {
			b.urls = append(b.urls, SitemapURL{
				Loc:        base + p.path,
				ChangeFreq: ChangeFreqWeekly,
				Priority:   p.priority,
			})
		}
	}
}

// AddPost adds one published post under every language prefix.
func (b *SitemapBuilder) AddPost(post SitemapPost) {
	for _, loc := range b.locales {
		url := SitemapURL{
			Loc:        b.siteURL + "/" + loc + "/blog/" + post.Slug,
			ChangeFreq: ChangeFreqMonthly,
			Priority:   "0.7",
		}
		if !post.UpdatedAt.IsZero() {
			url.LastMod = post.UpdatedAt.Format(time.RFC3339)
		}
		b.urls = append(b.urls, url)
	}
}

// AddPosts adds multiple posts to the sitemap.
func (b *SitemapBuilder) AddPosts(posts []SitemapPost) {
	for _, p := range posts {
		b.AddPost(p)
	}
}

// Build generates the sitemap XML.
func (b *SitemapBuilder) Build() ([]byte, error) {
	sitemap := Sitemap{
		XMLNS: XMLNamespace,
		URLs:  b.urls,
	}

	output := []byte(xml.Header)
	xmlBytes, err := xml.MarshalIndent(sitemap, "", "  ")
	if err != nil {
		return nil, err
	}

	return append(output, xmlBytes...), nil
}

// GenerateSitemap builds the full sitemap for the site in one call.
func GenerateSitemap(siteURL string, locales []string, posts []SitemapPost) ([]byte, error) {
	builder := NewSitemapBuilder(siteURL, locales)
	builder.AddStaticPages()
	builder.AddPosts(posts)
	return builder.Build()
}
