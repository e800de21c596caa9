// Copyright (c) 2025-2026 Avenra GmbH
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql"
	"time"

	"github.com/avenra/website/internal/locale"
)

// Post is a bilingual blog post. The English fields are required; the German
// fields are optional and fall back to English when absent. Unpublished
// posts never appear in public listings.
type Post struct {
	ID          int64         `json:"id"`
	Slug        string        `json:"slug"`
	TitleEn     string        `json:"title_en"`
	TitleDe     string        `json:"title_de,omitempty"`
	ExcerptEn   string        `json:"excerpt_en,omitempty"`
	ExcerptDe   string        `json:"excerpt_de,omitempty"`
	ContentEn   string        `json:"content_en"`
	ContentDe   string        `json:"content_de,omitempty"`
	ImageURL    string        `json:"image_url,omitempty"`
	ImageAlt    string        `json:"image_alt,omitempty"`
	MetaTitleEn string        `json:"meta_title_en,omitempty"`
	MetaTitleDe string        `json:"meta_title_de,omitempty"`
	MetaDescEn  string        `json:"meta_desc_en,omitempty"`
	MetaDescDe  string        `json:"meta_desc_de,omitempty"`
	Published   bool          `json:"published"`
	AuthorID    sql.NullInt64 `json:"author_id,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// Title returns the localized post title.
func (p *Post) Title(loc string) string {
	return locale.Pick(p.TitleEn, p.TitleDe, loc)
}

// Excerpt returns the localized post excerpt.
func (p *Post) Excerpt(loc string) string {
	return locale.Pick(p.ExcerptEn, p.ExcerptDe, loc)
}

// Content returns the localized post body.
func (p *Post) Content(loc string) string {
	return locale.Pick(p.ContentEn, p.ContentDe, loc)
}

// MetaTitle returns the localized meta title, falling back to the post title.
func (p *Post) MetaTitle(loc string) string {
	if t := locale.Pick(p.MetaTitleEn, p.MetaTitleDe, loc); t != "" {
		return t
	}
	return p.Title(loc)
}

// MetaDesc returns the localized meta description.
func (p *Post) MetaDesc(loc string) string {
	return locale.Pick(p.MetaDescEn, p.MetaDescDe, loc)
}
