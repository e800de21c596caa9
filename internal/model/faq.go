// Copyright (c) 2025-2026 Avenra GmbH
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"time"

	"github.com/avenra/website/internal/locale"
)

// Faq is a bilingual question/answer pair. SortOrder is the display sort key
// (ascending, not unique); hidden entries never appear on public pages.
type Faq struct {
	ID         int64     `json:"id"`
	QuestionEn string    `json:"question_en"`
	QuestionDe string    `json:"question_de,omitempty"`
	AnswerEn   string    `json:"answer_en"`
	AnswerDe   string    `json:"answer_de,omitempty"`
	SortOrder  int64     `json:"sort_order"`
	Visible    bool      `json:"visible"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Question returns the localized question.
func (f *Faq) Question(loc string) string {
	return locale.Pick(f.QuestionEn, f.QuestionDe, loc)
}

// Answer returns the localized answer.
func (f *Faq) Answer(loc string) string {
	return locale.Pick(f.AnswerEn, f.AnswerDe, loc)
}
