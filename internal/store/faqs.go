// Copyright (c) 2025-2026 Avenra GmbH
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/avenra/website/internal/model"
)

const faqColumns = `id, question_en, question_de, answer_en, answer_de,
	sort_order, visible, created_at, updated_at`

func scanFaq(row *sql.Row) (model.Faq, error) {
	var f model.Faq
	err := row.Scan(
		&f.ID, &f.QuestionEn, &f.QuestionDe, &f.AnswerEn, &f.AnswerDe,
		&f.SortOrder, &f.Visible, &f.CreatedAt, &f.UpdatedAt,
	)
	return f, err
}

func scanFaqs(rows *sql.Rows) ([]model.Faq, error) {
	defer rows.Close()

	var faqs []model.Faq
	for rows.Next() {
		var f model.Faq
		if err := rows.Scan(
			&f.ID, &f.QuestionEn, &f.QuestionDe, &f.AnswerEn, &f.AnswerDe,
			&f.SortOrder, &f.Visible, &f.CreatedAt, &f.UpdatedAt,
		); err != nil {
			return nil, err
		}
		faqs = append(faqs, f)
	}
	return faqs, rows.Err()
}

const createFaq = `
INSERT INTO faqs (question_en, question_de, answer_en, answer_de,
	sort_order, visible, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`

// CreateFaqParams holds the fields for CreateFaq.
type CreateFaqParams struct {
	QuestionEn string
	QuestionDe string
	AnswerEn   string
	AnswerDe   string
	SortOrder  int64
	Visible    bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// CreateFaq inserts a new FAQ entry and returns it.
func (q *Queries) CreateFaq(ctx context.Context, arg CreateFaqParams) (model.Faq, error) {
	result, err := q.db.ExecContext(ctx, createFaq,
		arg.QuestionEn, arg.QuestionDe, arg.AnswerEn, arg.AnswerDe,
		arg.SortOrder, arg.Visible, arg.CreatedAt, arg.UpdatedAt)
	if err != nil {
		return model.Faq{}, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return model.Faq{}, err
	}
	return q.GetFaqByID(ctx, id)
}

const getFaqByID = `SELECT ` + faqColumns + ` FROM faqs WHERE id = ?`

// GetFaqByID fetches a FAQ entry by primary key.
func (q *Queries) GetFaqByID(ctx context.Context, id int64) (model.Faq, error) {
	return scanFaq(q.db.QueryRowContext(ctx, getFaqByID, id))
}

const listFaqs = `SELECT ` + faqColumns + ` FROM faqs ORDER BY sort_order ASC, id ASC`

// ListFaqs returns all FAQ entries in display order. Used by the admin area.
func (q *Queries) ListFaqs(ctx context.Context) ([]model.Faq, error) {
	rows, err := q.db.QueryContext(ctx, listFaqs)
	if err != nil {
		return nil, err
	}
	return scanFaqs(rows)
}

const listVisibleFaqs = `SELECT ` + faqColumns + ` FROM faqs
WHERE visible = 1 ORDER BY sort_order ASC, id ASC`

// ListVisibleFaqs returns visible FAQ entries in display order.
func (q *Queries) ListVisibleFaqs(ctx context.Context) ([]model.Faq, error) {
	rows, err := q.db.QueryContext(ctx, listVisibleFaqs)
	if err != nil {
		return nil, err
	}
	return scanFaqs(rows)
}

const updateFaq = `
UPDATE faqs SET question_en = ?, question_de = ?, answer_en = ?, answer_de = ?,
	sort_order = ?, visible = ?, updated_at = ?
WHERE id = ?
`

// UpdateFaqParams holds the fields for UpdateFaq.
type UpdateFaqParams struct {
	ID         int64
	QuestionEn string
	QuestionDe string
	AnswerEn   string
	AnswerDe   string
	SortOrder  int64
	Visible    bool
	UpdatedAt  time.Time
}

// UpdateFaq replaces all mutable FAQ fields and returns the updated row.
func (q *Queries) UpdateFaq(ctx context.Context, arg UpdateFaqParams) (model.Faq, error) {
	result, err := q.db.ExecContext(ctx, updateFaq,
		arg.QuestionEn, arg.QuestionDe, arg.AnswerEn, arg.AnswerDe,
		arg.SortOrder, arg.Visible, arg.UpdatedAt, arg.ID)
	if err != nil {
		return model.Faq{}, err
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return model.Faq{}, sql.ErrNoRows
	}
	return q.GetFaqByID(ctx, arg.ID)
}

const setFaqVisible = `UPDATE faqs SET visible = ?, updated_at = ? WHERE id = ?`

// SetFaqVisible flips the visible flag.
func (q *Queries) SetFaqVisible(ctx context.Context, id int64, visible bool, at time.Time) error {
	result, err := q.db.ExecContext(ctx, setFaqVisible, visible, at, id)
	if err != nil {
		return err
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

const deleteFaq = `DELETE FROM faqs WHERE id = ?`

// DeleteFaq removes a FAQ entry. Returns sql.ErrNoRows when the ID is unknown.
func (q *Queries) DeleteFaq(ctx context.Context, id int64) error {
	result, err := q.db.ExecContext(ctx, deleteFaq, id)
	if err != nil {
		return err
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

const countFaqs = `SELECT COUNT(*) FROM faqs`

// CountFaqs returns the total number of FAQ entries.
func (q *Queries) CountFaqs(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countFaqs).Scan(&n)
	return n, err
}
