// Copyright (c) 2025-2026 Avenra GmbH
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/avenra/website/internal/model"
)

const contactColumns = `id, name, email, phone, company, subject, message, created_at`

func scanContact(row *sql.Row) (model.ContactSubmission, error) {
	var c model.ContactSubmission
	err := row.Scan(
		&c.ID, &c.Name, &c.Email, &c.Phone, &c.Company,
		&c.Subject, &c.Message, &c.CreatedAt,
	)
	return c, err
}

func scanContacts(rows *sql.Rows) ([]model.ContactSubmission, error) {
	defer rows.Close()

	var contacts []model.ContactSubmission
	for rows.Next() {
		var c model.ContactSubmission
		if err := rows.Scan(
			&c.ID, &c.Name, &c.Email, &c.Phone, &c.Company,
			&c.Subject, &c.Message, &c.CreatedAt,
		); err != nil {
			return nil, err
		}
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}

const createContactSubmission = `
INSERT INTO contact_submissions (name, email, phone, company, subject, message, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
`

// CreateContactSubmissionParams holds the fields for CreateContactSubmission.
type CreateContactSubmissionParams struct {
	Name      string
	Email     string
	Phone     string
	Company   string
	Subject   string
	Message   string
	CreatedAt time.Time
}

// CreateContactSubmission stores a message from the public contact form.
func (q *Queries) CreateContactSubmission(ctx context.Context, arg CreateContactSubmissionParams) (model.ContactSubmission, error) {
	result, err := q.db.ExecContext(ctx, createContactSubmission,
		arg.Name, arg.Email, arg.Phone, arg.Company, arg.Subject, arg.Message, arg.CreatedAt)
	if err != nil {
		return model.ContactSubmission{}, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return model.ContactSubmission{}, err
	}
	return q.GetContactSubmissionByID(ctx, id)
}

const getContactSubmissionByID = `SELECT ` + contactColumns + ` FROM contact_submissions WHERE id = ?`

// GetContactSubmissionByID fetches a contact submission by primary key.
func (q *Queries) GetContactSubmissionByID(ctx context.Context, id int64) (model.ContactSubmission, error) {
	return scanContact(q.db.QueryRowContext(ctx, getContactSubmissionByID, id))
}

const listContactSubmissions = `SELECT ` + contactColumns + ` FROM contact_submissions
ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`

// ListContactSubmissionsParams holds paging for ListContactSubmissions.
type ListContactSubmissionsParams struct {
	Limit  int64
	Offset int64
}

// ListContactSubmissions returns a page of submissions, newest first.
func (q *Queries) ListContactSubmissions(ctx context.Context, arg ListContactSubmissionsParams) ([]model.ContactSubmission, error) {
	rows, err := q.db.QueryContext(ctx, listContactSubmissions, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	return scanContacts(rows)
}

const listRecentContactSubmissions = `SELECT ` + contactColumns + ` FROM contact_submissions
ORDER BY created_at DESC, id DESC LIMIT ?`

// ListRecentContactSubmissions returns the most recent submissions for the
// dashboard.
func (q *Queries) ListRecentContactSubmissions(ctx context.Context, limit int64) ([]model.ContactSubmission, error) {
	rows, err := q.db.QueryContext(ctx, listRecentContactSubmissions, limit)
	if err != nil {
		return nil, err
	}
	return scanContacts(rows)
}

const deleteContactSubmission = `DELETE FROM contact_submissions WHERE id = ?`

// DeleteContactSubmission removes a submission. Returns sql.ErrNoRows when
// the ID is unknown.
func (q *Queries) DeleteContactSubmission(ctx context.Context, id int64) error {
	result, err := q.db.ExecContext(ctx, deleteContactSubmission, id)
	if err != nil {
		return err
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

const countContactSubmissions = `SELECT COUNT(*) FROM contact_submissions`

// CountContactSubmissions returns the total number of submissions.
func (q *Queries) CountContactSubmissions(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countContactSubmissions).Scan(&n)
	return n, err
}
