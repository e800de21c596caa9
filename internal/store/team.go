// Copyright (c) 2025-2026 Avenra GmbH
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/avenra/website/internal/model"
)

const teamColumns = `id, name, position, image_url, sort_order, visible, created_at, updated_at`

func scanTeamMember(row *sql.Row) (model.TeamMember, error) {
	var m model.TeamMember
	err := row.Scan(
		&m.ID, &m.Name, &m.Position, &m.ImageURL,
		&m.SortOrder, &m.Visible, &m.CreatedAt, &m.UpdatedAt,
	)
	return m, err
}

func scanTeamMembers(rows *sql.Rows) ([]model.TeamMember, error) {
	defer rows.Close()

	var members []model.TeamMember
	for rows.Next() {
		var m model.TeamMember
		if err := rows.Scan(
			&m.ID, &m.Name, &m.Position, &m.ImageURL,
			&m.SortOrder, &m.Visible, &m.CreatedAt, &m.UpdatedAt,
		); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

const createTeamMember = `
INSERT INTO team_members (name, position, image_url, sort_order, visible, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
`

// CreateTeamMemberParams holds the fields for CreateTeamMember.
type CreateTeamMemberParams struct {
	Name      string
	Position  string
	ImageURL  string
	SortOrder int64
	Visible   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateTeamMember inserts a new team member and returns it.
func (q *Queries) CreateTeamMember(ctx context.Context, arg CreateTeamMemberParams) (model.TeamMember, error) {
	result, err := q.db.ExecContext(ctx, createTeamMember,
		arg.Name, arg.Position, arg.ImageURL, arg.SortOrder, arg.Visible,
		arg.CreatedAt, arg.UpdatedAt)
	if err != nil {
		return model.TeamMember{}, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return model.TeamMember{}, err
	}
	return q.GetTeamMemberByID(ctx, id)
}

const getTeamMemberByID = `SELECT ` + teamColumns + ` FROM team_members WHERE id = ?`

// GetTeamMemberByID fetches a team member by primary key.
func (q *Queries) GetTeamMemberByID(ctx context.Context, id int64) (model.TeamMember, error) {
	return scanTeamMember(q.db.QueryRowContext(ctx, getTeamMemberByID, id))
}

const listTeamMembers = `SELECT ` + teamColumns + ` FROM team_members ORDER BY sort_order ASC, id ASC`

// ListTeamMembers returns all team members in display order. Used by the
// admin area.
func (q *Queries) ListTeamMembers(ctx context.Context) ([]model.TeamMember, error) {
	rows, err := q.db.QueryContext(ctx, listTeamMembers)
	if err != nil {
		return nil, err
	}
	return scanTeamMembers(rows)
}

const listVisibleTeamMembers = `SELECT ` + teamColumns + ` FROM team_members
WHERE visible = 1 ORDER BY sort_order ASC, id ASC`

// ListVisibleTeamMembers returns visible team members in display order.
func (q *Queries) ListVisibleTeamMembers(ctx context.Context) ([]model.TeamMember, error) {
	rows, err := q.db.QueryContext(ctx, listVisibleTeamMembers)
	if err != nil {
		return nil, err
	}
	return scanTeamMembers(rows)
}

const updateTeamMember = `
UPDATE team_members SET name = ?, position = ?, image_url = ?,
	sort_order = ?, visible = ?, updated_at = ?
WHERE id = ?
`

// UpdateTeamMemberParams holds the fields for UpdateTeamMember.
type UpdateTeamMemberParams struct {
	ID        int64
	Name      string
	Position  string
	ImageURL  string
	SortOrder int64
	Visible   bool
	UpdatedAt time.Time
}

// UpdateTeamMember replaces all mutable fields and returns the updated row.
func (q *Queries) UpdateTeamMember(ctx context.Context, arg UpdateTeamMemberParams) (model.TeamMember, error) {
	result, err := q.db.ExecContext(ctx, updateTeamMember,
		arg.Name, arg.Position, arg.ImageURL, arg.SortOrder, arg.Visible,
		arg.UpdatedAt, arg.ID)
	if err != nil {
		return model.TeamMember{}, err
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return model.TeamMember{}, sql.ErrNoRows
	}
	return q.GetTeamMemberByID(ctx, arg.ID)
}

const updateTeamMemberImage = `UPDATE team_members SET image_url = ?, updated_at = ? WHERE id = ?`

// UpdateTeamMemberImage sets the photo URL after an upload.
func (q *Queries) UpdateTeamMemberImage(ctx context.Context, id int64, imageURL string, at time.Time) error {
	result, err := q.db.ExecContext(ctx, updateTeamMemberImage, imageURL, at, id)
	if err != nil {
		return err
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

const setTeamMemberVisible = `UPDATE team_members SET visible = ?, updated_at = ? WHERE id = ?`

// SetTeamMemberVisible flips the visible flag.
func (q *Queries) SetTeamMemberVisible(ctx context.Context, id int64, visible bool, at time.Time) error {
	result, err := q.db.ExecContext(ctx, setTeamMemberVisible, visible, at, id)
	if err != nil {
		return err
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

const deleteTeamMember = `DELETE FROM team_members WHERE id = ?`

// DeleteTeamMember removes a team member. Returns sql.ErrNoRows when the ID
// is unknown.
func (q *Queries) DeleteTeamMember(ctx context.Context, id int64) error {
	result, err := q.db.ExecContext(ctx, deleteTeamMember, id)
	if err != nil {
		return err
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

const countTeamMembers = `SELECT COUNT(*) FROM team_members`

// CountTeamMembers returns the total number of team members.
func (q *Queries) CountTeamMembers(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countTeamMembers).Scan(&n)
	return n, err
}
