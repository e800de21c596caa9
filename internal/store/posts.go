// Copyright (c) 2025-2026 Avenra GmbH
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/avenra/website/internal/model"
)

const postColumns = `id, slug, title_en, title_de, excerpt_en, excerpt_de,
	content_en, content_de, image_url, image_alt,
	meta_title_en, meta_title_de, meta_desc_en, meta_desc_de,
	published, author_id, created_at, updated_at`

func scanPost(row *sql.Row) (model.Post, error) {
	var p model.Post
	err := row.Scan(
		&p.ID, &p.Slug, &p.TitleEn, &p.TitleDe, &p.ExcerptEn, &p.ExcerptDe,
		&p.ContentEn, &p.ContentDe, &p.ImageURL, &p.ImageAlt,
		&p.MetaTitleEn, &p.MetaTitleDe, &p.MetaDescEn, &p.MetaDescDe,
		&p.Published, &p.AuthorID, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

func scanPosts(rows *sql.Rows) ([]model.Post, error) {
	defer rows.Close()

	var posts []model.Post
	for rows.Next() {
		var p model.Post
		if err := rows.Scan(
			&p.ID, &p.Slug, &p.TitleEn, &p.TitleDe, &p.ExcerptEn, &p.ExcerptDe,
			&p.ContentEn, &p.ContentDe, &p.ImageURL, &p.ImageAlt,
			&p.MetaTitleEn, &p.MetaTitleDe, &p.MetaDescEn, &p.MetaDescDe,
			&p.Published, &p.AuthorID, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

const createPost = `
INSERT INTO posts (slug, title_en, title_de, excerpt_en, excerpt_de,
	content_en, content_de, image_url, image_alt,
	meta_title_en, meta_title_de, meta_desc_en, meta_desc_de,
	published, author_id, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

// CreatePostParams holds the fields for CreatePost.
type CreatePostParams struct {
	Slug        string
	TitleEn     string
	TitleDe     string
	ExcerptEn   string
	ExcerptDe   string
	ContentEn   string
	ContentDe   string
	ImageURL    string
	ImageAlt    string
	MetaTitleEn string
	MetaTitleDe string
	MetaDescEn  string
	MetaDescDe  string
	Published   bool
	AuthorID    sql.NullInt64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CreatePost inserts a new post and returns it. Slug uniqueness is enforced
// by the database; a duplicate slug surfaces as a constraint error.
func (q *Queries) CreatePost(ctx context.Context, arg CreatePostParams) (model.Post, error) {
	result, err := q.db.ExecContext(ctx, createPost,
		arg.Slug, arg.TitleEn, arg.TitleDe, arg.ExcerptEn, arg.ExcerptDe,
		arg.ContentEn, arg.ContentDe, arg.ImageURL, arg.ImageAlt,
		arg.MetaTitleEn, arg.MetaTitleDe, arg.MetaDescEn, arg.MetaDescDe,
		arg.Published, arg.AuthorID, arg.CreatedAt, arg.UpdatedAt)
	if err != nil {
		return model.Post{}, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return model.Post{}, err
	}
	return q.GetPostByID(ctx, id)
}

const getPostByID = `SELECT ` + postColumns + ` FROM posts WHERE id = ?`

// GetPostByID fetches a post by primary key regardless of published state.
func (q *Queries) GetPostByID(ctx context.Context, id int64) (model.Post, error) {
	return scanPost(q.db.QueryRowContext(ctx, getPostByID, id))
}

const getPostBySlug = `SELECT ` + postColumns + ` FROM posts WHERE slug = ?`

// GetPostBySlug fetches a post by slug regardless of published state.
func (q *Queries) GetPostBySlug(ctx context.Context, slug string) (model.Post, error) {
	return scanPost(q.db.QueryRowContext(ctx, getPostBySlug, slug))
}

const getPublishedPostBySlug = `SELECT ` + postColumns + ` FROM posts WHERE slug = ? AND published = 1`

// GetPublishedPostBySlug fetches a published post by slug. Unpublished
// posts are indistinguishable from missing ones: both return sql.ErrNoRows.
func (q *Queries) GetPublishedPostBySlug(ctx context.Context, slug string) (model.Post, error) {
	return scanPost(q.db.QueryRowContext(ctx, getPublishedPostBySlug, slug))
}

const listPosts = `SELECT ` + postColumns + ` FROM posts ORDER BY created_at DESC, id DESC`

// ListPosts returns all posts, newest first. Used by the admin area.
func (q *Queries) ListPosts(ctx context.Context) ([]model.Post, error) {
	rows, err := q.db.QueryContext(ctx, listPosts)
	if err != nil {
		return nil, err
	}
	return scanPosts(rows)
}

const listPublishedPosts = `SELECT ` + postColumns + ` FROM posts
WHERE published = 1 ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`

// ListPublishedPostsParams holds paging for ListPublishedPosts.
type ListPublishedPostsParams struct {
	Limit  int64
	Offset int64
}

// ListPublishedPosts returns a page of published posts, newest first.
func (q *Queries) ListPublishedPosts(ctx context.Context, arg ListPublishedPostsParams) ([]model.Post, error) {
	rows, err := q.db.QueryContext(ctx, listPublishedPosts, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	return scanPosts(rows)
}

const updatePost = `
UPDATE posts SET slug = ?, title_en = ?, title_de = ?, excerpt_en = ?, excerpt_de = ?,
	content_en = ?, content_de = ?, image_url = ?, image_alt = ?,
	meta_title_en = ?, meta_title_de = ?, meta_desc_en = ?, meta_desc_de = ?,
	published = ?, author_id = ?, updated_at = ?
WHERE id = ?
`

// UpdatePostParams holds the fields for UpdatePost.
type UpdatePostParams struct {
	ID          int64
	Slug        string
	TitleEn     string
	TitleDe     string
	ExcerptEn   string
	ExcerptDe   string
	ContentEn   string
	ContentDe   string
	ImageURL    string
	ImageAlt    string
	MetaTitleEn string
	MetaTitleDe string
	MetaDescEn  string
	MetaDescDe  string
	Published   bool
	AuthorID    sql.NullInt64
	UpdatedAt   time.Time
}

// UpdatePost replaces all mutable post fields and returns the updated row.
func (q *Queries) UpdatePost(ctx context.Context, arg UpdatePostParams) (model.Post, error) {
	result, err := q.db.ExecContext(ctx, updatePost,
		arg.Slug, arg.TitleEn, arg.TitleDe, arg.ExcerptEn, arg.ExcerptDe,
		arg.ContentEn, arg.ContentDe, arg.ImageURL, arg.ImageAlt,
		arg.MetaTitleEn, arg.MetaTitleDe, arg.MetaDescEn, arg.MetaDescDe,
		arg.Published, arg.AuthorID, arg.UpdatedAt, arg.ID)
	if err != nil {
		return model.Post{}, err
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return model.Post{}, sql.ErrNoRows
	}
	return q.GetPostByID(ctx, arg.ID)
}

const setPostPublished = `UPDATE posts SET published = ?, updated_at = ? WHERE id = ?`

// SetPostPublished flips the published flag.
func (q *Queries) SetPostPublished(ctx context.Context, id int64, published bool, at time.Time) error {
	result, err := q.db.ExecContext(ctx, setPostPublished, published, at, id)
	if err != nil {
		return err
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

const deletePost = `DELETE FROM posts WHERE id = ?`

// DeletePost removes a post. Returns sql.ErrNoRows when the ID is unknown.
func (q *Queries) DeletePost(ctx context.Context, id int64) error {
	result, err := q.db.ExecContext(ctx, deletePost, id)
	if err != nil {
		return err
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

const countPosts = `SELECT COUNT(*) FROM posts`

// CountPosts returns the total number of posts.
func (q *Queries) CountPosts(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countPosts).Scan(&n)
	return n, err
}

const countPublishedPosts = `SELECT COUNT(*) FROM posts WHERE published = 1`

// CountPublishedPosts returns the number of published posts.
func (q *Queries) CountPublishedPosts(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countPublishedPosts).Scan(&n)
	return n, err
}
