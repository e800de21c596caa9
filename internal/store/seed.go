// Copyright (c) 2025-2026 Avenra GmbH
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/avenra/website/internal/auth"
	"github.com/avenra/website/internal/model"
)

// Default admin credentials. The password must be changed after first login.
const (
	DefaultAdminEmail    = "admin@example.com"
	DefaultAdminPassword = "changeme"
	DefaultAdminName     = "Administrator"
)

// Seed creates the default admin user if no user with that email exists.
func Seed(ctx context.Context, db *sql.DB) error {
	queries := New(db)

	// Check if admin user already exists
	_, err := queries.GetUserByEmail(ctx, DefaultAdminEmail)
	if err == nil {
		slog.Info("admin user already exists, skipping seed")
		return nil
	}
	if err != sql.ErrNoRows {
		return fmt.Errorf("checking for admin user: %w", err)
	}

	passwordHash, err := auth.HashPassword(DefaultAdminPassword)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	now := time.Now()
	user, err := queries.CreateUser(ctx, CreateUserParams{
		Email:        DefaultAdminEmail,
		PasswordHash: passwordHash,
		Name:         DefaultAdminName,
		Role:         model.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return fmt.Errorf("creating admin user: %w", err)
	}

	slog.Info("created default admin user",
		"id", user.ID,
		"email", user.Email,
		"password", DefaultAdminPassword,
	)

	return nil
}

// SeedSampleContent fills an empty database with sample posts, FAQ entries
// and team members so a fresh install has something to show. It is a no-op
// when any posts already exist.
func SeedSampleContent(ctx context.Context, db *sql.DB) error {
	queries := New(db)

	count, err := queries.CountPosts(ctx)
	if err != nil {
		return fmt.Errorf("counting posts: %w", err)
	}
	if count > 0 {
		slog.Info("content already present, skipping sample seed")
		return nil
	}

	admin, err := queries.GetUserByEmail(ctx, DefaultAdminEmail)
	if err != nil {
		return fmt.Errorf("looking up admin user: %w", err)
	}
	authorID := sql.NullInt64{Int64: admin.ID, Valid: true}

	slog.Info("seeding sample content")
	now := time.Now()

	if err := seedSamplePosts(ctx, queries, authorID, now); err != nil {
		return fmt.Errorf("seeding posts: %w", err)
	}
	if err := seedSampleFaqs(ctx, queries, now); err != nil {
		return fmt.Errorf("seeding faqs: %w", err)
	}
	if err := seedSampleTeam(ctx, queries, now); err != nil {
		return fmt.Errorf("seeding team: %w", err)
	}

	slog.Info("sample content seeded successfully")
	return nil
}

func seedSamplePosts(ctx context.Context, queries *Queries, authorID sql.NullInt64, now time.Time) error {
	posts := []CreatePostParams{
		{
			Slug:       "welcome-to-our-new-website",
			TitleEn:    "Welcome to Our New Website",
			TitleDe:    "Willkommen auf unserer neuen Website",
			ExcerptEn:  "We are excited to launch our redesigned website with a fresh look and improved navigation.",
			ExcerptDe:  "Wir freuen uns, unsere neu gestaltete Website mit frischem Design und verbesserter Navigation vorzustellen.",
			ContentEn:  "After months of work we are proud to present our new online presence. The site is fully bilingual and works on every device.\n\nHave a look around and let us know what you think through the contact form.",
			ContentDe:  "Nach monatelanger Arbeit präsentieren wir stolz unseren neuen Online-Auftritt. Die Seite ist vollständig zweisprachig und funktioniert auf jedem Gerät.\n\nSchauen Sie sich um und teilen Sie uns Ihre Meinung über das Kontaktformular mit.",
			MetaDescEn: "Announcing the launch of our redesigned bilingual website.",
			MetaDescDe: "Ankündigung unserer neu gestalteten zweisprachigen Website.",
			Published:  true,
			AuthorID:   authorID,
			CreatedAt:  now.Add(-48 * time.Hour),
			UpdatedAt:  now.Add(-48 * time.Hour),
		},
		{
			Slug:      "how-we-work",
			TitleEn:   "How We Work",
			TitleDe:   "Wie wir arbeiten",
			ExcerptEn: "A look behind the scenes at our process, from first call to final delivery.",
			ExcerptDe: "Ein Blick hinter die Kulissen unseres Prozesses, vom ersten Gespräch bis zur Auslieferung.",
			ContentEn: "Every engagement starts with a conversation. We listen first, then propose a plan with clear milestones.\n\nThroughout the project you always know what we are working on and why.",
			ContentDe: "Jedes Projekt beginnt mit einem Gespräch. Wir hören zuerst zu und schlagen dann einen Plan mit klaren Meilensteinen vor.\n\nWährend des gesamten Projekts wissen Sie immer, woran wir arbeiten und warum.",
			Published: true,
			AuthorID:  authorID,
			CreatedAt: now.Add(-24 * time.Hour),
			UpdatedAt: now.Add(-24 * time.Hour),
		},
		{
			Slug:      "upcoming-changes",
			TitleEn:   "Upcoming Changes",
			ExcerptEn: "A draft announcement that is not public yet.",
			ContentEn: "This draft stays invisible until an editor publishes it.",
			Published: false,
			AuthorID:  authorID,
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	for _, p := range posts {
		if _, err := queries.CreatePost(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

func seedSampleFaqs(ctx context.Context, queries *Queries, now time.Time) error {
	faqs := []CreateFaqParams{
		{
			QuestionEn: "What services do you offer?",
			QuestionDe: "Welche Dienstleistungen bieten Sie an?",
			AnswerEn:   "We offer consulting, implementation and long-term support for digital projects.",
			AnswerDe:   "Wir bieten Beratung, Umsetzung und langfristige Betreuung für digitale Projekte an.",
			SortOrder:  1,
			Visible:    true,
		},
		{
			QuestionEn: "Where are you located?",
			QuestionDe: "Wo befinden Sie sich?",
			AnswerEn:   "Our office is in Zurich, and we work with clients across Switzerland and Europe.",
			AnswerDe:   "Unser Büro ist in Zürich, und wir arbeiten mit Kunden in der ganzen Schweiz und Europa.",
			SortOrder:  2,
			Visible:    true,
		},
		{
			QuestionEn: "How can I request a quote?",
			QuestionDe: "Wie kann ich eine Offerte anfordern?",
			AnswerEn:   "Use the contact form and describe your project. We reply within two business days.",
			AnswerDe:   "Nutzen Sie das Kontaktformular und beschreiben Sie Ihr Projekt. Wir antworten innerhalb von zwei Arbeitstagen.",
			SortOrder:  3,
			Visible:    true,
		},
	}

	for _, f := range faqs {
		f.CreatedAt = now
		f.UpdatedAt = now
		if _, err := queries.CreateFaq(ctx, f); err != nil {
			return err
		}
	}
	return nil
}

func seedSampleTeam(ctx context.Context, queries *Queries, now time.Time) error {
	members := []CreateTeamMemberParams{
		{Name: "Anna Keller", Position: "Managing Director", SortOrder: 1, Visible: true},
		{Name: "Marc Weber", Position: "Head of Engineering", SortOrder: 2, Visible: true},
		{Name: "Laura Brunner", Position: "Project Manager", SortOrder: 3, Visible: true},
	}

	for _, m := range members {
		m.CreatedAt = now
		m.UpdatedAt = now
		if _, err := queries.CreateTeamMember(ctx, m); err != nil {
			return err
		}
	}
	return nil
}
