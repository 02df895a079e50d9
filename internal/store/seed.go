// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/ensofolio/enso/internal/auth"
	"github.com/ensofolio/enso/internal/config"
	"github.com/ensofolio/enso/internal/model"
	"github.com/ensofolio/enso/internal/util"
)

// Seed provisions the admin account from configuration. Admin rows are
// never created through the HTTP surface; this is the only write path.
// A missing ENSO_ADMIN_EMAIL/ENSO_ADMIN_PASSWORD pair is not an error
// when an admin already exists.
func Seed(ctx context.Context, db *sql.DB, cfg *config.Config) error {
	queries := New(db)

	count, err := queries.CountAdmins(ctx)
	if err != nil {
		return fmt.Errorf("counting admins: %w", err)
	}

	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		if count == 0 {
			slog.Warn("no admin account exists and ENSO_ADMIN_EMAIL/ENSO_ADMIN_PASSWORD are unset; login will be impossible")
		}
		return nil
	}

	_, err = queries.GetAdminByEmail(ctx, cfg.AdminEmail)
	if err == nil {
		slog.Info("admin account already exists, skipping seed", "email", cfg.AdminEmail)
		return nil
	}
	if !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("checking for admin account: %w", err)
	}

	passwordHash, err := auth.HashPassword(cfg.AdminPassword)
	if err != nil {
		return fmt.Errorf("hashing admin password: %w", err)
	}

	admin, err := queries.CreateAdmin(ctx, CreateAdminParams{
		Email:        cfg.AdminEmail,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	})
	if err != nil {
		return fmt.Errorf("creating admin account: %w", err)
	}

	slog.Info("created admin account", "id", admin.ID, "email", admin.Email)
	return nil
}

// SeedDemo creates sample content for showcasing the site. Called after
// the regular Seed() when ENSO_DEMO_MODE=true. Skips silently when any
// content already exists.
func SeedDemo(ctx context.Context, db *sql.DB) error {
	if os.Getenv("ENSO_DEMO_MODE") != "true" {
		return nil
	}

	slog.Info("seeding demo content")
	queries := New(db)

	blogs, err := queries.ListBlogs(ctx)
	if err != nil {
		return fmt.Errorf("listing blogs: %w", err)
	}
	if len(blogs) > 0 {
		slog.Info("content already exists, skipping demo seed")
		return nil
	}

	if err := seedDemoBlogs(ctx, queries); err != nil {
		return fmt.Errorf("seeding demo blogs: %w", err)
	}
	if err := seedDemoResume(ctx, queries); err != nil {
		return fmt.Errorf("seeding demo resume: %w", err)
	}
	return nil
}

func seedDemoBlogs(ctx context.Context, queries *Queries) error {
	posts := []struct {
		title   string
		content string
		status  string
	}{
		{
			title: "Hello, World",
			content: "# Hello, World\n\nThis is a demo post. It shows the Markdown pipeline\n" +
				"including fenced code blocks:\n\n```go\nfunc main() {\n\tfmt.Println(\"hello\")\n}\n```\n",
			status: model.BlogStatusPublished,
		},
		{
			title:   "Work in Progress",
			content: "A draft post. It never appears on the public site.\n",
			status:  model.BlogStatusDraft,
		},
	}

	now := time.Now()
	for _, p := range posts {
		_, err := queries.CreateBlog(ctx, CreateBlogParams{
			Title:     p.title,
			Slug:      util.Slugify(p.title),
			Content:   p.content,
			Status:    p.status,
			CreatedAt: now,
			UpdatedAt: now,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func seedDemoResume(ctx context.Context, queries *Queries) error {
	now := time.Now()

	_, err := queries.CreateWorkHistory(ctx, CreateWorkHistoryParams{
		Period:       "2023 - Present",
		Company:      "Example Corp",
		Role:         "Software Engineer",
		Skills:       []string{"Go", "SQLite", "HTTP"},
		Description:  "Building and operating web services.",
		Achievements: []string{"Shipped the public site you are looking at"},
		DisplayOrder: 1,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return err
	}

	links := []CreateContactLinkParams{
		{Label: "GitHub", Href: "https://github.com/example", DisplayOrder: 1, CreatedAt: now, UpdatedAt: now},
		{Label: "Email", Href: "mailto:hello@example.com", DisplayOrder: 2, CreatedAt: now, UpdatedAt: now},
	}
	for _, l := range links {
		if _, err := queries.CreateContactLink(ctx, l); err != nil {
			return err
		}
	}
	return nil
}
