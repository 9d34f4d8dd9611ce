// Package seed creates the default admin account and starter documents.
package seed

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"docsite/internal/auth"
	"docsite/internal/model"
	"docsite/internal/repository"
)

const (
	DefaultAdminUsername = "admin"
	DefaultAdminPassword = "admin123"
	DefaultAdminName     = "Administrator"
)

var starterDocs = []model.Document{
	{
		Title:     "Getting Started",
		Slug:      "getting-started",
		Content:   "# Getting Started with MyApp\n\nWelcome to MyApp! This is a simple documentation system.",
		Language:  "en",
		Published: true,
	},
	{
		Title:     "はじめに",
		Slug:      "getting-started",
		Content:   "# MyAppを始めましょう\n\nMyAppへようこそ！これはシンプルなドキュメントシステムです。",
		Language:  "ja",
		Published: true,
	},
}

// Result reports what Run created.
type Result struct {
	AdminCreated bool
	DocsCreated  int
}

// Run creates the admin user when missing and the starter documents when the docs
// table is empty. It is safe to run repeatedly.
func Run(ctx context.Context, users repository.UserRepository, docs repository.DocumentRepository, log zerolog.Logger) (*Result, error) {
	res := &Result{}
	log = log.With().Str("component", "seed").Logger()

	_, err := users.FindByUsername(ctx, DefaultAdminUsername)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		hash, err := auth.HashPassword(DefaultAdminPassword)
		if err != nil {
			return nil, err
		}
		if _, err := users.Create(ctx, DefaultAdminUsername, hash, DefaultAdminName); err != nil {
			return nil, fmt.Errorf("create admin user: %w", err)
		}
		res.AdminCreated = true
		log.Info().Str("event", "seed_admin").Str("username", DefaultAdminUsername).Msg("default admin user created")
	case err != nil:
		return nil, fmt.Errorf("look up admin user: %w", err)
	}

	counts, err := docs.Count(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("count documents: %w", err)
	}
	if counts.Total > 0 {
		return res, nil
	}

	now := time.Now().UTC()
	for _, d := range starterDocs {
		d.CreatedAt, d.UpdatedAt = now, now
		if _, err := docs.Create(ctx, &d); err != nil {
			if errors.Is(err, repository.ErrConflict) {
				continue
			}
			return nil, fmt.Errorf("create document %s/%s: %w", d.Language, d.Slug, err)
		}
		res.DocsCreated++
	}
	log.Info().Str("event", "seed_docs").Int("count", res.DocsCreated).Msg("starter documents created")
	return res, nil
}
