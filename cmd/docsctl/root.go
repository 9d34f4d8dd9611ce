package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"docsite/internal/config"
	"docsite/internal/database"
	"docsite/internal/database/migration"
	"docsite/internal/logger"
)

var rootCMD = &cobra.Command{
	Use:          "docsctl",
	Short:        "docsite maintenance commands",
	Long:         `docsctl migrates and seeds the docsite database and reconciles stored images.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
}

// env is the state shared by every subcommand.
type env struct {
	cfg *config.AppConfig
	log zerolog.Logger
	db  *sql.DB
}

// openEnv loads configuration, opens the database and brings the schema up to date.
func openEnv(ctx context.Context) (*env, error) {
	cfg := config.Load()
	log := logger.New(cfg.Log)

	db, dialect, err := database.Open(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := migration.EnsureMigrated(ctx, db, dialect, log); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &env{cfg: cfg, log: log, db: db}, nil
}

func (e *env) Close() error { return e.db.Close() }
