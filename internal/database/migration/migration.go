package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"docsite/internal/database"
)

type migrationStep struct {
	Name string
	SQL  string
}

// sentinelTables must all exist for the schema to be considered migrated.
var sentinelTables = []string{"users", "docs", "images"}

var sqliteSteps = []migrationStep{
	{
		Name: "create_table_users",
		SQL: `CREATE TABLE IF NOT EXISTS users (
  id         INTEGER   PRIMARY KEY AUTOINCREMENT,
  username   TEXT      NOT NULL UNIQUE,
  password   TEXT      NOT NULL,
  name       TEXT      NOT NULL DEFAULT '',
  created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);`,
	},
	{
		Name: "create_table_docs",
		SQL: `CREATE TABLE IF NOT EXISTS docs (
  id         INTEGER   PRIMARY KEY AUTOINCREMENT,
  title      TEXT      NOT NULL,
  content    TEXT      NOT NULL,
  slug       TEXT      NOT NULL,
  published  BOOLEAN   NOT NULL DEFAULT 1,
  language   TEXT      NOT NULL DEFAULT 'en',
  created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
  updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
  UNIQUE (slug, language)
);`,
	},
	{
		Name: "create_index_docs_language_published",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_docs_language_published ON docs (language, published, created_at);`,
	},
	{
		Name: "create_table_images",
		SQL: `CREATE TABLE IF NOT EXISTS images (
  id                INTEGER   PRIMARY KEY AUTOINCREMENT,
  filename          TEXT      NOT NULL UNIQUE,
  original_filename TEXT      NOT NULL,
  file_path         TEXT      NOT NULL,
  file_size         INTEGER   NOT NULL CHECK (file_size >= 0),
  width             INTEGER   NOT NULL DEFAULT 0,
  height            INTEGER   NOT NULL DEFAULT 0,
  mime_type         TEXT      NOT NULL,
  uploaded_by       INTEGER   REFERENCES users (id),
  created_at        TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);`,
	},
	{
		Name: "create_index_images_created_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_images_created_at ON images (created_at);`,
	},
}

var postgresSteps = []migrationStep{
	{
		Name: "create_table_users",
		SQL: `CREATE TABLE IF NOT EXISTS users (
  id         BIGSERIAL   PRIMARY KEY,
  username   TEXT        NOT NULL UNIQUE,
  password   TEXT        NOT NULL,
  name       TEXT        NOT NULL DEFAULT '',
  created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_docs",
		SQL: `CREATE TABLE IF NOT EXISTS docs (
  id         BIGSERIAL   PRIMARY KEY,
  title      TEXT        NOT NULL,
  content    TEXT        NOT NULL,
  slug       TEXT        NOT NULL,
  published  BOOLEAN     NOT NULL DEFAULT TRUE,
  language   TEXT        NOT NULL DEFAULT 'en',
  created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
  UNIQUE (slug, language)
);`,
	},
	{
		Name: "create_index_docs_language_published",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_docs_language_published ON docs (language, published, created_at);`,
	},
	{
		Name: "create_table_images",
		SQL: `CREATE TABLE IF NOT EXISTS images (
  id                BIGSERIAL   PRIMARY KEY,
  filename          TEXT        NOT NULL UNIQUE,
  original_filename TEXT        NOT NULL,
  file_path         TEXT        NOT NULL,
  file_size         BIGINT      NOT NULL CHECK (file_size >= 0),
  width             INTEGER     NOT NULL DEFAULT 0,
  height            INTEGER     NOT NULL DEFAULT 0,
  mime_type         TEXT        NOT NULL,
  uploaded_by       BIGINT      REFERENCES users (id),
  created_at        TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_images_created_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_images_created_at ON images (created_at);`,
	},
}

func stepsFor(dialect database.Dialect) []migrationStep {
	if dialect == database.DialectPostgres {
		return postgresSteps
	}
	return sqliteSteps
}

func tableExistsQuery(dialect database.Dialect) string {
	if dialect == database.DialectPostgres {
		return "SELECT to_regclass('public.' || $1) IS NOT NULL"
	}
	return "SELECT COUNT(*) > 0 FROM sqlite_master WHERE type = 'table' AND name = $1"
}

// EnsureMigrated checks whether the users, docs and images tables exist and runs the
// idempotent creation steps when any of them is missing.
func EnsureMigrated(ctx context.Context, db *sql.DB, dialect database.Dialect, log zerolog.Logger) error {
	start := time.Now()
	log = log.With().Str("component", "database").Str("dialect", string(dialect)).Logger()

	log.Info().Str("event", "db_migration_check").Str("status", "starting").Msg("checking schema")

	missing, err := missingTables(ctx, db, dialect)
	if err != nil {
		log.Error().
			Str("event", "db_migration_failed").
			Str("status", "error").
			Err(err).
			Int64("duration_ms", time.Since(start).Milliseconds()).
			Msg("failed to check sentinel tables")
		return fmt.Errorf("failed to check sentinel tables: %w", err)
	}

	if len(missing) == 0 {
		log.Info().
			Str("event", "db_migration_skip").
			Str("status", "success").
			Int64("duration_ms", time.Since(start).Milliseconds()).
			Msg("schema already exists, skipping migration")
		return nil
	}

	log.Info().
		Str("event", "db_migration_start").
		Str("status", "in_progress").
		Strs("missing_tables", missing).
		Msg("running migration steps")

	for _, step := range stepsFor(dialect) {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			log.Error().
				Str("event", "db_migration_failed").
				Str("status", "error").
				Str("migration_step", step.Name).
				Err(err).
				Int64("duration_ms", time.Since(start).Milliseconds()).
				Int64("step_duration_ms", time.Since(stepStart).Milliseconds()).
				Msg("migration step failed")
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		log.Info().
			Str("event", "db_migration_step").
			Str("status", "success").
			Str("migration_step", step.Name).
			Int64("step_duration_ms", time.Since(stepStart).Milliseconds()).
			Msg("migration step applied")
	}

	log.Info().
		Str("event", "db_migration_success").
		Str("status", "success").
		Int64("duration_ms", time.Since(start).Milliseconds()).
		Msg("schema migrated")

	return nil
}

func missingTables(ctx context.Context, db *sql.DB, dialect database.Dialect) ([]string, error) {
	q := tableExistsQuery(dialect)
	var missing []string
	for _, table := range sentinelTables {
		var exists bool
		if err := db.QueryRowContext(ctx, q, table).Scan(&exists); err != nil {
			return nil, err
		}
		if !exists {
			missing = append(missing, table)
		}
	}
	return missing, nil
}
