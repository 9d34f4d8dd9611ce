package seed

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docsite/internal/auth"
	"docsite/internal/config"
	"docsite/internal/database"
	"docsite/internal/database/migration"
	"docsite/internal/repository/sqlstore"
)

func TestRun_Idempotent(t *testing.T) {
	db, dialect, err := database.Open(config.DatabaseConfig{
		Driver:       "sqlite3",
		Path:         filepath.Join(t.TempDir(), "seed.db"),
		MaxOpenConns: 1,
	})
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	require.NoError(t, migration.EnsureMigrated(ctx, db, dialect, zerolog.Nop()))

	users := sqlstore.NewUserStore(db)
	docs := sqlstore.NewDocumentStore(db)

	res, err := Run(ctx, users, docs, zerolog.Nop())
	require.NoError(t, err)
	assert.True(t, res.AdminCreated)
	assert.Equal(t, 2, res.DocsCreated)

	res, err = Run(ctx, users, docs, zerolog.Nop())
	require.NoError(t, err)
	assert.False(t, res.AdminCreated)
	assert.Zero(t, res.DocsCreated)

	cred, err := users.FindByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.True(t, auth.CheckPassword(cred.PasswordHash, "admin123"))
	assert.Equal(t, "Administrator", cred.User.Name)

	en, err := docs.FindBySlug(ctx, "getting-started", "en")
	require.NoError(t, err)
	assert.Equal(t, "Getting Started", en.Title)

	_, err = docs.FindBySlug(ctx, "getting-started", "ja")
	assert.NoError(t, err)
}
