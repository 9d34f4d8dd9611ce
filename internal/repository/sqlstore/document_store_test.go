package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"docsite/internal/config"
	"docsite/internal/database"
	"docsite/internal/database/migration"
	"docsite/internal/model"
	"docsite/internal/repository"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var docCols = []string{"id", "title", "content", "slug", "published", "language", "created_at", "updated_at"}

// newSQLiteDB opens a migrated SQLite database in a temp directory.
func newSQLiteDB(t *testing.T) *sql.DB {
	t.Helper()
	db, dialect, err := database.Open(config.DatabaseConfig{
		Driver:       "sqlite3",
		Path:         filepath.Join(t.TempDir(), "test.db"),
		MaxOpenConns: 1,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, migration.EnsureMigrated(context.Background(), db, dialect, zerolog.Nop()))
	return db
}

func seedDoc(t *testing.T, repo *DocumentStore, title, slug, lang string, published bool, at time.Time) *model.Document {
	t.Helper()
	d, err := repo.Create(context.Background(), &model.Document{
		Title:     title,
		Content:   "Content of " + title,
		Slug:      slug,
		Published: published,
		Language:  lang,
		CreatedAt: at,
		UpdatedAt: at,
	})
	require.NoError(t, err)
	return d
}

func TestDocumentStore_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewDocumentStore(db)
	ctx := context.Background()
	now := time.Now().UTC()
	doc := &model.Document{Title: "Intro", Content: "# Hi", Slug: "intro", Published: true, Language: "en", CreatedAt: now, UpdatedAt: now}

	t.Run("inserted", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO docs (.+) ON CONFLICT \\(slug, language\\) DO NOTHING").
			WithArgs(doc.Title, doc.Content, doc.Slug, doc.Published, doc.Language, doc.CreatedAt, doc.UpdatedAt).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

		result, err := repo.Create(ctx, doc)

		assert.NoError(t, err)
		assert.Equal(t, int64(7), result.ID)
		assert.Equal(t, "intro", result.Slug)
	})

	t.Run("conflict returns no row", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO docs").
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		result, err := repo.Create(ctx, doc)

		assert.ErrorIs(t, err, repository.ErrConflict)
		assert.Nil(t, result)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentStore_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewDocumentStore(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		rows := sqlmock.NewRows(docCols).
			AddRow(1, "Intro", "body", "intro", true, "en", time.Now(), time.Now())

		mock.ExpectQuery("SELECT (.+) FROM docs WHERE id = ?").
			WithArgs(int64(1)).
			WillReturnRows(rows)

		doc, err := repo.FindByID(ctx, 1)

		assert.NoError(t, err)
		assert.Equal(t, int64(1), doc.ID)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM docs WHERE id = ?").
			WithArgs(int64(99)).
			WillReturnError(sql.ErrNoRows)

		doc, err := repo.FindByID(ctx, 99)

		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, doc)
	})
}

func TestDocumentStore_ListQueryShape(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewDocumentStore(db)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM docs WHERE language = \\$1 AND published = TRUE").
		WithArgs("ja").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("SELECT (.+) FROM docs WHERE language = \\$1 AND published = TRUE ORDER BY created_at DESC, id DESC LIMIT \\$2 OFFSET \\$3").
		WithArgs("ja", 10, 20).
		WillReturnRows(sqlmock.NewRows(docCols).AddRow(3, "T", "c", "t", true, "ja", time.Now(), time.Now()))

	res, err := repo.List(context.Background(),
		repository.DocumentFilter{Language: "ja", PublishedOnly: true},
		repository.PageQuery{Limit: 10, Offset: 20})

	assert.NoError(t, err)
	assert.Equal(t, 1, res.Total)
	assert.Len(t, res.Items, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentStore_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewDocumentStore(db)
	ctx := context.Background()

	mock.ExpectExec("DELETE FROM docs WHERE id = ?").
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM docs WHERE id = ?").
		WithArgs(int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, repo.Delete(ctx, 1))
	assert.ErrorIs(t, repo.Delete(ctx, 2), sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentStore_SQLite_SlugUniquePerLanguage(t *testing.T) {
	repo := NewDocumentStore(newSQLiteDB(t))
	ctx := context.Background()
	now := time.Now().UTC()

	seedDoc(t, repo, "Getting Started", "getting-started", "en", true, now)
	seedDoc(t, repo, "はじめに", "getting-started", "ja", true, now)

	_, err := repo.Create(ctx, &model.Document{
		Title: "Duplicate", Content: "x", Slug: "getting-started", Language: "en",
		Published: true, CreatedAt: now, UpdatedAt: now,
	})
	assert.ErrorIs(t, err, repository.ErrConflict)

	counts, err := repo.Count(ctx, "en")
	require.NoError(t, err)
	assert.Equal(t, 1, counts.Total)

	counts, err = repo.Count(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 2, counts.Total)
}

func TestDocumentStore_SQLite_UpdateConflictAndNotFound(t *testing.T) {
	repo := NewDocumentStore(newSQLiteDB(t))
	ctx := context.Background()
	now := time.Now().UTC()

	seedDoc(t, repo, "First", "first", "en", true, now)
	second := seedDoc(t, repo, "Second", "second", "en", false, now.Add(time.Second))

	second.Slug = "first"
	second.UpdatedAt = now.Add(time.Minute)
	_, err := repo.Update(ctx, second)
	assert.ErrorIs(t, err, repository.ErrConflict)

	second.Slug = "second-renamed"
	second.Published = true
	updated, err := repo.Update(ctx, second)
	require.NoError(t, err)
	assert.Equal(t, "second-renamed", updated.Slug)
	assert.True(t, updated.Published)
	assert.True(t, updated.UpdatedAt.After(updated.CreatedAt))

	_, err = repo.Update(ctx, &model.Document{ID: 404, Title: "x", Content: "y", Slug: "z", UpdatedAt: now})
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestDocumentStore_SQLite_Pagination(t *testing.T) {
	repo := NewDocumentStore(newSQLiteDB(t))
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 20; i++ {
		seedDoc(t, repo, fmt.Sprintf("Doc %02d", i), fmt.Sprintf("doc-%02d", i), "en", true, base.Add(time.Duration(i)*time.Hour))
	}

	page1, err := repo.List(ctx, repository.DocumentFilter{}, repository.PageQuery{Limit: 15, Offset: 0})
	require.NoError(t, err)
	assert.Equal(t, 20, page1.Total)
	assert.Len(t, page1.Items, 15)
	assert.Equal(t, "doc-19", page1.Items[0].Slug)

	page2, err := repo.List(ctx, repository.DocumentFilter{}, repository.PageQuery{Limit: 15, Offset: 15})
	require.NoError(t, err)
	assert.Len(t, page2.Items, 5)
	assert.Equal(t, "doc-00", page2.Items[4].Slug)
}

func TestDocumentStore_SQLite_ListPublishedAndCount(t *testing.T) {
	repo := NewDocumentStore(newSQLiteDB(t))
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	seedDoc(t, repo, "B", "b", "en", true, base.Add(2*time.Hour))
	seedDoc(t, repo, "A", "a", "en", true, base.Add(time.Hour))
	seedDoc(t, repo, "Draft", "draft", "en", false, base)
	seedDoc(t, repo, "J", "j", "ja", true, base)

	docs, err := repo.ListPublished(ctx, "en")
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "a", docs[0].Slug)
	assert.Equal(t, "b", docs[1].Slug)

	counts, err := repo.Count(ctx, "en")
	require.NoError(t, err)
	assert.Equal(t, model.DocumentCounts{Total: 3, Published: 2, Unpublished: 1}, *counts)

	found, err := repo.FindBySlug(ctx, "j", "ja")
	require.NoError(t, err)
	assert.Equal(t, "J", found.Title)

	_, err = repo.FindBySlug(ctx, "j", "en")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestDocumentStore_SQLite_SearchRanking(t *testing.T) {
	repo := NewDocumentStore(newSQLiteDB(t))
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	contentOnly, err := repo.Create(ctx, &model.Document{
		Title: "Overview", Content: "This page explains the Install Guide in depth.", Slug: "overview",
		Published: true, Language: "en", CreatedAt: base.Add(time.Hour), UpdatedAt: base.Add(time.Hour),
	})
	require.NoError(t, err)
	titleMatch := seedDoc(t, repo, "Install Guide", "install-guide", "en", true, base)
	seedDoc(t, repo, "Guide draft", "guide-draft", "en", false, base)
	seedDoc(t, repo, "Guide JA", "guide-ja", "ja", true, base)

	results, err := repo.Search(ctx, "%guide%", "en", 20)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, titleMatch.ID, results[0].ID)
	assert.Equal(t, contentOnly.ID, results[1].ID)

	all, err := repo.Search(ctx, "%guide%", "", 20)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	literal, err := repo.Search(ctx, `%100\%%`, "en", 20)
	require.NoError(t, err)
	assert.Empty(t, literal)
}

func TestDocumentStore_SQLite_DeleteMissing(t *testing.T) {
	repo := NewDocumentStore(newSQLiteDB(t))
	assert.ErrorIs(t, repo.Delete(context.Background(), 12345), sql.ErrNoRows)
}

func TestDocumentStore_SQLite_SearchFoldsUnicode(t *testing.T) {
	repo := NewDocumentStore(newSQLiteDB(t))
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	doc, err := repo.Create(ctx, &model.Document{
		Title: "Über MyApp", Content: "Überblick über die Installation.", Slug: "uber-myapp",
		Published: true, Language: "en", CreatedAt: base, UpdatedAt: base,
	})
	require.NoError(t, err)

	for _, pattern := range []string{"%über%", "%ü%", "%myapp%", "%überblick%"} {
		results, err := repo.Search(ctx, pattern, "en", 20)
		require.NoError(t, err, pattern)
		require.Len(t, results, 1, pattern)
		assert.Equal(t, doc.ID, results[0].ID)
	}
}
