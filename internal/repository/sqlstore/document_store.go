package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"docsite/internal/model"
	"docsite/internal/repository"
)

// DocumentStore is a database/sql implementation of repository.DocumentRepository.
// Its queries run unchanged on SQLite and PostgreSQL.
type DocumentStore struct {
	db *sql.DB
}

// NewDocumentStore creates a new DocumentStore repository.
func NewDocumentStore(db *sql.DB) *DocumentStore {
	return &DocumentStore{db: db}
}

var _ repository.DocumentRepository = (*DocumentStore)(nil)

const documentColumns = `id, title, content, slug, published, language, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(s rowScanner) (*model.Document, error) {
	var d model.Document
	if err := s.Scan(
		&d.ID,
		&d.Title,
		&d.Content,
		&d.Slug,
		&d.Published,
		&d.Language,
		&d.CreatedAt,
		&d.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DocumentStore) queryDocuments(ctx context.Context, q string, args ...any) ([]model.Document, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Document, 0)
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Create inserts a new document row. The (slug, language) conflict is resolved by the
// database: a duplicate inserts nothing and yields repository.ErrConflict.
func (r *DocumentStore) Create(ctx context.Context, doc *model.Document) (*model.Document, error) {
	const q = `
		INSERT INTO docs (title, content, slug, published, language, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (slug, language) DO NOTHING
		RETURNING id
	`
	var id int64
	err := r.db.QueryRowContext(ctx, q,
		doc.Title,
		doc.Content,
		doc.Slug,
		doc.Published,
		doc.Language,
		doc.CreatedAt,
		doc.UpdatedAt,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || IsUniqueViolation(err) {
			return nil, repository.ErrConflict
		}
		return nil, err
	}

	out := *doc
	out.ID = id
	return &out, nil
}

// FindByID fetches a single document by its ID.
func (r *DocumentStore) FindByID(ctx context.Context, id int64) (*model.Document, error) {
	q := `SELECT ` + documentColumns + ` FROM docs WHERE id = $1`
	return scanDocument(r.db.QueryRowContext(ctx, q, id))
}

// FindBySlug fetches a document by slug within one locale.
func (r *DocumentStore) FindBySlug(ctx context.Context, slug, language string) (*model.Document, error) {
	q := `SELECT ` + documentColumns + ` FROM docs WHERE slug = $1 AND language = $2`
	return scanDocument(r.db.QueryRowContext(ctx, q, slug, language))
}

// ListPublished returns the published documents of a locale in creation order.
func (r *DocumentStore) ListPublished(ctx context.Context, language string) ([]model.Document, error) {
	q := `SELECT ` + documentColumns + `
		FROM docs
		WHERE published = TRUE AND language = $1
		ORDER BY created_at ASC, id ASC`
	return r.queryDocuments(ctx, q, language)
}

func documentWhere(f repository.DocumentFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	if f.Language != "" {
		args = append(args, f.Language)
		conds = append(conds, fmt.Sprintf("language = $%d", len(args)))
	}
	if f.PublishedOnly {
		conds = append(conds, "published = TRUE")
	}
	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// List returns documents using LIMIT/OFFSET pagination and a total count.
func (r *DocumentStore) List(ctx context.Context, f repository.DocumentFilter, pq repository.PageQuery) (*repository.PageResult[model.Document], error) {
	where, args := documentWhere(f)

	// Count total rows
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM docs`+where, args...).Scan(&total); err != nil {
		return nil, err
	}

	// Fetch page
	n := len(args)
	qList := `SELECT ` + documentColumns + ` FROM docs` + where +
		fmt.Sprintf(" ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d", n+1, n+2)
	items, err := r.queryDocuments(ctx, qList, append(args, pq.Limit, pq.Offset)...)
	if err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Document]{
		Items: items,
		Total: total,
	}, nil
}

// Update overwrites title, content, slug and published state. A slug taken by another
// document of the same language yields repository.ErrConflict.
func (r *DocumentStore) Update(ctx context.Context, doc *model.Document) (*model.Document, error) {
	const q = `
		UPDATE docs
		SET title = $1, content = $2, slug = $3, published = $4, updated_at = $5
		WHERE id = $6
	`
	res, err := r.db.ExecContext(ctx, q,
		doc.Title,
		doc.Content,
		doc.Slug,
		doc.Published,
		doc.UpdatedAt,
		doc.ID,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return nil, repository.ErrConflict
		}
		return nil, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, sql.ErrNoRows
	}
	return r.FindByID(ctx, doc.ID)
}

// Delete removes a document by ID and returns sql.ErrNoRows when nothing was deleted.
func (r *DocumentStore) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM docs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Count tallies documents by publication state, optionally within one locale.
func (r *DocumentStore) Count(ctx context.Context, language string) (*model.DocumentCounts, error) {
	where, args := documentWhere(repository.DocumentFilter{Language: language})
	q := `SELECT COUNT(*), COALESCE(SUM(CASE WHEN published THEN 1 ELSE 0 END), 0) FROM docs` + where

	var c model.DocumentCounts
	if err := r.db.QueryRowContext(ctx, q, args...).Scan(&c.Total, &c.Published); err != nil {
		return nil, err
	}
	c.Unpublished = c.Total - c.Published
	return &c, nil
}

// Search runs a case-insensitive LIKE over published titles and contents.
// pattern must already be lowercased and escaped with '\'.
func (r *DocumentStore) Search(ctx context.Context, pattern, language string, limit int) ([]model.Document, error) {
	args := []any{pattern}
	q := `SELECT ` + documentColumns + `
		FROM docs
		WHERE published = TRUE
		  AND (LOWER(title) LIKE $1 ESCAPE '\' OR LOWER(content) LIKE $1 ESCAPE '\')`
	if language != "" {
		args = append(args, language)
		q += fmt.Sprintf(" AND language = $%d", len(args))
	}
	args = append(args, limit)
	q += fmt.Sprintf(`
		ORDER BY CASE WHEN LOWER(title) LIKE $1 ESCAPE '\' THEN 0 ELSE 1 END, created_at DESC, id DESC
		LIMIT $%d`, len(args))
	return r.queryDocuments(ctx, q, args...)
}
