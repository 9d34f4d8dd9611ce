package repository

import (
	"context"
	"errors"

	"docsite/internal/model"
)

// ErrConflict is returned when a write violates a unique constraint.
var ErrConflict = errors.New("unique constraint violation")

// DocumentFilter narrows List queries. Empty Language means all locales.
type DocumentFilter struct {
	Language      string
	PublishedOnly bool
}

// DocumentRepository defines data access for documents using SQL queries only.
// Missing rows are reported as sql.ErrNoRows.
type DocumentRepository interface {
	// Create inserts a document. A duplicate (slug, language) returns ErrConflict and inserts nothing.
	Create(ctx context.Context, doc *model.Document) (*model.Document, error)

	FindByID(ctx context.Context, id int64) (*model.Document, error)
	FindBySlug(ctx context.Context, slug, language string) (*model.Document, error)

	// ListPublished returns published documents of a locale, oldest first.
	ListPublished(ctx context.Context, language string) ([]model.Document, error)

	// List returns a page of documents, newest first, and the total matching the filter.
	List(ctx context.Context, f DocumentFilter, pq PageQuery) (*PageResult[model.Document], error)

	// Update overwrites the mutable fields of doc.ID and returns the stored row.
	Update(ctx context.Context, doc *model.Document) (*model.Document, error)

	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context, language string) (*model.DocumentCounts, error)

	// Search matches the LIKE pattern against title and content of published documents.
	// Title matches rank first.
	Search(ctx context.Context, pattern, language string, limit int) ([]model.Document, error)
}

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult is a generic pagination result wrapper.
// T is typically a model type.
type PageResult[T any] struct {
	Items []T
	Total int
}
