package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"docsite/internal/i18n"
	"docsite/internal/model"
	"docsite/internal/repository"
	"docsite/internal/slug"
)

// DocumentListQuery filters and pages the document list.
type DocumentListQuery struct {
	Language      string
	PublishedOnly bool
	Page
}

// DocumentListResult is the service-level DTO for paginated documents.
type DocumentListResult struct {
	Documents  []model.Document `json:"documents"`
	Total      int              `json:"total"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalPages int              `json:"totalPages"`
}

// DocumentInput holds the editable fields of a document.
// Published defaults to true when nil. Language is ignored by Update.
type DocumentInput struct {
	Title     string `json:"title"`
	Content   string `json:"content"`
	Slug      string `json:"slug"`
	Published *bool  `json:"published"`
	Language  string `json:"language"`
}

// DocumentService defines the use cases for handling documents.
type DocumentService interface {
	// GetBySlug returns the document with slug in locale, published or not.
	// Callers decide whether an unpublished document may be shown.
	GetBySlug(ctx context.Context, slug string, locale i18n.Locale) (*model.Document, error)

	// Get returns a single document by its ID.
	Get(ctx context.Context, id int64) (*model.Document, error)

	// ListPublished returns the published documents of a locale, oldest first.
	ListPublished(ctx context.Context, locale i18n.Locale) ([]model.Document, error)

	// List returns one page of documents, newest first.
	List(ctx context.Context, q DocumentListQuery) (*DocumentListResult, error)

	Create(ctx context.Context, in DocumentInput) (*model.Document, error)
	Update(ctx context.Context, id int64, in DocumentInput) (*model.Document, error)
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context, language string) (*model.DocumentCounts, error)

	// Search matches query against published documents. A blank query returns no results.
	Search(ctx context.Context, query, language string) ([]model.SearchResult, error)
}

// documentService is a concrete implementation of DocumentService.
type documentService struct {
	repo          repository.DocumentRepository
	defaultLocale i18n.Locale
	now           func() time.Time
}

// NewDocumentService constructs a new DocumentService.
func NewDocumentService(repo repository.DocumentRepository, defaultLocale i18n.Locale) DocumentService {
	return &documentService{
		repo:          repo,
		defaultLocale: defaultLocale,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

func (s *documentService) GetBySlug(ctx context.Context, slug string, locale i18n.Locale) (*model.Document, error) {
	if strings.TrimSpace(slug) == "" {
		return nil, ErrNotFound
	}
	doc, err := s.repo.FindBySlug(ctx, slug, string(locale))
	return doc, mapNotFound(err)
}

// Get returns a document by ID.
func (s *documentService) Get(ctx context.Context, id int64) (*model.Document, error) {
	if id <= 0 {
		return nil, ErrIDRequired
	}
	doc, err := s.repo.FindByID(ctx, id)
	return doc, mapNotFound(err)
}

func (s *documentService) ListPublished(ctx context.Context, locale i18n.Locale) ([]model.Document, error) {
	return s.repo.ListPublished(ctx, string(locale))
}

// List validates paging and returns documents without exposing repository types.
func (s *documentService) List(ctx context.Context, q DocumentListQuery) (*DocumentListResult, error) {
	if err := q.Page.validate(); err != nil {
		return nil, err
	}
	if q.Language != "" && !i18n.IsSupported(q.Language) {
		return nil, invalid("Unsupported language: %s", q.Language)
	}

	res, err := s.repo.List(ctx,
		repository.DocumentFilter{Language: q.Language, PublishedOnly: q.PublishedOnly},
		q.Page.query(),
	)
	if err != nil {
		return nil, err
	}
	return &DocumentListResult{
		Documents:  res.Items,
		Total:      res.Total,
		Page:       q.Page.Page,
		Limit:      q.Page.Limit,
		TotalPages: totalPages(res.Total, q.Page.Limit),
	}, nil
}

// normalize validates in and fills the derived slug.
func normalize(in DocumentInput) (DocumentInput, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Slug = strings.TrimSpace(in.Slug)
	if in.Title == "" || strings.TrimSpace(in.Content) == "" {
		return in, invalid("Title and content are required")
	}
	if in.Slug == "" {
		in.Slug = slug.FromTitle(in.Title)
		if in.Slug == "" {
			return in, invalid("A slug is required when the title has no latin characters")
		}
	}
	if !slug.Valid(in.Slug) {
		return in, invalid("Slug may only contain lowercase letters, digits, hyphens and underscores")
	}
	return in, nil
}

func (s *documentService) Create(ctx context.Context, in DocumentInput) (*model.Document, error) {
	in, err := normalize(in)
	if err != nil {
		return nil, err
	}
	lang := s.defaultLocale
	if in.Language != "" {
		l, ok := i18n.Parse(in.Language)
		if !ok {
			return nil, invalid("Unsupported language: %s", in.Language)
		}
		lang = l
	}
	published := true
	if in.Published != nil {
		published = *in.Published
	}

	now := s.now()
	doc, err := s.repo.Create(ctx, &model.Document{
		Title:     in.Title,
		Content:   in.Content,
		Slug:      in.Slug,
		Published: published,
		Language:  string(lang),
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, fmt.Errorf("%w: slug %q already exists in %s", ErrConflict, in.Slug, lang)
		}
		return nil, err
	}
	return doc, nil
}

func (s *documentService) Update(ctx context.Context, id int64, in DocumentInput) (*model.Document, error) {
	if id <= 0 {
		return nil, ErrIDRequired
	}
	in, err := normalize(in)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	published := existing.Published
	if in.Published != nil {
		published = *in.Published
	}

	doc, err := s.repo.Update(ctx, &model.Document{
		ID:        id,
		Title:     in.Title,
		Content:   in.Content,
		Slug:      in.Slug,
		Published: published,
		Language:  existing.Language,
		CreatedAt: existing.CreatedAt,
		UpdatedAt: s.now(),
	})
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, fmt.Errorf("%w: slug %q already exists in %s", ErrConflict, in.Slug, existing.Language)
		}
		return nil, mapNotFound(err)
	}
	return doc, nil
}

// Delete removes a document; an unknown ID is ErrNotFound.
func (s *documentService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrIDRequired
	}
	return mapNotFound(s.repo.Delete(ctx, id))
}

func (s *documentService) Count(ctx context.Context, language string) (*model.DocumentCounts, error) {
	if language != "" && !i18n.IsSupported(language) {
		return nil, invalid("Unsupported language: %s", language)
	}
	return s.repo.Count(ctx, language)
}

func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
