package model

import "time"

// Document is a Markdown page belonging to exactly one locale.
// Slugs are unique per language, not globally.
type Document struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content,omitempty"`
	Slug      string    `json:"slug"`
	Published bool      `json:"published"`
	Language  string    `json:"language"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DocumentCounts summarizes documents by publication state.
type DocumentCounts struct {
	Total       int `json:"total"`
	Published   int `json:"published"`
	Unpublished int `json:"unpublished"`
}

// SearchResult is a published document matched by a search query.
type SearchResult struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Published bool      `json:"published"`
	Language  string    `json:"language"`
	Snippet   string    `json:"snippet"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
