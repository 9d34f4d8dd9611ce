package service

import "docsite/internal/repository"

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
)

// Page is a 1-based page request.
type Page struct {
	Page  int
	Limit int
}

func (p Page) validate() error {
	if p.Page < 1 || p.Limit < 1 || p.Limit > MaxLimit {
		return invalid("Invalid pagination parameters")
	}
	return nil
}

func (p Page) query() repository.PageQuery {
	return repository.PageQuery{Limit: p.Limit, Offset: (p.Page - 1) * p.Limit}
}

func totalPages(total, limit int) int {
	if limit <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}
