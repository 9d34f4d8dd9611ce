package repository

import (
	"context"

	"docsite/internal/model"
)

// ImageRepository persists image metadata rows.
type ImageRepository interface {
	Create(ctx context.Context, img *model.Image) (*model.Image, error)
	FindByID(ctx context.Context, id int64) (*model.Image, error)
	List(ctx context.Context, pq PageQuery) (*PageResult[model.Image], error)
	Delete(ctx context.Context, id int64) error

	// Filenames returns the stored filename of every image row.
	Filenames(ctx context.Context) ([]string, error)
}
