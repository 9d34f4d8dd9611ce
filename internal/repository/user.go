package repository

import (
	"context"

	"docsite/internal/model"
)

// UserRepository reads and updates admin accounts.
type UserRepository interface {
	Create(ctx context.Context, username, passwordHash, name string) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.Credential, error)
	FindByID(ctx context.Context, id int64) (*model.Credential, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
}
