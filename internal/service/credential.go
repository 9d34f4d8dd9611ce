package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"docsite/internal/auth"
	"docsite/internal/model"
	"docsite/internal/repository"
)

// PasswordUpdated is the confirmation message of a successful password change.
const PasswordUpdated = "Password updated successfully"

// CredentialService verifies and rotates admin passwords.
type CredentialService interface {
	// Verify returns the user without its password hash, or ErrInvalidCredentials.
	Verify(ctx context.Context, username, password string) (*model.User, error)

	// UpdatePassword checks current before storing newPassword. The minimum length is
	// enforced by the caller; passwords bcrypt cannot hash are a ValidationError.
	UpdatePassword(ctx context.Context, userID int64, current, newPassword string) (string, error)
}

type credentialService struct {
	users repository.UserRepository
}

func NewCredentialService(users repository.UserRepository) CredentialService {
	return &credentialService{users: users}
}

func (s *credentialService) Verify(ctx context.Context, username, password string) (*model.User, error) {
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}
	cred, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !auth.CheckPassword(cred.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	user := cred.User
	return &user, nil
}

func (s *credentialService) UpdatePassword(ctx context.Context, userID int64, current, newPassword string) (string, error) {
	if len(newPassword) > auth.MaxPasswordBytes {
		return "", invalid("New password must be at most %d bytes long", auth.MaxPasswordBytes)
	}
	cred, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrUserNotFound
		}
		return "", err
	}
	if !auth.CheckPassword(cred.PasswordHash, current) {
		return "", ErrIncorrectPassword
	}
	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return "", err
	}
	if err := s.users.UpdatePassword(ctx, userID, hash); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrUserNotFound
		}
		return "", fmt.Errorf("update password: %w", err)
	}
	return PasswordUpdated, nil
}
