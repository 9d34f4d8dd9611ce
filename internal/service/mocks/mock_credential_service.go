package mocks

import (
	"context"

	"docsite/internal/model"
	"github.com/stretchr/testify/mock"
)

type MockCredentialService struct {
	mock.Mock
}

func (m *MockCredentialService) Verify(ctx context.Context, username, password string) (*model.User, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockCredentialService) UpdatePassword(ctx context.Context, userID int64, current, newPassword string) (string, error) {
	args := m.Called(ctx, userID, current, newPassword)
	return args.String(0), args.Error(1)
}
