package mocks

import (
	"context"
	"time"

	"docsite/internal/model"
	"docsite/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockImageService struct {
	mock.Mock
}

func (m *MockImageService) List(ctx context.Context, p service.Page) (*service.ImageListResult, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ImageListResult), args.Error(1)
}

func (m *MockImageService) Upload(ctx context.Context, files []service.UploadFile, uploadedBy int64) ([]model.Image, error) {
	args := m.Called(ctx, files, uploadedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Image), args.Error(1)
}

func (m *MockImageService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockImageService) Reconcile(ctx context.Context, grace time.Duration) (*service.ReconcileReport, error) {
	args := m.Called(ctx, grace)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ReconcileReport), args.Error(1)
}
