package mocks

import (
	"context"
	"time"

	"github.com/ilkin0/mimedemo/internal/repository"
	"github.com/stretchr/testify/mock"
)

type MockUploadRepository struct {
	mock.Mock
}

func (m *MockUploadRepository) Create(ctx context.Context, rec repository.UploadRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockUploadRepository) GetByKey(ctx context.Context, key string) (repository.UploadRecord, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(repository.UploadRecord), args.Error(1)
}

func (m *MockUploadRepository) List(ctx context.Context, limit int) ([]repository.UploadRecord, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]repository.UploadRecord), args.Error(1)
}

func (m *MockUploadRepository) ListCreatedBefore(ctx context.Context, cutoff time.Time, limit int) ([]repository.UploadRecord, error) {
	args := m.Called(ctx, cutoff, limit)
	return args.Get(0).([]repository.UploadRecord), args.Error(1)
}

func (m *MockUploadRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}
