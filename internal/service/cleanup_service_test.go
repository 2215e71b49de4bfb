package service

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ilkin0/mimedemo/internal/repository"
	repomocks "github.com/ilkin0/mimedemo/internal/repository/mocks"
	"github.com/ilkin0/mimedemo/internal/storage"
	storagemocks "github.com/ilkin0/mimedemo/internal/storage/mocks"
	"github.com/ilkin0/mimedemo/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCleanupExpiredUploads_RemovesOnlyExpired(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	records := repository.NewMemoryUploadRepository()

	put := func(createdAt time.Time) string {
		rec := testutil.NewUploadRecord(createdAt)
		_, err := store.Put(ctx, rec.StorageKey, bytes.NewReader(testutil.PNGBytes), storage.PutOptions{Size: -1})
		require.NoError(t, err)
		require.NoError(t, records.Create(ctx, rec))
		return rec.StorageKey
	}

	old1 := put(now.Add(-72 * time.Hour))
	old2 := put(now.Add(-25 * time.Hour))
	fresh := put(now.Add(-time.Hour))

	svc := NewCleanupService(store, records, 24*time.Hour)
	svc.now = func() time.Time { return now }

	deleted, err := svc.CleanupExpiredUploads(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, deleted)

	for _, key := range []string{old1, old2} {
		_, _, err := store.Get(ctx, key)
		assert.ErrorIs(t, err, storage.ErrNotFound)
		_, err = records.GetByKey(ctx, key)
		assert.ErrorIs(t, err, repository.ErrNotFound)
	}

	rc, _, err := store.Get(ctx, fresh)
	require.NoError(t, err)
	rc.Close()

	again, err := svc.CleanupExpiredUploads(ctx)
	require.NoError(t, err)
	assert.Zero(t, again)
}

func TestCleanupExpiredUploads_ListError(t *testing.T) {
	store := new(storagemocks.MockStorage)
	records := new(repomocks.MockUploadRepository)
	ctx := context.Background()

	records.On("ListCreatedBefore", ctx, mock.AnythingOfType("time.Time"), cleanupBatch).
		Return([]repository.UploadRecord{}, errors.New("database connection failed"))

	deleted, err := NewCleanupService(store, records, time.Hour).CleanupExpiredUploads(ctx)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "database connection failed")
	assert.Zero(t, deleted)
	store.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestCleanupExpiredUploads_KeepsRecordWhenObjectDeleteFails(t *testing.T) {
	store := new(storagemocks.MockStorage)
	records := new(repomocks.MockUploadRepository)
	ctx := context.Background()

	stuck := testutil.NewUploadRecord(time.Now().Add(-48 * time.Hour))
	gone := testutil.NewUploadRecord(time.Now().Add(-47 * time.Hour))

	records.On("ListCreatedBefore", ctx, mock.AnythingOfType("time.Time"), cleanupBatch).
		Return([]repository.UploadRecord{stuck, gone}, nil)
	store.On("Delete", ctx, stuck.StorageKey).Return(errors.New("access denied"))
	store.On("Delete", ctx, gone.StorageKey).Return(nil)
	records.On("Delete", ctx, gone.StorageKey).Return(nil)

	deleted, err := NewCleanupService(store, records, 24*time.Hour).CleanupExpiredUploads(ctx)

	assert.Equal(t, 1, deleted)
	require.Error(t, err)
	assert.Contains(t, err.Error(), stuck.StorageKey)
	assert.Contains(t, err.Error(), "access denied")
	records.AssertNotCalled(t, "Delete", ctx, stuck.StorageKey)
	store.AssertExpectations(t)
	records.AssertExpectations(t)
}

func TestCleanupExpiredUploads_StopsOnCancelledContext(t *testing.T) {
	store := new(storagemocks.MockStorage)
	records := new(repomocks.MockUploadRepository)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	records.On("ListCreatedBefore", ctx, mock.AnythingOfType("time.Time"), cleanupBatch).
		Return([]repository.UploadRecord{testutil.NewUploadRecord(time.Now().Add(-48 * time.Hour))}, nil)

	deleted, err := NewCleanupService(store, records, time.Hour).CleanupExpiredUploads(ctx)

	assert.Zero(t, deleted)
	assert.ErrorIs(t, err, context.Canceled)
	store.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
