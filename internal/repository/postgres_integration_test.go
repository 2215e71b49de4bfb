package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/ilkin0/mimedemo/internal/repository"
	"github.com/ilkin0/mimedemo/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresUploadRepository_Integration(t *testing.T) {
	db := testutil.StartPostgres(t)
	repo := repository.NewPostgresUploadRepository(db.Pool)
	ctx := context.Background()

	t.Run("create and get", func(t *testing.T) {
		defer testutil.CleanDatabase(ctx, db)

		rec := testutil.NewUploadRecord(time.Now())
		require.NoError(t, repo.Create(ctx, rec))

		got, err := repo.GetByKey(ctx, rec.StorageKey)
		require.NoError(t, err)
		assert.Equal(t, rec.OriginalFilename, got.OriginalFilename)
		assert.Equal(t, rec.DetectedType, got.DetectedType)
		assert.Equal(t, rec.Size, got.Size)
		assert.Equal(t, rec.SHA256, got.SHA256)
		assert.True(t, rec.CreatedAt.Equal(got.CreatedAt))
	})

	t.Run("missing key", func(t *testing.T) {
		_, err := repo.GetByKey(ctx, "0_missing")
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("duplicate key is rejected", func(t *testing.T) {
		defer testutil.CleanDatabase(ctx, db)

		rec := testutil.NewUploadRecord(time.Now())
		require.NoError(t, repo.Create(ctx, rec))
		assert.Error(t, repo.Create(ctx, rec))
	})

	t.Run("list newest first with limit", func(t *testing.T) {
		defer testutil.CleanDatabase(ctx, db)

		base := time.Now().Add(-time.Hour)
		var keys []string
		for i := range 3 {
			rec := testutil.NewUploadRecord(base.Add(time.Duration(i) * time.Minute))
			require.NoError(t, repo.Create(ctx, rec))
			keys = append(keys, rec.StorageKey)
		}

		got, err := repo.List(ctx, 2)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, keys[2], got[0].StorageKey)
		assert.Equal(t, keys[1], got[1].StorageKey)
	})

	t.Run("expired records oldest first then delete", func(t *testing.T) {
		defer testutil.CleanDatabase(ctx, db)

		base := time.Now().Add(-48 * time.Hour)
		var keys []string
		for i := range 3 {
			rec := testutil.NewUploadRecord(base.Add(time.Duration(i) * time.Hour))
			require.NoError(t, repo.Create(ctx, rec))
			keys = append(keys, rec.StorageKey)
		}
		fresh := testutil.NewUploadRecord(time.Now())
		require.NoError(t, repo.Create(ctx, fresh))

		expired, err := repo.ListCreatedBefore(ctx, time.Now().Add(-24*time.Hour), 10)
		require.NoError(t, err)
		require.Len(t, expired, 3)
		assert.Equal(t, keys[0], expired[0].StorageKey)

		require.NoError(t, repo.Delete(ctx, keys[0]))
		require.NoError(t, repo.Delete(ctx, keys[0]))
		_, err = repo.GetByKey(ctx, keys[0])
		assert.ErrorIs(t, err, repository.ErrNotFound)

		_, err = repo.GetByKey(ctx, fresh.StorageKey)
		assert.NoError(t, err)
	})
}
