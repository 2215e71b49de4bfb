package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ilkin0/mimedemo/internal/repository"
	"github.com/ilkin0/mimedemo/internal/storage"
)

// cleanupBatch bounds how many expired uploads one sweep removes.
const cleanupBatch = repository.MaxListLimit

// CleanupService removes uploads older than the retention period, object
// first and record second, so a record never outlives a missing object for
// longer than one sweep.
type CleanupService struct {
	storage   storage.Storage
	records   repository.UploadRepository
	retention time.Duration
	now       func() time.Time
}

func NewCleanupService(store storage.Storage, records repository.UploadRepository, retention time.Duration) *CleanupService {
	return &CleanupService{
		storage:   store,
		records:   records,
		retention: retention,
		now:       time.Now,
	}
}

// CleanupExpiredUploads deletes one batch of expired uploads and returns how
// many were fully removed. Failures on individual uploads are joined into the
// returned error and do not stop the sweep.
func (s *CleanupService) CleanupExpiredUploads(ctx context.Context) (int, error) {
	cutoff := s.now().Add(-s.retention)

	expired, err := s.records.ListCreatedBefore(ctx, cutoff, cleanupBatch)
	if err != nil {
		return 0, fmt.Errorf("failed to get expired uploads: %w", err)
	}

	var (
		deleted int
		errs    []error
	)
	for _, rec := range expired {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		if err := s.storage.Delete(ctx, rec.StorageKey); err != nil {
			slog.Error("failed to delete expired object",
				slog.String("key", rec.StorageKey),
				slog.String("error", err.Error()),
			)
			errs = append(errs, fmt.Errorf("delete object %s: %w", rec.StorageKey, err))
			continue
		}
		if err := s.records.Delete(ctx, rec.StorageKey); err != nil {
			errs = append(errs, fmt.Errorf("delete record %s: %w", rec.StorageKey, err))
			continue
		}
		deleted++
	}

	return deleted, errors.Join(errs...)
}
