package repository

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"
)

// MemoryUploadRepository keeps records for the life of the process. It is
// used when no DB_URL is configured.
type MemoryUploadRepository struct {
	mu    sync.RWMutex
	byKey map[string]UploadRecord
}

func NewMemoryUploadRepository() *MemoryUploadRepository {
	return &MemoryUploadRepository{
		byKey: make(map[string]UploadRecord),
	}
}

var _ UploadRepository = (*MemoryUploadRepository)(nil)

func (r *MemoryUploadRepository) Create(ctx context.Context, rec UploadRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byKey[rec.StorageKey]; ok {
		return fmt.Errorf("upload record %s already exists", rec.StorageKey)
	}
	r.byKey[rec.StorageKey] = rec
	return nil
}

func (r *MemoryUploadRepository) GetByKey(ctx context.Context, key string) (UploadRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.byKey[key]
	if !ok {
		return UploadRecord{}, ErrNotFound
	}
	return rec, nil
}

func (r *MemoryUploadRepository) List(ctx context.Context, limit int) ([]UploadRecord, error) {
	out := r.snapshot()
	slices.SortFunc(out, func(a, b UploadRecord) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(b.StorageKey, a.StorageKey)
	})
	return truncate(out, ClampLimit(limit)), nil
}

func (r *MemoryUploadRepository) ListCreatedBefore(ctx context.Context, cutoff time.Time, limit int) ([]UploadRecord, error) {
	out := slices.DeleteFunc(r.snapshot(), func(rec UploadRecord) bool {
		return !rec.CreatedAt.Before(cutoff)
	})
	slices.SortFunc(out, func(a, b UploadRecord) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.StorageKey, b.StorageKey)
	})
	return truncate(out, ClampLimit(limit)), nil
}

func (r *MemoryUploadRepository) Delete(ctx context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.byKey, key)
	return nil
}

func (r *MemoryUploadRepository) snapshot() []UploadRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Collect(maps.Values(r.byKey))
}

func truncate(recs []UploadRecord, limit int) []UploadRecord {
	if len(recs) > limit {
		return recs[:limit]
	}
	return recs
}
