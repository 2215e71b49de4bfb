package repository

import (
	"context"
	"errors"
	"time"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 500
)

var ErrNotFound = errors.New("upload record not found")

// UploadRecord is the catalog entry for one persisted upload. The original
// filename is kept here as metadata only; StorageKey never contains it.
type UploadRecord struct {
	StorageKey       string    `json:"storage_key"`
	OriginalFilename string    `json:"original_filename"`
	DeclaredType     string    `json:"declared_type"`
	DetectedType     string    `json:"detected_type"`
	Size             int64     `json:"size"`
	SHA256           string    `json:"sha256"`
	Location         string    `json:"location"`
	CreatedAt        time.Time `json:"created_at"`
}

type UploadRepository interface {
	Create(ctx context.Context, rec UploadRecord) error
	GetByKey(ctx context.Context, key string) (UploadRecord, error)
	// List returns the newest records first.
	List(ctx context.Context, limit int) ([]UploadRecord, error)
	// ListCreatedBefore returns up to limit records older than cutoff,
	// oldest first.
	ListCreatedBefore(ctx context.Context, cutoff time.Time, limit int) ([]UploadRecord, error)
	// Delete removes the record for key. A missing record is not an error.
	Delete(ctx context.Context, key string) error
}

// ClampLimit maps a requested page size onto [1, MaxListLimit], using
// DefaultListLimit for non-positive values.
func ClampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultListLimit
	case limit > MaxListLimit:
		return MaxListLimit
	default:
		return limit
	}
}
