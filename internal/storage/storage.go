package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	MetaOriginalFilename = "original-filename"
	MetaDeclaredType     = "declared-content-type"
	MetaSHA256           = "sha256"
)

var (
	ErrNotFound   = errors.New("object not found")
	ErrExists     = errors.New("object already exists")
	ErrInvalidKey = errors.New("invalid object key")
)

type PutOptions struct {
	// Size is the exact byte count, or -1 if unknown.
	Size        int64
	ContentType string
	Metadata    map[string]string
}

type ObjectInfo struct {
	Key          string
	Size         int64
	ContentType  string
	Location     string
	LastModified time.Time
	Metadata     map[string]string
}

// Storage persists upload blobs under generated keys.
type Storage interface {
	Put(ctx context.Context, key string, r io.Reader, opt PutOptions) (ObjectInfo, error)
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)
	Delete(ctx context.Context, key string) error
}

var keyPattern = regexp.MustCompile(`^[0-9]+_[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

// NewKey builds a storage key from internal identifiers only. Client input
// never contributes to it.
func NewKey(now time.Time, id uuid.UUID) string {
	return fmt.Sprintf("%d_%s", now.UnixNano(), id.String())
}

// ValidKey reports whether key has the shape produced by NewKey.
func ValidKey(key string) bool {
	return keyPattern.MatchString(key)
}

func checkKey(key string) error {
	if !ValidKey(key) {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}

func lowerKeys(m map[string]string) map[string]string {
	if len(m) == 0 {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[strings.ToLower(k)] = v
	}
	return out
}
