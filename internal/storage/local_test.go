package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestKey() string {
	return NewKey(time.Now(), uuid.New())
}

func TestNewKey_Shape(t *testing.T) {
	now := time.Unix(1700000000, 123)
	id := uuid.MustParse("0b6f0c5e-5a57-4d7e-9f49-8f0c4c3f2a10")

	key := NewKey(now, id)

	assert.Equal(t, "1700000000000000123_0b6f0c5e-5a57-4d7e-9f49-8f0c4c3f2a10", key)
	assert.True(t, ValidKey(key))
}

func TestValidKey(t *testing.T) {
	tests := []struct {
		name string
		key  string
		want bool
	}{
		{"generated", newTestKey(), true},
		{"empty", "", false},
		{"traversal", "../etc/passwd", false},
		{"client filename", "1700000000_report.pdf", false},
		{"nested", "1700000000_0b6f0c5e-5a57-4d7e-9f49-8f0c4c3f2a10/x", false},
		{"uppercase uuid", "1_0B6F0C5E-5A57-4D7E-9F49-8F0C4C3F2A10", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidKey(tt.key))
		})
	}
}

func TestNewLocalStorage_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "uploads")

	s, err := NewLocalStorage(dir)
	require.NoError(t, err)

	st, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, st.IsDir())
	assert.Equal(t, dir, s.Dir())
}

func TestNewLocalStorage_EmptyDir(t *testing.T) {
	_, err := NewLocalStorage("")
	assert.Error(t, err)
}

func TestLocalStorage_PutGetDelete(t *testing.T) {
	ctx := context.Background()
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	key := newTestKey()
	payload := []byte("hello upload")

	info, err := s.Put(ctx, key, bytes.NewReader(payload), PutOptions{
		Size:        int64(len(payload)),
		ContentType: "text/plain",
		Metadata:    map[string]string{MetaOriginalFilename: "hello.txt"},
	})
	require.NoError(t, err)
	assert.Equal(t, key, info.Key)
	assert.Equal(t, int64(len(payload)), info.Size)
	assert.Equal(t, filepath.Join(s.Dir(), key), info.Location)
	assert.NotContains(t, info.Location, "hello.txt")

	rc, got, err := s.Get(ctx, key)
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, payload, data)
	assert.Equal(t, int64(len(payload)), got.Size)

	require.NoError(t, s.Delete(ctx, key))
	_, _, err = s.Get(ctx, key)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.NoError(t, s.Delete(ctx, key), "delete must be idempotent")
}

func TestLocalStorage_PutNeverOverwrites(t *testing.T) {
	ctx := context.Background()
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	key := newTestKey()
	_, err = s.Put(ctx, key, strings.NewReader("first"), PutOptions{Size: 5})
	require.NoError(t, err)

	_, err = s.Put(ctx, key, strings.NewReader("second"), PutOptions{Size: 6})
	assert.ErrorIs(t, err, ErrExists)

	data, err := os.ReadFile(filepath.Join(s.Dir(), key))
	require.NoError(t, err)
	assert.Equal(t, "first", string(data))
}

func TestLocalStorage_PutRemovesPartialFile(t *testing.T) {
	ctx := context.Background()
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	key := newTestKey()
	boom := errors.New("disk on fire")

	_, err = s.Put(ctx, key, iotest.ErrReader(boom), PutOptions{Size: -1})
	require.ErrorIs(t, err, boom)

	_, statErr := os.Stat(filepath.Join(s.Dir(), key))
	assert.True(t, os.IsNotExist(statErr))
}

func TestLocalStorage_RejectsInvalidKeys(t *testing.T) {
	ctx := context.Background()
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	_, err = s.Put(ctx, "../escape.txt", strings.NewReader("x"), PutOptions{Size: 1})
	assert.ErrorIs(t, err, ErrInvalidKey)

	_, _, err = s.Get(ctx, "../escape.txt")
	assert.ErrorIs(t, err, ErrInvalidKey)

	assert.ErrorIs(t, s.Delete(ctx, "report.pdf"), ErrInvalidKey)
}

func TestLocalStorage_DistinctKeysForSameContent(t *testing.T) {
	ctx := context.Background()
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	a, err := s.Put(ctx, newTestKey(), strings.NewReader("same"), PutOptions{Size: 4})
	require.NoError(t, err)
	b, err := s.Put(ctx, newTestKey(), strings.NewReader("same"), PutOptions{Size: 4})
	require.NoError(t, err)

	assert.NotEqual(t, a.Location, b.Location)
	for _, info := range []ObjectInfo{a, b} {
		rc, _, err := s.Get(ctx, info.Key)
		require.NoError(t, err)
		rc.Close()
	}
}

func TestLocalStorage_PutHonoursCancelledContext(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = s.Put(ctx, newTestKey(), strings.NewReader("x"), PutOptions{Size: 1})
	assert.ErrorIs(t, err, context.Canceled)
}
