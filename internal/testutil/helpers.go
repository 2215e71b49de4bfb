package testutil

import (
	"bytes"
	"mime/multipart"
	"net/textproto"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/ilkin0/mimedemo/internal/crypto"
	"github.com/ilkin0/mimedemo/internal/repository"
	"github.com/ilkin0/mimedemo/internal/storage"
	"github.com/stretchr/testify/require"
)

var (
	PNGBytes = []byte{
		0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A,
		0x00, 0x00, 0x00, 0x0D, 'I', 'H', 'D', 'R',
	}
	PDFBytes  = []byte("%PDF-1.4\n1 0 obj\n<<>>\nendobj\n")
	GIFBytes  = []byte("GIF89a\x01\x00\x01\x00\x00\x00\x00")
	TextBytes = []byte("plain words, nothing else")
)

type FilePart struct {
	Field       string
	Filename    string
	ContentType string
	Content     []byte
}

// MultipartBody encodes fields and files as multipart/form-data and returns
// the body together with its Content-Type header value.
func MultipartBody(t *testing.T, fields map[string]string, files ...FilePart) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)

	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		require.NoError(t, w.WriteField(name, fields[name]))
	}

	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", multipart.FileContentDisposition(f.Field, f.Filename))
		if f.ContentType != "" {
			h.Set("Content-Type", f.ContentType)
		}
		part, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(f.Content)
		require.NoError(t, err)
	}

	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

func NewKey() string {
	return storage.NewKey(time.Now(), uuid.New())
}

func NewUploadRecord(createdAt time.Time) repository.UploadRecord {
	key := storage.NewKey(createdAt, uuid.New())
	return repository.UploadRecord{
		StorageKey:       key,
		OriginalFilename: "photo.png",
		DeclaredType:     "text/plain",
		DetectedType:     "image/png",
		Size:             int64(len(PNGBytes)),
		SHA256:           crypto.HashBytes(PNGBytes),
		Location:         "uploads/" + key,
		CreatedAt:        createdAt.UTC().Truncate(time.Microsecond),
	}
}
