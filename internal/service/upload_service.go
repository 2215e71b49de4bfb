package service

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/textproto"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/ilkin0/mimedemo/internal/api/types"
	"github.com/ilkin0/mimedemo/internal/apperrors"
	"github.com/ilkin0/mimedemo/internal/crypto"
	"github.com/ilkin0/mimedemo/internal/logger"
	"github.com/ilkin0/mimedemo/internal/repository"
	"github.com/ilkin0/mimedemo/internal/sniff"
	"github.com/ilkin0/mimedemo/internal/storage"
)

// Part is one uploaded file as received from the client. Filename,
// ContentType and Header are untrusted and only ever recorded.
type Part struct {
	Filename    string
	ContentType string
	Header      textproto.MIMEHeader
	Open        func() (io.ReadCloser, error)
}

// UploadRecorder receives one call per processed item.
type UploadRecorder interface {
	ObserveUpload(success bool, size int64, mimeType string)
}

type UploadService struct {
	storage  storage.Storage
	records  repository.UploadRepository
	recorder UploadRecorder
	now      func() time.Time
	newID    func() uuid.UUID
}

type Option func(*UploadService)

func WithClock(now func() time.Time) Option {
	return func(s *UploadService) { s.now = now }
}

func WithIDGenerator(newID func() uuid.UUID) Option {
	return func(s *UploadService) { s.newID = newID }
}

func WithRecorder(r UploadRecorder) Option {
	return func(s *UploadService) { s.recorder = r }
}

func NewUploadService(store storage.Storage, records repository.UploadRepository, opts ...Option) *UploadService {
	s := &UploadService{
		storage: store,
		records: records,
		now:     time.Now,
		newID:   uuid.New,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// UploadSingle reads, sniffs and persists one part. Any fault is returned as
// a single error; nothing is left behind on failure.
func (s *UploadService) UploadSingle(ctx context.Context, p Part) (*types.FileResult, error) {
	res, err := s.process(ctx, p)
	s.observe(res, err)
	if err != nil {
		return nil, err
	}
	return res, nil
}

// UploadBatch processes every part independently. A failing part is recorded
// in its own result and never stops the rest.
func (s *UploadService) UploadBatch(ctx context.Context, parts []Part) types.BatchSummary {
	summary := types.BatchSummary{
		Total:   len(parts),
		Results: make([]types.FileResult, 0, len(parts)),
	}

	for _, p := range parts {
		res, err := s.process(ctx, p)
		s.observe(res, err)
		if err != nil {
			summary.Failed++
			summary.Results = append(summary.Results, types.FileResult{
				Filename: p.Filename,
				Error:    err.Error(),
			})
			continue
		}
		summary.Succeeded++
		summary.Results = append(summary.Results, *res)
	}

	return summary
}

func (s *UploadService) process(ctx context.Context, p Part) (*types.FileResult, error) {
	log := logger.FromContext(ctx)

	data, err := readPart(p)
	if err != nil {
		return nil, err
	}

	mimeType := sniff.Detect(data)
	sum := crypto.HashBytes(data)
	now := s.now()
	key := storage.NewKey(now, s.newID())

	info, err := s.storage.Put(ctx, key, bytes.NewReader(data), storage.PutOptions{
		Size:        int64(len(data)),
		ContentType: mimeType,
		Metadata: map[string]string{
			storage.MetaOriginalFilename: p.Filename,
			storage.MetaDeclaredType:     p.ContentType,
			storage.MetaSHA256:           sum,
		},
	})
	if err != nil {
		return nil, apperrors.WrapStorageError(err, "failed to save file").
			WithContext("key", key)
	}

	err = s.records.Create(ctx, repository.UploadRecord{
		StorageKey:       key,
		OriginalFilename: p.Filename,
		DeclaredType:     p.ContentType,
		DetectedType:     mimeType,
		Size:             info.Size,
		SHA256:           sum,
		Location:         info.Location,
		CreatedAt:        now.UTC(),
	})
	if err != nil {
		if delErr := s.storage.Delete(ctx, key); delErr != nil {
			log.Error("failed to roll back stored upload",
				slog.String("key", key),
				slog.Any("error", delErr),
			)
		}
		return nil, apperrors.WrapStorageError(err, "failed to record upload").
			WithContext("key", key)
	}

	log.Info("upload stored",
		slog.String("key", key),
		slog.String("filename", p.Filename),
		slog.String("declared_type", p.ContentType),
		slog.String("detected_type", mimeType),
		slog.String("size", humanize.Bytes(uint64(len(data)))),
	)

	return &types.FileResult{
		Filename:   p.Filename,
		MimeType:   mimeType,
		FileSize:   int64(len(data)),
		SavedPath:  info.Location,
		StorageKey: key,
	}, nil
}

func (s *UploadService) observe(res *types.FileResult, err error) {
	if s.recorder == nil {
		return
	}
	if err != nil {
		s.recorder.ObserveUpload(false, 0, "")
		return
	}
	s.recorder.ObserveUpload(true, res.FileSize, res.MimeType)
}

func readPart(p Part) ([]byte, error) {
	if p.Open == nil {
		return nil, apperrors.NewValidationError("file part has no content")
	}

	rc, err := p.Open()
	if err != nil {
		return nil, apperrors.WrapReadError(err, "failed to open upload")
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, apperrors.WrapReadError(err, "failed to read upload")
	}
	return data, nil
}
