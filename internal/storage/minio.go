package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"time"

	"github.com/ilkin0/mimedemo/internal/config"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type MinIOStorage struct {
	Client     *minio.Client
	BucketName string
}

// NewMinIOStorage connects to MinIO and makes sure the bucket exists.
func NewMinIOStorage(ctx context.Context, cfg config.MinIOConfig) (*MinIOStorage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.BucketName)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}

	if !exists {
		if err := client.MakeBucket(ctx, cfg.BucketName, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
		slog.Info("minio bucket created successfully",
			slog.String("bucket_name", cfg.BucketName),
		)
	}

	return &MinIOStorage{
		Client:     client,
		BucketName: cfg.BucketName,
	}, nil
}

func (m *MinIOStorage) location(key string) string {
	return m.BucketName + "/" + key
}

func (m *MinIOStorage) Put(ctx context.Context, key string, r io.Reader, opt PutOptions) (ObjectInfo, error) {
	if err := checkKey(key); err != nil {
		return ObjectInfo{}, err
	}

	// PutObject has no create-only mode; keys are unique by construction.
	info, err := m.Client.PutObject(ctx, m.BucketName, key, r, opt.Size, minio.PutObjectOptions{
		ContentType:  opt.ContentType,
		UserMetadata: escapeMetadata(opt.Metadata),
	})
	if err != nil {
		return ObjectInfo{}, fmt.Errorf("failed to upload object to MinIO: %w", err)
	}

	return ObjectInfo{
		Key:          key,
		Size:         info.Size,
		ContentType:  opt.ContentType,
		Location:     m.location(key),
		LastModified: info.LastModified,
		Metadata:     opt.Metadata,
	}, nil
}

func (m *MinIOStorage) Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error) {
	if err := checkKey(key); err != nil {
		return nil, ObjectInfo{}, err
	}

	obj, err := m.Client.GetObject(ctx, m.BucketName, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, ObjectInfo{}, fmt.Errorf("failed to get object: %w", err)
	}

	st, err := obj.Stat()
	if err != nil {
		obj.Close()
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, ObjectInfo{}, fmt.Errorf("%w: %s", ErrNotFound, key)
		}
		return nil, ObjectInfo{}, fmt.Errorf("failed to stat object: %w", err)
	}

	return obj, ObjectInfo{
		Key:          key,
		Size:         st.Size,
		ContentType:  st.ContentType,
		Location:     m.location(key),
		LastModified: st.LastModified,
		Metadata:     unescapeMetadata(st.UserMetadata),
	}, nil
}

func (m *MinIOStorage) Delete(ctx context.Context, key string) error {
	if err := checkKey(key); err != nil {
		return err
	}
	if err := m.Client.RemoveObject(ctx, m.BucketName, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

// Metadata travels as HTTP headers, so values are query-escaped to survive
// non-ASCII filenames.
func escapeMetadata(m map[string]string) map[string]string {
	if len(m) == 0 {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = url.QueryEscape(v)
	}
	return out
}

func unescapeMetadata(m map[string]string) map[string]string {
	out := lowerKeys(m)
	for k, v := range out {
		if u, err := url.QueryUnescape(v); err == nil {
			out[k] = u
		}
	}
	return out
}
