package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/ilkin0/mimedemo/internal/config"
	"github.com/ilkin0/mimedemo/internal/database"
	"github.com/ilkin0/mimedemo/internal/storage"
	"github.com/minio/minio-go/v7"
	"github.com/testcontainers/testcontainers-go"
	miniocontainer "github.com/testcontainers/testcontainers-go/modules/minio"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// SkipIfShort skips container-backed tests under `go test -short`.
func SkipIfShort(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container-backed test in short mode")
	}
}

// StartPostgres runs a throwaway Postgres, applies migrations and returns a
// connected Database. Everything is torn down by t.Cleanup.
func StartPostgres(t *testing.T) *database.Database {
	t.Helper()
	SkipIfShort(t)

	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:18-alpine",
		postgres.WithDatabase("mimedemo_test"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		t.Fatalf("Failed to start postgres container: %v", err)
	}
	t.Cleanup(func() { pgContainer.Terminate(ctx) })

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("Failed to get connection string: %v", err)
	}

	if err := database.Migrate(connStr); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	db, err := database.NewDatabase(ctx, connStr)
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	t.Cleanup(db.Close)

	return db
}

// StartMinIO runs a throwaway MinIO and returns storage bound to a fresh
// bucket. Everything is torn down by t.Cleanup.
func StartMinIO(t *testing.T) *storage.MinIOStorage {
	t.Helper()
	SkipIfShort(t)

	ctx := context.Background()

	minioContainer, err := miniocontainer.Run(ctx,
		"minio/minio:latest",
		miniocontainer.WithUsername("minioadmin"),
		miniocontainer.WithPassword("minioadmin"),
	)
	if err != nil {
		t.Fatalf("Failed to start minio container: %v", err)
	}
	t.Cleanup(func() { minioContainer.Terminate(ctx) })

	endpoint, err := minioContainer.ConnectionString(ctx)
	if err != nil {
		t.Fatalf("Failed to get minio endpoint: %v", err)
	}

	s, err := storage.NewMinIOStorage(ctx, config.MinIOConfig{
		Endpoint:   endpoint,
		AccessKey:  "minioadmin",
		SecretKey:  "minioadmin",
		BucketName: "mimedemo-test",
	})
	if err != nil {
		t.Fatalf("Failed to initialize MinIO storage: %v", err)
	}

	return s
}

func CleanDatabase(ctx context.Context, db *database.Database) {
	db.Pool.Exec(ctx, "TRUNCATE TABLE uploads")
}

func CleanMinIO(ctx context.Context, s *storage.MinIOStorage) {
	objectsCh := s.Client.ListObjects(ctx, s.BucketName, minio.ListObjectsOptions{
		Recursive: true,
	})
	for object := range objectsCh {
		if object.Err != nil {
			continue
		}
		s.Client.RemoveObject(ctx, s.BucketName, object.Key, minio.RemoveObjectOptions{})
	}
}
