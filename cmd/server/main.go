package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/ilkin0/mimedemo/internal/api/routes"
	"github.com/ilkin0/mimedemo/internal/config"
	"github.com/ilkin0/mimedemo/internal/database"
	"github.com/ilkin0/mimedemo/internal/logger"
	"github.com/ilkin0/mimedemo/internal/metrics"
	"github.com/ilkin0/mimedemo/internal/repository"
	"github.com/ilkin0/mimedemo/internal/scheduler"
	"github.com/ilkin0/mimedemo/internal/service"
	"github.com/ilkin0/mimedemo/internal/storage"
	"github.com/ilkin0/mimedemo/internal/tracing"
	"github.com/joho/godotenv"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	serviceName = "mimedemo"
	version     = "1.0.0"
)

func main() {
	_ = godotenv.Load()
	slog.SetDefault(logger.Init())

	if err := run(); err != nil {
		slog.Error("server exited with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	slog.Info("starting mime types demo service",
		slog.String("version", version),
		slog.String("env", cfg.Env),
		slog.String("storage_backend", cfg.StorageBackend),
		slog.String("max_upload", humanize.IBytes(uint64(cfg.MaxUploadBytes))),
	)

	shutdownTracing, err := tracing.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			slog.Warn("tracing shutdown failed", slog.String("error", err.Error()))
		}
	}()

	store, err := newStorage(ctx, cfg)
	if err != nil {
		return err
	}

	records, closeRecords, err := newRecords(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeRecords()

	m, err := metrics.New()
	if err != nil {
		return fmt.Errorf("failed to register metrics: %w", err)
	}

	uploads := service.NewUploadService(store, records, service.WithRecorder(m))

	if cfg.UploadRetention > 0 {
		cleanup := service.NewCleanupService(store, records, cfg.UploadRetention)
		scheduler.New(cleanup, cfg.CleanupInterval).Start(ctx)
		slog.Info("upload retention enabled", slog.Duration("retention", cfg.UploadRetention))
	}

	router := routes.NewRouter(routes.Dependencies{
		Config:  cfg,
		Uploads: uploads,
		Storage: store,
		Records: records,
		Metrics: m,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           otelhttp.NewHandler(router, serviceName),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting",
			slog.String("port", cfg.Port),
			slog.String("address", fmt.Sprintf("http://localhost:%s", cfg.Port)),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("shutting down", slog.Duration("timeout", cfg.ShutdownTimeout))

	sctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	slog.Info("server stopped")
	return nil
}

func newStorage(ctx context.Context, cfg *config.Config) (storage.Storage, error) {
	switch cfg.StorageBackend {
	case config.StorageMinIO:
		s, err := storage.NewMinIOStorage(ctx, cfg.MinIO)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize MinIO: %w", err)
		}
		slog.Info("minio storage initialized",
			slog.String("endpoint", cfg.MinIO.Endpoint),
			slog.String("bucket", s.BucketName),
		)
		return s, nil
	default:
		s, err := storage.NewLocalStorage(cfg.UploadDir)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize upload directory: %w", err)
		}
		slog.Info("local storage initialized", slog.String("dir", s.Dir()))
		return s, nil
	}
}

// newRecords returns Postgres-backed records when DB_URL is set and an
// in-memory catalog otherwise.
func newRecords(ctx context.Context, cfg *config.Config) (repository.UploadRepository, func(), error) {
	if cfg.DatabaseURL == "" {
		slog.Info("DB_URL not set, keeping upload records in memory")
		return repository.NewMemoryUploadRepository(), func() {}, nil
	}

	if err := database.Migrate(cfg.DatabaseURL); err != nil {
		return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	db, err := database.NewDatabase(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	slog.Info("database initialized successfully")
	return repository.NewPostgresUploadRepository(db.Pool), db.Close, nil
}
