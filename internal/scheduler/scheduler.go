package scheduler

import (
	"context"
	"log/slog"
	"time"
)

type Cleaner interface {
	CleanupExpiredUploads(ctx context.Context) (int, error)
}

// Scheduler runs the cleaner once at start and then on every tick until the
// context is cancelled.
type Scheduler struct {
	cleaner  Cleaner
	interval time.Duration
	done     chan struct{}
}

func New(cleaner Cleaner, interval time.Duration) *Scheduler {
	return &Scheduler{
		cleaner:  cleaner,
		interval: interval,
		done:     make(chan struct{}),
	}
}

func (s *Scheduler) Start(ctx context.Context) {
	slog.Info("scheduler started", slog.Duration("interval", s.interval))
	go s.runCleanupJob(ctx)
}

// Done is closed once the job loop has exited.
func (s *Scheduler) Done() <-chan struct{} {
	return s.done
}

func (s *Scheduler) runCleanupJob(ctx context.Context) {
	defer close(s.done)

	s.executeCleanup(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.executeCleanup(ctx)
		case <-ctx.Done():
			slog.Info("scheduler stopped")
			return
		}
	}
}

func (s *Scheduler) executeCleanup(ctx context.Context) {
	deleted, err := s.cleaner.CleanupExpiredUploads(ctx)
	if err != nil {
		slog.Error("cleanup job failed",
			slog.Int("deleted_uploads", deleted),
			slog.String("error", err.Error()),
		)
		return
	}

	if deleted > 0 {
		slog.Info("cleanup job completed", slog.Int("deleted_uploads", deleted))
	}
}
