package watch

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/BooleanCube/notebook/internal/errors"
)

// Scheduler wraps gocron for periodic full rebuilds, as a safety net for
// changes the filesystem watcher misses (network mounts, editors that write
// through hard links).
type Scheduler struct {
	scheduler gocron.Scheduler
}

// NewScheduler creates a new scheduler instance.
func NewScheduler() (*Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, errors.WatchSetupFailed(err)
	}
	return &Scheduler{scheduler: s}, nil
}

// SchedulePeriodicRebuild registers a rebuild at the given interval and
// returns the job id for later management.
func (s *Scheduler) SchedulePeriodicRebuild(ctx context.Context, interval time.Duration, builder Builder) (string, error) {
	job, err := s.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			slog.Info("Running scheduled rebuild")
			if err := builder(ctx); err != nil {
				slog.Error("Scheduled rebuild failed", "error", err)
			}
		}),
		gocron.WithName("periodic-rebuild"),
	)
	if err != nil {
		return "", errors.WatchSetupFailed(err)
	}
	return job.ID().String(), nil
}

// Start begins the scheduler.
func (s *Scheduler) Start() {
	slog.Info("Starting rebuild scheduler")
	s.scheduler.Start()
}

// Stop gracefully shuts down the scheduler.
func (s *Scheduler) Stop() error {
	slog.Info("Stopping rebuild scheduler")
	return s.scheduler.Shutdown()
}
