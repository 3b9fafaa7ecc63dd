// Package scheduler runs recurring background jobs on a fixed interval.
package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Job is a unit of recurring work. The context carries the job-scoped logger.
type Job func(ctx context.Context) error

// Scheduler runs one job on a ticker. Overlapping runs are skipped: if a run is
// still in flight when the next tick fires, the tick is dropped.
type Scheduler struct {
	name     string
	interval time.Duration
	job      Job
	logger   *slog.Logger

	running sync.Mutex
	done    chan struct{}
	stop    sync.Once
}

// New creates a scheduler for the given job.
func New(name string, interval time.Duration, job Job, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		name:     name,
		interval: interval,
		job:      job,
		logger:   logger.With(slog.String("job", name)),
		done:     make(chan struct{}),
	}
}

// Start launches the scheduler loop. The job runs once immediately, then on every
// interval tick until Stop is called or the context is cancelled.
func (s *Scheduler) Start(ctx context.Context) {
	go func() {
		s.runOnce(ctx)

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.runOnce(ctx)
			case <-ctx.Done():
				s.logger.Info("Scheduler stopping, context cancelled")
				return
			case <-s.done:
				s.logger.Info("Scheduler stopped")
				return
			}
		}
	}()
}

// Stop terminates the scheduler loop. An in-flight run completes.
func (s *Scheduler) Stop() {
	s.stop.Do(func() {
		close(s.done)
	})
}

func (s *Scheduler) runOnce(ctx context.Context) {
	if !s.running.TryLock() {
		s.logger.Warn("Previous run still in flight, skipping tick")
		return
	}
	defer s.running.Unlock()

	start := time.Now()
	if err := s.job(ctx); err != nil {
		s.logger.Error("Job run failed",
			slog.String("error", err.Error()),
			slog.Duration("elapsed", time.Since(start)),
		)
		return
	}
	s.logger.Info("Job run completed", slog.Duration("elapsed", time.Since(start)))
}
