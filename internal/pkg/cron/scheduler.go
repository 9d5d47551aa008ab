package cron

import (
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler wraps robfig/cron with structured logging around each job run.
type Scheduler struct {
	cron *cron.Cron
}

// NewScheduler creates a new cron scheduler. Schedules are interpreted in UTC
// so cohort day boundaries line up with the reconciliation windows.
func NewScheduler() *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithLocation(time.UTC)),
	}
}

// AddJob registers a named job under a standard 5-field cron spec.
func (s *Scheduler) AddJob(name string, spec string, fn func() error) error {
	_, err := s.cron.AddFunc(spec, func() {
		start := time.Now()
		slog.Info("cron job starting", "name", name)

		if err := fn(); err != nil {
			slog.Error("cron job failed", "name", name, "error", err, "duration", time.Since(start))
			return
		}
		slog.Info("cron job completed", "name", name, "duration", time.Since(start))
	})
	if err != nil {
		return err
	}

	slog.Info("cron job registered", "name", name, "spec", spec)
	return nil
}

// Start begins running all scheduled jobs.
func (s *Scheduler) Start() {
	s.cron.Start()
	slog.Info("cron scheduler started")
}

// Stop stops the scheduler and waits for in-flight jobs to finish.
func (s *Scheduler) Stop() {
	slog.Info("stopping cron scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	slog.Info("cron scheduler stopped")
}
