package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"vault-purge/internal/model"
)

// Runner is the purge operation the scheduler drives.
type Runner interface {
	Run(ctx context.Context) (model.PurgeResult, error)
}

// Scheduler invokes the purge task on a cron schedule. An empty schedule
// disables scheduling; the manual HTTP trigger remains available.
type Scheduler struct {
	runner   Runner
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger

	mu      sync.Mutex
	running bool
}

func New(runner Runner, schedule string) *Scheduler {
	return &Scheduler{
		runner:   runner,
		schedule: schedule,
		cron:     cron.New(),
		logger:   slog.Default().With("component", "purge.scheduler"),
	}
}

func (s *Scheduler) Schedule() string {
	return s.schedule
}

// Start begins scheduled purging. The schedule uses standard five-field cron
// syntax (plus descriptors like @daily); an invalid expression is an error.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.schedule == "" {
		s.logger.Info("purge schedule not configured, skipping scheduler")
		return nil
	}

	if _, err := cron.ParseStandard(s.schedule); err != nil {
		return fmt.Errorf("invalid purge schedule %q: %w", s.schedule, err)
	}

	if _, err := s.cron.AddFunc(s.schedule, func() {
		s.runPurge(ctx)
	}); err != nil {
		return fmt.Errorf("schedule purge: %w", err)
	}

	s.cron.Start()
	s.running = true
	s.logger.Info("purge scheduler started", "schedule", s.schedule)

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

func (s *Scheduler) runPurge(ctx context.Context) {
	result, err := s.runner.Run(ctx)
	if err != nil {
		s.logger.Error("scheduled purge failed", "error", err)
		return
	}

	if result.Disabled {
		s.logger.Info("scheduled purge skipped, auto-purge disabled")
		return
	}

	s.logger.Info("scheduled purge completed",
		"purged", result.Purged, "cutoff", result.Cutoff)
}

// Stop halts the scheduler and waits for a running purge to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron != nil && s.running {
		ctx := s.cron.Stop()
		<-ctx.Done()
		s.running = false
		s.logger.Info("purge scheduler stopped")
	}
}

func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.running
}

// NextRun returns the next scheduled purge time, or nil when nothing is
// scheduled.
func (s *Scheduler) NextRun() *time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.cron.Entries()
	if len(entries) == 0 {
		return nil
	}

	next := entries[0].Next
	return &next
}
