package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"vault-purge/internal/metrics"
	"vault-purge/internal/model"
)

// PurgeStore is the slice of the cipher repository the purge task needs.
type PurgeStore interface {
	CountPurgeable(ctx context.Context, cutoff string) (int64, error)
	PurgePurgeable(ctx context.Context, cutoff string) (int64, error)
}

// PurgeService permanently deletes ciphers that have been soft-deleted for
// longer than the configured retention period. A retention of zero or less
// disables purging entirely: Run becomes a no-op that reports zero deletions
// without touching the store.
type PurgeService struct {
	store         PurgeStore
	retentionDays int
	metrics       *metrics.Metrics
	now           func() time.Time

	mu      sync.Mutex
	lastRun *model.PurgeRunInfo
}

func NewPurgeService(store PurgeStore, retentionDays int, m *metrics.Metrics) *PurgeService {
	return &PurgeService{
		store:         store,
		retentionDays: retentionDays,
		metrics:       m,
		now:           time.Now,
	}
}

func (s *PurgeService) RetentionDays() int {
	return s.retentionDays
}

// Cutoff returns the purge boundary for the given instant: ciphers
// soft-deleted strictly before it are eligible for permanent deletion. The
// result is in model.TimestampLayout so the store can compare it against
// deleted_at lexicographically.
func (s *PurgeService) Cutoff(now time.Time) string {
	return model.FormatTimestamp(now.Add(-time.Duration(s.retentionDays) * 24 * time.Hour))
}

// Run executes one purge pass. Safe to invoke concurrently or repeatedly: a
// re-run with the same or an earlier cutoff deletes at most a subset of what
// a previous run already removed. The reported count is the number of rows
// the DELETE statement actually affected, not the advisory pre-delete count.
func (s *PurgeService) Run(ctx context.Context) (model.PurgeResult, error) {
	if s.retentionDays <= 0 {
		slog.Info("trash auto-purge disabled", "retention_days", s.retentionDays)
		s.metrics.PurgeRuns.WithLabelValues("disabled").Inc()
		result := model.PurgeResult{Disabled: true}
		s.recordRun(result, nil)
		return result, nil
	}

	started := s.now()
	cutoff := s.Cutoff(started)
	slog.Info("purging soft-deleted ciphers",
		"retention_days", s.retentionDays, "cutoff", cutoff)

	count, err := s.store.CountPurgeable(ctx, cutoff)
	if err != nil {
		s.metrics.PurgeRuns.WithLabelValues("error").Inc()
		s.recordRun(model.PurgeResult{Cutoff: cutoff}, err)
		return model.PurgeResult{}, fmt.Errorf("count purgeable ciphers: %w", err)
	}

	result := model.PurgeResult{Cutoff: cutoff}
	if count > 0 {
		purged, err := s.store.PurgePurgeable(ctx, cutoff)
		if err != nil {
			s.metrics.PurgeRuns.WithLabelValues("error").Inc()
			s.recordRun(result, err)
			return model.PurgeResult{}, fmt.Errorf("purge ciphers: %w", err)
		}

		result.Purged = purged
		s.metrics.PurgeDeleted.Add(float64(purged))
		slog.Info("purged soft-deleted ciphers", "purged", purged, "cutoff", cutoff)
	} else {
		slog.Info("no soft-deleted ciphers to purge", "cutoff", cutoff)
	}

	s.metrics.PurgeRuns.WithLabelValues("success").Inc()
	s.metrics.PurgeLastRun.SetToCurrentTime()
	s.metrics.PurgeDuration.Observe(time.Since(started).Seconds())
	s.recordRun(result, nil)

	return result, nil
}

// Status reports the retention configuration and the outcome of the most
// recent run. Scheduler state is layered on by the HTTP handler.
func (s *PurgeService) Status() model.PurgeStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := model.PurgeStatus{
		RetentionDays: s.retentionDays,
		Disabled:      s.retentionDays <= 0,
	}
	if s.lastRun != nil {
		copied := *s.lastRun
		status.LastRun = &copied
	}
	return status
}

func (s *PurgeService) recordRun(result model.PurgeResult, runErr error) {
	info := &model.PurgeRunInfo{
		At:       model.FormatTimestamp(s.now()),
		Purged:   result.Purged,
		Disabled: result.Disabled,
	}
	if runErr != nil {
		info.Error = runErr.Error()
	}

	s.mu.Lock()
	s.lastRun = info
	s.mu.Unlock()
}
