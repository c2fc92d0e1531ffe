package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vault-purge/internal/model"
)

type countingRunner struct {
	calls atomic.Int64
}

func (r *countingRunner) Run(_ context.Context) (model.PurgeResult, error) {
	r.calls.Add(1)
	return model.PurgeResult{Purged: 1, Cutoff: "2024-01-16T10:30:00.000Z"}, nil
}

func TestScheduler_EmptyScheduleIsNoop(t *testing.T) {
	s := New(&countingRunner{}, "")

	err := s.Start(context.Background())

	assert.NoError(t, err)
	assert.False(t, s.IsRunning())
	assert.Nil(t, s.NextRun())
}

func TestScheduler_InvalidSchedule(t *testing.T) {
	s := New(&countingRunner{}, "not a cron expression")

	err := s.Start(context.Background())

	assert.Error(t, err)
	assert.False(t, s.IsRunning())
}

func TestScheduler_RunsOnSchedule(t *testing.T) {
	runner := &countingRunner{}
	s := New(runner, "@every 10ms")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, s.Start(ctx))
	defer s.Stop()

	assert.True(t, s.IsRunning())
	assert.NotNil(t, s.NextRun())

	assert.Eventually(t, func() bool {
		return runner.calls.Load() >= 1
	}, 2*time.Second, 5*time.Millisecond)
}

func TestScheduler_StopOnContextCancel(t *testing.T) {
	s := New(&countingRunner{}, "0 3 * * *")

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, s.Start(ctx))
	assert.True(t, s.IsRunning())

	cancel()

	assert.Eventually(t, func() bool {
		return !s.IsRunning()
	}, 2*time.Second, 5*time.Millisecond)
}

func TestScheduler_StopIsIdempotent(t *testing.T) {
	s := New(&countingRunner{}, "0 3 * * *")
	require.NoError(t, s.Start(context.Background()))

	s.Stop()
	s.Stop()

	assert.False(t, s.IsRunning())
}
