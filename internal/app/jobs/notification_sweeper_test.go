package jobs

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePurger struct {
	mu      sync.Mutex
	cutoffs []time.Time
	err     error
}

func (p *fakePurger) PurgeOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cutoffs = append(p.cutoffs, cutoff)
	if p.err != nil {
		return 0, p.err
	}
	return 4, nil
}

func (p *fakePurger) calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.cutoffs)
}

func TestSweepUsesRetentionCutoff(t *testing.T) {
	purger := &fakePurger{}
	sweeper, err := NewNotificationSweeper(purger, 30*24*time.Hour, time.Hour, zerolog.Nop())
	require.NoError(t, err)

	now := time.Date(2024, 3, 31, 12, 0, 0, 0, time.UTC)
	sweeper.now = func() time.Time { return now }

	deleted, err := sweeper.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(4), deleted)
	require.Len(t, purger.cutoffs, 1)
	assert.Equal(t, time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC), purger.cutoffs[0])
}

func TestSweepReportsPurgeFailure(t *testing.T) {
	purger := &fakePurger{err: errors.New("mongo down")}
	sweeper, err := NewNotificationSweeper(purger, time.Hour, time.Hour, zerolog.Nop())
	require.NoError(t, err)

	_, err = sweeper.Sweep(context.Background())
	assert.Error(t, err)
}

func TestNewNotificationSweeperRejectsBadDurations(t *testing.T) {
	_, err := NewNotificationSweeper(&fakePurger{}, 0, time.Hour, zerolog.Nop())
	assert.Error(t, err)

	_, err = NewNotificationSweeper(&fakePurger{}, time.Hour, 0, zerolog.Nop())
	assert.Error(t, err)
}

func TestSchedulerRunsSweeps(t *testing.T) {
	purger := &fakePurger{}
	sweeper, err := NewNotificationSweeper(purger, time.Hour, 20*time.Millisecond, zerolog.Nop())
	require.NoError(t, err)

	require.NoError(t, sweeper.Start())
	require.Eventually(t, func() bool { return purger.calls() >= 2 }, 2*time.Second, 10*time.Millisecond)
	require.NoError(t, sweeper.Shutdown())
}
