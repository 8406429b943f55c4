package ratelimit_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"fieldcheck/internal/config"
	"fieldcheck/internal/domain"
	"fieldcheck/internal/observability"
	"fieldcheck/internal/port"
	"fieldcheck/internal/ratelimit"
	"fieldcheck/mocks"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newLimiter(store port.RateCounterStore, clock *fakeClock, metrics *observability.Metrics) *ratelimit.Limiter {
	l := ratelimit.NewLimiter(store, config.RateLimitConfig{Limit: 60, Window: 60 * time.Second}, zap.NewNop(), metrics)
	l.SetClock(clock.Now)
	return l
}

func TestLimiter_SixtyFirstCallFails(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{t: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	metrics := observability.NewMetrics(prometheus.NewRegistry())
	limiter := newLimiter(ratelimit.NewMemoryStore(), clock, metrics)
	key := ratelimit.RequestKey("10.0.0.1", false)

	for i := 0; i < 60; i++ {
		require.NoError(t, limiter.Check(ctx, key), "call %d", i+1)
		clock.Advance(100 * time.Millisecond)
	}

	err := limiter.Check(ctx, key)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrRateLimitExceeded)

	var exceeded *ratelimit.ExceededError
	require.ErrorAs(t, err, &exceeded)
	assert.Equal(t, 60, exceeded.Limit)
	assert.Equal(t, 54*time.Second, exceeded.RetryAfter)
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.RateLimitRejectionsTotal))
}

func TestLimiter_ResetsAfterWindow(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{t: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	store := ratelimit.NewMemoryStore()
	limiter := newLimiter(store, clock, nil)
	key := ratelimit.RequestKey("10.0.0.1", true)

	for i := 0; i < 60; i++ {
		require.NoError(t, limiter.Check(ctx, key))
	}
	require.Error(t, limiter.Check(ctx, key))

	clock.Advance(60*time.Second + time.Millisecond)
	require.NoError(t, limiter.Check(ctx, key))

	counter, ok, err := store.Get(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 1, counter.Count)
	assert.Equal(t, clock.Now(), counter.WindowStart)
}

func TestLimiter_ExactWindowBoundaryStillCounts(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{t: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	limiter := newLimiter(ratelimit.NewMemoryStore(), clock, nil)

	for i := 0; i < 60; i++ {
		require.NoError(t, limiter.Check(ctx, "k"))
	}
	clock.Advance(60 * time.Second)
	assert.Error(t, limiter.Check(ctx, "k"))
}

func TestLimiter_KeysAreIndependent(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{t: time.Now()}
	limiter := newLimiter(ratelimit.NewMemoryStore(), clock, nil)

	anon := ratelimit.RequestKey("10.0.0.1", false)
	auth := ratelimit.RequestKey("10.0.0.1", true)
	assert.NotEqual(t, anon, auth)

	for i := 0; i < 60; i++ {
		require.NoError(t, limiter.Check(ctx, anon))
	}
	assert.Error(t, limiter.Check(ctx, anon))
	assert.NoError(t, limiter.Check(ctx, auth))
}

func TestLimiter_StoreFailureAdmits(t *testing.T) {
	store := new(mocks.MockRateCounterStore)
	store.On("Acquire", mock.Anything, "k", 60, 60*time.Second, mock.Anything).
		Return(port.RateCounter{}, errors.New("db down"))

	limiter := newLimiter(store, &fakeClock{t: time.Now()}, nil)
	assert.NoError(t, limiter.Check(context.Background(), "k"))
	store.AssertExpectations(t)
}

func TestMemoryStore_ResetAndSweep(t *testing.T) {
	ctx := context.Background()
	store := ratelimit.NewMemoryStore()
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	_, err := store.Acquire(ctx, "old", 60, time.Minute, start)
	require.NoError(t, err)
	_, err = store.Acquire(ctx, "fresh", 60, time.Minute, start.Add(90*time.Second))
	require.NoError(t, err)
	_, err = store.Acquire(ctx, "gone", 60, time.Minute, start)
	require.NoError(t, err)

	require.NoError(t, store.Reset(ctx, "gone"))
	_, ok, _ := store.Get(ctx, "gone")
	assert.False(t, ok)

	removed, err := store.Sweep(ctx, time.Minute, start.Add(2*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	_, ok, _ = store.Get(ctx, "old")
	assert.False(t, ok)
	_, ok, _ = store.Get(ctx, "fresh")
	assert.True(t, ok)
}
