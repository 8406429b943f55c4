package ratelimit_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"fieldcheck/internal/ratelimit"
)

func TestJanitor_SweepOnceRemovesExpired(t *testing.T) {
	ctx := context.Background()
	store := ratelimit.NewMemoryStore()

	_, err := store.Acquire(ctx, "stale", 60, time.Minute, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	_, err = store.Acquire(ctx, "live", 60, time.Minute, time.Now())
	require.NoError(t, err)

	ratelimit.NewJanitor(store, time.Minute, time.Minute, zap.NewNop()).SweepOnce(ctx)

	_, ok, _ := store.Get(ctx, "stale")
	assert.False(t, ok)
	_, ok, _ = store.Get(ctx, "live")
	assert.True(t, ok)
}

func TestJanitor_StartStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	j := ratelimit.NewJanitor(ratelimit.NewMemoryStore(), time.Minute, 10*time.Millisecond, zap.NewNop())
	go func() {
		j.Start(ctx)
		close(done)
	}()

	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("janitor did not stop")
	}
}
