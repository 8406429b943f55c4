package port

import (
	"context"
	"time"
)

// RateCounter is the state of one fixed window.
type RateCounter struct {
	Count       int
	WindowStart time.Time
	Allowed     bool
}

// RateCounterStore backs the request rate limiter. Implementations must make
// Acquire atomic with respect to concurrent callers of the same key.
type RateCounterStore interface {
	// Get returns the counter for key, or false if none exists.
	Get(ctx context.Context, key string) (RateCounter, bool, error)
	// Acquire starts a fresh window (count 1) when now-windowStart exceeds
	// window, otherwise increments the count unless it already reached limit.
	// Allowed is false when the call was refused.
	Acquire(ctx context.Context, key string, limit int, window time.Duration, now time.Time) (RateCounter, error)
	// Reset forgets key.
	Reset(ctx context.Context, key string) error
}
