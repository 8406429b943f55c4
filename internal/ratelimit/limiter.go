// Package ratelimit implements the fixed-window request limiter in front of
// the validation endpoints.
package ratelimit

import (
	"context"
	"time"

	"go.uber.org/zap"

	"fieldcheck/internal/config"
	"fieldcheck/internal/observability"
	"fieldcheck/internal/port"
)

const (
	DefaultLimit  = 60
	DefaultWindow = 60 * time.Second
)

// Limiter admits at most limit calls per key in each fixed window. A window
// starts with the first call for a key and ends window later; bursts across
// a window boundary are not smoothed.
type Limiter struct {
	store   port.RateCounterStore
	limit   int
	window  time.Duration
	now     func() time.Time
	logger  *zap.Logger
	metrics *observability.Metrics
}

// NewLimiter creates a Limiter over store.
func NewLimiter(store port.RateCounterStore, cfg config.RateLimitConfig, logger *zap.Logger, metrics *observability.Metrics) *Limiter {
	if logger == nil {
		logger = zap.NewNop()
	}
	l := &Limiter{
		store:   store,
		limit:   cfg.Limit,
		window:  cfg.Window,
		now:     time.Now,
		logger:  logger.Named("ratelimit"),
		metrics: metrics,
	}
	if l.limit <= 0 {
		l.limit = DefaultLimit
	}
	if l.window <= 0 {
		l.window = DefaultWindow
	}
	return l
}

// SetClock replaces time.Now. Intended for tests.
func (l *Limiter) SetClock(now func() time.Time) {
	l.now = now
}

// Window returns the window length.
func (l *Limiter) Window() time.Duration {
	return l.window
}

// Check records one call for key. It returns an *ExceededError once key has
// made more than limit calls in the current window; the refused call is not
// counted. If the counter store fails the call is admitted.
func (l *Limiter) Check(ctx context.Context, key string) error {
	now := l.now()
	counter, err := l.store.Acquire(ctx, key, l.limit, l.window, now)
	if err != nil {
		l.logger.Warn("rate counter store unavailable, admitting request",
			zap.String("key", key), zap.Error(err))
		return nil
	}
	if counter.Allowed {
		return nil
	}

	l.metrics.RateLimited()
	retryAfter := counter.WindowStart.Add(l.window).Sub(now)
	if retryAfter < time.Second {
		retryAfter = time.Second
	}
	return &ExceededError{Key: key, Limit: l.limit, RetryAfter: retryAfter}
}

// RequestKey derives the limiter key from the client address and whether the
// request carried a credential.
func RequestKey(clientIP string, hasCredential bool) string {
	if hasCredential {
		return clientIP + "|auth"
	}
	return clientIP + "|anon"
}
