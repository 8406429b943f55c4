package ratelimit

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Sweeper is implemented by counter stores that can drop expired windows.
type Sweeper interface {
	Sweep(ctx context.Context, window time.Duration, now time.Time) (int, error)
}

// Janitor periodically removes expired counters so idle keys do not
// accumulate.
type Janitor struct {
	sweeper  Sweeper
	window   time.Duration
	interval time.Duration
	logger   *zap.Logger
}

// NewJanitor creates a Janitor.
func NewJanitor(sweeper Sweeper, window, interval time.Duration, logger *zap.Logger) *Janitor {
	if logger == nil {
		logger = zap.NewNop()
	}
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &Janitor{sweeper: sweeper, window: window, interval: interval, logger: logger.Named("ratelimit.janitor")}
}

// Start runs the sweep loop until ctx is canceled.
func (j *Janitor) Start(ctx context.Context) {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	j.logger.Info("started", zap.Duration("interval", j.interval))

	for {
		select {
		case <-ctx.Done():
			j.logger.Info("shutdown complete")
			return
		case <-ticker.C:
			j.SweepOnce(ctx)
		}
	}
}

// SweepOnce runs a single sweep.
func (j *Janitor) SweepOnce(ctx context.Context) {
	removed, err := j.sweeper.Sweep(ctx, j.window, time.Now())
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		j.logger.Warn("sweep failed", zap.Error(err))
		return
	}
	if removed > 0 {
		j.logger.Debug("expired counters removed", zap.Int("count", removed))
	}
}
