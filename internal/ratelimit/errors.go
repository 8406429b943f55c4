package ratelimit

import (
	"fmt"
	"time"

	"fieldcheck/internal/domain"
)

// ExceededError is returned when a key has used up its window.
type ExceededError struct {
	Key        string
	Limit      int
	RetryAfter time.Duration
}

func (e *ExceededError) Error() string {
	return fmt.Sprintf("rate limit of %d requests exceeded for %s (retry after %s)", e.Limit, e.Key, e.RetryAfter)
}

// Is reports whether target is domain.ErrRateLimitExceeded.
func (e *ExceededError) Is(target error) bool {
	return target == domain.ErrRateLimitExceeded
}
