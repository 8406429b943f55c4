package ratelimit

import (
	"context"
	"sync"
	"time"

	"fieldcheck/internal/port"
)

// MemoryStore is a process-local port.RateCounterStore. With several
// processes the limit applies per process.
type MemoryStore struct {
	mu       sync.Mutex
	counters map[string]port.RateCounter
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{counters: make(map[string]port.RateCounter)}
}

func (s *MemoryStore) Get(_ context.Context, key string) (port.RateCounter, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.counters[key]
	return c, ok, nil
}

func (s *MemoryStore) Acquire(_ context.Context, key string, limit int, window time.Duration, now time.Time) (port.RateCounter, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.counters[key]
	switch {
	case !ok || now.Sub(c.WindowStart) > window:
		c = port.RateCounter{Count: 1, WindowStart: now, Allowed: true}
	case c.Count >= limit:
		c.Allowed = false
	default:
		c.Count++
		c.Allowed = true
	}
	s.counters[key] = c
	return c, nil
}

func (s *MemoryStore) Reset(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.counters, key)
	return nil
}

// Sweep drops counters whose window ended before now.
func (s *MemoryStore) Sweep(_ context.Context, window time.Duration, now time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for key, c := range s.counters {
		if now.Sub(c.WindowStart) > window {
			delete(s.counters, key)
			removed++
		}
	}
	return removed, nil
}
