package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"fieldcheck/internal/port"
)

// MockRateCounterStore is a mock implementation of port.RateCounterStore.
type MockRateCounterStore struct {
	mock.Mock
}

func (m *MockRateCounterStore) Get(ctx context.Context, key string) (port.RateCounter, bool, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(port.RateCounter), args.Bool(1), args.Error(2)
}

func (m *MockRateCounterStore) Acquire(ctx context.Context, key string, limit int, window time.Duration, now time.Time) (port.RateCounter, error) {
	args := m.Called(ctx, key, limit, window, now)
	return args.Get(0).(port.RateCounter), args.Error(1)
}

func (m *MockRateCounterStore) Reset(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}
