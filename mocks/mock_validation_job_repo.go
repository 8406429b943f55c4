package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"fieldcheck/internal/domain"
)

// MockValidationJobRepo is a mock implementation of port.ValidationJobRepository.
type MockValidationJobRepo struct {
	mock.Mock
}

func (m *MockValidationJobRepo) Add(ctx context.Context, job *domain.ValidationJob) (uuid.UUID, error) {
	args := m.Called(ctx, job)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockValidationJobRepo) ListByTicket(ctx context.Context, ticketID string, limit int) ([]domain.ValidationJob, error) {
	args := m.Called(ctx, ticketID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ValidationJob), args.Error(1)
}
