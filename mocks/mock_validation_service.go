package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"fieldcheck/internal/domain"
	"fieldcheck/internal/service"
)

// MockValidationService is a mock implementation of service.ValidationService.
type MockValidationService struct {
	mock.Mock
}

func (m *MockValidationService) RunCheck(ctx context.Context, input *service.RunCheckInput) (*domain.ValidationJob, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ValidationJob), args.Error(1)
}

func (m *MockValidationService) RunBatch(ctx context.Context, input *service.RunBatchInput) ([]service.BatchItemResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.BatchItemResult), args.Error(1)
}

func (m *MockValidationService) RecordJob(ctx context.Context, input *service.RecordJobInput) (*domain.ValidationJob, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ValidationJob), args.Error(1)
}

func (m *MockValidationService) ListJobs(ctx context.Context, ticketID string, limit int) ([]domain.ValidationJob, error) {
	args := m.Called(ctx, ticketID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ValidationJob), args.Error(1)
}

func (m *MockValidationService) ExportJobs(ctx context.Context, ticketID string) ([]domain.ValidationJob, error) {
	args := m.Called(ctx, ticketID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ValidationJob), args.Error(1)
}

func (m *MockValidationService) CheckSubmission(ctx context.Context, input *service.SubmissionCheckInput) (*service.SubmissionCheckOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SubmissionCheckOutput), args.Error(1)
}

func (m *MockValidationService) Validators() []domain.ValidatorID {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]domain.ValidatorID)
}
