package mocks

import (
	"github.com/stretchr/testify/mock"

	"fieldcheck/internal/domain"
)

// MockCallerVerifier is a mock implementation of middleware.CallerVerifier.
type MockCallerVerifier struct {
	mock.Mock
}

func (m *MockCallerVerifier) Verify(token string) (domain.Caller, error) {
	args := m.Called(token)
	return args.Get(0).(domain.Caller), args.Error(1)
}
