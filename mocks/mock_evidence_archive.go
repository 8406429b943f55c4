package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockEvidenceArchive is a mock implementation of port.EvidenceArchive.
type MockEvidenceArchive struct {
	mock.Mock
}

func (m *MockEvidenceArchive) Archive(ctx context.Context, ticketID, jobID string, evidence []byte) (string, error) {
	args := m.Called(ctx, ticketID, jobID, evidence)
	return args.String(0), args.Error(1)
}
