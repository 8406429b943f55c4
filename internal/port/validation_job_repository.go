package port

import (
	"context"

	"github.com/google/uuid"

	"fieldcheck/internal/domain"
)

// ValidationJobRepository is the append-only store of validator runs.
// There is deliberately no update or delete.
type ValidationJobRepository interface {
	// Add inserts job and returns its id. A zero job.ID is assigned by the store.
	Add(ctx context.Context, job *domain.ValidationJob) (uuid.UUID, error)
	// ListByTicket returns at most limit jobs for ticketID, most recent finish first.
	ListByTicket(ctx context.Context, ticketID string, limit int) ([]domain.ValidationJob, error)
}
