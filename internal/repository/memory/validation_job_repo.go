// Package memory holds process-local repositories used when no database is
// configured and in tests.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"fieldcheck/internal/domain"
	"fieldcheck/internal/port"
)

type storedJob struct {
	job domain.ValidationJob
	seq uint64
}

// ValidationJobRepo is an append-only in-memory job store grouped by ticket.
type ValidationJobRepo struct {
	mu       sync.RWMutex
	byTicket map[string][]storedJob
	seq      uint64
}

// NewValidationJobRepo creates an empty ValidationJobRepo.
func NewValidationJobRepo() *ValidationJobRepo {
	return &ValidationJobRepo{byTicket: make(map[string][]storedJob)}
}

var _ port.ValidationJobRepository = (*ValidationJobRepo)(nil)

func (r *ValidationJobRepo) Add(_ context.Context, job *domain.ValidationJob) (uuid.UUID, error) {
	stored := cloneJob(*job)
	if stored.ID == uuid.Nil {
		stored.ID = uuid.New()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	r.byTicket[stored.TicketID] = append(r.byTicket[stored.TicketID], storedJob{job: stored, seq: r.seq})
	return stored.ID, nil
}

// ListByTicket returns the ticket's jobs newest first by finishedAt; jobs
// finishing at the same instant are ordered by insertion, latest first.
func (r *ValidationJobRepo) ListByTicket(_ context.Context, ticketID string, limit int) ([]domain.ValidationJob, error) {
	r.mu.RLock()
	stored := make([]storedJob, len(r.byTicket[ticketID]))
	copy(stored, r.byTicket[ticketID])
	r.mu.RUnlock()

	sort.SliceStable(stored, func(i, j int) bool {
		a, b := stored[i], stored[j]
		if !a.job.FinishedAt.Equal(b.job.FinishedAt) {
			return a.job.FinishedAt.After(b.job.FinishedAt)
		}
		return a.seq > b.seq
	})

	if limit > 0 && len(stored) > limit {
		stored = stored[:limit]
	}
	out := make([]domain.ValidationJob, 0, len(stored))
	for _, s := range stored {
		out = append(out, cloneJob(s.job))
	}
	return out, nil
}

func cloneJob(j domain.ValidationJob) domain.ValidationJob {
	if j.Evidence != nil {
		j.Evidence = append([]byte(nil), j.Evidence...)
	}
	j.Links = cloneStrings(j.Links)
	j.Warnings = cloneStrings(j.Warnings)
	j.Errors = cloneStrings(j.Errors)
	if j.RanBy != nil {
		v := *j.RanBy
		j.RanBy = &v
	}
	return j
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s...)
}
