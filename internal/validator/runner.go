package validator

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"fieldcheck/internal/domain"
	"fieldcheck/internal/observability"
	"fieldcheck/internal/port"
)

// DefaultTimeout bounds a single check when no timeout is configured.
const DefaultTimeout = 30 * time.Second

// RunRequest asks the runner to execute one validator against one field.
type RunRequest struct {
	TicketID    string
	ValidatorID domain.ValidatorID
	Level       domain.ValidationLevel
	Input       domain.ValidatorInput
	RanBy       *string
}

// RecordRequest asks the runner to persist an externally produced result.
type RecordRequest struct {
	TicketID    string
	FieldID     string
	ValidatorID domain.ValidatorID
	Level       domain.ValidationLevel
	Result      domain.ValidatorResult
	RanBy       *string
}

// Runner is the single writer of validation jobs.
type Runner struct {
	registry *Registry
	jobs     port.ValidationJobRepository
	archive  port.EvidenceArchive
	metrics  *observability.Metrics
	logger   *zap.Logger
	timeout  time.Duration
	now      func() time.Time
}

// RunnerOption customizes a Runner.
type RunnerOption func(*Runner)

// WithTimeout bounds each check execution.
func WithTimeout(d time.Duration) RunnerOption {
	return func(r *Runner) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// WithEvidenceArchive copies non-empty evidence to archive after each persisted run.
func WithEvidenceArchive(archive port.EvidenceArchive) RunnerOption {
	return func(r *Runner) { r.archive = archive }
}

// WithMetrics records run counts and durations.
func WithMetrics(m *observability.Metrics) RunnerOption {
	return func(r *Runner) { r.metrics = m }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) RunnerOption {
	return func(r *Runner) { r.now = now }
}

// NewRunner creates a Runner.
func NewRunner(registry *Registry, jobs port.ValidationJobRepository, logger *zap.Logger, opts ...RunnerOption) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Runner{
		registry: registry,
		jobs:     jobs,
		logger:   logger.Named("validator.runner"),
		timeout:  DefaultTimeout,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run resolves and executes a validator, then persists exactly one job.
//
// Resolution failures return domain.ErrUnknownValidator and write nothing.
// Execution faults never surface as errors; they become a job with
// StatusError. A failure to persist the job is returned wrapped in
// domain.ErrPersistence. Runs are not cancellable: the caller's cancellation
// is ignored once the check starts.
func (r *Runner) Run(ctx context.Context, req RunRequest) (*domain.ValidationJob, error) {
	if strings.TrimSpace(req.TicketID) == "" {
		return nil, domain.NewInputError("ticketId", "is required")
	}
	check, err := r.registry.Resolve(req.ValidatorID)
	if err != nil {
		return nil, err
	}

	ctx = context.WithoutCancel(ctx)

	startedAt := r.now().UTC()
	result := r.execute(ctx, check, req.Input)
	finishedAt := r.now().UTC()
	if finishedAt.Before(startedAt) {
		finishedAt = startedAt
	}
	r.metrics.ObserveRun(req.ValidatorID, result.Status, finishedAt.Sub(startedAt))

	job := newJob(req.TicketID, req.Input.FieldID, req.ValidatorID, req.Level, result, req.RanBy)
	job.StartedAt = startedAt
	job.FinishedAt = finishedAt

	if err := r.persist(ctx, job); err != nil {
		return nil, err
	}

	r.logger.Debug("validator run recorded",
		zap.String("ticket_id", job.TicketID),
		zap.String("field_id", job.FieldID),
		zap.String("validator", string(job.ValidatorID)),
		zap.String("status", string(job.Status)),
		zap.Duration("elapsed", finishedAt.Sub(startedAt)))
	return job, nil
}

// Record persists a result produced outside the runner. Both timestamps are
// the time of recording.
func (r *Runner) Record(ctx context.Context, req RecordRequest) (*domain.ValidationJob, error) {
	if strings.TrimSpace(req.TicketID) == "" {
		return nil, domain.NewInputError("ticketId", "is required")
	}

	now := r.now().UTC()
	job := newJob(req.TicketID, req.FieldID, req.ValidatorID, req.Level, req.Result, req.RanBy)
	job.StartedAt = now
	job.FinishedAt = now

	if err := r.persist(context.WithoutCancel(ctx), job); err != nil {
		return nil, err
	}
	return job, nil
}

type checkOutcome struct {
	result *domain.ValidatorResult
	err    error
}

// execute runs check under the configured timeout. The check runs on its own
// goroutine so a check that ignores its context still cannot hold the run
// past the deadline.
func (r *Runner) execute(ctx context.Context, check Check, input domain.ValidatorInput) domain.ValidatorResult {
	callCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	done := make(chan checkOutcome, 1)
	go func() {
		defer func() {
			if p := recover(); p != nil {
				done <- checkOutcome{err: &PanicError{Value: p}}
			}
		}()
		res, err := check.Check(callCtx, input)
		done <- checkOutcome{result: res, err: err}
	}()

	select {
	case out := <-done:
		if out.err != nil {
			return ResultFromFault(out.err)
		}
		res, err := normalizeResult(out.result)
		if err != nil {
			return ResultFromFault(err)
		}
		return res
	case <-callCtx.Done():
		return ResultFromFault(fmt.Errorf("no result within %s: %w", r.timeout, callCtx.Err()))
	}
}

func (r *Runner) persist(ctx context.Context, job *domain.ValidationJob) error {
	id, err := r.jobs.Add(ctx, job)
	if err != nil {
		r.metrics.PersistFailed()
		r.logger.Error("failed to record validation job",
			zap.String("ticket_id", job.TicketID),
			zap.String("field_id", job.FieldID),
			zap.String("validator", string(job.ValidatorID)),
			zap.String("status", string(job.Status)),
			zap.Error(err))
		return fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}
	job.ID = id
	r.archiveEvidence(ctx, job)
	return nil
}

// archiveEvidence is best effort: the job row is already the audit record.
func (r *Runner) archiveEvidence(ctx context.Context, job *domain.ValidationJob) {
	if r.archive == nil || len(job.Evidence) == 0 {
		return
	}
	location, err := r.archive.Archive(ctx, job.TicketID, job.ID.String(), job.Evidence)
	if err != nil {
		r.logger.Warn("failed to archive validation evidence",
			zap.String("ticket_id", job.TicketID),
			zap.String("job_id", job.ID.String()),
			zap.Error(err))
		return
	}
	r.logger.Debug("validation evidence archived",
		zap.String("job_id", job.ID.String()),
		zap.String("location", location))
}

func newJob(ticketID, fieldID string, validatorID domain.ValidatorID, level domain.ValidationLevel, res domain.ValidatorResult, ranBy *string) *domain.ValidationJob {
	return &domain.ValidationJob{
		TicketID:    ticketID,
		FieldID:     fieldID,
		ValidatorID: validatorID,
		Level:       level,
		Status:      res.Status,
		Summary:     res.Summary,
		Evidence:    res.Evidence,
		Links:       res.Links,
		Warnings:    res.Warnings,
		Errors:      res.Errors,
		RanBy:       ranBy,
	}
}
