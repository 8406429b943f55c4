package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"fieldcheck/internal/config"
	"fieldcheck/internal/domain"
	"fieldcheck/internal/port"
	"fieldcheck/internal/validator"
)

// RunCheckInput is the DTO for running one validator against one field.
type RunCheckInput struct {
	TicketID    string         `json:"ticketId" validate:"required,max=200"`
	ValidatorID string         `json:"validatorId" validate:"required,max=100"`
	FieldID     string         `json:"fieldId" validate:"required,max=200"`
	FieldLabel  string         `json:"fieldLabel" validate:"max=500"`
	Value       any            `json:"value"`
	Context     map[string]any `json:"context,omitempty"`
	Level       string         `json:"level,omitempty" validate:"omitempty,level"`
	Caller      domain.Caller  `json:"-"`
}

// BatchItem is one run inside a batch. The ticket comes from the batch.
type BatchItem struct {
	ValidatorID string         `json:"validatorId" validate:"required,max=100"`
	FieldID     string         `json:"fieldId" validate:"required,max=200"`
	FieldLabel  string         `json:"fieldLabel" validate:"max=500"`
	Value       any            `json:"value"`
	Context     map[string]any `json:"context,omitempty"`
	Level       string         `json:"level,omitempty" validate:"omitempty,level"`
}

// RunBatchInput is the DTO for running several validators for one ticket.
type RunBatchInput struct {
	TicketID string        `json:"ticketId" validate:"required,max=200"`
	Items    []BatchItem   `json:"items" validate:"required,min=1,max=50,dive"`
	Caller   domain.Caller `json:"-"`
}

// BatchItemResult is the outcome of one batch item: either a recorded job or
// the error that prevented the run.
type BatchItemResult struct {
	Job *domain.ValidationJob
	Err error
}

// RecordJobInput is the DTO for recording an externally produced result.
type RecordJobInput struct {
	TicketID    string          `json:"ticketId" validate:"required,max=200"`
	FieldID     string          `json:"fieldId" validate:"max=200"`
	ValidatorID string          `json:"validatorId" validate:"max=100"`
	Level       string          `json:"level" validate:"omitempty,level"`
	Status      string          `json:"status" validate:"required,status"`
	Summary     string          `json:"summary"`
	Evidence    json.RawMessage `json:"evidence,omitempty"`
	Links       []string        `json:"links,omitempty"`
	Warnings    []string        `json:"warnings,omitempty"`
	Errors      []string        `json:"errors,omitempty"`
	RanBy       *string         `json:"ranBy,omitempty"`
	Caller      domain.Caller   `json:"-"`
}

// SubmissionCheckInput is the DTO for deciding whether a ticket may be submitted.
type SubmissionCheckInput struct {
	TicketID string                   `json:"-"`
	Fields   []domain.FieldDefinition `json:"fields"`
}

// SubmissionCheckOutput is the policy decision together with the per-field
// states and the rule/result pairs it was computed from.
type SubmissionCheckOutput struct {
	Allowed bool                              `json:"allowed"`
	Reason  string                            `json:"reason,omitempty"`
	Fields  map[string]*validator.FieldStatus `json:"fields"`
	Results []domain.EvaluatedResult          `json:"results"`
}

// ValidationService defines the validation orchestration contract.
type ValidationService interface {
	RunCheck(ctx context.Context, input *RunCheckInput) (*domain.ValidationJob, error)
	RunBatch(ctx context.Context, input *RunBatchInput) ([]BatchItemResult, error)
	RecordJob(ctx context.Context, input *RecordJobInput) (*domain.ValidationJob, error)
	ListJobs(ctx context.Context, ticketID string, limit int) ([]domain.ValidationJob, error)
	ExportJobs(ctx context.Context, ticketID string) ([]domain.ValidationJob, error)
	CheckSubmission(ctx context.Context, input *SubmissionCheckInput) (*SubmissionCheckOutput, error)
	Validators() []domain.ValidatorID
}

type validationService struct {
	registry         *validator.Registry
	runner           *validator.Runner
	jobs             port.ValidationJobRepository
	defaultLevel     domain.ValidationLevel
	batchConcurrency int
	defaultLimit     int
	maxLimit         int
	logger           *zap.Logger
}

// NewValidationService creates a new ValidationService.
func NewValidationService(
	registry *validator.Registry,
	runner *validator.Runner,
	jobs port.ValidationJobRepository,
	validatorsCfg config.ValidatorsConfig,
	jobsCfg config.JobsConfig,
	logger *zap.Logger,
) ValidationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &validationService{
		registry:         registry,
		runner:           runner,
		jobs:             jobs,
		defaultLevel:     domain.ValidationLevel(validatorsCfg.DefaultLevel),
		batchConcurrency: validatorsCfg.BatchConcurrency,
		defaultLimit:     jobsCfg.DefaultListLimit,
		maxLimit:         jobsCfg.MaxListLimit,
		logger:           logger.Named("service.validation"),
	}
	if !s.defaultLevel.IsValid() {
		s.defaultLevel = domain.LevelHard
	}
	if s.batchConcurrency <= 0 {
		s.batchConcurrency = 1
	}
	if s.defaultLimit <= 0 {
		s.defaultLimit = 50
	}
	if s.maxLimit < s.defaultLimit {
		s.maxLimit = s.defaultLimit
	}
	return s
}

func (s *validationService) RunCheck(ctx context.Context, input *RunCheckInput) (*domain.ValidationJob, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	return s.runner.Run(ctx, validator.RunRequest{
		TicketID:    strings.TrimSpace(input.TicketID),
		ValidatorID: domain.ValidatorID(input.ValidatorID),
		Level:       s.levelOrDefault(input.Level),
		Input: domain.ValidatorInput{
			FieldID:    input.FieldID,
			FieldLabel: input.FieldLabel,
			Value:      input.Value,
			Context:    input.Context,
		},
		RanBy: input.Caller.RanBy(),
	})
}

// RunBatch runs every item concurrently. Unknown validators and input errors
// are reported per item; a persistence failure aborts the batch, and items
// not yet started are skipped.
func (s *validationService) RunBatch(ctx context.Context, input *RunBatchInput) ([]BatchItemResult, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	ticketID := strings.TrimSpace(input.TicketID)
	ranBy := input.Caller.RanBy()
	results := make([]BatchItemResult, len(input.Items))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.batchConcurrency)
	for i, item := range input.Items {
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			job, err := s.runner.Run(gctx, validator.RunRequest{
				TicketID:    ticketID,
				ValidatorID: domain.ValidatorID(item.ValidatorID),
				Level:       s.levelOrDefault(item.Level),
				Input: domain.ValidatorInput{
					FieldID:    item.FieldID,
					FieldLabel: item.FieldLabel,
					Value:      item.Value,
					Context:    item.Context,
				},
				RanBy: ranBy,
			})
			if err != nil {
				if errors.Is(err, domain.ErrPersistence) {
					return err
				}
				results[i] = BatchItemResult{Err: err}
				return nil
			}
			results[i] = BatchItemResult{Job: job}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.logger.Debug("batch finished", zap.String("ticket_id", ticketID), zap.Int("items", len(results)))
	return results, nil
}

func (s *validationService) RecordJob(ctx context.Context, input *RecordJobInput) (*domain.ValidationJob, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	if len(input.Evidence) > 0 && !json.Valid(input.Evidence) {
		return nil, domain.NewInputError("evidence", "must be valid JSON")
	}

	ranBy := input.RanBy
	if ranBy == nil {
		ranBy = input.Caller.RanBy()
	}

	return s.runner.Record(ctx, validator.RecordRequest{
		TicketID:    strings.TrimSpace(input.TicketID),
		FieldID:     input.FieldID,
		ValidatorID: domain.ValidatorID(input.ValidatorID),
		Level:       domain.ValidationLevel(input.Level),
		Result: domain.ValidatorResult{
			Status:   domain.ValidationStatus(input.Status),
			Summary:  input.Summary,
			Evidence: input.Evidence,
			Links:    input.Links,
			Warnings: input.Warnings,
			Errors:   input.Errors,
		},
		RanBy: ranBy,
	})
}

func (s *validationService) ListJobs(ctx context.Context, ticketID string, limit int) ([]domain.ValidationJob, error) {
	ticketID = strings.TrimSpace(ticketID)
	if ticketID == "" {
		return nil, domain.NewInputError("ticketId", "is required")
	}
	switch {
	case limit <= 0:
		limit = s.defaultLimit
	case limit > s.maxLimit:
		limit = s.maxLimit
	}

	jobs, err := s.jobs.ListByTicket(ctx, ticketID, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}
	return jobs, nil
}

// ExportJobs returns the ticket's full job history, most recent first.
func (s *validationService) ExportJobs(ctx context.Context, ticketID string) ([]domain.ValidationJob, error) {
	ticketID = strings.TrimSpace(ticketID)
	if ticketID == "" {
		return nil, domain.NewInputError("ticketId", "is required")
	}
	jobs, err := s.jobs.ListByTicket(ctx, ticketID, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}
	return jobs, nil
}

func (s *validationService) CheckSubmission(ctx context.Context, input *SubmissionCheckInput) (*SubmissionCheckOutput, error) {
	ticketID := strings.TrimSpace(input.TicketID)
	if ticketID == "" {
		return nil, domain.NewInputError("ticketId", "is required")
	}
	if err := validateFields(input.Fields); err != nil {
		return nil, err
	}

	jobs, err := s.jobs.ListByTicket(ctx, ticketID, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}

	pairs := validator.PairRules(input.Fields, jobs)
	decision := validator.CanSubmit(pairs)
	if pairs == nil {
		pairs = []domain.EvaluatedResult{}
	}
	return &SubmissionCheckOutput{
		Allowed: decision.Allowed,
		Reason:  decision.Reason,
		Fields:  validator.ComputeFieldStatuses(input.Fields, pairs),
		Results: pairs,
	}, nil
}

func (s *validationService) Validators() []domain.ValidatorID {
	return s.registry.IDs()
}

func (s *validationService) levelOrDefault(level string) domain.ValidationLevel {
	if level == "" {
		return s.defaultLevel
	}
	return domain.ValidationLevel(level)
}

func validateFields(fields []domain.FieldDefinition) error {
	for i, f := range fields {
		if strings.TrimSpace(f.ID) == "" {
			return domain.NewInputError(fmt.Sprintf("fields[%d].id", i), "is required")
		}
		for j, rule := range f.Validations {
			if rule.ValidatorID == "" {
				return domain.NewInputError(fmt.Sprintf("fields[%d].validations[%d].validatorId", i, j), "is required")
			}
			if !rule.Level.IsValid() {
				return domain.NewInputError(fmt.Sprintf("fields[%d].validations[%d].level", i, j), "must be one of hard, soft")
			}
		}
	}
	return nil
}
