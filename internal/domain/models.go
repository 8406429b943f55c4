package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Caller identifies who is invoking the service. Authentication happens
// upstream; the core only records the subject.
type Caller struct {
	Subject       string `json:"subject,omitempty"`
	Email         string `json:"email,omitempty"`
	Authenticated bool   `json:"authenticated"`
}

// RanBy returns the identity recorded on jobs, or nil for anonymous callers.
func (c Caller) RanBy() *string {
	switch {
	case c.Email != "":
		v := c.Email
		return &v
	case c.Subject != "":
		v := c.Subject
		return &v
	default:
		return nil
	}
}

// ValidatorInput is what a check receives for one field.
type ValidatorInput struct {
	FieldID    string         `json:"fieldId"`
	FieldLabel string         `json:"fieldLabel"`
	Value      any            `json:"value"`
	Context    map[string]any `json:"context,omitempty"`
}

// ValidatorResult is the normalized outcome of a check.
type ValidatorResult struct {
	Status   ValidationStatus `json:"status"`
	Summary  string           `json:"summary"`
	Evidence json.RawMessage  `json:"evidence,omitempty"`
	Links    []string         `json:"links,omitempty"`
	Warnings []string         `json:"warnings,omitempty"`
	Errors   []string         `json:"errors,omitempty"`
}

// ValidationJob is the immutable record of one validator run.
type ValidationJob struct {
	ID          uuid.UUID        `json:"id"`
	TicketID    string           `json:"ticketId"`
	FieldID     string           `json:"fieldId"`
	ValidatorID ValidatorID      `json:"validatorId"`
	Level       ValidationLevel  `json:"level"`
	Status      ValidationStatus `json:"status"`
	Summary     string           `json:"summary"`
	Evidence    json.RawMessage  `json:"evidence,omitempty"`
	Links       []string         `json:"links,omitempty"`
	Warnings    []string         `json:"warnings,omitempty"`
	Errors      []string         `json:"errors,omitempty"`
	RanBy       *string          `json:"ranBy,omitempty"`
	StartedAt   time.Time        `json:"startedAt"`
	FinishedAt  time.Time        `json:"finishedAt"`
}

// Result returns the ValidatorResult portion of the job.
func (j *ValidationJob) Result() ValidatorResult {
	return ValidatorResult{
		Status:   j.Status,
		Summary:  j.Summary,
		Evidence: j.Evidence,
		Links:    j.Links,
		Warnings: j.Warnings,
		Errors:   j.Errors,
	}
}

// FieldValidationRule declares that a check applies to a field at a level.
// Mapping is declarative data for callers; the core never evaluates it.
type FieldValidationRule struct {
	ValidatorID ValidatorID       `json:"validatorId"`
	Level       ValidationLevel   `json:"level"`
	Mapping     map[string]string `json:"mapping,omitempty"`
}

// FieldDefinition is a ticket field together with its validation rules.
type FieldDefinition struct {
	ID          string                `json:"id"`
	Label       string                `json:"label"`
	Validations []FieldValidationRule `json:"validations"`
}

// EvaluatedResult pairs a rule with the result that applies to it.
type EvaluatedResult struct {
	FieldID string              `json:"fieldId,omitempty"`
	Rule    FieldValidationRule `json:"rule"`
	Result  ValidatorResult     `json:"result"`
}

// SubmissionDecision is the policy outcome. A refusal is data, never an error.
type SubmissionDecision struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason,omitempty"`
}
