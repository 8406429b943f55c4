package handler

import (
	"encoding/json"

	"fieldcheck/internal/domain"
)

// Swagger type definitions for API documentation.
// These types are used by swag to generate OpenAPI documentation.

// --- Request Types ---

// RunValidationRequest represents the run validator request body.
type RunValidationRequest struct {
	TicketID    string         `json:"ticketId" example:"TCK-2024-0042"`
	ValidatorID string         `json:"validatorId" example:"watchlist_screening"`
	FieldID     string         `json:"fieldId" example:"applicant_name"`
	FieldLabel  string         `json:"fieldLabel" example:"Applicant name"`
	Value       interface{}    `json:"value" swaggertype:"string" example:"Jane Doe"`
	Context     map[string]any `json:"context,omitempty" swaggertype:"object"`
	Level       string         `json:"level,omitempty" example:"hard"`
}

// RunBatchItemRequest represents one item of a batch run.
type RunBatchItemRequest struct {
	ValidatorID string         `json:"validatorId" example:"tax_id_lookup"`
	FieldID     string         `json:"fieldId" example:"tax_id"`
	FieldLabel  string         `json:"fieldLabel" example:"Tax ID"`
	Value       interface{}    `json:"value" swaggertype:"string" example:"DE123456789"`
	Context     map[string]any `json:"context,omitempty" swaggertype:"object"`
	Level       string         `json:"level,omitempty" example:"soft"`
}

// RunBatchRequest represents the batch run request body.
type RunBatchRequest struct {
	TicketID string                `json:"ticketId" example:"TCK-2024-0042"`
	Items    []RunBatchItemRequest `json:"items"`
}

// RecordJobRequest represents the record job request body.
type RecordJobRequest struct {
	TicketID    string          `json:"ticketId" example:"TCK-2024-0042"`
	FieldID     string          `json:"fieldId" example:"contract"`
	ValidatorID string          `json:"validatorId" example:"document_signature_status"`
	Level       string          `json:"level" example:"hard"`
	Status      string          `json:"status" example:"success"`
	Summary     string          `json:"summary" example:"Document signed by all parties"`
	Evidence    json.RawMessage `json:"evidence,omitempty" swaggertype:"object"`
	Links       []string        `json:"links,omitempty"`
	Warnings    []string        `json:"warnings,omitempty"`
	Errors      []string        `json:"errors,omitempty"`
	RanBy       *string         `json:"ranBy,omitempty" example:"reviewer@example.com"`
}

// SubmissionCheckRequest represents the submission check request body.
type SubmissionCheckRequest struct {
	Fields []domain.FieldDefinition `json:"fields"`
}

// --- Response Types ---

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
	Error  string `json:"error,omitempty" example:"database not reachable"`
}

// --- Generic Response Wrappers ---

// Response wraps a successful response with data.
type Response struct {
	Success bool        `json:"success" example:"true"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorResponseBody wraps an error response.
type ErrorResponseBody struct {
	Success bool      `json:"success" example:"false"`
	Error   *APIError `json:"error"`
}
