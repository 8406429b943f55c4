package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fieldcheck/internal/domain"
	"fieldcheck/internal/export"
	"fieldcheck/internal/middleware"
	"fieldcheck/internal/service"
)

// ValidationHandler handles validator runs, job history and submission checks.
type ValidationHandler struct {
	svc    service.ValidationService
	logger *zap.Logger
	now    func() time.Time
}

// NewValidationHandler creates a new ValidationHandler.
func NewValidationHandler(svc service.ValidationService, logger *zap.Logger) *ValidationHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ValidationHandler{svc: svc, logger: logger.Named("handler.validation"), now: time.Now}
}

// RunResponse is returned by a single validator run.
type RunResponse struct {
	Result domain.ValidatorResult `json:"result"`
	JobID  string                 `json:"jobId"`
}

// BatchItemResponse is the outcome of one batch item.
type BatchItemResponse struct {
	Result *domain.ValidatorResult `json:"result,omitempty"`
	JobID  string                  `json:"jobId,omitempty"`
	Error  *APIError               `json:"error,omitempty"`
}

// ItemsResponse wraps a list.
type ItemsResponse[T any] struct {
	Items []T `json:"items"`
}

// IDResponse carries the id of a created record.
type IDResponse struct {
	ID string `json:"id"`
}

// Run handles POST /api/v1/validations/run
// @Summary Run a validator
// @Description Run one validator against one field value and record the outcome as a validation job. Check failures are returned as a recorded result, not as an error.
// @Tags validations
// @Accept json
// @Produce json
// @Param body body RunValidationRequest true "Run request"
// @Success 200 {object} Response{data=RunResponse} "Recorded result"
// @Failure 400 {object} ErrorResponseBody "Invalid input or unknown validator"
// @Failure 401 {object} ErrorResponseBody "Invalid token"
// @Failure 429 {object} ErrorResponseBody "Rate limit exceeded"
// @Failure 500 {object} ErrorResponseBody "Job could not be recorded"
// @Security BearerAuth
// @Router /validations/run [post]
func (h *ValidationHandler) Run(c *gin.Context) {
	var req service.RunCheckInput
	if err := bindJSON(c, &req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_INPUT", "request body must be a JSON object")
		return
	}
	req.Caller = middleware.GetCaller(c)

	job, err := h.svc.RunCheck(c.Request.Context(), &req)
	if err != nil {
		HandleError(c, h.logger, err)
		return
	}

	RespondOK(c, RunResponse{Result: job.Result(), JobID: job.ID.String()})
}

// RunBatch handles POST /api/v1/validations/run-batch
// @Summary Run several validators for one ticket
// @Description Run up to 50 validators concurrently. Unknown validators and input errors are reported per item.
// @Tags validations
// @Accept json
// @Produce json
// @Param body body RunBatchRequest true "Batch request"
// @Success 200 {object} Response{data=ItemsResponse[BatchItemResponse]} "Per-item outcomes, in request order"
// @Failure 400 {object} ErrorResponseBody "Invalid input"
// @Failure 429 {object} ErrorResponseBody "Rate limit exceeded"
// @Failure 500 {object} ErrorResponseBody "Job could not be recorded"
// @Security BearerAuth
// @Router /validations/run-batch [post]
func (h *ValidationHandler) RunBatch(c *gin.Context) {
	var req service.RunBatchInput
	if err := bindJSON(c, &req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_INPUT", "request body must be a JSON object")
		return
	}
	req.Caller = middleware.GetCaller(c)

	results, err := h.svc.RunBatch(c.Request.Context(), &req)
	if err != nil {
		HandleError(c, h.logger, err)
		return
	}

	items := make([]BatchItemResponse, len(results))
	for i, r := range results {
		switch {
		case r.Err != nil:
			_, code, msg := MapDomainError(r.Err)
			items[i] = BatchItemResponse{Error: &APIError{Code: code, Message: msg}}
		case r.Job != nil:
			res := r.Job.Result()
			items[i] = BatchItemResponse{Result: &res, JobID: r.Job.ID.String()}
		default:
			items[i] = BatchItemResponse{Error: &APIError{Code: "SKIPPED", Message: "item was not run"}}
		}
	}
	RespondOK(c, ItemsResponse[BatchItemResponse]{Items: items})
}

// RecordJob handles POST /api/v1/validation-jobs
// @Summary Record a validation job
// @Description Record a result produced outside the service. Timestamps are set to now.
// @Tags validation-jobs
// @Accept json
// @Produce json
// @Param body body RecordJobRequest true "Job fields"
// @Success 201 {object} Response{data=IDResponse} "Recorded job id"
// @Failure 400 {object} ErrorResponseBody "Invalid input"
// @Failure 429 {object} ErrorResponseBody "Rate limit exceeded"
// @Failure 500 {object} ErrorResponseBody "Job could not be recorded"
// @Security BearerAuth
// @Router /validation-jobs [post]
func (h *ValidationHandler) RecordJob(c *gin.Context) {
	var req service.RecordJobInput
	if err := bindJSON(c, &req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_INPUT", "request body must be a JSON object")
		return
	}
	req.Caller = middleware.GetCaller(c)

	job, err := h.svc.RecordJob(c.Request.Context(), &req)
	if err != nil {
		HandleError(c, h.logger, err)
		return
	}

	RespondCreated(c, IDResponse{ID: job.ID.String()})
}

// ListJobs handles GET /api/v1/validation-jobs
// @Summary List a ticket's validation jobs
// @Description Most recently finished first.
// @Tags validation-jobs
// @Produce json
// @Param ticketId query string true "Ticket ID"
// @Param limit query int false "Max jobs (default 50, max 200)"
// @Success 200 {object} Response{data=ItemsResponse[domain.ValidationJob]} "Jobs"
// @Failure 400 {object} ErrorResponseBody "Missing ticketId"
// @Failure 429 {object} ErrorResponseBody "Rate limit exceeded"
// @Security BearerAuth
// @Router /validation-jobs [get]
func (h *ValidationHandler) ListJobs(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			RespondError(c, http.StatusBadRequest, "INVALID_INPUT", "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	jobs, err := h.svc.ListJobs(c.Request.Context(), c.Query("ticketId"), limit)
	if err != nil {
		HandleError(c, h.logger, err)
		return
	}
	if jobs == nil {
		jobs = []domain.ValidationJob{}
	}

	RespondOK(c, ItemsResponse[domain.ValidationJob]{Items: jobs})
}

// Export handles GET /api/v1/tickets/:ticketId/validation-jobs/export
// @Summary Export a ticket's validation jobs
// @Description Download the full job history as CSV (default) or XLSX.
// @Tags validation-jobs
// @Produce text/csv
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param ticketId path string true "Ticket ID"
// @Param format query string false "csv or xlsx"
// @Success 200 {file} file "Job history"
// @Failure 400 {object} ErrorResponseBody "Unsupported format"
// @Security BearerAuth
// @Router /tickets/{ticketId}/validation-jobs/export [get]
func (h *ValidationHandler) Export(c *gin.Context) {
	format, err := export.ParseFormat(c.Query("format"))
	if err != nil {
		HandleError(c, h.logger, err)
		return
	}

	ticketID := c.Param("ticketId")
	jobs, err := h.svc.ExportJobs(c.Request.Context(), ticketID)
	if err != nil {
		HandleError(c, h.logger, err)
		return
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, format, jobs); err != nil {
		HandleError(c, h.logger, err)
		return
	}

	filename := export.BuildFilename(ticketID, format, h.now())
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, format.ContentType(), buf.Bytes())
}

// SubmissionCheck handles POST /api/v1/tickets/:ticketId/submission-check
// @Summary Check whether a ticket may be submitted
// @Description Pairs each field rule with the latest job for that field and validator, then applies the submission policy. A refusal is returned as data.
// @Tags tickets
// @Accept json
// @Produce json
// @Param ticketId path string true "Ticket ID"
// @Param body body SubmissionCheckRequest true "Field definitions"
// @Success 200 {object} Response{data=service.SubmissionCheckOutput} "Decision and field states"
// @Failure 400 {object} ErrorResponseBody "Invalid field definitions"
// @Security BearerAuth
// @Router /tickets/{ticketId}/submission-check [post]
func (h *ValidationHandler) SubmissionCheck(c *gin.Context) {
	var req service.SubmissionCheckInput
	if err := bindJSON(c, &req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_INPUT", "request body must be a JSON object")
		return
	}
	req.TicketID = c.Param("ticketId")

	out, err := h.svc.CheckSubmission(c.Request.Context(), &req)
	if err != nil {
		HandleError(c, h.logger, err)
		return
	}

	RespondOK(c, out)
}

// Validators handles GET /api/v1/validators
// @Summary List registered validators
// @Tags validations
// @Produce json
// @Success 200 {object} Response{data=ItemsResponse[domain.ValidatorID]} "Validator ids"
// @Router /validators [get]
func (h *ValidationHandler) Validators(c *gin.Context) {
	RespondOK(c, ItemsResponse[domain.ValidatorID]{Items: h.svc.Validators()})
}

// bindJSON decodes the request body keeping numbers as json.Number, so long
// numeric identifiers reach the checks with every digit intact.
func bindJSON(c *gin.Context, v any) error {
	if c.Request == nil || c.Request.Body == nil {
		return errors.New("missing request body")
	}
	dec := json.NewDecoder(c.Request.Body)
	dec.UseNumber()
	return dec.Decode(v)
}
