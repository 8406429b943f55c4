package handler_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"go.uber.org/zap/zapcore"

	"fieldcheck/internal/domain"
	"fieldcheck/internal/handler"
	"fieldcheck/internal/ratelimit"
)

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{"input error keeps message", domain.NewInputError("ticketId", "is required"), http.StatusBadRequest, "INVALID_INPUT", "ticketId is required"},
		{"wrapped input error", fmt.Errorf("svc: %w", domain.NewInputError("value", "is empty")), http.StatusBadRequest, "INVALID_INPUT", "value is empty"},
		{"unknown validator", fmt.Errorf("%w: %q", domain.ErrUnknownValidator, "x"), http.StatusBadRequest, "UNKNOWN_VALIDATOR", `unknown validator: "x"`},
		{"rate limited", &ratelimit.ExceededError{Key: "k", Limit: 60, RetryAfter: time.Second}, http.StatusTooManyRequests, "RATE_LIMIT_EXCEEDED", "too many requests; retry later"},
		{"persistence", fmt.Errorf("%w: %w", domain.ErrPersistence, fmt.Errorf("conn refused")), http.StatusInternalServerError, "PERSISTENCE_FAILED", "validation job could not be recorded"},
		{"unauthorized", domain.ErrUnauthorized, http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized"},
		{"not found", domain.ErrNotFound, http.StatusNotFound, "NOT_FOUND", "resource not found"},
		{"unknown", fmt.Errorf("boom"), http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, code, msg := handler.MapDomainError(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}
}

func TestHandleError_RetryAfterHeader(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	handler.HandleError(c, zap.NewNop(), &ratelimit.ExceededError{Key: "k", Limit: 60, RetryAfter: 1500 * time.Millisecond})

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "2", w.Header().Get("Retry-After"))
}

func TestHandleError_LogsServerErrors(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	logger := zap.New(core)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("request_id", "req-1")

	handler.HandleError(c, logger, domain.ErrPersistence)
	handler.HandleError(c, logger, domain.NewInputError("x", "is required"))

	entries := logs.All()
	if assert.Len(t, entries, 1) {
		assert.Equal(t, "request failed", entries[0].Message)
		assert.Equal(t, "PERSISTENCE_FAILED", entries[0].ContextMap()["code"])
		assert.Equal(t, "req-1", entries[0].ContextMap()["request_id"])
	}
}
