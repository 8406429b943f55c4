package validator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"fieldcheck/internal/domain"
)

const maxSummaryLen = 240

// PanicError wraps a value recovered from a panicking check.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("validator panicked: %v", e.Value)
}

// ResultFromFault converts an execution fault into an error result. It is
// the only place where a fault becomes data.
func ResultFromFault(err error) domain.ValidatorResult {
	if err == nil {
		err = errors.New("unknown failure")
	}

	var summary string
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		summary = "Validator timed out before returning a result"
	default:
		msg := strings.TrimSpace(sanitize(err.Error()))
		if msg == "" {
			msg = "unknown failure"
		}
		summary = truncate("Validator error: "+msg, maxSummaryLen)
	}

	return domain.ValidatorResult{
		Status:  domain.StatusError,
		Summary: summary,
		Errors:  []string{sanitize(err.Error())},
	}
}

// normalizeResult accepts a check's result verbatim when it carries a
// terminal status and reports anything else as a fault.
func normalizeResult(res *domain.ValidatorResult) (domain.ValidatorResult, error) {
	if res == nil {
		return domain.ValidatorResult{}, errors.New("validator returned no result")
	}
	if !res.Status.IsTerminal() {
		return domain.ValidatorResult{}, fmt.Errorf("validator returned non-terminal status %q", res.Status)
	}
	return *res, nil
}

// sanitize replaces invalid UTF-8 so fault text can be stored in text columns.
func sanitize(s string) string {
	return strings.ToValidUTF8(s, "\uFFFD")
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
