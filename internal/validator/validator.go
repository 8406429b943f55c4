// Package validator runs named vendor checks against ticket fields, records
// every run as an immutable job, and decides whether a ticket may be submitted.
package validator

import (
	"context"

	"fieldcheck/internal/domain"
)

// Check is a single vendor verification bound to a ValidatorID.
//
// A returned error is an execution fault (network, vendor outage, malformed
// input). A substantive negative outcome is a result with StatusFail.
type Check interface {
	Check(ctx context.Context, input domain.ValidatorInput) (*domain.ValidatorResult, error)
}

// CheckFunc adapts a function to the Check interface.
type CheckFunc func(ctx context.Context, input domain.ValidatorInput) (*domain.ValidatorResult, error)

// Check calls f.
func (f CheckFunc) Check(ctx context.Context, input domain.ValidatorInput) (*domain.ValidatorResult, error) {
	return f(ctx, input)
}
