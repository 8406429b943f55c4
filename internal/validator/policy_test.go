package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"fieldcheck/internal/domain"
	"fieldcheck/internal/validator"
)

func evaluated(level domain.ValidationLevel, status domain.ValidationStatus, summary string) domain.EvaluatedResult {
	return domain.EvaluatedResult{
		Rule:   domain.FieldValidationRule{ValidatorID: domain.ValidatorWatchlistScreening, Level: level},
		Result: domain.ValidatorResult{Status: status, Summary: summary},
	}
}

func TestCanSubmit_SoftFailureDoesNotBlock(t *testing.T) {
	decision := validator.CanSubmit([]domain.EvaluatedResult{
		evaluated(domain.LevelSoft, domain.StatusFail, "Possible match"),
		evaluated(domain.LevelHard, domain.StatusSuccess, "Clear"),
	})

	assert.Equal(t, domain.SubmissionDecision{Allowed: true}, decision)
}

func TestCanSubmit_HardFailureBlocks(t *testing.T) {
	decision := validator.CanSubmit([]domain.EvaluatedResult{
		evaluated(domain.LevelHard, domain.StatusFail, "Name match found"),
	})

	assert.False(t, decision.Allowed)
	assert.Equal(t, "Name match found", decision.Reason)
}

func TestCanSubmit_HardErrorBlocks(t *testing.T) {
	decision := validator.CanSubmit([]domain.EvaluatedResult{
		evaluated(domain.LevelHard, domain.StatusError, "Validator timed out before returning a result"),
	})

	assert.False(t, decision.Allowed)
	assert.Equal(t, "Validator timed out before returning a result", decision.Reason)
}

func TestCanSubmit_FirstHardFailureWins(t *testing.T) {
	decision := validator.CanSubmit([]domain.EvaluatedResult{
		evaluated(domain.LevelSoft, domain.StatusError, "soft error"),
		evaluated(domain.LevelHard, domain.StatusSuccess, "ok"),
		evaluated(domain.LevelHard, domain.StatusError, "first"),
		evaluated(domain.LevelHard, domain.StatusFail, "second"),
	})

	assert.False(t, decision.Allowed)
	assert.Equal(t, "first", decision.Reason)
}

func TestCanSubmit_EmptySummaryFallsBack(t *testing.T) {
	decision := validator.CanSubmit([]domain.EvaluatedResult{
		evaluated(domain.LevelHard, domain.StatusFail, ""),
	})

	assert.False(t, decision.Allowed)
	assert.Equal(t, validator.DefaultRefusalReason, decision.Reason)
}

func TestCanSubmit_PendingAndEmpty(t *testing.T) {
	assert.True(t, validator.CanSubmit(nil).Allowed)
	assert.True(t, validator.CanSubmit([]domain.EvaluatedResult{
		evaluated(domain.LevelHard, domain.StatusPending, validator.NotRunSummary),
	}).Allowed)
}
