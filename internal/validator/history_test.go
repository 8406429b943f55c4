package validator_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fieldcheck/internal/domain"
	"fieldcheck/internal/validator"
)

func job(fieldID string, id domain.ValidatorID, status domain.ValidationStatus, summary string, finished time.Time) domain.ValidationJob {
	return domain.ValidationJob{
		TicketID:    "T-1",
		FieldID:     fieldID,
		ValidatorID: id,
		Status:      status,
		Summary:     summary,
		StartedAt:   finished,
		FinishedAt:  finished,
	}
}

func TestLatestJobs_PicksNewestPerFieldAndValidator(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	jobs := []domain.ValidationJob{
		job("name", domain.ValidatorWatchlistScreening, domain.StatusSuccess, "newest", base.Add(2*time.Minute)),
		job("name", domain.ValidatorWatchlistScreening, domain.StatusFail, "older", base),
		job("tax", domain.ValidatorTaxIDLookup, domain.StatusFail, "tax", base),
	}

	latest := validator.LatestJobs(jobs)

	require.Len(t, latest, 2)
	assert.Equal(t, "newest", latest[validator.JobKey{FieldID: "name", ValidatorID: domain.ValidatorWatchlistScreening}].Summary)
}

func TestLatestJobs_TieKeepsFirstListed(t *testing.T) {
	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	jobs := []domain.ValidationJob{
		job("name", domain.ValidatorWatchlistScreening, domain.StatusFail, "listed first", at),
		job("name", domain.ValidatorWatchlistScreening, domain.StatusSuccess, "listed second", at),
	}

	latest := validator.LatestJobs(jobs)
	assert.Equal(t, "listed first", latest[validator.JobKey{FieldID: "name", ValidatorID: domain.ValidatorWatchlistScreening}].Summary)
}

func TestPairRules_OrderAndPendingDefault(t *testing.T) {
	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	fields := []domain.FieldDefinition{
		{ID: "name", Label: "Full name", Validations: []domain.FieldValidationRule{
			{ValidatorID: domain.ValidatorWatchlistScreening, Level: domain.LevelHard},
		}},
		{ID: "tax", Label: "Tax ID", Validations: []domain.FieldValidationRule{
			{ValidatorID: domain.ValidatorTaxIDLookup, Level: domain.LevelSoft},
			{ValidatorID: domain.ValidatorNationalIDLookup, Level: domain.LevelHard},
		}},
	}
	jobs := []domain.ValidationJob{
		job("tax", domain.ValidatorTaxIDLookup, domain.StatusFail, "Tax ID not registered", at),
		job("name", domain.ValidatorWatchlistScreening, domain.StatusSuccess, "No matches", at),
	}

	pairs := validator.PairRules(fields, jobs)

	require.Len(t, pairs, 3)
	assert.Equal(t, "name", pairs[0].FieldID)
	assert.Equal(t, domain.StatusSuccess, pairs[0].Result.Status)
	assert.Equal(t, domain.ValidatorTaxIDLookup, pairs[1].Rule.ValidatorID)
	assert.Equal(t, domain.StatusFail, pairs[1].Result.Status)
	assert.Equal(t, domain.StatusPending, pairs[2].Result.Status)
	assert.Equal(t, validator.NotRunSummary, pairs[2].Result.Summary)
}

func TestComputeFieldStatuses(t *testing.T) {
	hard := domain.FieldValidationRule{Level: domain.LevelHard}
	soft := domain.FieldValidationRule{Level: domain.LevelSoft}
	pairs := []domain.EvaluatedResult{
		{FieldID: "ok", Rule: hard, Result: domain.ValidatorResult{Status: domain.StatusSuccess}},
		{FieldID: "warn", Rule: soft, Result: domain.ValidatorResult{Status: domain.StatusFail, Summary: "Possible match"}},
		{FieldID: "bad", Rule: soft, Result: domain.ValidatorResult{Status: domain.StatusFail, Summary: "soft"}},
		{FieldID: "bad", Rule: hard, Result: domain.ValidatorResult{Status: domain.StatusError, Summary: "vendor down"}},
		{FieldID: "wait", Rule: hard, Result: domain.ValidatorResult{Status: domain.StatusPending}},
		{FieldID: "wait", Rule: soft, Result: domain.ValidatorResult{Status: domain.StatusSuccess}},
	}

	statuses := validator.ComputeFieldStatuses(nil, pairs)

	assert.Equal(t, domain.FieldStateValid, statuses["ok"].State)
	assert.Empty(t, statuses["ok"].Messages)
	assert.Equal(t, domain.FieldStateWarning, statuses["warn"].State)
	assert.Equal(t, []string{"Possible match"}, statuses["warn"].Messages)
	assert.Equal(t, domain.FieldStateInvalid, statuses["bad"].State)
	assert.Equal(t, []string{"soft", "vendor down"}, statuses["bad"].Messages)
	assert.Equal(t, domain.FieldStatePending, statuses["wait"].State)
}

func TestComputeFieldStatuses_FieldWithoutRulesIsValid(t *testing.T) {
	fields := []domain.FieldDefinition{
		{ID: "notes", Label: "Notes"},
		{ID: "name", Label: "Name", Validations: []domain.FieldValidationRule{
			{ValidatorID: "watchlist_screening", Level: domain.LevelHard},
		}},
	}
	pairs := []domain.EvaluatedResult{
		{FieldID: "name", Rule: fields[1].Validations[0], Result: domain.ValidatorResult{Status: domain.StatusFail, Summary: "Match"}},
	}

	statuses := validator.ComputeFieldStatuses(fields, pairs)

	require.Contains(t, statuses, "notes")
	assert.Equal(t, domain.FieldStateValid, statuses["notes"].State)
	assert.Empty(t, statuses["notes"].Messages)
	assert.Equal(t, domain.FieldStateInvalid, statuses["name"].State)
	assert.Len(t, statuses, 2)
}
