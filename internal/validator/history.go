package validator

import (
	"fieldcheck/internal/domain"
)

// NotRunSummary is the summary of the pending result paired with a rule
// whose validator has never run for the field.
const NotRunSummary = "Validation has not been run"

// FieldStatus is the computed validation state for a single field.
type FieldStatus struct {
	State    domain.FieldState `json:"status"`
	Messages []string          `json:"messages"`
}

type JobKey struct {
	FieldID     string
	ValidatorID domain.ValidatorID
}

// LatestJobs picks the most recent job per (field, validator). Jobs are
// expected newest first, as returned by the job store; among equal
// finishedAt values the earlier entry wins.
func LatestJobs(jobs []domain.ValidationJob) map[JobKey]domain.ValidationJob {
	latest := make(map[JobKey]domain.ValidationJob, len(jobs))
	for i := range jobs {
		j := jobs[i]
		k := JobKey{FieldID: j.FieldID, ValidatorID: j.ValidatorID}
		cur, ok := latest[k]
		if !ok || j.FinishedAt.After(cur.FinishedAt) {
			latest[k] = j
		}
	}
	return latest
}

// PairRules builds the ordered rule/result sequence for the given fields,
// in field order and then rule order. A rule with no recorded job is paired
// with a pending result.
func PairRules(fields []domain.FieldDefinition, jobs []domain.ValidationJob) []domain.EvaluatedResult {
	latest := LatestJobs(jobs)

	var out []domain.EvaluatedResult
	for _, f := range fields {
		for _, rule := range f.Validations {
			res := domain.ValidatorResult{Status: domain.StatusPending, Summary: NotRunSummary}
			if j, ok := latest[JobKey{FieldID: f.ID, ValidatorID: rule.ValidatorID}]; ok {
				res = j.Result()
			}
			out = append(out, domain.EvaluatedResult{FieldID: f.ID, Rule: rule, Result: res})
		}
	}
	return out
}

// ComputeFieldStatuses derives a per-field state from evaluated results.
// Every field starts valid, so fields without rules are still reported.
// A hard failure makes the field invalid, a soft failure makes it a warning,
// and a field with any rule still pending and no failures is pending.
func ComputeFieldStatuses(fields []domain.FieldDefinition, evaluated []domain.EvaluatedResult) map[string]*FieldStatus {
	statuses := make(map[string]*FieldStatus, len(fields))
	for _, f := range fields {
		statuses[f.ID] = &FieldStatus{State: domain.FieldStateValid, Messages: []string{}}
	}

	for _, e := range evaluated {
		fs, ok := statuses[e.FieldID]
		if !ok {
			fs = &FieldStatus{State: domain.FieldStateValid, Messages: []string{}}
			statuses[e.FieldID] = fs
		}

		switch {
		case e.Result.Status.IsFailure():
			if e.Rule.Level == domain.LevelHard {
				fs.State = domain.FieldStateInvalid
			} else if fs.State != domain.FieldStateInvalid {
				fs.State = domain.FieldStateWarning
			}
			if e.Result.Summary != "" {
				fs.Messages = append(fs.Messages, e.Result.Summary)
			}
		case e.Result.Status == domain.StatusPending:
			if fs.State == domain.FieldStateValid {
				fs.State = domain.FieldStatePending
			}
		}
	}

	return statuses
}
