package validator

import "fieldcheck/internal/domain"

// DefaultRefusalReason is used when a blocking result carries no summary.
const DefaultRefusalReason = "A required validation did not pass"

// CanSubmit decides submission eligibility from an ordered list of
// rule/result pairs. The first hard rule whose result is fail or error
// refuses submission and its summary becomes the reason. Soft rules never
// affect the outcome.
func CanSubmit(evaluated []domain.EvaluatedResult) domain.SubmissionDecision {
	for _, e := range evaluated {
		if e.Rule.Level != domain.LevelHard || !e.Result.Status.IsFailure() {
			continue
		}
		reason := e.Result.Summary
		if reason == "" {
			reason = DefaultRefusalReason
		}
		return domain.SubmissionDecision{Allowed: false, Reason: reason}
	}
	return domain.SubmissionDecision{Allowed: true}
}
