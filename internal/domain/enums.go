package domain

// ValidatorID names one vendor check. The set of built-in ids is closed;
// additional ids may only be bound at startup.
type ValidatorID string

const (
	ValidatorWatchlistScreening      ValidatorID = "watchlist_screening"
	ValidatorNationalIDLookup        ValidatorID = "national_id_lookup"
	ValidatorTaxIDLookup             ValidatorID = "tax_id_lookup"
	ValidatorDocumentSignatureStatus ValidatorID = "document_signature_status"
)

// BuiltinValidatorIDs lists every built-in check, in display order.
var BuiltinValidatorIDs = []ValidatorID{
	ValidatorWatchlistScreening,
	ValidatorNationalIDLookup,
	ValidatorTaxIDLookup,
	ValidatorDocumentSignatureStatus,
}

// IsBuiltin reports whether id is one of the built-in checks.
func (id ValidatorID) IsBuiltin() bool {
	for _, b := range BuiltinValidatorIDs {
		if b == id {
			return true
		}
	}
	return false
}

// ValidationLevel is the severity of a field validation rule.
type ValidationLevel string

const (
	LevelHard ValidationLevel = "hard"
	LevelSoft ValidationLevel = "soft"
)

// IsValid reports whether l is a known level.
func (l ValidationLevel) IsValid() bool {
	return l == LevelHard || l == LevelSoft
}

// ValidationStatus is the outcome of a validator run.
type ValidationStatus string

const (
	StatusPending ValidationStatus = "pending"
	StatusSuccess ValidationStatus = "success"
	StatusFail    ValidationStatus = "fail"
	StatusError   ValidationStatus = "error"
)

// IsValid reports whether s is a known status.
func (s ValidationStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusSuccess, StatusFail, StatusError:
		return true
	}
	return false
}

// IsTerminal reports whether s is an outcome a check may return.
func (s ValidationStatus) IsTerminal() bool {
	return s == StatusSuccess || s == StatusFail || s == StatusError
}

// IsFailure reports whether s is a substantive failure or an execution fault.
func (s ValidationStatus) IsFailure() bool {
	return s == StatusFail || s == StatusError
}

// FieldState is the derived validation state of a single field.
type FieldState string

const (
	FieldStateValid   FieldState = "valid"
	FieldStateWarning FieldState = "warning"
	FieldStateInvalid FieldState = "invalid"
	FieldStatePending FieldState = "pending"
)
