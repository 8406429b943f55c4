package checks

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"fieldcheck/internal/domain"
)

// valueString returns the field value as a non-empty string. Numbers are
// accepted since identifiers often arrive unquoted.
func valueString(input domain.ValidatorInput) (string, error) {
	var s string
	switch v := input.Value.(type) {
	case nil:
	case string:
		s = v
	case json.Number:
		s = v.String()
	case float64:
		s = strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		s = strconv.Itoa(v)
	case int64:
		s = strconv.FormatInt(v, 10)
	default:
		return "", domain.NewInputError(fieldName(input), fmt.Sprintf("has unsupported value type %T", v))
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return "", domain.NewInputError(fieldName(input), "has no value to check")
	}
	return s, nil
}

// contextString reads an optional string parameter from the input context.
func contextString(input domain.ValidatorInput, key string) string {
	if input.Context == nil {
		return ""
	}
	v, ok := input.Context[key].(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(v)
}

// requireContext reads a required string parameter from the input context.
func requireContext(input domain.ValidatorInput, key string) (string, error) {
	v := contextString(input, key)
	if v == "" {
		return "", domain.NewInputError("context."+key, "is required")
	}
	return v, nil
}

func fieldName(input domain.ValidatorInput) string {
	if input.FieldLabel != "" {
		return input.FieldLabel
	}
	return input.FieldID
}
