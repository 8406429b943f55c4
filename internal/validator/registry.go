package validator

import (
	"fmt"
	"sort"
	"strings"

	"fieldcheck/internal/domain"
)

// Registry maps validator ids to checks. It is populated at startup and only
// read afterwards, so lookups need no locking.
type Registry struct {
	checks map[domain.ValidatorID]Check
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{checks: make(map[domain.ValidatorID]Check)}
}

// Register binds id to check. Binding the same id twice is an error.
func (r *Registry) Register(id domain.ValidatorID, check Check) error {
	if strings.TrimSpace(string(id)) == "" {
		return fmt.Errorf("registry: validator id is required")
	}
	if check == nil {
		return fmt.Errorf("registry: nil check for %q", id)
	}
	if _, exists := r.checks[id]; exists {
		return fmt.Errorf("registry: validator %q already registered", id)
	}
	r.checks[id] = check
	return nil
}

// Resolve returns the check bound to id. An unbound id always fails with
// domain.ErrUnknownValidator.
func (r *Registry) Resolve(id domain.ValidatorID) (Check, error) {
	check, ok := r.checks[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownValidator, id)
	}
	return check, nil
}

// IDs returns the registered ids in sorted order.
func (r *Registry) IDs() []domain.ValidatorID {
	out := make([]domain.ValidatorID, 0, len(r.checks))
	for id := range r.checks {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Missing returns the built-in ids that have no check bound.
func (r *Registry) Missing() []domain.ValidatorID {
	var out []domain.ValidatorID
	for _, id := range domain.BuiltinValidatorIDs {
		if _, ok := r.checks[id]; !ok {
			out = append(out, id)
		}
	}
	return out
}
