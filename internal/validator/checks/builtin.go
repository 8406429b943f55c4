package checks

import (
	"net/http"

	"fieldcheck/internal/config"
	"fieldcheck/internal/domain"
	"fieldcheck/internal/validator"
)

// RegisterBuiltins binds every built-in validator id to its vendor check.
// Vendors without an endpoint are still registered; their runs are recorded
// as errors until configured.
func RegisterBuiltins(reg *validator.Registry, cfg config.ValidatorsConfig, httpClient *http.Client) error {
	builtins := []struct {
		id    domain.ValidatorID
		check validator.Check
	}{
		{domain.ValidatorWatchlistScreening, NewWatchlistCheck(NewClient(vendorWatchlist, cfg.Watchlist, httpClient))},
		{domain.ValidatorNationalIDLookup, NewNationalIDCheck(NewClient(vendorNationalID, cfg.NationalID, httpClient))},
		{domain.ValidatorTaxIDLookup, NewTaxIDCheck(NewClient(vendorTaxID, cfg.TaxID, httpClient))},
		{domain.ValidatorDocumentSignatureStatus, NewDocumentSignatureCheck(NewClient(vendorDocumentSignature, cfg.DocumentSignature, httpClient))},
	}
	for _, b := range builtins {
		if err := reg.Register(b.id, b.check); err != nil {
			return err
		}
	}
	return nil
}

// Unconfigured lists the built-in ids whose vendor has no endpoint.
func Unconfigured(cfg config.ValidatorsConfig) []domain.ValidatorID {
	var out []domain.ValidatorID
	if !cfg.Watchlist.Configured() {
		out = append(out, domain.ValidatorWatchlistScreening)
	}
	if !cfg.NationalID.Configured() {
		out = append(out, domain.ValidatorNationalIDLookup)
	}
	if !cfg.TaxID.Configured() {
		out = append(out, domain.ValidatorTaxIDLookup)
	}
	if !cfg.DocumentSignature.Configured() {
		out = append(out, domain.ValidatorDocumentSignatureStatus)
	}
	return out
}
