package checks

import (
	"context"
	"fmt"
	"strings"

	"fieldcheck/internal/domain"
)

const vendorTaxID = "tax registry"

type taxIDRequest struct {
	TaxID   string `json:"taxId"`
	Country string `json:"country"`
}

type taxIDResponse struct {
	Found          bool   `json:"found"`
	Status         string `json:"status"`
	RegisteredName string `json:"registeredName"`
	RecordURL      string `json:"recordUrl"`
}

// TaxIDCheck looks up a tax registration number. An inactive registration
// passes with a warning.
type TaxIDCheck struct {
	client *Client
}

// NewTaxIDCheck creates a TaxIDCheck.
func NewTaxIDCheck(client *Client) *TaxIDCheck {
	return &TaxIDCheck{client: client}
}

func (c *TaxIDCheck) Check(ctx context.Context, input domain.ValidatorInput) (*domain.ValidatorResult, error) {
	taxID, err := valueString(input)
	if err != nil {
		return nil, err
	}
	country, err := requireContext(input, "country")
	if err != nil {
		return nil, err
	}

	var resp taxIDResponse
	raw, err := c.client.PostJSON(ctx, "/lookup", taxIDRequest{TaxID: taxID, Country: country}, &resp)
	if err != nil {
		return nil, err
	}

	res := &domain.ValidatorResult{Evidence: raw}
	if resp.RecordURL != "" {
		res.Links = []string{resp.RecordURL}
	}

	status := strings.ToLower(strings.TrimSpace(resp.Status))
	switch {
	case !resp.Found:
		res.Status = domain.StatusFail
		res.Summary = "Tax ID not registered"
	case status == "active":
		res.Status = domain.StatusSuccess
		res.Summary = registeredSummary(resp.RegisteredName)
	case status == "inactive":
		res.Status = domain.StatusSuccess
		res.Summary = registeredSummary(resp.RegisteredName)
		res.Warnings = []string{"Tax registration is inactive"}
	default:
		res.Status = domain.StatusFail
		res.Summary = fmt.Sprintf("Tax ID registration is %s", orUnknown(status))
	}
	return res, nil
}

func registeredSummary(name string) string {
	if name == "" {
		return "Tax ID registered"
	}
	return "Tax ID registered to " + name
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
