package checks

import (
	"context"

	"fieldcheck/internal/domain"
)

const vendorNationalID = "national id registry"

type nationalIDRequest struct {
	IDNumber     string `json:"idNumber"`
	Jurisdiction string `json:"jurisdiction"`
	FullName     string `json:"fullName,omitempty"`
}

type nationalIDResponse struct {
	Found     bool   `json:"found"`
	Valid     bool   `json:"valid"`
	NameMatch *bool  `json:"nameMatch"`
	RecordURL string `json:"recordUrl"`
}

// NationalIDCheck looks up a national identity number in the registry of
// the jurisdiction given in the input context.
type NationalIDCheck struct {
	client *Client
}

// NewNationalIDCheck creates a NationalIDCheck.
func NewNationalIDCheck(client *Client) *NationalIDCheck {
	return &NationalIDCheck{client: client}
}

func (c *NationalIDCheck) Check(ctx context.Context, input domain.ValidatorInput) (*domain.ValidatorResult, error) {
	number, err := valueString(input)
	if err != nil {
		return nil, err
	}
	jurisdiction, err := requireContext(input, "jurisdiction")
	if err != nil {
		return nil, err
	}

	var resp nationalIDResponse
	raw, err := c.client.PostJSON(ctx, "/verify", nationalIDRequest{
		IDNumber:     number,
		Jurisdiction: jurisdiction,
		FullName:     contextString(input, "fullName"),
	}, &resp)
	if err != nil {
		return nil, err
	}

	res := &domain.ValidatorResult{Evidence: raw}
	if resp.RecordURL != "" {
		res.Links = []string{resp.RecordURL}
	}

	switch {
	case !resp.Found:
		res.Status = domain.StatusFail
		res.Summary = "National ID not found"
	case !resp.Valid:
		res.Status = domain.StatusFail
		res.Summary = "National ID is not valid"
	case resp.NameMatch != nil && !*resp.NameMatch:
		res.Status = domain.StatusFail
		res.Summary = "National ID holder name does not match"
	default:
		res.Status = domain.StatusSuccess
		res.Summary = "National ID verified"
	}
	return res, nil
}
