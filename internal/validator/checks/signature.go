package checks

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"fieldcheck/internal/domain"
)

const vendorDocumentSignature = "document signature"

type envelopeSigner struct {
	Email  string `json:"email"`
	Status string `json:"status"`
}

type envelopeResponse struct {
	Status  string           `json:"status"`
	Signers []envelopeSigner `json:"signers"`
	URL     string           `json:"url"`
}

// DocumentSignatureCheck reports whether a signature envelope, identified by
// the field value, has been completed.
type DocumentSignatureCheck struct {
	client *Client
}

// NewDocumentSignatureCheck creates a DocumentSignatureCheck.
func NewDocumentSignatureCheck(client *Client) *DocumentSignatureCheck {
	return &DocumentSignatureCheck{client: client}
}

func (c *DocumentSignatureCheck) Check(ctx context.Context, input domain.ValidatorInput) (*domain.ValidatorResult, error) {
	envelopeID, err := valueString(input)
	if err != nil {
		return nil, err
	}

	var resp envelopeResponse
	raw, err := c.client.GetJSON(ctx, "/envelopes/"+url.PathEscape(envelopeID), &resp)
	if err != nil {
		return nil, err
	}

	res := &domain.ValidatorResult{Evidence: raw}
	if resp.URL != "" {
		res.Links = []string{resp.URL}
	}

	status := strings.ToLower(strings.TrimSpace(resp.Status))
	switch status {
	case "completed":
		res.Status = domain.StatusSuccess
		res.Summary = "Document signed by all parties"
	case "declined", "voided":
		res.Status = domain.StatusFail
		res.Summary = fmt.Sprintf("Document signature was %s", status)
	default:
		res.Status = domain.StatusFail
		res.Summary = fmt.Sprintf("Document signature is %s", orUnknown(status))
		if n := pendingSigners(resp.Signers); n > 0 {
			res.Warnings = []string{fmt.Sprintf("%d signer(s) have not signed", n)}
		}
	}
	return res, nil
}

func pendingSigners(signers []envelopeSigner) int {
	n := 0
	for _, s := range signers {
		if !strings.EqualFold(s.Status, "completed") && !strings.EqualFold(s.Status, "signed") {
			n++
		}
	}
	return n
}
