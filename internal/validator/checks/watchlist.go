package checks

import (
	"context"
	"fmt"

	"fieldcheck/internal/domain"
)

const vendorWatchlist = "watchlist screening"

type screeningRequest struct {
	Name        string `json:"name"`
	DateOfBirth string `json:"dateOfBirth,omitempty"`
	Country     string `json:"country,omitempty"`
}

type screeningMatch struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	List  string  `json:"list"`
	Score float64 `json:"score"`
	URL   string  `json:"url"`
}

type screeningResponse struct {
	Matches []screeningMatch `json:"matches"`
}

// WatchlistCheck screens a person or entity name against sanctions and
// watch lists. Any match fails the check.
type WatchlistCheck struct {
	client *Client
}

// NewWatchlistCheck creates a WatchlistCheck.
func NewWatchlistCheck(client *Client) *WatchlistCheck {
	return &WatchlistCheck{client: client}
}

func (c *WatchlistCheck) Check(ctx context.Context, input domain.ValidatorInput) (*domain.ValidatorResult, error) {
	name, err := valueString(input)
	if err != nil {
		return nil, err
	}

	var resp screeningResponse
	raw, err := c.client.PostJSON(ctx, "/screen", screeningRequest{
		Name:        name,
		DateOfBirth: contextString(input, "dateOfBirth"),
		Country:     contextString(input, "country"),
	}, &resp)
	if err != nil {
		return nil, err
	}

	if len(resp.Matches) == 0 {
		return &domain.ValidatorResult{
			Status:   domain.StatusSuccess,
			Summary:  "No watchlist matches",
			Evidence: raw,
		}, nil
	}

	summary := "Name match found"
	if len(resp.Matches) > 1 {
		summary = fmt.Sprintf("Name match found (%d potential matches)", len(resp.Matches))
	}
	var links []string
	for _, m := range resp.Matches {
		if m.URL != "" {
			links = append(links, m.URL)
		}
	}
	return &domain.ValidatorResult{
		Status:   domain.StatusFail,
		Summary:  summary,
		Evidence: raw,
		Links:    links,
	}, nil
}
