// Package goldapi provides a client for the gold-api.com spot price API.
package goldapi

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/smhjw/daily-telegram-brief/internal/fetch"
)

// Client defines the gold-api.com operation used by the brief.
type Client interface {
	// SpotPrice fetches the spot price for a metal symbol like "XAU",
	// quoted in USD per troy ounce.
	SpotPrice(ctx context.Context, symbol string) (*Price, error)
}

// Price is the spot price payload.
type Price struct {
	Name   string  `json:"name"`
	Symbol string  `json:"symbol"`
	Price  float64 `json:"price"`
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(u string) Option {
	return func(c *httpClient) {
		c.baseURL = u
	}
}

// WithFetcher sets a custom HTTP fetcher.
func WithFetcher(f *fetch.Client) Option {
	return func(c *httpClient) {
		c.fetch = f
	}
}

type httpClient struct {
	baseURL string
	fetch   *fetch.Client
}

// NewClient creates a new gold-api.com client.
func NewClient(opts ...Option) Client {
	c := &httpClient{
		baseURL: "https://api.gold-api.com",
		fetch:   fetch.New(fetch.Options{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *httpClient) SpotPrice(ctx context.Context, symbol string) (*Price, error) {
	var resp Price
	if err := c.fetch.GetJSON(ctx, c.baseURL+"/price/"+symbol, &resp); err != nil {
		return nil, eris.Wrap(err, "goldapi: spot price")
	}
	return &resp, nil
}
