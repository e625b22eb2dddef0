// Package erapi provides a client for the open.er-api.com exchange rate
// API.
package erapi

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/smhjw/daily-telegram-brief/internal/fetch"
)

// Client defines the exchange-rate operation used by the brief.
type Client interface {
	// Rate fetches the conversion rate from base to symbol, e.g.
	// ("USD", "CNY").
	Rate(ctx context.Context, base, symbol string) (float64, error)
}

type latestResponse struct {
	Result string             `json:"result"`
	Rates  map[string]float64 `json:"rates"`
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

// NewClient creates a new exchange-rate client.
func NewClient(opts ...Option) Client {
	c := &httpClient{
		baseURL: "https://open.er-api.com",
		fetch:   fetch.New(fetch.Options{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *httpClient) Rate(ctx context.Context, base, symbol string) (float64, error) {
	var resp latestResponse
	if err := c.fetch.GetJSON(ctx, c.baseURL+"/v6/latest/"+base, &resp); err != nil {
		return 0, eris.Wrap(err, "erapi: latest rates")
	}
	if resp.Result != "success" {
		return 0, eris.Errorf("erapi: result %q", resp.Result)
	}

	rate, ok := resp.Rates[symbol]
	if !ok || rate <= 0 {
		return 0, eris.Errorf("erapi: 汇率缺失: %s", symbol)
	}
	return rate, nil
}
