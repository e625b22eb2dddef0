// Package binance provides a client for the Binance 24h ticker API.
package binance

import (
	"context"
	"net/url"

	"github.com/rotisserie/eris"

	"github.com/smhjw/daily-telegram-brief/internal/fetch"
)

// Client defines the Binance operation used by the brief.
type Client interface {
	// Ticker24h fetches the rolling 24h ticker for a symbol like "BTCUSDT".
	Ticker24h(ctx context.Context, symbol string) (*Ticker, error)
}

// Ticker is the 24h ticker payload. Binance reports numerics as strings.
type Ticker struct {
	LastPrice          string `json:"lastPrice"`
	PriceChangePercent string `json:"priceChangePercent"`
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

// NewClient creates a new Binance client.
func NewClient(opts ...Option) Client {
	c := &httpClient{
		baseURL: "https://api.binance.com",
		fetch:   fetch.New(fetch.Options{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *httpClient) Ticker24h(ctx context.Context, symbol string) (*Ticker, error) {
	params := url.Values{"symbol": {symbol}}

	var resp Ticker
	if err := c.fetch.GetJSON(ctx, c.baseURL+"/api/v3/ticker/24hr?"+params.Encode(), &resp); err != nil {
		return nil, eris.Wrap(err, "binance: ticker")
	}
	return &resp, nil
}
