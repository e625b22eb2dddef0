// Package gateio provides a client for the Gate.io spot tickers API.
package gateio

import (
	"context"
	"net/url"

	"github.com/rotisserie/eris"

	"github.com/smhjw/daily-telegram-brief/internal/fetch"
)

// Client defines the Gate.io operation used by the brief.
type Client interface {
	// SpotTicker fetches the ticker for a pair like "BTC_USDT".
	SpotTicker(ctx context.Context, pair string) (*Ticker, error)
}

// Ticker is one spot ticker entry. Gate.io reports numerics as strings.
type Ticker struct {
	Last             string `json:"last"`
	ChangePercentage string `json:"change_percentage"`
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

// NewClient creates a new Gate.io client.
func NewClient(opts ...Option) Client {
	c := &httpClient{
		baseURL: "https://api.gateio.ws",
		fetch:   fetch.New(fetch.Options{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *httpClient) SpotTicker(ctx context.Context, pair string) (*Ticker, error) {
	params := url.Values{"currency_pair": {pair}}

	var resp []Ticker
	if err := c.fetch.GetJSON(ctx, c.baseURL+"/api/v4/spot/tickers?"+params.Encode(), &resp); err != nil {
		return nil, eris.Wrap(err, "gateio: spot ticker")
	}
	if len(resp) == 0 {
		return nil, eris.New("gateio: 返回空数据")
	}
	return &resp[0], nil
}
