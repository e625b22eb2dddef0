// Package coingecko provides a client for the CoinGecko simple price API.
package coingecko

import (
	"context"
	"net/url"

	"github.com/rotisserie/eris"

	"github.com/smhjw/daily-telegram-brief/internal/fetch"
)

// Client defines the CoinGecko operation used by the brief.
type Client interface {
	// BitcoinPrice fetches the BTC price in USD and CNY with 24h change.
	BitcoinPrice(ctx context.Context) (*Price, error)
}

// Price holds the simple-price response for bitcoin. Nil fields were
// absent upstream.
type Price struct {
	USD          *float64 `json:"usd"`
	CNY          *float64 `json:"cny"`
	USD24hChange *float64 `json:"usd_24h_change"`
}

type simplePriceResponse struct {
	Bitcoin *Price `json:"bitcoin"`
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

// NewClient creates a new CoinGecko client.
func NewClient(opts ...Option) Client {
	c := &httpClient{
		baseURL: "https://api.coingecko.com",
		fetch:   fetch.New(fetch.Options{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *httpClient) BitcoinPrice(ctx context.Context) (*Price, error) {
	params := url.Values{
		"ids":                 {"bitcoin"},
		"vs_currencies":       {"usd,cny"},
		"include_24hr_change": {"true"},
	}

	var resp simplePriceResponse
	if err := c.fetch.GetJSON(ctx, c.baseURL+"/api/v3/simple/price?"+params.Encode(), &resp); err != nil {
		return nil, eris.Wrap(err, "coingecko: simple price")
	}
	if resp.Bitcoin == nil {
		return nil, eris.New("coingecko: 返回空价格")
	}
	return resp.Bitcoin, nil
}
