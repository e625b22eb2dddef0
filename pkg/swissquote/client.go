// Package swissquote provides a client for the Swissquote public
// forex-data-feed quotes, used as a gold spot fallback.
package swissquote

import (
	"context"
	"fmt"

	"github.com/rotisserie/eris"

	"github.com/smhjw/daily-telegram-brief/internal/fetch"
)

// Client defines the Swissquote operation used by the brief.
type Client interface {
	// InstrumentQuote fetches the best bid/ask for an instrument pair
	// like ("XAU", "USD") and returns the mid price.
	InstrumentQuote(ctx context.Context, instrument, currency string) (float64, error)
}

type profilePrice struct {
	Bid float64 `json:"bid"`
	Ask float64 `json:"ask"`
}

type quoteEntry struct {
	SpreadProfilePrices []profilePrice `json:"spreadProfilePrices"`
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

// NewClient creates a new Swissquote client.
func NewClient(opts ...Option) Client {
	c := &httpClient{
		baseURL: "https://forex-data-feed.swissquote.com",
		fetch:   fetch.New(fetch.Options{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *httpClient) InstrumentQuote(ctx context.Context, instrument, currency string) (float64, error) {
	reqURL := fmt.Sprintf("%s/public-quotes/bboquotes/instrument/%s/%s", c.baseURL, instrument, currency)

	var resp []quoteEntry
	if err := c.fetch.GetJSON(ctx, reqURL, &resp); err != nil {
		return 0, eris.Wrap(err, "swissquote: instrument quote")
	}
	if len(resp) == 0 || len(resp[0].SpreadProfilePrices) == 0 {
		return 0, eris.New("swissquote: 返回空数据")
	}

	p := resp[0].SpreadProfilePrices[0]
	if p.Bid <= 0 || p.Ask <= 0 {
		return 0, eris.New("swissquote: 返回空价格")
	}
	return (p.Bid + p.Ask) / 2, nil
}
