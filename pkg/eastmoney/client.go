// Package eastmoney provides a client for the Eastmoney push2 A-share
// quote API.
package eastmoney

import (
	"context"
	"net/url"

	"github.com/rotisserie/eris"

	"github.com/smhjw/daily-telegram-brief/internal/fetch"
	"github.com/smhjw/daily-telegram-brief/internal/quote"
)

// Client defines the Eastmoney quote operation.
type Client interface {
	// Quote fetches the quote for a secid like "1.600519" or "0.000001".
	Quote(ctx context.Context, secid string) (*StockQuote, error)
}

// StockQuote holds a single A-share quote. Prices are descaled to yuan;
// nil means the field was absent upstream.
type StockQuote struct {
	Name      string
	Price     *float64
	PrevClose *float64
	ChangeAmt *float64
	ChangePct *float64
}

// quoteResponse mirrors the push2 payload. Numeric fields arrive as
// hundredths-scaled integers, or the string "-" when absent.
type quoteResponse struct {
	Data map[string]any `json:"data"`
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

// NewClient creates a new Eastmoney client.
func NewClient(opts ...Option) Client {
	c := &httpClient{
		baseURL: "https://push2.eastmoney.com",
		fetch:   fetch.New(fetch.Options{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *httpClient) Quote(ctx context.Context, secid string) (*StockQuote, error) {
	params := url.Values{
		"secid":  {secid},
		"fields": {"f43,f57,f58,f60,f169,f170"},
	}

	var resp quoteResponse
	if err := c.fetch.GetJSON(ctx, c.baseURL+"/api/qt/stock/get?"+params.Encode(), &resp); err != nil {
		return nil, eris.Wrap(err, "eastmoney: quote")
	}
	if len(resp.Data) == 0 {
		return nil, eris.New("eastmoney: 返回数据为空")
	}

	sq := &StockQuote{
		Price:     scaledField(resp.Data, "f43"),
		PrevClose: scaledField(resp.Data, "f60"),
		ChangeAmt: scaledField(resp.Data, "f169"),
		ChangePct: scaledField(resp.Data, "f170"),
	}
	if name, ok := resp.Data["f58"].(string); ok {
		sq.Name = name
	}
	return sq, nil
}

// scaledField reads a hundredths-scaled numeric field, tolerating the
// "-" sentinel Eastmoney uses for absent values.
func scaledField(data map[string]any, key string) *float64 {
	switch v := data[key].(type) {
	case float64:
		scaled := v / 100
		return &scaled
	case string:
		parsed, ok := quote.ParseFloat(v)
		if !ok {
			return nil
		}
		scaled := parsed / 100
		return &scaled
	default:
		return nil
	}
}
