// Package serverchan provides a client for the ServerChan (Server酱)
// WeChat push API.
package serverchan

import (
	"context"
	"fmt"
	"net/url"

	"github.com/rotisserie/eris"

	"github.com/smhjw/daily-telegram-brief/internal/fetch"
)

// Client defines the ServerChan operation used by the brief.
type Client interface {
	// Send pushes a markdown message with the given title.
	Send(ctx context.Context, title, markdown string) error
}

type sendResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
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
	sendKey string
	baseURL string
	fetch   *fetch.Client
}

// NewClient creates a new ServerChan client.
func NewClient(sendKey string, opts ...Option) Client {
	c := &httpClient{
		sendKey: sendKey,
		baseURL: "https://sctapi.ftqq.com",
		fetch:   fetch.New(fetch.Options{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *httpClient) Send(ctx context.Context, title, markdown string) error {
	reqURL := fmt.Sprintf("%s/%s.send", c.baseURL, c.sendKey)
	form := url.Values{
		"title": {title},
		"desp":  {markdown},
	}

	var resp sendResponse
	if err := c.fetch.PostForm(ctx, reqURL, form, &resp); err != nil {
		return eris.Wrap(err, "serverchan: send")
	}
	if resp.Code != 0 {
		msg := resp.Message
		if msg == "" {
			msg = "unknown error"
		}
		return eris.Errorf("serverchan: API error: %s", msg)
	}
	return nil
}
