// Package telegram provides a client for the Telegram Bot sendMessage
// API.
package telegram

import (
	"context"
	"fmt"

	"github.com/rotisserie/eris"

	"github.com/smhjw/daily-telegram-brief/internal/fetch"
)

// Client defines the Telegram operation used by the brief.
type Client interface {
	// SendMessage posts a plain-text message to a chat.
	SendMessage(ctx context.Context, chatID, text string) error
}

type sendRequest struct {
	ChatID                string `json:"chat_id"`
	Text                  string `json:"text"`
	DisableWebPagePreview bool   `json:"disable_web_page_preview"`
}

type sendResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
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
	botToken string
	baseURL  string
	fetch    *fetch.Client
}

// NewClient creates a new Telegram bot client.
func NewClient(botToken string, opts ...Option) Client {
	c := &httpClient{
		botToken: botToken,
		baseURL:  "https://api.telegram.org",
		fetch:    fetch.New(fetch.Options{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *httpClient) SendMessage(ctx context.Context, chatID, text string) error {
	reqURL := fmt.Sprintf("%s/bot%s/sendMessage", c.baseURL, c.botToken)
	payload := sendRequest{
		ChatID:                chatID,
		Text:                  text,
		DisableWebPagePreview: true,
	}

	var resp sendResponse
	if err := c.fetch.PostJSON(ctx, reqURL, payload, &resp); err != nil {
		return eris.Wrap(err, "telegram: send message")
	}
	if !resp.OK {
		desc := resp.Description
		if desc == "" {
			desc = "unknown error"
		}
		return eris.Errorf("telegram: API error: %s", desc)
	}
	return nil
}
