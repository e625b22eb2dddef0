// Package dingtalk provides a client for the DingTalk robot webhook,
// including HMAC-signed URL construction.
package dingtalk

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/rotisserie/eris"

	"github.com/smhjw/daily-telegram-brief/internal/fetch"
)

// Client defines the DingTalk operation used by the brief.
type Client interface {
	// SendMarkdown posts a markdown message to the robot webhook.
	SendMarkdown(ctx context.Context, title, markdown string) error
}

type markdownRequest struct {
	MsgType  string          `json:"msgtype"`
	Markdown markdownPayload `json:"markdown"`
}

type markdownPayload struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

type sendResponse struct {
	ErrCode int    `json:"errcode"`
	ErrMsg  string `json:"errmsg"`
}

// SignURL appends a millisecond timestamp and an HMAC-SHA256 signature
// to the webhook URL, per the DingTalk robot security scheme. The
// signature covers "<timestamp>\n<secret>" keyed by the secret itself,
// base64-encoded and URL-escaped.
func SignURL(webhook, secret string, now time.Time) string {
	timestamp := fmt.Sprintf("%d", now.UnixMilli())
	stringToSign := timestamp + "\n" + secret

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(stringToSign))
	sign := url.QueryEscape(base64.StdEncoding.EncodeToString(mac.Sum(nil)))

	sep := "?"
	if strings.Contains(webhook, "?") {
		sep = "&"
	}
	return webhook + sep + "timestamp=" + timestamp + "&sign=" + sign
}

// Option configures the client.
type Option func(*httpClient)

// WithFetcher sets a custom HTTP fetcher.
func WithFetcher(f *fetch.Client) Option {
	return func(c *httpClient) {
		c.fetch = f
	}
}

// WithNow sets a fixed clock for signing (for testing).
func WithNow(now func() time.Time) Option {
	return func(c *httpClient) {
		c.now = now
	}
}

type httpClient struct {
	webhook string
	secret  string
	now     func() time.Time
	fetch   *fetch.Client
}

// NewClient creates a new DingTalk robot client. An empty secret sends
// to the bare webhook URL unsigned.
func NewClient(webhook, secret string, opts ...Option) Client {
	c := &httpClient{
		webhook: webhook,
		secret:  secret,
		now:     time.Now,
		fetch:   fetch.New(fetch.Options{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *httpClient) SendMarkdown(ctx context.Context, title, markdown string) error {
	reqURL := c.webhook
	if c.secret != "" {
		reqURL = SignURL(c.webhook, c.secret, c.now())
	}

	payload := markdownRequest{
		MsgType:  "markdown",
		Markdown: markdownPayload{Title: title, Text: markdown},
	}

	var resp sendResponse
	if err := c.fetch.PostJSON(ctx, reqURL, payload, &resp); err != nil {
		return eris.Wrap(err, "dingtalk: send markdown")
	}
	if resp.ErrCode != 0 {
		msg := resp.ErrMsg
		if msg == "" {
			msg = "unknown error"
		}
		return eris.Errorf("dingtalk: API error: %s", msg)
	}
	return nil
}
