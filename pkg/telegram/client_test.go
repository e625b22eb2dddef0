package telegram

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendMessage(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bot123:abc/sendMessage", r.URL.Path)

		var req struct {
			ChatID                string `json:"chat_id"`
			Text                  string `json:"text"`
			DisableWebPagePreview bool   `json:"disable_web_page_preview"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "-100200300", req.ChatID)
		assert.Equal(t, "🗞️ 每日资讯推送", req.Text)
		assert.True(t, req.DisableWebPagePreview)

		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c := NewClient("123:abc", WithBaseURL(srv.URL))

	require.NoError(t, c.SendMessage(context.Background(), "-100200300", "🗞️ 每日资讯推送"))
}

func TestSendMessage_APIError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"ok":false,"description":"Bad Request: chat not found"}`))
	}))
	defer srv.Close()

	c := NewClient("123:abc", WithBaseURL(srv.URL))

	err := c.SendMessage(context.Background(), "-1", "text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chat not found")
}

func TestSendMessage_FalseOKWithoutDescription(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"ok":false}`))
	}))
	defer srv.Close()

	c := NewClient("123:abc", WithBaseURL(srv.URL))

	err := c.SendMessage(context.Background(), "-1", "text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown error")
}
