package swissquote

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstrumentQuote_ReturnsMid(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/public-quotes/bboquotes/instrument/XAU/USD", r.URL.Path)
		_, _ = w.Write([]byte(`[{"spreadProfilePrices":[{"bid":2656.9,"ask":2657.5},{"bid":2656.0,"ask":2658.0}]}]`))
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL))

	mid, err := c.InstrumentQuote(context.Background(), "XAU", "USD")
	require.NoError(t, err)
	assert.InDelta(t, 2657.2, mid, 1e-9)
}

func TestInstrumentQuote_EmptyProfiles(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[{"spreadProfilePrices":[]}]`))
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL))

	_, err := c.InstrumentQuote(context.Background(), "XAU", "USD")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "返回空数据")
}

func TestInstrumentQuote_ZeroPrices(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[{"spreadProfilePrices":[{"bid":0,"ask":0}]}]`))
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL))

	_, err := c.InstrumentQuote(context.Background(), "XAU", "USD")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "返回空价格")
}
