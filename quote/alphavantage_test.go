package quote

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const globalQuoteBody = `{
	"Global Quote": {
		"01. symbol": "IBM",
		"02. open": "173.0200",
		"05. price": "174.5000",
		"09. change": "1.2400",
		"10. change percent": "0.7156%"
	}
}`

func newTestClient(serverURL string) *AlphaVantage {
	return &AlphaVantage{
		baseURL: serverURL,
		apiKey:  "test-key",
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

func TestAlphaVantagePrice(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "GLOBAL_QUOTE", r.URL.Query().Get("function"))
		assert.Equal(t, "IBM", r.URL.Query().Get("symbol"))
		assert.Equal(t, "test-key", r.URL.Query().Get("apikey"))

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(globalQuoteBody))
	}))
	defer server.Close()

	c := newTestClient(server.URL)

	price, err := c.Price(context.Background(), "IBM")
	require.NoError(t, err)
	assert.True(t, price.Equal(decimal.RequireFromString("174.50")), "got %s", price)
}

func TestAlphaVantagePercentChange(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(globalQuoteBody))
	}))
	defer server.Close()

	c := newTestClient(server.URL)

	change, err := c.PercentChange(context.Background(), "IBM")
	require.NoError(t, err)
	// The trailing % must be stripped before parsing.
	assert.True(t, change.Equal(decimal.RequireFromString("0.7156")), "got %s", change)
}

func TestAlphaVantageUnknownSymbol(t *testing.T) {
	// Alpha Vantage answers unknown tickers with an empty object.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"Global Quote": {}}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL)

	_, err := c.Price(context.Background(), "NOPE")
	assert.ErrorIs(t, err, ErrUnknownSymbol)

	_, err = c.PercentChange(context.Background(), "NOPE")
	assert.ErrorIs(t, err, ErrUnknownSymbol)
}

func TestAlphaVantageServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	c := newTestClient(server.URL)

	_, err := c.Price(context.Background(), "IBM")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnknownSymbol)
}

func TestAlphaVantageContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(time.Second)
	}))
	defer server.Close()

	c := newTestClient(server.URL)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Price(ctx, "IBM")
	assert.Error(t, err)
}
