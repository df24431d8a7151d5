package quote

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultURL is the Alpha Vantage API endpoint.
const DefaultURL = "https://www.alphavantage.co"

// AlphaVantage fetches quotes from the Alpha Vantage GLOBAL_QUOTE
// endpoint.
type AlphaVantage struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewAlphaVantage creates a client with the given API key and request
// timeout.
func NewAlphaVantage(apiKey string, timeout time.Duration) *AlphaVantage {
	return &AlphaVantage{
		baseURL: DefaultURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// globalQuote is the subset of the GLOBAL_QUOTE payload the game uses.
// Alpha Vantage names fields with numeric prefixes.
type globalQuote struct {
	Price         string `json:"05. price"`
	ChangePercent string `json:"10. change percent"`
}

type globalQuoteResponse struct {
	Quote globalQuote `json:"Global Quote"`
}

func (c *AlphaVantage) Price(ctx context.Context, symbol string) (decimal.Decimal, error) {
	gq, err := c.fetch(ctx, symbol)
	if err != nil {
		return decimal.Zero, err
	}

	price, err := decimal.NewFromString(gq.Price)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse price %q: %w", gq.Price, err)
	}
	return price, nil
}

func (c *AlphaVantage) PercentChange(ctx context.Context, symbol string) (decimal.Decimal, error) {
	gq, err := c.fetch(ctx, symbol)
	if err != nil {
		return decimal.Zero, err
	}

	// The API formats the field as e.g. "1.2345%".
	raw := strings.TrimSuffix(gq.ChangePercent, "%")
	change, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse percent change %q: %w", gq.ChangePercent, err)
	}
	return change, nil
}

// fetch retrieves the GLOBAL_QUOTE payload for symbol. An unknown
// ticker comes back from the API as an empty "Global Quote" object,
// which maps to ErrUnknownSymbol.
func (c *AlphaVantage) fetch(ctx context.Context, symbol string) (globalQuote, error) {
	params := url.Values{}
	params.Set("function", "GLOBAL_QUOTE")
	params.Set("symbol", symbol)
	params.Set("apikey", c.apiKey)

	apiURL := fmt.Sprintf("%s/query?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, "GET", apiURL, nil)
	if err != nil {
		return globalQuote{}, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return globalQuote{}, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return globalQuote{}, fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}

	var apiResp globalQuoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return globalQuote{}, fmt.Errorf("decode response: %w", err)
	}

	if apiResp.Quote.Price == "" {
		return globalQuote{}, ErrUnknownSymbol
	}
	return apiResp.Quote, nil
}

var _ Source = (*AlphaVantage)(nil)
