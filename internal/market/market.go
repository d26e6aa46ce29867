// Package market fetches live reference prices from external quote providers.
package market

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/stockpilot/backend/internal/apperrors"
)

// Client retrieves the latest market price for a symbol.
type Client interface {
	LatestPrice(ctx context.Context, symbol string) (float64, error)
}

const yahooBaseURL = "https://query1.finance.yahoo.com"

// FinanceClient fetches prices from the Yahoo Finance chart endpoint. No API
// key is required.
type FinanceClient struct {
	httpClient *http.Client
	baseURL    string
}

// NewFinanceClient creates a FinanceClient against the public Yahoo endpoint.
func NewFinanceClient() *FinanceClient {
	return &FinanceClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    yahooBaseURL,
	}
}

// NewFinanceClientWithBaseURL creates a FinanceClient against a custom
// endpoint, used by tests.
func NewFinanceClientWithBaseURL(baseURL string) *FinanceClient {
	return &FinanceClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    baseURL,
	}
}

// LatestPrice returns the regular market price for the symbol, falling back to
// the most recent non-zero close when the meta price is absent.
func (c *FinanceClient) LatestPrice(ctx context.Context, symbol string) (float64, error) {
	endpoint := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&range=1d", c.baseURL, url.PathEscape(symbol))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, fmt.Errorf("building quote request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("fetching quote for %s: %w", symbol, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("fetching quote for %s: unexpected status %d", symbol, resp.StatusCode)
	}

	var chart chartResponse
	if err := json.NewDecoder(resp.Body).Decode(&chart); err != nil {
		return 0, fmt.Errorf("decoding quote for %s: %w", symbol, err)
	}

	if chart.Chart.Error != nil {
		return 0, fmt.Errorf("fetching quote for %s: %s", symbol, chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 {
		return 0, fmt.Errorf("fetching quote for %s: %w", symbol, apperrors.ErrPriceUnavailable)
	}

	result := chart.Chart.Result[0]
	if result.Meta.RegularMarketPrice > 0 {
		return result.Meta.RegularMarketPrice, nil
	}

	// Meta price can be zero outside trading hours; use the last close.
	if len(result.Indicators.Quote) > 0 {
		closes := result.Indicators.Quote[0].Close
		for i := len(closes) - 1; i >= 0; i-- {
			if closes[i] != nil && *closes[i] > 0 {
				return *closes[i], nil
			}
		}
	}
	return 0, fmt.Errorf("fetching quote for %s: %w", symbol, apperrors.ErrPriceUnavailable)
}

const alphaVantageBaseURL = "https://www.alphavantage.co"

// AlphaVantageClient fetches prices from the Alpha Vantage GLOBAL_QUOTE
// endpoint. Requires an API key; the free tier is rate limited.
type AlphaVantageClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// NewAlphaVantageClient creates an AlphaVantageClient with the given API key.
func NewAlphaVantageClient(apiKey string) *AlphaVantageClient {
	return &AlphaVantageClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    alphaVantageBaseURL,
		apiKey:     apiKey,
	}
}

// NewAlphaVantageClientWithBaseURL creates an AlphaVantageClient against a
// custom endpoint, used by tests.
func NewAlphaVantageClientWithBaseURL(baseURL, apiKey string) *AlphaVantageClient {
	return &AlphaVantageClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    baseURL,
		apiKey:     apiKey,
	}
}

// LatestPrice returns the GLOBAL_QUOTE price for the symbol.
func (c *AlphaVantageClient) LatestPrice(ctx context.Context, symbol string) (float64, error) {
	endpoint := fmt.Sprintf("%s/query?function=GLOBAL_QUOTE&symbol=%s&apikey=%s",
		c.baseURL, url.QueryEscape(symbol), url.QueryEscape(c.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, fmt.Errorf("building quote request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("fetching quote for %s: %w", symbol, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("fetching quote for %s: unexpected status %d", symbol, resp.StatusCode)
	}

	var payload map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return 0, fmt.Errorf("decoding quote for %s: %w", symbol, err)
	}

	// Rate-limited responses come back 200 with a Note or Information field.
	if _, ok := payload["Note"]; ok {
		return 0, fmt.Errorf("fetching quote for %s: provider rate limit reached", symbol)
	}
	if _, ok := payload["Information"]; ok {
		return 0, fmt.Errorf("fetching quote for %s: provider rate limit reached", symbol)
	}

	quote, ok := payload["Global Quote"].(map[string]any)
	if !ok || len(quote) == 0 {
		return 0, fmt.Errorf("fetching quote for %s: %w", symbol, apperrors.ErrPriceUnavailable)
	}
	raw, ok := quote["05. price"].(string)
	if !ok {
		return 0, fmt.Errorf("fetching quote for %s: %w", symbol, apperrors.ErrPriceUnavailable)
	}

	price, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing quote for %s: %w", symbol, err)
	}
	if price <= 0 {
		return 0, fmt.Errorf("fetching quote for %s: %w", symbol, apperrors.ErrPriceUnavailable)
	}
	return price, nil
}
