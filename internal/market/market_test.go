package market_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stockpilot/backend/internal/market"
)

func TestFinanceClient_LatestPrice(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v8/finance/chart/AAPL" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"chart":{"result":[{"meta":{"symbol":"AAPL","currency":"USD","regularMarketPrice":189.84}}],"error":null}}`)) //nolint:errcheck
	}))
	defer server.Close()

	client := market.NewFinanceClientWithBaseURL(server.URL)
	price, err := client.LatestPrice(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("LatestPrice() returned unexpected error: %v", err)
	}
	if price != 189.84 {
		t.Errorf("Expected price 189.84, got %f", price)
	}
}

func TestFinanceClient_FallsBackToLastClose(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"chart":{"result":[{"meta":{"regularMarketPrice":0},"indicators":{"quote":[{"close":[101.5,null,102.25]}]}}],"error":null}}`)) //nolint:errcheck
	}))
	defer server.Close()

	client := market.NewFinanceClientWithBaseURL(server.URL)
	price, err := client.LatestPrice(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("LatestPrice() returned unexpected error: %v", err)
	}
	if price != 102.25 {
		t.Errorf("Expected last close 102.25, got %f", price)
	}
}

func TestFinanceClient_ProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found, symbol may be delisted"}}}`)) //nolint:errcheck
	}))
	defer server.Close()

	client := market.NewFinanceClientWithBaseURL(server.URL)
	if _, err := client.LatestPrice(context.Background(), "NOPE"); err == nil {
		t.Error("Expected error for provider error payload")
	}
}

func TestFinanceClient_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := market.NewFinanceClientWithBaseURL(server.URL)
	if _, err := client.LatestPrice(context.Background(), "AAPL"); err == nil {
		t.Error("Expected error for non-200 status")
	}
}

func TestAlphaVantageClient_LatestPrice(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("symbol"); got != "MSFT" {
			t.Errorf("Unexpected symbol %q", got)
		}
		if got := r.URL.Query().Get("apikey"); got != "test-key" {
			t.Errorf("Unexpected API key %q", got)
		}
		w.Write([]byte(`{"Global Quote":{"01. symbol":"MSFT","05. price":"415.2600"}}`)) //nolint:errcheck
	}))
	defer server.Close()

	client := market.NewAlphaVantageClientWithBaseURL(server.URL, "test-key")
	price, err := client.LatestPrice(context.Background(), "MSFT")
	if err != nil {
		t.Fatalf("LatestPrice() returned unexpected error: %v", err)
	}
	if price != 415.26 {
		t.Errorf("Expected price 415.26, got %f", price)
	}
}

func TestAlphaVantageClient_RateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Note":"Thank you for using Alpha Vantage! Our standard API rate limit is 25 requests per day."}`)) //nolint:errcheck
	}))
	defer server.Close()

	client := market.NewAlphaVantageClientWithBaseURL(server.URL, "test-key")
	if _, err := client.LatestPrice(context.Background(), "MSFT"); err == nil {
		t.Error("Expected error for rate-limited response")
	}
}

func TestAlphaVantageClient_EmptyQuote(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Global Quote":{}}`)) //nolint:errcheck
	}))
	defer server.Close()

	client := market.NewAlphaVantageClientWithBaseURL(server.URL, "test-key")
	if _, err := client.LatestPrice(context.Background(), "NOPE"); err == nil {
		t.Error("Expected error for empty quote")
	}
}
