package testutil

import (
	"context"
	"sync"

	"github.com/stockpilot/backend/internal/apperrors"
)

// MockMarketClient is a market.Client serving canned prices.
type MockMarketClient struct {
	mu     sync.Mutex
	prices map[string]float64
	err    error
	calls  int
}

// NewMockMarketClient creates a mock with no prices; lookups fail until
// SetPrice is called.
func NewMockMarketClient() *MockMarketClient {
	return &MockMarketClient{prices: map[string]float64{}}
}

// SetPrice sets the price returned for a symbol.
func (m *MockMarketClient) SetPrice(symbol string, price float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prices[symbol] = price
}

// SetError makes every lookup fail with err.
func (m *MockMarketClient) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Calls returns how many lookups have been made.
func (m *MockMarketClient) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// LatestPrice returns the canned price for the symbol.
func (m *MockMarketClient) LatestPrice(_ context.Context, symbol string) (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++

	if m.err != nil {
		return 0, m.err
	}
	price, ok := m.prices[symbol]
	if !ok {
		return 0, apperrors.ErrPriceUnavailable
	}
	return price, nil
}
