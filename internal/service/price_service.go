package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/stockpilot/backend/internal/market"
	"github.com/stockpilot/backend/internal/model"
	"github.com/stockpilot/backend/internal/repository"
)

// PriceService serves reference prices from the quote cache, refreshing from
// the market provider when the cached value is stale. Concurrent requests for
// the same symbol share a single provider call.
type PriceService struct {
	quotes     *repository.QuoteRepository
	client     market.Client
	timeout    time.Duration
	staleAfter time.Duration

	group singleflight.Group
}

// NewPriceService creates a new PriceService.
func NewPriceService(quotes *repository.QuoteRepository, client market.Client, timeout, staleAfter time.Duration) *PriceService {
	return &PriceService{
		quotes:     quotes,
		client:     client,
		timeout:    timeout,
		staleAfter: staleAfter,
	}
}

// GetPrice returns a reference price for the symbol and whether one was
// available. A fresh cached quote is returned directly; otherwise the provider
// is queried under a bounded timeout. When the provider fails, a stale cached
// quote still wins over no price at all. Provider failures are never surfaced
// as errors; callers fall back on the position's average purchase price.
func (s *PriceService) GetPrice(ctx context.Context, symbol string) (float64, bool) {
	cached, ok, err := s.quotes.Get(ctx, symbol)
	if err != nil {
		log.Printf("Quote cache lookup failed for %s: %v", symbol, err)
		ok = false
	}
	if ok && time.Since(cached.AsOf) < s.staleAfter {
		return cached.Price, true
	}

	price, err := s.fetch(ctx, symbol)
	if err != nil {
		log.Printf("Price fetch failed for %s: %v", symbol, err)
		if ok {
			return cached.Price, true
		}
		return 0, false
	}
	return price, true
}

// Refresh fetches the latest price for the symbol and updates the cache. Used
// by the scheduled quote refresh job.
func (s *PriceService) Refresh(ctx context.Context, symbol string) error {
	if _, err := s.fetch(ctx, symbol); err != nil {
		return fmt.Errorf("refreshing quote for %s: %w", symbol, err)
	}
	return nil
}

func (s *PriceService) fetch(ctx context.Context, symbol string) (float64, error) {
	v, err, _ := s.group.Do(symbol, func() (any, error) {
		fetchCtx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()

		price, err := s.client.LatestPrice(fetchCtx, symbol)
		if err != nil {
			return nil, err
		}

		quote := model.Quote{Symbol: symbol, Price: price, AsOf: time.Now().UTC()}
		if err := s.quotes.Upsert(ctx, quote); err != nil {
			log.Printf("Quote cache update failed for %s: %v", symbol, err)
		}
		return price, nil
	})
	if err != nil {
		return 0, err
	}
	return v.(float64), nil
}
