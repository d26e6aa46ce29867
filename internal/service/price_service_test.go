package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stockpilot/backend/internal/model"
	"github.com/stockpilot/backend/internal/repository"
	"github.com/stockpilot/backend/internal/service"
	"github.com/stockpilot/backend/internal/testutil"
)

func TestGetPrice_FreshCacheSkipsProvider(t *testing.T) {
	db := testutil.SetupTestDB(t)
	quotes := repository.NewQuoteRepository(db)
	client := testutil.NewMockMarketClient()
	svc := service.NewPriceService(quotes, client, time.Second, 15*time.Minute)

	err := quotes.Upsert(context.Background(), model.Quote{
		Symbol: "AAPL", Price: 150, AsOf: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("Failed to seed quote: %v", err)
	}

	price, ok := svc.GetPrice(context.Background(), "AAPL")
	if !ok || price != 150 {
		t.Errorf("Expected cached price 150, got %f (ok=%v)", price, ok)
	}
	if client.Calls() != 0 {
		t.Errorf("Expected no provider calls for fresh cache, got %d", client.Calls())
	}
}

func TestGetPrice_StaleCacheRefreshes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	quotes := repository.NewQuoteRepository(db)
	client := testutil.NewMockMarketClient()
	client.SetPrice("AAPL", 160)
	svc := service.NewPriceService(quotes, client, time.Second, 15*time.Minute)

	err := quotes.Upsert(context.Background(), model.Quote{
		Symbol: "AAPL", Price: 150, AsOf: time.Now().UTC().Add(-time.Hour),
	})
	if err != nil {
		t.Fatalf("Failed to seed quote: %v", err)
	}

	price, ok := svc.GetPrice(context.Background(), "AAPL")
	if !ok || price != 160 {
		t.Errorf("Expected refreshed price 160, got %f (ok=%v)", price, ok)
	}
	if client.Calls() != 1 {
		t.Errorf("Expected one provider call, got %d", client.Calls())
	}

	// The refresh must also update the cache.
	cached, found, err := quotes.Get(context.Background(), "AAPL")
	if err != nil || !found {
		t.Fatalf("Failed to read cache: %v", err)
	}
	if cached.Price != 160 {
		t.Errorf("Expected cache updated to 160, got %f", cached.Price)
	}
}

// TestGetPrice_StaleBeatsNothing: when the provider fails, a stale cached
// quote is still served rather than reporting no price.
func TestGetPrice_StaleBeatsNothing(t *testing.T) {
	db := testutil.SetupTestDB(t)
	quotes := repository.NewQuoteRepository(db)
	client := testutil.NewMockMarketClient()
	client.SetError(errors.New("provider down"))
	svc := service.NewPriceService(quotes, client, time.Second, 15*time.Minute)

	err := quotes.Upsert(context.Background(), model.Quote{
		Symbol: "AAPL", Price: 150, AsOf: time.Now().UTC().Add(-time.Hour),
	})
	if err != nil {
		t.Fatalf("Failed to seed quote: %v", err)
	}

	price, ok := svc.GetPrice(context.Background(), "AAPL")
	if !ok || price != 150 {
		t.Errorf("Expected stale price 150, got %f (ok=%v)", price, ok)
	}
}

func TestGetPrice_NoCacheNoProvider(t *testing.T) {
	db := testutil.SetupTestDB(t)
	client := testutil.NewMockMarketClient()
	client.SetError(errors.New("provider down"))
	svc := service.NewPriceService(repository.NewQuoteRepository(db), client, time.Second, 15*time.Minute)

	if price, ok := svc.GetPrice(context.Background(), "AAPL"); ok {
		t.Errorf("Expected no price, got %f", price)
	}
}

func TestRefresh_UpdatesCache(t *testing.T) {
	db := testutil.SetupTestDB(t)
	quotes := repository.NewQuoteRepository(db)
	client := testutil.NewMockMarketClient()
	client.SetPrice("MSFT", 310.5)
	svc := service.NewPriceService(quotes, client, time.Second, 15*time.Minute)

	if err := svc.Refresh(context.Background(), "MSFT"); err != nil {
		t.Fatalf("Refresh() returned unexpected error: %v", err)
	}

	cached, found, err := quotes.Get(context.Background(), "MSFT")
	if err != nil || !found {
		t.Fatalf("Expected cached quote after refresh: %v", err)
	}
	if cached.Price != 310.5 {
		t.Errorf("Expected cached price 310.5, got %f", cached.Price)
	}
}

func TestRefresh_ProviderFailure(t *testing.T) {
	db := testutil.SetupTestDB(t)
	client := testutil.NewMockMarketClient()
	client.SetError(errors.New("provider down"))
	svc := service.NewPriceService(repository.NewQuoteRepository(db), client, time.Second, 15*time.Minute)

	if err := svc.Refresh(context.Background(), "MSFT"); err == nil {
		t.Error("Expected error when provider fails")
	}
}
