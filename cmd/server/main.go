package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/stockpilot/backend/internal/api"
	"github.com/stockpilot/backend/internal/config"
	"github.com/stockpilot/backend/internal/database"
	"github.com/stockpilot/backend/internal/jobs"
	"github.com/stockpilot/backend/internal/market"
	"github.com/stockpilot/backend/internal/repository"
	"github.com/stockpilot/backend/internal/secrets"
	"github.com/stockpilot/backend/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	accountRepo := repository.NewAccountRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	positionRepo := repository.NewPositionRepository(db)
	quoteRepo := repository.NewQuoteRepository(db)
	settingRepo := repository.NewSettingRepository(db)

	var keeper *secrets.Keeper
	if cfg.Secrets.FernetKey != "" {
		if keeper, err = secrets.NewKeeper(cfg.Secrets.FernetKey); err != nil {
			log.Fatalf("Failed to initialize secret encryption: %v", err)
		}
	} else {
		log.Println("FERNET_KEY not set, sensitive settings cannot be stored")
	}
	settingService := service.NewSettingService(settingRepo, keeper)

	marketClient := newMarketClient(cfg, settingService)
	priceService := service.NewPriceService(quoteRepo, marketClient, cfg.Market.PriceTimeout, cfg.Market.QuoteStaleAfter)

	services := api.Services{
		System:       service.NewSystemService(db),
		Accounts:     service.NewAccountService(accountRepo),
		Transactions: service.NewTransactionService(db, accountRepo, transactionRepo, positionRepo),
		Portfolios:   service.NewPortfolioService(accountRepo, transactionRepo, positionRepo, priceService),
		Analysis:     service.NewAnalysisService(accountRepo, transactionRepo),
		Settings:     settingService,
	}

	scheduler, err := jobs.NewScheduler(positionRepo, priceService, cfg.Market.RefreshSchedule)
	if err != nil {
		log.Fatalf("Failed to set up quote refresh schedule: %v", err)
	}
	scheduler.Start()

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      api.NewRouter(services, cfg.CORS.AllowedOrigins),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server listening on %s", cfg.Server.Addr())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	scheduler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}

// newMarketClient picks the quote provider. Alpha Vantage needs an API key
// from the settings store; without one the public Yahoo endpoint serves.
func newMarketClient(cfg *config.Config, settings *service.SettingService) market.Client {
	if cfg.Market.Provider == "alphavantage" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		apiKey, ok, err := settings.ProviderAPIKey(ctx)
		if err != nil {
			log.Printf("Failed to load provider API key: %v", err)
		}
		if ok {
			return market.NewAlphaVantageClient(apiKey)
		}
		log.Println("No provider API key stored, falling back to Yahoo Finance")
	}
	return market.NewFinanceClient()
}
