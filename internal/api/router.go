// Package api assembles the HTTP router.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/stockpilot/backend/internal/api/handlers"
	"github.com/stockpilot/backend/internal/api/middleware"
	"github.com/stockpilot/backend/internal/service"
)

// Services bundles everything the router needs.
type Services struct {
	System       *service.SystemService
	Accounts     *service.AccountService
	Transactions *service.TransactionService
	Portfolios   *service.PortfolioService
	Analysis     *service.AnalysisService
	Settings     *service.SettingService
}

// NewRouter builds the application router with all middleware and routes.
func NewRouter(svc Services, allowedOrigins []string) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS(allowedOrigins))

	systemHandler := handlers.NewSystemHandler(svc.System)
	accountHandler := handlers.NewAccountHandler(svc.Accounts)
	transactionHandler := handlers.NewTransactionHandler(svc.Transactions)
	portfolioHandler := handlers.NewPortfolioHandler(svc.Portfolios, svc.Analysis)
	settingHandler := handlers.NewSettingHandler(svc.Settings)

	r.Route("/api", func(r chi.Router) {
		r.Route("/system", func(r chi.Router) {
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Route("/account", func(r chi.Router) {
			r.Post("/", accountHandler.Create)
			r.Get("/", accountHandler.List)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(middleware.ValidateUUID)
				r.Get("/", accountHandler.Get)

				r.Route("/transaction", func(r chi.Router) {
					r.Post("/", transactionHandler.Create)
					r.Get("/", transactionHandler.List)
					r.Get("/summary", transactionHandler.Summary)
				})

				r.Route("/portfolio", func(r chi.Router) {
					r.Get("/summary", portfolioHandler.Summary)
					r.Get("/performance", portfolioHandler.Performance)
					r.Get("/analysis/{symbol}", portfolioHandler.Analysis)
				})
			})
		})

		r.Route("/transaction/{uuid}", func(r chi.Router) {
			r.Use(middleware.ValidateUUID)
			r.Delete("/", transactionHandler.Delete)
		})

		r.Route("/settings", func(r chi.Router) {
			r.Put("/provider-key", settingHandler.UpdateProviderKey)
		})
	})

	return r
}
