package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/stockpilot/backend/internal/api/response"
	"github.com/stockpilot/backend/internal/service"
)

// PortfolioHandler serves portfolio projection endpoints.
type PortfolioHandler struct {
	portfolios *service.PortfolioService
	analysis   *service.AnalysisService
}

// NewPortfolioHandler creates a new PortfolioHandler.
func NewPortfolioHandler(portfolios *service.PortfolioService, analysis *service.AnalysisService) *PortfolioHandler {
	return &PortfolioHandler{portfolios: portfolios, analysis: analysis}
}

// Summary values an account's holdings at current prices.
//
// Endpoint: GET /api/account/{uuid}/portfolio/summary
// Response: 200 with the portfolio summary
// Error: 404 when the account does not exist
func (h *PortfolioHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.portfolios.Summary(r.Context(), chi.URLParam(r, "uuid"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	response.RespondJSON(w, http.StatusOK, summary)
}

// Performance extends the summary with best and worst performers.
//
// Endpoint: GET /api/account/{uuid}/portfolio/performance
// Response: 200 with the performance report
// Error: 404 when the account does not exist
func (h *PortfolioHandler) Performance(w http.ResponseWriter, r *http.Request) {
	performance, err := h.portfolios.Performance(r.Context(), chi.URLParam(r, "uuid"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	response.RespondJSON(w, http.StatusOK, performance)
}

// Analysis recomputes one symbol's breakdown from its raw history.
//
// Endpoint: GET /api/account/{uuid}/portfolio/analysis/{symbol}
// Response: 200 with the analysis
// Error: 404 when the account or symbol has no history
func (h *PortfolioHandler) Analysis(w http.ResponseWriter, r *http.Request) {
	analysis, err := h.analysis.Analyze(r.Context(), chi.URLParam(r, "uuid"), chi.URLParam(r, "symbol"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	response.RespondJSON(w, http.StatusOK, analysis)
}
