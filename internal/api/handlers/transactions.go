package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/stockpilot/backend/internal/api/request"
	"github.com/stockpilot/backend/internal/api/response"
	"github.com/stockpilot/backend/internal/service"
)

// TransactionHandler serves transaction endpoints.
type TransactionHandler struct {
	transactions *service.TransactionService
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactions *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{transactions: transactions}
}

// Create records a buy or sell for an account.
//
// Endpoint: POST /api/account/{uuid}/transaction
// Response: 201 with the recorded transaction
// Error: 400 on validation failure or insufficient holdings, 404 when the
// account does not exist
func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateTransaction](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	t, err := h.transactions.CreateTransaction(r.Context(), chi.URLParam(r, "uuid"), req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	response.RespondJSON(w, http.StatusCreated, t)
}

// List retrieves an account's transactions, newest first.
//
// Endpoint: GET /api/account/{uuid}/transaction
// Response: 200 with the transaction list
// Error: 404 when the account does not exist
func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	transactions, err := h.transactions.ListTransactions(r.Context(), chi.URLParam(r, "uuid"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	response.RespondJSON(w, http.StatusOK, transactions)
}

// Summary aggregates an account's full trade history.
//
// Endpoint: GET /api/account/{uuid}/transaction/summary
// Response: 200 with the summary
// Error: 404 when the account does not exist
func (h *TransactionHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.transactions.Summary(r.Context(), chi.URLParam(r, "uuid"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	response.RespondJSON(w, http.StatusOK, summary)
}

// Delete removes a transaction and rebuilds the affected position.
//
// Endpoint: DELETE /api/transaction/{uuid}
// Response: 204 on success
// Error: 404 when the transaction does not exist
func (h *TransactionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.transactions.DeleteTransaction(r.Context(), chi.URLParam(r, "uuid")); err != nil {
		respondServiceError(w, err)
		return
	}
	response.RespondJSON(w, http.StatusNoContent, nil)
}
