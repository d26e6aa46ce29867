package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/stockpilot/backend/internal/api/request"
	"github.com/stockpilot/backend/internal/api/response"
	"github.com/stockpilot/backend/internal/service"
)

// AccountHandler serves account endpoints.
type AccountHandler struct {
	accounts *service.AccountService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accounts *service.AccountService) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

// Create creates a new account.
//
// Endpoint: POST /api/account
// Response: 201 with the created account
// Error: 400 on validation failure
func (h *AccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateAccount](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	account, err := h.accounts.CreateAccount(r.Context(), req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	response.RespondJSON(w, http.StatusCreated, account)
}

// List retrieves all accounts.
//
// Endpoint: GET /api/account
// Response: 200 with the account list
func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.accounts.ListAccounts(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	response.RespondJSON(w, http.StatusOK, accounts)
}

// Get retrieves one account.
//
// Endpoint: GET /api/account/{uuid}
// Response: 200 with the account
// Error: 404 when the account does not exist
func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	account, err := h.accounts.GetAccount(r.Context(), chi.URLParam(r, "uuid"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	response.RespondJSON(w, http.StatusOK, account)
}
