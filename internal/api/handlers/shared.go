// Package handlers contains the HTTP handlers for the API. Handlers are thin
// adapters: decode, delegate to a service, map errors to status codes.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/stockpilot/backend/internal/api/response"
	"github.com/stockpilot/backend/internal/apperrors"
	"github.com/stockpilot/backend/internal/validation"
)

// parseJSON decodes a request body into T, rejecting unknown fields.
func parseJSON[T any](r *http.Request) (T, error) {
	var v T
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&v); err != nil {
		return v, err
	}
	return v, nil
}

// respondServiceError maps a service error to an HTTP response.
func respondServiceError(w http.ResponseWriter, err error) {
	var verr *validation.Error
	if errors.As(err, &verr) {
		response.RespondErrorWithDetails(w, http.StatusBadRequest, "validation failed", verr.Fields)
		return
	}

	var ihe *apperrors.InsufficientHoldingsError
	if errors.As(err, &ihe) {
		response.RespondErrorWithDetails(w, http.StatusBadRequest, ihe.Error(), map[string]any{
			"symbol":      ihe.Symbol,
			"requested":   ihe.Requested,
			"maxSellable": ihe.Available,
		})
		return
	}

	switch {
	case errors.Is(err, apperrors.ErrAccountNotFound),
		errors.Is(err, apperrors.ErrTransactionNotFound),
		errors.Is(err, apperrors.ErrPositionNotFound):
		response.RespondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, apperrors.ErrInvalidQuantity),
		errors.Is(err, apperrors.ErrInvalidPrice),
		errors.Is(err, apperrors.ErrInvalidTransactionType),
		errors.Is(err, apperrors.ErrInvalidUUID):
		response.RespondError(w, http.StatusBadRequest, err.Error())
	default:
		response.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}
