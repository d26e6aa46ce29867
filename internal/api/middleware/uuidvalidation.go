package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/stockpilot/backend/internal/api/response"
	"github.com/stockpilot/backend/internal/validation"
)

// ValidateUUID rejects requests whose "uuid" URL parameter is not a
// well-formed UUID before they reach a handler.
func ValidateUUID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "uuid")
		if err := validation.ValidateUUID(id); err != nil {
			response.RespondError(w, http.StatusBadRequest, "invalid UUID format")
			return
		}
		next.ServeHTTP(w, r)
	})
}
