package handlers

import (
	"net/http"
	"strings"

	"github.com/stockpilot/backend/internal/api/request"
	"github.com/stockpilot/backend/internal/api/response"
	"github.com/stockpilot/backend/internal/service"
)

// SettingHandler serves application setting endpoints.
type SettingHandler struct {
	settings *service.SettingService
}

// NewSettingHandler creates a new SettingHandler.
func NewSettingHandler(settings *service.SettingService) *SettingHandler {
	return &SettingHandler{settings: settings}
}

// UpdateProviderKey stores the market provider API key, encrypted at rest.
// The key itself is never returned by any endpoint.
//
// Endpoint: PUT /api/settings/provider-key
// Response: 204 on success
// Error: 400 when the key is empty
func (h *SettingHandler) UpdateProviderKey(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.UpdateProviderKey](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.APIKey) == "" {
		response.RespondError(w, http.StatusBadRequest, "apiKey is required")
		return
	}

	if err := h.settings.SetProviderAPIKey(r.Context(), req.APIKey); err != nil {
		respondServiceError(w, err)
		return
	}
	response.RespondJSON(w, http.StatusNoContent, nil)
}
