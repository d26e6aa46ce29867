package handlers

import (
	"net/http"

	"github.com/stockpilot/backend/internal/api/response"
	"github.com/stockpilot/backend/internal/service"
)

// SystemHandler serves health and version endpoints.
type SystemHandler struct {
	system *service.SystemService
}

// NewSystemHandler creates a new SystemHandler.
func NewSystemHandler(system *service.SystemService) *SystemHandler {
	return &SystemHandler{system: system}
}

// Health reports whether the application and its dependencies are healthy.
//
// Endpoint: GET /api/system/health
// Response: 200 {"status": "healthy"}
// Error: 503 when a dependency is unreachable
func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.system.CheckHealth(r.Context()); err != nil {
		response.RespondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unhealthy"})
		return
	}
	response.RespondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// Version reports the running application version.
//
// Endpoint: GET /api/system/version
// Response: 200 {"version": "..."}
func (h *SystemHandler) Version(w http.ResponseWriter, r *http.Request) {
	response.RespondJSON(w, http.StatusOK, map[string]string{"version": h.system.GetVersion()})
}
