// Package system exposes health and status endpoints.
package system

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/nimbleshop/assistant/internal/backend"
	"github.com/nimbleshop/assistant/internal/service/assistant"
	"github.com/nimbleshop/assistant/pkg/utils"
)

const serviceName = "shopping-assistant-chatbot"

// Handler serves health and status routes.
type Handler struct {
	assistant *assistant.Assistant
	backend   *backend.Client
}

// New creates the system handler.
func New(asst *assistant.Assistant, client *backend.Client) *Handler {
	return &Handler{assistant: asst, backend: client}
}

// RegisterRoutes mounts the system routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/health", h.handleHealth)
	r.Get("/status", h.handleStatus)
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := h.assistant.Status()
	backendHealthy := h.backend.HealthCheck(r.Context())

	overall := "degraded"
	if status.Initialized && backendHealthy {
		overall = "healthy"
	} else if !status.Initialized && !backendHealthy {
		overall = "unhealthy"
	}

	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"status":    overall,
		"service":   serviceName,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"details": map[string]any{
			"initialized":         status.Initialized,
			"model_authenticated": status.ModelAuthenticated,
			"model_info":          status.ModelInfo,
			"active_sessions":     status.ActiveSessions,
			"total_sessions":      status.TotalSessions,
			"backend_api_healthy": backendHealthy,
		},
	})
}

func (h *Handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.assistant.Status())
}
