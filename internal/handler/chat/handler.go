// Package chat exposes the conversational endpoint.
package chat

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/nimbleshop/assistant/internal/errs"
	"github.com/nimbleshop/assistant/internal/service/assistant"
	"github.com/nimbleshop/assistant/pkg/utils"
)

// Handler serves the chat endpoint.
type Handler struct {
	assistant *assistant.Assistant
}

// New creates the chat handler.
func New(asst *assistant.Assistant) *Handler {
	return &Handler{assistant: asst}
}

// RegisterRoutes mounts the chat routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/chat", h.handleChat)
}

func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Message   string `json:"message"`
		SessionID string `json:"session_id"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, string(errs.CodeInvalidInput), "invalid request body")
		return
	}

	if strings.TrimSpace(payload.Message) == "" {
		utils.RespondError(w, http.StatusBadRequest, string(errs.CodeInvalidInput), "message is required")
		return
	}

	if !h.assistant.Ready() {
		retryAfter, _ := errs.RetryAfter(errs.CodeAgentNotInitialized)
		utils.RespondRetryableError(w, http.StatusServiceUnavailable,
			string(errs.CodeAgentNotInitialized), errs.UserMessage(errs.CodeAgentNotInitialized), retryAfter)
		return
	}

	reply := h.assistant.ProcessMessage(r.Context(), payload.Message, payload.SessionID)
	utils.RespondJSON(w, http.StatusOK, reply)
}
