// Package session exposes session inspection and cleanup endpoints.
package session

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nimbleshop/assistant/internal/errs"
	"github.com/nimbleshop/assistant/internal/service/assistant"
	sessionstore "github.com/nimbleshop/assistant/internal/session"
	"github.com/nimbleshop/assistant/pkg/utils"
)

// Handler serves session management routes.
type Handler struct {
	assistant *assistant.Assistant
	store     *sessionstore.Store
}

// New creates the session handler.
func New(asst *assistant.Assistant, store *sessionstore.Store) *Handler {
	return &Handler{assistant: asst, store: store}
}

// RegisterRoutes mounts the session routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/sessions/{sessionID}", h.handleGetSession)
	r.Delete("/sessions/{sessionID}", h.handleDeleteSession)
	r.Post("/sessions/cleanup", h.handleCleanup)
}

func (h *Handler) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	info, ok := h.assistant.SessionInfo(sessionID)
	if !ok {
		utils.RespondError(w, http.StatusNotFound, string(errs.CodeSessionNotFound),
			fmt.Sprintf("Session %s not found or expired", sessionID))
		return
	}

	utils.RespondJSON(w, http.StatusOK, info)
}

func (h *Handler) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	if !h.store.Delete(sessionID) {
		utils.RespondError(w, http.StatusNotFound, string(errs.CodeSessionNotFound),
			fmt.Sprintf("Session %s not found", sessionID))
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Session %s deleted successfully", sessionID),
	})
}

func (h *Handler) handleCleanup(w http.ResponseWriter, r *http.Request) {
	cleaned := h.store.SweepExpired()
	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"message":          fmt.Sprintf("Cleaned up %d expired sessions", cleaned),
		"cleaned_sessions": cleaned,
	})
}
