package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/nimbleshop/assistant/internal/backend"
	chatHandler "github.com/nimbleshop/assistant/internal/handler/chat"
	sessionHandler "github.com/nimbleshop/assistant/internal/handler/session"
	systemHandler "github.com/nimbleshop/assistant/internal/handler/system"
	middlewarePkg "github.com/nimbleshop/assistant/internal/middleware"
	"github.com/nimbleshop/assistant/internal/service/assistant"
	sessionStore "github.com/nimbleshop/assistant/internal/session"
)

// NewRouter wires HTTP routes to core services.
func NewRouter(asst *assistant.Assistant, store *sessionStore.Store, backendClient *backend.Client) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	r.Route("/api", func(api chi.Router) {
		chatHandler.New(asst).RegisterRoutes(api)
		sessionHandler.New(asst, store).RegisterRoutes(api)
		systemHandler.New(asst, backendClient).RegisterRoutes(api)
	})

	return r
}
