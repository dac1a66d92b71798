// Package assistant orchestrates sessions, the agent, and response shaping
// for the shopping-assistant chat flow.
package assistant

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/nimbleshop/assistant/internal/errs"
	"github.com/nimbleshop/assistant/internal/model/chat"
	"github.com/nimbleshop/assistant/internal/session"
)

const (
	notReadyMsg   = "Sorry, the shopping assistant is not available right now. Please try again later."
	processingMsg = "I apologize, but I encountered an error while processing your request. Please try again or rephrase your question."
)

// Invoker is the opaque agent capability the orchestrator depends on. The
// returned value has no guaranteed shape; Normalize flattens it.
type Invoker interface {
	Invoke(ctx context.Context, history []chat.Message, userMessage string) (any, error)
	ModelInfo() map[string]any
}

// Factory builds the agent during Initialize. Kept as a constructor value so
// initialization failure leaves the assistant in its uninitialized state.
type Factory func(ctx context.Context) (Invoker, error)

// Assistant is the shopping-assistant orchestrator. It starts uninitialized
// and answers with a fixed apology until Initialize succeeds.
type Assistant struct {
	sessions *session.Store
	factory  Factory

	mu          sync.RWMutex
	agent       Invoker
	initialized bool
}

// New creates an uninitialized Assistant over the given session store.
func New(store *session.Store, factory Factory) *Assistant {
	return &Assistant{sessions: store, factory: factory}
}

// Initialize authenticates the model provider and registers the tool set.
// On failure the assistant stays uninitialized and the error is returned for
// logging; it is safe to keep serving requests afterwards.
func (a *Assistant) Initialize(ctx context.Context) error {
	agent, err := a.factory(ctx)
	if err != nil {
		log.Printf("[assistant] initialization failed: %v", err)
		return err
	}

	a.mu.Lock()
	a.agent = agent
	a.initialized = true
	a.mu.Unlock()

	log.Printf("[assistant] initialized successfully")
	return nil
}

// Ready reports whether the assistant can process messages.
func (a *Assistant) Ready() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.initialized
}

// Reply is the outcome of one chat round. Err carries the degraded-failure
// marker; the Response string is always populated.
type Reply struct {
	Response    string   `json:"response"`
	SessionID   string   `json:"session_id,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
	Err         string   `json:"error,omitempty"`
}

// ProcessMessage runs one conversation round: resolve the session, record the
// user turn, invoke the agent, normalize and record the reply, and derive
// follow-up suggestions. Failures never propagate; they degrade to apology
// replies carrying an error marker.
func (a *Assistant) ProcessMessage(ctx context.Context, message, sessionID string) Reply {
	a.mu.RLock()
	agent, ready := a.agent, a.initialized
	a.mu.RUnlock()

	if !ready {
		return Reply{
			Response:  notReadyMsg,
			SessionID: sessionID,
			Err:       string(errs.CodeAgentNotInitialized),
		}
	}

	// An absent, unknown, or expired session id all mean "start fresh".
	var sess chat.Session
	var ok bool
	if sessionID != "" {
		sess, ok = a.sessions.Get(sessionID)
	}
	if !ok {
		sessionID = a.sessions.Create()
		sess, _ = a.sessions.Get(sessionID)
	}

	log.Printf("[assistant] processing message for session %s", sessionID)
	history := sess.History
	a.sessions.AppendMessage(sessionID, chat.RoleUser, message)

	raw, err := agent.Invoke(ctx, history, message)
	if err != nil {
		log.Printf("[assistant] agent error for session %s: %v", sessionID, err)
		return Reply{
			Response:  processingMsg,
			SessionID: sessionID,
			Err:       err.Error(),
		}
	}

	response := Normalize(raw)
	a.sessions.AppendMessage(sessionID, chat.RoleAssistant, response)

	return Reply{
		Response:    response,
		SessionID:   sessionID,
		Suggestions: suggest(message, response),
	}
}

// SessionInfo is the metadata view of a session exposed over HTTP.
type SessionInfo struct {
	SessionID       string         `json:"session_id"`
	CreatedAt       time.Time      `json:"created_at"`
	LastActivity    time.Time      `json:"last_activity"`
	MessageCount    int            `json:"message_count"`
	UserPreferences map[string]any `json:"user_preferences"`
}

// SessionInfo returns metadata for a live session.
func (a *Assistant) SessionInfo(sessionID string) (SessionInfo, bool) {
	sess, ok := a.sessions.Get(sessionID)
	if !ok {
		return SessionInfo{}, false
	}

	return SessionInfo{
		SessionID:       sess.ID,
		CreatedAt:       sess.CreatedAt,
		LastActivity:    sess.LastActivity,
		MessageCount:    len(sess.History),
		UserPreferences: sess.Preferences,
	}, true
}

// Status reports initialization, model, and session counters.
type Status struct {
	Initialized        bool           `json:"initialized"`
	ModelAuthenticated bool           `json:"model_authenticated"`
	ModelInfo          map[string]any `json:"model_info"`
	ActiveSessions     int            `json:"active_sessions"`
	TotalSessions      int            `json:"total_sessions"`
}

// Status returns the current service status.
func (a *Assistant) Status() Status {
	a.mu.RLock()
	agent, ready := a.agent, a.initialized
	a.mu.RUnlock()

	status := Status{
		Initialized:        ready,
		ModelAuthenticated: ready,
		ModelInfo:          map[string]any{},
		ActiveSessions:     a.sessions.ActiveCount(),
		TotalSessions:      a.sessions.TotalCount(),
	}
	if ready {
		status.ModelInfo = agent.ModelInfo()
	}
	return status
}
