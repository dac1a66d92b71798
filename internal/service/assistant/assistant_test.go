package assistant

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nimbleshop/assistant/internal/model/chat"
	"github.com/nimbleshop/assistant/internal/session"
)

// stubAgent returns canned values and records what it was invoked with.
type stubAgent struct {
	reply   any
	err     error
	invoked int
	lastMsg string
	history []chat.Message
}

func (s *stubAgent) Invoke(_ context.Context, history []chat.Message, userMessage string) (any, error) {
	s.invoked++
	s.lastMsg = userMessage
	s.history = history
	if s.err != nil {
		return nil, s.err
	}
	return s.reply, nil
}

func (s *stubAgent) ModelInfo() map[string]any {
	return map[string]any{"model": "stub-model"}
}

func newReadyAssistant(t *testing.T, agent *stubAgent) (*Assistant, *session.Store) {
	t.Helper()
	store := session.NewStore(time.Hour)
	asst := New(store, func(context.Context) (Invoker, error) { return agent, nil })
	require.NoError(t, asst.Initialize(context.Background()))
	return asst, store
}

func TestProcessMessageUninitialized(t *testing.T) {
	store := session.NewStore(time.Hour)
	asst := New(store, func(context.Context) (Invoker, error) {
		return nil, errors.New("no credentials")
	})
	require.Error(t, asst.Initialize(context.Background()))
	assert.False(t, asst.Ready())

	reply := asst.ProcessMessage(context.Background(), "Hello", "")

	assert.NotEmpty(t, reply.Err)
	assert.Equal(t, notReadyMsg, reply.Response)
	// The short-circuit must never touch the session store.
	assert.Equal(t, 0, store.TotalCount())
}

func TestProcessMessageCreatesSession(t *testing.T) {
	agent := &stubAgent{reply: "Welcome"}
	asst, store := newReadyAssistant(t, agent)

	reply := asst.ProcessMessage(context.Background(), "Hello", "")

	assert.Equal(t, "Welcome", reply.Response)
	assert.NotEmpty(t, reply.SessionID)
	assert.Empty(t, reply.Err)
	assert.LessOrEqual(t, len(reply.Suggestions), 3)
	assert.Equal(t, 1, store.TotalCount())
}

func TestProcessMessageAppendsBothTurns(t *testing.T) {
	agent := &stubAgent{reply: "Welcome"}
	asst, store := newReadyAssistant(t, agent)

	first := asst.ProcessMessage(context.Background(), "Hello", "")
	info, ok := asst.SessionInfo(first.SessionID)
	require.True(t, ok)
	assert.Equal(t, 2, info.MessageCount)

	second := asst.ProcessMessage(context.Background(), "Show me laptops", first.SessionID)
	assert.Equal(t, first.SessionID, second.SessionID)

	info, ok = asst.SessionInfo(first.SessionID)
	require.True(t, ok)
	assert.Equal(t, 4, info.MessageCount)

	history := store.History(first.SessionID, 0)
	require.Len(t, history, 4)
	assert.Equal(t, chat.RoleUser, history[0].Role)
	assert.Equal(t, "Hello", history[0].Content)
	assert.Equal(t, chat.RoleAssistant, history[1].Role)
	assert.Equal(t, chat.RoleUser, history[2].Role)
	assert.Equal(t, "Show me laptops", history[2].Content)
}

func TestProcessMessageUnknownSessionIDStartsFresh(t *testing.T) {
	agent := &stubAgent{reply: "Welcome"}
	asst, _ := newReadyAssistant(t, agent)

	reply := asst.ProcessMessage(context.Background(), "Hello", "never-issued")

	assert.NotEqual(t, "never-issued", reply.SessionID)
	assert.NotEmpty(t, reply.SessionID)
}

func TestProcessMessageFeedsPriorHistoryToAgent(t *testing.T) {
	agent := &stubAgent{reply: "ok"}
	asst, _ := newReadyAssistant(t, agent)

	first := asst.ProcessMessage(context.Background(), "Hello", "")
	asst.ProcessMessage(context.Background(), "Next question", first.SessionID)

	// Second round sees the first user+assistant pair, not its own turn.
	require.Len(t, agent.history, 2)
	assert.Equal(t, "Hello", agent.history[0].Content)
	assert.Equal(t, "ok", agent.history[1].Content)
	assert.Equal(t, "Next question", agent.lastMsg)
}

func TestProcessMessageAgentFailureDegrades(t *testing.T) {
	agent := &stubAgent{err: errors.New("model exploded")}
	asst, _ := newReadyAssistant(t, agent)

	reply := asst.ProcessMessage(context.Background(), "Hello", "")

	assert.Equal(t, processingMsg, reply.Response)
	assert.NotEmpty(t, reply.SessionID)
	assert.Contains(t, reply.Err, "model exploded")
}

func TestProcessMessageNormalizesMapReply(t *testing.T) {
	agent := &stubAgent{reply: map[string]any{
		"message": map[string]any{"content": []any{map[string]any{"text": "normalized"}}},
	}}
	asst, _ := newReadyAssistant(t, agent)

	reply := asst.ProcessMessage(context.Background(), "Hello", "")
	assert.Equal(t, "normalized", reply.Response)
}

func TestSuggestionHeuristics(t *testing.T) {
	tests := []struct {
		name     string
		message  string
		response string
		want     []string
	}{
		{
			name:    "search keywords",
			message: "please search for shoes",
			want:    []string{"Show me all products", "What's in the Electronics category?", "Compare two products"},
		},
		{
			name:    "cart keywords",
			message: "add this to my cart",
			want:    []string{"Show my cart summary", "What's my cart total?", "Continue shopping"},
		},
		{
			name:     "product id in response",
			message:  "tell me more",
			response: "This product has ID 3",
			want:     []string{"Add this to my cart", "Tell me more about this product", "Show me similar products"},
		},
		{
			name:    "generic fallback truncated to three",
			message: "hello there",
			want:    []string{"Search for products", "Browse categories", "Check my cart"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := suggest(tt.message, tt.response)
			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, len(got), 3)
		})
	}
}

func TestStatusCounters(t *testing.T) {
	agent := &stubAgent{reply: "ok"}
	asst, _ := newReadyAssistant(t, agent)

	asst.ProcessMessage(context.Background(), "Hello", "")

	status := asst.Status()
	assert.True(t, status.Initialized)
	assert.True(t, status.ModelAuthenticated)
	assert.Equal(t, "stub-model", status.ModelInfo["model"])
	assert.Equal(t, 1, status.ActiveSessions)
	assert.Equal(t, 1, status.TotalSessions)
}

func TestSessionInfoMissing(t *testing.T) {
	agent := &stubAgent{reply: "ok"}
	asst, _ := newReadyAssistant(t, agent)

	_, ok := asst.SessionInfo("missing")
	assert.False(t, ok)
}
