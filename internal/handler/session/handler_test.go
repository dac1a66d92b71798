package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/nimbleshop/assistant/internal/service/assistant"
	"github.com/nimbleshop/assistant/internal/session"
)

func setup(t *testing.T) (*chi.Mux, *session.Store) {
	t.Helper()
	store := session.NewStore(time.Hour)
	asst := assistant.New(store, func(context.Context) (assistant.Invoker, error) {
		return nil, nil
	})

	r := chi.NewRouter()
	New(asst, store).RegisterRoutes(r)
	return r, store
}

func TestGetSession(t *testing.T) {
	r, store := setup(t)
	id := store.Create()
	store.AppendMessage(id, "user", "hello")

	req := httptest.NewRequest(http.MethodGet, "/sessions/"+id, nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var info assistant.SessionInfo
	if err := json.Unmarshal(resp.Body.Bytes(), &info); err != nil {
		t.Fatalf("decode info: %v", err)
	}
	if info.SessionID != id {
		t.Fatalf("expected session id %s, got %s", id, info.SessionID)
	}
	if info.MessageCount != 1 {
		t.Fatalf("expected 1 message, got %d", info.MessageCount)
	}
}

func TestGetSessionNotFound(t *testing.T) {
	r, _ := setup(t)

	req := httptest.NewRequest(http.MethodGet, "/sessions/missing", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}

	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if body.Error.Code != "session_not_found" {
		t.Fatalf("unexpected error code %q", body.Error.Code)
	}
}

func TestDeleteSession(t *testing.T) {
	r, store := setup(t)
	id := store.Create()

	req := httptest.NewRequest(http.MethodDelete, "/sessions/"+id, nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if _, ok := store.Get(id); ok {
		t.Fatal("session should be gone after delete")
	}
}

func TestDeleteSessionNotFound(t *testing.T) {
	r, _ := setup(t)

	req := httptest.NewRequest(http.MethodDelete, "/sessions/missing", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestCleanup(t *testing.T) {
	r, store := setup(t)
	store.Create()

	req := httptest.NewRequest(http.MethodPost, "/sessions/cleanup", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var body struct {
		CleanedSessions int `json:"cleaned_sessions"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.CleanedSessions != 0 {
		t.Fatalf("expected 0 cleaned sessions, got %d", body.CleanedSessions)
	}
}
