// Package session provides the in-memory conversation store with sliding expiry.
package session

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nimbleshop/assistant/internal/model/chat"
)

// Store owns the session map. All access goes through its methods; sessions
// are handed out as copies so callers never alias store-internal state.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*chat.Session
	timeout  time.Duration

	now func() time.Time // overridable in tests
}

// NewStore creates a store whose sessions expire after the given idle timeout.
func NewStore(timeout time.Duration) *Store {
	log.Printf("[session] store initialized with %s timeout", timeout)
	return &Store{
		sessions: make(map[string]*chat.Session),
		timeout:  timeout,
		now:      time.Now,
	}
}

// Create allocates a fresh session with empty history and preferences.
func (s *Store) Create() string {
	id := uuid.NewString()
	now := s.now()

	s.mu.Lock()
	s.sessions[id] = &chat.Session{
		ID:           id,
		CreatedAt:    now,
		LastActivity: now,
		History:      make([]chat.Message, 0, 16),
		Preferences:  make(map[string]any),
	}
	s.mu.Unlock()

	log.Printf("[session] created session %s", id)
	return id
}

// Get returns a snapshot of the session and refreshes its activity timestamp.
// An expired session is removed and reported as missing; every successful read
// extends the session's life.
func (s *Store) Get(id string) (chat.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return chat.Session{}, false
	}

	if s.expiredLocked(sess) {
		log.Printf("[session] session expired: %s", id)
		delete(s.sessions, id)
		return chat.Session{}, false
	}

	sess.LastActivity = s.now()
	return snapshot(sess), true
}

// AppendMessage appends a turn to the session history, refreshing activity.
// It reports false when the session is missing or expired.
func (s *Store) AppendMessage(id, role, content string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return false
	}
	if s.expiredLocked(sess) {
		delete(s.sessions, id)
		return false
	}

	now := s.now()
	sess.History = append(sess.History, chat.Message{Role: role, Content: content, Timestamp: now})
	sess.LastActivity = now
	return true
}

// History returns up to the last limit messages of the session, in arrival
// order. A limit of zero or less returns the whole transcript.
func (s *Store) History(id string, limit int) []chat.Message {
	sess, ok := s.Get(id)
	if !ok {
		return nil
	}

	history := sess.History
	if limit > 0 && len(history) > limit {
		history = history[len(history)-limit:]
	}
	return history
}

// UpdatePreferences merges the given key/value pairs into the session.
func (s *Store) UpdatePreferences(id string, prefs map[string]any) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return false
	}
	if s.expiredLocked(sess) {
		delete(s.sessions, id)
		return false
	}

	for k, v := range prefs {
		sess.Preferences[k] = v
	}
	sess.LastActivity = s.now()
	return true
}

// Preferences returns a copy of the session's preference map.
func (s *Store) Preferences(id string) map[string]any {
	sess, ok := s.Get(id)
	if !ok {
		return map[string]any{}
	}
	return sess.Preferences
}

// Delete removes a session, reporting whether it existed.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return false
	}
	delete(s.sessions, id)
	log.Printf("[session] deleted session %s", id)
	return true
}

// SweepExpired removes every expired session and returns the count removed.
func (s *Store) SweepExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, sess := range s.sessions {
		if s.expiredLocked(sess) {
			delete(s.sessions, id)
			removed++
		}
	}

	if removed > 0 {
		log.Printf("[session] swept %d expired sessions", removed)
	}
	return removed
}

// ActiveCount returns the number of non-expired sessions.
func (s *Store) ActiveCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	active := 0
	for _, sess := range s.sessions {
		if !s.expiredLocked(sess) {
			active++
		}
	}
	return active
}

// TotalCount returns the number of resident sessions, expired ones included.
func (s *Store) TotalCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Stats produces aggregate counters. Unlike Get it never touches activity
// timestamps.
func (s *Store) Stats() chat.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := chat.Stats{
		TotalSessions:  len(s.sessions),
		TimeoutMinutes: s.timeout.Minutes(),
	}

	for _, sess := range s.sessions {
		stats.TotalMessages += len(sess.History)
		if !s.expiredLocked(sess) {
			stats.ActiveSessions++
		}
		if stats.OldestSession == nil || sess.CreatedAt.Before(*stats.OldestSession) {
			created := sess.CreatedAt
			stats.OldestSession = &created
		}
		if stats.NewestSession == nil || sess.CreatedAt.After(*stats.NewestSession) {
			created := sess.CreatedAt
			stats.NewestSession = &created
		}
	}

	stats.ExpiredSessions = stats.TotalSessions - stats.ActiveSessions
	return stats
}

func (s *Store) expiredLocked(sess *chat.Session) bool {
	return s.now().Sub(sess.LastActivity) > s.timeout
}

func snapshot(sess *chat.Session) chat.Session {
	copied := *sess
	copied.History = append([]chat.Message(nil), sess.History...)
	copied.Preferences = make(map[string]any, len(sess.Preferences))
	for k, v := range sess.Preferences {
		copied.Preferences[k] = v
	}
	return copied
}
