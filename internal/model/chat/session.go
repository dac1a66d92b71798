package chat

import "time"

// Session captures a transient conversation with a sliding expiration window.
type Session struct {
	ID           string         `json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	LastActivity time.Time      `json:"last_activity"`
	History      []Message      `json:"history"`
	Preferences  map[string]any `json:"preferences"`
}

// Stats aggregates store-wide session counters.
type Stats struct {
	TotalSessions   int        `json:"total_sessions"`
	ActiveSessions  int        `json:"active_sessions"`
	ExpiredSessions int        `json:"expired_sessions"`
	TotalMessages   int        `json:"total_messages"`
	OldestSession   *time.Time `json:"oldest_session"`
	NewestSession   *time.Time `json:"newest_session"`
	TimeoutMinutes  float64    `json:"session_timeout_minutes"`
}
