package utils

import (
	"encoding/json"
	"log"
	"net/http"
)

// RespondJSON writes a JSON response with the given status code.
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

// RespondError writes the error envelope used across the API: a code for
// clients to branch on and a human-readable message.
func RespondError(w http.ResponseWriter, status int, code, message string) {
	RespondJSON(w, status, map[string]any{
		"error": map[string]any{
			"code":    code,
			"message": message,
		},
	})
}

// RespondRetryableError writes the error envelope with a retry hint in
// seconds for conditions expected to clear on their own.
func RespondRetryableError(w http.ResponseWriter, status int, code, message string, retryAfter int) {
	RespondJSON(w, status, map[string]any{
		"error": map[string]any{
			"code":        code,
			"message":     message,
			"retry_after": retryAfter,
		},
	})
}
