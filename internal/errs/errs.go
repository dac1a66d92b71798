// Package errs defines the error taxonomy shared across the service layers.
package errs

import (
	"errors"
	"fmt"
)

// Code classifies a failure for API responses and degradation decisions.
type Code string

const (
	CodeAuthFailed          Code = "authentication_failed"
	CodeBackendUnavailable  Code = "backend_unavailable"
	CodeBackendTimeout      Code = "backend_timeout"
	CodeBackendError        Code = "backend_error"
	CodeNotFound            Code = "not_found"
	CodeAgentNotInitialized Code = "agent_not_initialized"
	CodeAgentProcessing     Code = "agent_processing_error"
	CodeSessionNotFound     Code = "session_not_found"
	CodeInvalidInput        Code = "invalid_input"
	CodeRateLimited         Code = "rate_limited"
	CodeInternal            Code = "internal_error"
)

// Error carries a taxonomy code alongside the internal detail message.
type Error struct {
	Code    Code
	Message string
	Status  int // backend HTTP status when applicable
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s (status %d): %s", e.Code, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// New builds an Error with the given code and detail.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// WithStatus builds a backend Error that records the upstream HTTP status.
func WithStatus(code Code, status int, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Status: status}
}

// CodeOf extracts the taxonomy code from err, defaulting to CodeInternal.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

var userMessages = map[Code]string{
	CodeAuthFailed:          "I'm having trouble connecting to my AI service. Please try again in a moment.",
	CodeBackendUnavailable:  "I can't access the product database right now. Please try again later.",
	CodeBackendTimeout:      "The product database is responding slowly. Please try again.",
	CodeBackendError:        "I had trouble reaching the product database. Please try again.",
	CodeNotFound:            "I couldn't find what you were looking for.",
	CodeAgentNotInitialized: "I'm not ready to help yet. Please wait a moment and try again.",
	CodeAgentProcessing:     "I encountered an error while processing your request. Please try rephrasing your question.",
	CodeSessionNotFound:     "I couldn't find our conversation. Let's start fresh!",
	CodeInvalidInput:        "I didn't understand your request. Could you please rephrase it?",
	CodeRateLimited:         "You're sending messages too quickly. Please wait a moment before trying again.",
	CodeInternal:            "Something went wrong on my end. Please try again.",
}

// UserMessage returns the default user-facing message for a code.
func UserMessage(code Code) string {
	if msg, ok := userMessages[code]; ok {
		return msg
	}
	return "I encountered an unexpected error. Please try again."
}

var retryDelays = map[Code]int{
	CodeBackendTimeout:      10,
	CodeBackendUnavailable:  30,
	CodeAuthFailed:          30,
	CodeAgentNotInitialized: 30,
	CodeRateLimited:         60,
}

// RetryAfter reports the suggested retry delay in seconds for retryable codes.
func RetryAfter(code Code) (int, bool) {
	delay, ok := retryDelays[code]
	return delay, ok
}
