// internal/errors/errors.go
package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrInputEmpty is returned when a submitted handle is blank.
	ErrInputEmpty = errors.New("handle must not be empty")

	// ErrRepositoryFetchDegraded marks a repository listing that could not be used.
	// Callers recover from it with an empty list.
	ErrRepositoryFetchDegraded = errors.New("repository listing degraded")

	// ErrInsightUnavailable marks any failure of the AI completion call.
	ErrInsightUnavailable = errors.New("insight unavailable")

	// ErrMissingCredential is returned by AI completers configured without an API key.
	ErrMissingCredential = errors.New("AI service credential is not configured")
)

// ErrAccountNotFound is returned when the account endpoint answers with a non-success status.
type ErrAccountNotFound struct {
	Handle     string
	StatusCode int
}

func (e *ErrAccountNotFound) Error() string {
	return fmt.Sprintf("account %q not found (status %d)", e.Handle, e.StatusCode)
}

// NetworkError wraps transport and decoding failures of an outbound call.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }
