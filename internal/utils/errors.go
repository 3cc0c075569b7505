package utils

import (
	"errors"
	"fmt"
)

// ErrorKind classifies failures so callers can decide between exiting,
// rejecting a request, or reporting an internal fault.
type ErrorKind string

const (
	KindConfig   ErrorKind = "config"
	KindArtifact ErrorKind = "artifact"
	KindInput    ErrorKind = "input"
)

// AppError wraps an operation, its kind, a human-facing message, and the cause.
type AppError struct {
	Op   string
	Kind ErrorKind
	Msg  string
	Err  error
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Msg)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Msg, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError constructs an AppError.
func NewAppError(op string, kind ErrorKind, msg string, err error) error {
	return &AppError{Op: op, Kind: kind, Msg: msg, Err: err}
}

// IsKind reports whether err carries an AppError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return false
	}
	return appErr.Kind == kind
}
