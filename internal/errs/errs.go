// Package errs defines the error taxonomy used across the segmentation
// pipeline. Every failure falls into one of three kinds: invalid caller
// input, an I/O failure at the image boundary, or a (defensive only)
// clustering convergence failure. All of them are recoverable by retrying
// with corrected input.
package errs

import (
	"errors"
	"fmt"
)

// Kind categorises an error.
type Kind string

const (
	// KindInvalidInput marks validation failures at the input boundary:
	// cluster counts outside [2,10], empty images, malformed filter
	// parameters, unknown filter kinds.
	KindInvalidInput Kind = "invalid_input"

	// KindIO marks unreadable source files or unwritable destinations.
	KindIO Kind = "io_failure"

	// KindConvergence marks the clustering solver failing to produce a
	// valid assignment. The iteration and epsilon bounds make this
	// unreachable in practice; it exists so the failure is reportable
	// rather than a panic if it ever occurs.
	KindConvergence Kind = "convergence_failure"
)

// Error is a categorised application error with an optional cause.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// InvalidInput creates a validation error.
func InvalidInput(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidInput, Message: fmt.Sprintf(format, args...)}
}

// IO creates an I/O error wrapping cause.
func IO(message string, cause error) *Error {
	return &Error{Kind: KindIO, Message: message, Cause: cause}
}

// Convergence creates a convergence error.
func Convergence(message string) *Error {
	return &Error{Kind: KindConvergence, Message: message}
}

// IsKind reports whether err (or any error it wraps) has the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
