// Package errors defines the error kinds surfaced by service registration:
// bad user input, unsupported deployment backends, unreadable persisted
// manifests, and filesystem failures. Callers discriminate with errors.As.
package errors

import (
	stderrors "errors"
	"fmt"
)

// ValidationError reports malformed or out-of-range service input.
// The input is never partially applied; the caller may fix it and retry.
type ValidationError struct {
	Field string
	Msg   string
}

func NewValidationError(field, msg string) *ValidationError {
	return &ValidationError{Field: field, Msg: msg}
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Msg)
	}
	return fmt.Sprintf("invalid input: %s", e.Msg)
}

// UnsupportedBackendError reports a backend that has no manifest generator.
type UnsupportedBackendError struct {
	Backend string
}

func NewUnsupportedBackendError(backend string) *UnsupportedBackendError {
	return &UnsupportedBackendError{Backend: backend}
}

func (e *UnsupportedBackendError) Error() string {
	return fmt.Sprintf("backend %q is not supported", e.Backend)
}

// CorruptStateError reports a persisted manifest that could not be parsed.
// It is propagated rather than discarded so that a previously valid
// deployment configuration is never silently overwritten.
type CorruptStateError struct {
	Path string
	Err  error
}

func NewCorruptStateError(path string, err error) *CorruptStateError {
	return &CorruptStateError{Path: path, Err: err}
}

func (e *CorruptStateError) Error() string {
	return fmt.Sprintf("corrupt manifest at %s: %v", e.Path, e.Err)
}

func (e *CorruptStateError) Unwrap() error { return e.Err }

// IoError reports a failed filesystem operation together with the path.
type IoError struct {
	Op   string
	Path string
	Err  error
}

func NewIoError(op, path string, err error) *IoError {
	return &IoError{Op: op, Path: path, Err: err}
}

func (e *IoError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IoError) Unwrap() error { return e.Err }

// Kind names the error taxonomy bucket err falls into, for metric labels
// and log fields.
func Kind(err error) string {
	var (
		validation  *ValidationError
		unsupported *UnsupportedBackendError
		corrupt     *CorruptStateError
		io          *IoError
	)
	switch {
	case stderrors.As(err, &validation):
		return "validation"
	case stderrors.As(err, &unsupported):
		return "unsupported_backend"
	case stderrors.As(err, &corrupt):
		return "corrupt_state"
	case stderrors.As(err, &io):
		return "io"
	default:
		return "unknown"
	}
}
