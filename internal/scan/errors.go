package scan

import (
	"errors"
	"fmt"
)

// ErrorKind categorizes scan failures.
type ErrorKind int

const (
	// ErrKindDaemonInit indicates the discovery daemon failed to start.
	// Start aborts and the session reverts to idle.
	ErrKindDaemonInit ErrorKind = iota

	// ErrKindDaemonShutdown indicates the discovery daemon failed to shut
	// down. The session has already transitioned to idle when this is
	// returned.
	ErrKindDaemonShutdown

	// ErrKindBrowse indicates a single category failed to begin streaming.
	// Non-fatal: only that category is skipped.
	ErrKindBrowse

	// ErrKindNotification indicates an outbound notification failed to
	// reach the host. Logged, never propagated.
	ErrKindNotification
)

// String returns a human-readable name for the error kind.
func (k ErrorKind) String() string {
	switch k {
	case ErrKindDaemonInit:
		return "daemon init failed"
	case ErrKindDaemonShutdown:
		return "daemon shutdown failed"
	case ErrKindBrowse:
		return "browse failed"
	case ErrKindNotification:
		return "notification delivery failed"
	default:
		return fmt.Sprintf("ErrorKind(%d)", k)
	}
}

// Error is a scan operation failure. Category is set for browse failures.
type Error struct {
	Kind     ErrorKind
	Category string
	Err      error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Category != "" {
		return fmt.Sprintf("%s for %q: %v", e.Kind, e.Category, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

// Unwrap returns the underlying error for error chain inspection.
func (e *Error) Unwrap() error {
	return e.Err
}

func newDaemonInitError(err error) *Error {
	return &Error{Kind: ErrKindDaemonInit, Err: err}
}

func newDaemonShutdownError(err error) *Error {
	return &Error{Kind: ErrKindDaemonShutdown, Err: err}
}

func newBrowseError(category string, err error) *Error {
	return &Error{Kind: ErrKindBrowse, Category: category, Err: err}
}

func newNotificationError(err error) *Error {
	return &Error{Kind: ErrKindNotification, Err: err}
}

func isKind(err error, kind ErrorKind) bool {
	var se *Error
	return errors.As(err, &se) && se.Kind == kind
}

// IsDaemonInitError reports whether err is a daemon initialization failure.
func IsDaemonInitError(err error) bool {
	return isKind(err, ErrKindDaemonInit)
}

// IsDaemonShutdownError reports whether err is a daemon shutdown failure.
func IsDaemonShutdownError(err error) bool {
	return isKind(err, ErrKindDaemonShutdown)
}

// IsBrowseError reports whether err is a per-category browse failure.
func IsBrowseError(err error) bool {
	return isKind(err, ErrKindBrowse)
}
