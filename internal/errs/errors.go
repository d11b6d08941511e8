// Package errs provides the unified error type used across lakereflect.
//
// Every backend (warehouse, postgres, mysql, the snapshot store) wraps its
// native errors into *errs.Error before returning them. Callers classify
// failures with the Is* predicates and never import driver packages to do so.
//
// Usage:
//
//	// In a backend — wrap native errors:
//	return errs.Wrap(errs.ErrKindQueryFailed, "describe failed", driverErr)
//
//	// In a handler — check error kind:
//	if errs.IsNotFound(err) {
//	    http.Error(w, "table not found", http.StatusNotFound)
//	}
package errs

import (
	"errors"
	"fmt"
)

// ErrKind categorises an error without exposing backend-specific codes.
// Warehouse runtime messages, Postgres SQLSTATEs, MySQL errnos and S3 error
// codes all collapse onto this one set.
type ErrKind int

const (
	ErrKindUnknown          ErrKind = iota
	ErrKindNotFound                 // missing table, view, snapshot, bucket
	ErrKindConnectionFailed         // cannot reach or authenticate to the backend
	ErrKindTimeout                  // context deadline / cancellation
	ErrKindQueryFailed              // introspection statement failed
	ErrKindInvalidInput             // bad arguments or a malformed constraint string
	ErrKindPermissionDenied         // access denied on the storage backend
)

func (k ErrKind) String() string {
	switch k {
	case ErrKindNotFound:
		return "not_found"
	case ErrKindConnectionFailed:
		return "connection_failed"
	case ErrKindTimeout:
		return "timeout"
	case ErrKindQueryFailed:
		return "query_failed"
	case ErrKindInvalidInput:
		return "invalid_input"
	case ErrKindPermissionDenied:
		return "permission_denied"
	default:
		return "unknown"
	}
}

// Error is the single error type returned by all lakereflect subsystems.
type Error struct {
	Kind    ErrKind
	Message string
	Cause   error // original backend-level error, preserved for logging
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

// Unwrap allows errors.Is / errors.As to traverse the cause chain.
func (e *Error) Unwrap() error {
	return e.Cause
}

// --- Constructors ---

// New creates an *Error with the given kind and message and no cause.
func New(kind ErrKind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// Newf creates an *Error with a formatted message and no cause.
func Newf(kind ErrKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an *Error with the given kind, message, and an underlying cause.
func Wrap(kind ErrKind, msg string, cause error) *Error {
	return &Error{Kind: kind, Message: msg, Cause: cause}
}

// --- Predicates ---

// Kind extracts the ErrKind from any error in the chain.
// Errors that do not carry an *Error report ErrKindUnknown.
func Kind(err error) ErrKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ErrKindUnknown
}

// IsNotFound reports whether err represents a missing table, view,
// snapshot or bucket.
func IsNotFound(err error) bool {
	return Kind(err) == ErrKindNotFound
}

// IsTimeout reports whether err was caused by a deadline or context cancellation.
func IsTimeout(err error) bool {
	return Kind(err) == ErrKindTimeout
}

// IsConnectionFailed reports whether err is a connectivity or auth failure.
func IsConnectionFailed(err error) bool {
	return Kind(err) == ErrKindConnectionFailed
}

// IsQueryFailed reports whether err is a failed introspection statement.
func IsQueryFailed(err error) bool {
	return Kind(err) == ErrKindQueryFailed
}

// IsInvalidInput reports whether err was caused by bad input, including
// constraint strings that do not follow the DESCRIBE TABLE EXTENDED grammar.
func IsInvalidInput(err error) bool {
	return Kind(err) == ErrKindInvalidInput
}

// IsPermissionDenied reports whether err is an access control failure.
func IsPermissionDenied(err error) bool {
	return Kind(err) == ErrKindPermissionDenied
}
