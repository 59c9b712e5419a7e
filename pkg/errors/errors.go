package errors

import (
	"errors"
	"fmt"
)

// Kind classifies client-side failures so callers can react without
// string-matching messages.
type Kind string

const (
	// KindTransport covers network failures and non-2xx backend responses.
	KindTransport Kind = "TRANSPORT"
	// KindAuthGap marks the local pre-flight condition of a ready identity
	// without a token; nothing was sent over the wire.
	KindAuthGap Kind = "AUTH_GAP"
	// KindNotFound marks a backend 404 for views that require exactly one entity.
	KindNotFound Kind = "NOT_FOUND"
	// KindMalformed marks a 2xx response whose body could not be decoded.
	KindMalformed Kind = "MALFORMED_RESPONSE"
	// KindTimeout marks a request that exceeded the client deadline.
	KindTimeout Kind = "TIMEOUT"
	// KindValidation marks a request payload rejected before dispatch.
	KindValidation Kind = "VALIDATION"
)

// Error is the single error type surfaced by the client stack.
type Error struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
	Status  int    `json:"status,omitempty"`
	Err     error  `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New creates a new Error instance.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// WithStatus records the HTTP status that produced the error.
func (e *Error) WithStatus(status int) *Error {
	if e == nil {
		return nil
	}
	clone := *e
	clone.Status = status
	return &clone
}

// Predefined errors for common scenarios.
var (
	ErrAuthGap   = New(KindAuthGap, "please log in to view this page")
	ErrNotFound  = New(KindNotFound, "resource not found")
	ErrTimeout   = New(KindTimeout, "request timed out")
	ErrMalformed = New(KindMalformed, "malformed response from server")
)

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, KindTransport, err.Error())
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == kind
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}
