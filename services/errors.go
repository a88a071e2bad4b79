package services

import (
	"net/http"

	"github.com/pkg/errors"
)

type Kind int

const (
	KindInternal Kind = iota
	KindAuthenticationRequired
	KindValidation
	KindNotFound
	KindForbidden
	KindConflict
)

// Error is the only error type services return to handlers. Message is safe to show to
// the caller; Err is the underlying cause and is only logged.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) StatusCode() int {
	switch e.Kind {
	case KindAuthenticationRequired:
		return http.StatusUnauthorized
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindForbidden:
		return http.StatusForbidden
	case KindConflict:
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func newError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func internal(err error, message string) *Error {
	return &Error{Kind: KindInternal, Message: "Internal server error", Err: errors.Wrap(err, message)}
}

// AsError returns err as an *Error, classifying anything else as internal.
func AsError(err error) *Error {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr
	}
	return &Error{Kind: KindInternal, Message: "Internal server error", Err: err}
}

var errAuthenticationRequired = newError(KindAuthenticationRequired, "Authentication required")
