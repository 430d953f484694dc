package common

import (
	"errors"
	"fmt"
)

// Kind classifies failures at the service boundary
type Kind int

const (
	KindStoreFailure Kind = iota
	KindInvalidInput
	KindUnauthorized
	KindForbidden
	KindConflict
	KindNotFound
	KindUnavailable
)

func (k Kind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid_input"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindConflict:
		return "conflict"
	case KindNotFound:
		return "not_found"
	case KindUnavailable:
		return "unavailable"
	default:
		return "store_failure"
	}
}

// Sentinels for errors.Is checks against a *Error of the same kind
var (
	ErrInvalidInput = &Error{Kind: KindInvalidInput}
	ErrUnauthorized = &Error{Kind: KindUnauthorized}
	ErrForbidden    = &Error{Kind: KindForbidden}
	ErrConflict     = &Error{Kind: KindConflict}
	ErrNotFound     = &Error{Kind: KindNotFound}
	ErrStoreFailure = &Error{Kind: KindStoreFailure}
	ErrUnavailable  = &Error{Kind: KindUnavailable}
)

// Error is a classified failure. Message is safe to show to callers; Err is
// the internal cause and is only logged.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Kind.String()
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error with the same kind
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// NewError builds a classified error
func NewError(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Err: cause}
}

func InvalidInput(message string) *Error {
	return NewError(KindInvalidInput, message, nil)
}

func Unauthorized(message string) *Error {
	return NewError(KindUnauthorized, message, nil)
}

func Forbidden() *Error {
	return NewError(KindForbidden, "Forbidden", nil)
}

func Conflict(message string) *Error {
	return NewError(KindConflict, message, nil)
}

func NotFound(message string) *Error {
	return NewError(KindNotFound, message, nil)
}

func StoreFailure(message string, cause error) *Error {
	return NewError(KindStoreFailure, message, cause)
}

func Unavailable(message string) *Error {
	return NewError(KindUnavailable, message, nil)
}

// KindOf returns the kind of a classified error; unclassified errors are store failures
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindStoreFailure
}

// PublicMessage returns the caller-safe message for err
func PublicMessage(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return "Internal server error"
}
