package service

import (
	"errors"
)

// Error kinds. Handlers map them to HTTP statuses with errors.Is.
var (
	ErrNotFound           = errors.New("not found")
	ErrPreconditionFailed = errors.New("precondition failed")
	ErrValidation         = errors.New("validation failed")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrConflict           = errors.New("conflict")
	ErrRender             = errors.New("render failed")
	ErrIO                 = errors.New("filesystem error")
)

// Error carries a message that is safe to show to API clients. It matches
// its Kind and the wrapped cause with errors.Is.
type Error struct {
	Kind    error
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

func newError(kind error, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// invalid wraps a validation failure; its text becomes the message.
func invalid(err error) *Error {
	return &Error{Kind: ErrValidation, Message: err.Error()}
}

func notFound(message string) *Error {
	return &Error{Kind: ErrNotFound, Message: message}
}

// Message returns the client-facing message of err, or fallback when err
// carries none.
func Message(err error, fallback string) string {
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return fallback
}
