package tradebook

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	ErrIO       ErrorKind = "io"
	ErrSQL      ErrorKind = "sql"
	ErrInvalid  ErrorKind = "invalid"
	ErrNotFound ErrorKind = "not_found"
)

type Error struct {
	Kind    ErrorKind
	Message string
	Field   string
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	base := fmt.Sprintf("%s: %s", e.Kind, e.Message)
	if e.Field != "" {
		base = fmt.Sprintf("%s (field=%s)", base, e.Field)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", base, e.Cause)
	}
	return base
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func Wrap(kind ErrorKind, msg string, cause error) *Error {
	return &Error{Kind: kind, Message: msg, Cause: cause}
}

func New(kind ErrorKind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

func InvalidError(field, msg string) *Error {
	return &Error{Kind: ErrInvalid, Field: field, Message: msg}
}

func NotFoundError(id string) *Error {
	return &Error{Kind: ErrNotFound, Message: fmt.Sprintf("trade not found: %s", id)}
}

func IsKind(err error, kind ErrorKind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
