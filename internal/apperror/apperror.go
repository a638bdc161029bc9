// Package apperror defines the error kinds the HTTP layer turns into status
// codes.
package apperror

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound marks lookups and deletes that matched no record.
	ErrNotFound = errors.New("not found")
	// ErrBadRequest marks inbound data that failed validation or an update
	// that could not be applied.
	ErrBadRequest = errors.New("bad request")
)

// Error is a domain error whose message is safe to show to clients.
type Error struct {
	kind    error
	message string
	cause   error
}

func (e *Error) Error() string { return e.message }

// Is matches the error's kind.
func (e *Error) Is(target error) bool { return target == e.kind }

func (e *Error) Unwrap() error { return e.cause }

// NotFound builds an ErrNotFound error.
func NotFound(format string, args ...interface{}) error {
	return &Error{kind: ErrNotFound, message: fmt.Sprintf(format, args...)}
}

// BadRequest wraps err as an ErrBadRequest error carrying err's text.
// Errors that already are NotFound or BadRequest are returned unchanged.
func BadRequest(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrBadRequest) {
		return err
	}
	return &Error{kind: ErrBadRequest, message: err.Error(), cause: err}
}
