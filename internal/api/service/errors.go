package service

import (
	"errors"
	"fmt"
)

// Operational errors raised by the services. The HTTP layer maps each of
// these to a status code and body in exactly one place; unexpected errors
// pass through untouched and surface as generic 500s.
var (
	ErrEmailTaken         = errors.New("service: email already registered")
	ErrInvalidCredentials = errors.New("service: invalid credentials")
	ErrInvalidResetToken  = errors.New("service: invalid or expired reset token")
	ErrTodoNotFound       = errors.New("service: todo not found")
)

// ValidationError reports a request that failed shape validation before any
// store access. The message names the offending field and is safe to show
// to the caller.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func validationf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}
