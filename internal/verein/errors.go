package verein

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidInput      = errors.New("invalid input")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrForbidden         = errors.New("forbidden")
	ErrDuplicateEmail    = errors.New("email already exists")
	ErrDuplicateObject   = errors.New("object already exists")
	ErrInvalidTransition = errors.New("invalid registration status transition")
	ErrNotApproved       = &UserError{Err: ErrUnauthorized, Message: MsgNotApproved}
)

// ValidationError is a local input error. Message is shown to the user as is.
type ValidationError struct {
	Field   string
	Message string
}

func Invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

func (e *ValidationError) UserMessage() string {
	return e.Message
}

// UserError is a remote error with a curated message that may be shown in
// place of the generic failure text.
type UserError struct {
	Err     error
	Message string
}

func (e *UserError) Error() string {
	return e.Err.Error() + ": " + e.Message
}

func (e *UserError) Unwrap() error {
	return e.Err
}

func (e *UserError) UserMessage() string {
	return e.Message
}
