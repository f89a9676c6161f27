package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound covers both a genuinely missing todo and a todo owned
	// by another user. Callers must not be able to tell the two apart.
	ErrNotFound = errors.New("todo not found")

	// ErrEmptyUpdate is returned when a patch carries zero fields.
	ErrEmptyUpdate = errors.New("no valid fields to update")

	ErrUnauthorized       = errors.New("unauthorized")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// FieldError is a validation failure on one input field.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewFieldError(field, message string) *FieldError {
	return &FieldError{Field: field, Message: message}
}

// FieldErrors aggregates validation failures across fields.
type FieldErrors []*FieldError

func (e FieldErrors) Error() string {
	msgs := make([]string, 0, len(e))

	for _, fe := range e {
		msgs = append(msgs, fe.Error())
	}

	return strings.Join(msgs, "; ")
}

// IsValidation reports whether err is a FieldError or FieldErrors.
func IsValidation(err error) bool {
	var fe *FieldError
	var fes FieldErrors

	return errors.As(err, &fe) || errors.As(err, &fes)
}
