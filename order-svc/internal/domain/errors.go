package domain

import (
	"errors"
	"fmt"
)

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrDishNotFound      = errors.New("dish not found")
	ErrCategoryNotFound  = errors.New("category not found")
	ErrInvalidTransition = errors.New("status transition not allowed")
	ErrStatusConflict    = errors.New("order status was changed by another client")
	ErrNotCompleted      = errors.New("order is not completed yet")
	ErrMessageClosed     = errors.New("order no longer accepts messages")
	ErrInvalidPIN        = errors.New("invalid PIN")
	ErrTooManyAttempts   = errors.New("too many failed attempts, try again later")
	ErrSessionExpired    = errors.New("session expired or invalid")
	ErrForbidden         = errors.New("session does not grant this operation")
)

// ValidationError rejects input before anything reaches the database.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// PersistenceError is a store or network failure. The caller may retry.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return "failed to " + e.Op + ": " + e.Err.Error()
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
