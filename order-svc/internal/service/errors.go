package service

import (
	"errors"

	"tableside/order-svc/internal/domain"
)

// storeError passes domain errors through and wraps everything else as a
// persistence failure.
func storeError(op string, err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, domain.ErrOrderNotFound),
		errors.Is(err, domain.ErrDishNotFound),
		errors.Is(err, domain.ErrCategoryNotFound),
		domain.IsValidation(err):
		return err
	}
	return &domain.PersistenceError{Op: op, Err: err}
}
