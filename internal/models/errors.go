package models

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSettings wraps every branch settings validation failure.
	ErrInvalidSettings = errors.New("invalid branch settings")

	// ErrInvalidRequest wraps every sales request validation failure.
	ErrInvalidRequest = errors.New("invalid sales request")
)

// ConfigurationError describes a single field that violates its constraint.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

func fieldError(field, reason string) error {
	return &ConfigurationError{Field: field, Reason: reason}
}

// wrapInvalid joins errs under sentinel, or returns nil when errs is empty.
func wrapInvalid(sentinel error, errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", sentinel, errors.Join(errs...))
}

// FieldErrors collects every ConfigurationError in err's tree, in order.
func FieldErrors(err error) []*ConfigurationError {
	var out []*ConfigurationError
	var walk func(error)
	walk = func(e error) {
		if e == nil {
			return
		}
		if ce, ok := e.(*ConfigurationError); ok {
			out = append(out, ce)
			return
		}
		switch u := e.(type) {
		case interface{ Unwrap() []error }:
			for _, inner := range u.Unwrap() {
				walk(inner)
			}
		case interface{ Unwrap() error }:
			walk(u.Unwrap())
		}
	}
	walk(err)
	return out
}
