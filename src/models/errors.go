package models

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a referenced document is absent.
	ErrNotFound = errors.New("not found")
	// ErrForbidden is returned when the caller may not inspect a requested quiz.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidRequest is returned when no usable criteria were supplied.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrStoreFailure wraps failures of the underlying document store.
	ErrStoreFailure = errors.New("store failure")
)

// StoreFailure tags err as ErrStoreFailure while keeping it unwrappable.
func StoreFailure(op string, err error) error {
	if err == nil || errors.Is(err, ErrStoreFailure) {
		return err
	}
	return fmt.Errorf("%s: %w: %w", op, ErrStoreFailure, err)
}
