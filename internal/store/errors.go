package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
//
// The legacy application logged storage failures and returned nulls; every
// failure here is a typed error surfaced to the caller instead.
var (
	// ErrNotFound is returned when a requested entity does not exist in the
	// store. This is the generic version of the entity-specific not found
	// errors (e.g., ErrDeckNotFound, ErrUserNotFound).
	ErrNotFound = errors.New("entity not found")

	// ErrInvalidEntity is returned when an entity fails validation before
	// being stored. Check the wrapped error for specific validation details.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrCorrupt is returned when a backing file exists but cannot be
	// decoded into the expected shape, or carries an unknown format version.
	ErrCorrupt = errors.New("corrupt store file")

	// ErrPermission is returned when the filesystem denies a read, write,
	// or delete.
	ErrPermission = errors.New("permission denied")

	// ErrIO is returned for any other filesystem failure.
	ErrIO = errors.New("i/o failure")

	// Entity-specific errors

	// ErrDeckNotFound indicates that no backing file exists for the
	// requested deck name.
	ErrDeckNotFound = fmt.Errorf("%w: deck", ErrNotFound)

	// ErrUserNotFound indicates that the requested user does not exist.
	ErrUserNotFound = fmt.Errorf("%w: user", ErrNotFound)

	// ErrInvalidDeck indicates that a deck was rejected before writing,
	// typically because its name is empty.
	ErrInvalidDeck = fmt.Errorf("%w: deck", ErrInvalidEntity)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsCorruptError checks if the error indicates an undecodable store file.
func IsCorruptError(err error) bool {
	return errors.Is(err, ErrCorrupt)
}

// StoreError is a custom error type for store-specific errors with
// additional context.
type StoreError struct {
	Entity    string // The entity type (e.g., "deck", "user")
	Operation string // The operation that failed (e.g., "load", "save")
	Message   string // Error message
	Err       error  // Original error
}

// Error implements the error interface for StoreError.
func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf(
			"%s operation on %s failed: %s: %v",
			e.Operation,
			e.Entity,
			e.Message,
			e.Err,
		)
	}
	return fmt.Sprintf("%s operation on %s failed: %s", e.Operation, e.Entity, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError with the given entity, operation,
// message, and wrapped error.
func NewStoreError(entity, operation, message string, err error) *StoreError {
	return &StoreError{
		Entity:    entity,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
