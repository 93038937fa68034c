// Package errors defines the sentinel errors shared by the secret store, the
// use cases and the HTTP layer. Handlers translate them into status codes.
package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means no secret exists under the reference, either because it
	// was never sealed or because it has already been consumed.
	ErrNotFound = errors.New("not found")

	// ErrConflict means a reference is already taken.
	ErrConflict = errors.New("conflict")

	// ErrInvalidInput means a request was rejected before touching storage.
	ErrInvalidInput = errors.New("invalid input")

	// ErrStorage means the backing store failed and the operation outcome is
	// unknown to the caller.
	ErrStorage = errors.New("storage failure")

	// ErrCorrupted means a stored record could not be decoded or decrypted.
	ErrCorrupted = errors.New("corrupted data")
)

// New returns an error carrying message.
func New(message string) error {
	return errors.New(message)
}

// Wrap prefixes err with message. A nil err stays nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Storage marks err as a persistence failure. The result matches both ErrStorage
// and err under errors.Is.
func Storage(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", message, ErrStorage, err)
}

// Is mirrors errors.Is so callers need a single errors import.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As mirrors errors.As.
func As(err error, target any) bool {
	return errors.As(err, target)
}
