package domain

import (
	"github.com/allisson/nyx/internal/errors"
)

// Secret-specific error definitions.
var (
	// ErrSecretNotFound indicates no record exists for the reference. A secret that
	// was already read is indistinguishable from one that never existed.
	ErrSecretNotFound = errors.Wrap(errors.ErrNotFound, "secret not found")

	// ErrInvalidReference indicates the reference is not a well-formed secret ID.
	ErrInvalidReference = errors.Wrap(errors.ErrInvalidInput, "invalid secret reference")

	// ErrEmptyPlaintext indicates an attempt to seal zero bytes.
	ErrEmptyPlaintext = errors.Wrap(errors.ErrInvalidInput, "content cannot be empty")

	// ErrCorruptedSecret indicates the record was taken from storage but its key
	// material or ciphertext could not be opened. The record is gone either way.
	ErrCorruptedSecret = errors.Wrap(errors.ErrCorrupted, "secret is corrupted")
)
