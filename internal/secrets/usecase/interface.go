// Package usecase defines the interfaces and implementations for sealing and
// unsealing burn-after-read secrets. Use cases orchestrate the crypto services
// and the record store; they hold no state of their own between calls.
package usecase

import (
	"context"

	"github.com/google/uuid"

	secretsDomain "github.com/allisson/nyx/internal/secrets/domain"
)

// SecretRecordStore persists sealed records. Implementations must make
// TakeAndDelete atomic: of any number of concurrent callers for one ID, at most
// one receives the record.
type SecretRecordStore interface {
	// Insert stores a new record with a fresh random ID in a single write.
	Insert(ctx context.Context, ciphertext, privateKeyMaterial string) (*secretsDomain.SecretRecord, error)

	// TakeAndDelete removes the record and returns what was removed. Returns
	// ErrSecretNotFound when nothing was stored under id.
	TakeAndDelete(ctx context.Context, id uuid.UUID) (*secretsDomain.SecretRecord, error)

	// Delete removes the record without reading it and reports whether it existed.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)

	// Ping checks that the backing storage is reachable.
	Ping(ctx context.Context) error
}

// SecretUseCase defines the business logic for burn-after-read secrets.
type SecretUseCase interface {
	// Seal encrypts plaintext under a fresh key pair of keySizeBits (0 selects the
	// configured default) and stores the result.
	Seal(ctx context.Context, plaintext []byte, keySizeBits int) (*secretsDomain.SealedSecret, error)

	// Unseal consumes the record behind reference and returns its plaintext.
	//
	// Security Note: Callers MUST zero the returned slice after use by calling
	// cryptoDomain.Zero.
	Unseal(ctx context.Context, reference string) ([]byte, error)

	// Delete destroys the record behind reference without decrypting it.
	Delete(ctx context.Context, reference string) (bool, error)
}
