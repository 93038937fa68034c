// Package domain defines the core domain models for burn-after-read secrets.
// A secret is sealed into a SecretRecord that carries both its ciphertext and the
// private key that opens it. The record is read exactly once and then destroyed.
package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SecretRecord is the persisted form of a sealed secret. Records are created once
// and consumed once; they are never updated.
type SecretRecord struct {
	// ID is the random identifier the reference is derived from.
	ID uuid.UUID `json:"id"`
	// Ciphertext is the base64 encoded RSA ciphertext.
	Ciphertext string `json:"ciphertext"`
	// PrivateKeyMaterial is the PEM encoded private key, possibly KMS wrapped.
	PrivateKeyMaterial string `json:"private_key"`
	// CreatedAt is the UTC timestamp when the record was stored.
	CreatedAt time.Time `json:"created_at"`
}

// NewSecretRecord builds a record with a fresh random ID.
//
// IDs are UUIDv4 drawn from crypto/rand. Time ordered variants are avoided
// because the reference is the only credential gating decryption.
func NewSecretRecord(ciphertext, privateKeyMaterial string) (*SecretRecord, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return nil, fmt.Errorf("failed to generate secret id: %w", err)
	}

	return &SecretRecord{
		ID:                 id,
		Ciphertext:         ciphertext,
		PrivateKeyMaterial: privateKeyMaterial,
		CreatedAt:          time.Now().UTC(),
	}, nil
}

// Reference returns the opaque token handed to the caller for this record.
func (r *SecretRecord) Reference() string {
	return r.ID.String()
}

// SealedSecret is what a caller receives after sealing. It never contains key
// material or ciphertext.
type SealedSecret struct {
	Reference   string
	KeySizeBits int
	CreatedAt   time.Time
}
