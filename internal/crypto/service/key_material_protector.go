package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	cryptoDomain "github.com/allisson/nyx/internal/crypto/domain"
)

// plaintextProtector stores key material as-is. It still understands the KMS
// prefix so that a misconfiguration fails loudly instead of feeding wrapped
// bytes to the PEM parser.
type plaintextProtector struct{}

// NewPlaintextProtector returns a KeyMaterialProtector that does not wrap key material.
func NewPlaintextProtector() KeyMaterialProtector {
	return &plaintextProtector{}
}

// Protect returns keyMaterial unchanged.
func (p *plaintextProtector) Protect(_ context.Context, keyMaterial string) (string, error) {
	return keyMaterial, nil
}

// Reveal returns storedMaterial unchanged unless it was wrapped by a KMS keeper.
func (p *plaintextProtector) Reveal(_ context.Context, storedMaterial string) (string, error) {
	if strings.HasPrefix(storedMaterial, cryptoDomain.KMSKeyMaterialPrefix) {
		return "", cryptoDomain.ErrKMSUnavailable
	}
	return storedMaterial, nil
}

// kmsProtector wraps key material with a KMS keeper. The stored form is
// "kms:" followed by the base64 encoded keeper ciphertext.
type kmsProtector struct {
	keeper cryptoDomain.KMSKeeper
}

// NewKMSProtector returns a KeyMaterialProtector backed by keeper.
func NewKMSProtector(keeper cryptoDomain.KMSKeeper) KeyMaterialProtector {
	return &kmsProtector{keeper: keeper}
}

// Protect encrypts keyMaterial with the keeper.
func (p *kmsProtector) Protect(ctx context.Context, keyMaterial string) (string, error) {
	wrapped, err := p.keeper.Encrypt(ctx, []byte(keyMaterial))
	if err != nil {
		return "", fmt.Errorf("failed to wrap key material: %w", err)
	}
	return cryptoDomain.KMSKeyMaterialPrefix + base64.StdEncoding.EncodeToString(wrapped), nil
}

// Reveal decrypts KMS wrapped material. Unwrapped PEM from before KMS was
// enabled is passed through.
func (p *kmsProtector) Reveal(ctx context.Context, storedMaterial string) (string, error) {
	encoded, wrapped := strings.CutPrefix(storedMaterial, cryptoDomain.KMSKeyMaterialPrefix)
	if !wrapped {
		return storedMaterial, nil
	}

	ciphertext, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", cryptoDomain.ErrKeyFormat
	}

	keyMaterial, err := p.keeper.Decrypt(ctx, ciphertext)
	if err != nil {
		return "", fmt.Errorf("%w: %w", cryptoDomain.ErrKeyFormat, err)
	}
	defer cryptoDomain.Zero(keyMaterial)

	return string(keyMaterial), nil
}
