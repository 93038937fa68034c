// Package service provides the cryptographic services used to seal secrets.
// Each secret is encrypted under its own RSA key pair; the private key is
// serialized to text and stored next to the ciphertext it opens.
package service

import (
	"context"
	"crypto/rsa"

	cryptoDomain "github.com/allisson/nyx/internal/crypto/domain"
)

// KeyPairProvider generates a fresh asymmetric key pair for every secret.
type KeyPairProvider interface {
	// Generate creates a new key pair with the given modulus size in bits.
	// Sizes below cryptoDomain.MinKeySizeBits fail with ErrKeySizeTooSmall.
	Generate(keySizeBits int) (*cryptoDomain.KeyPair, error)
}

// AsymmetricCipher encrypts under a public key, decrypts under the matching
// private key, and converts keys and ciphertexts to transportable text.
type AsymmetricCipher interface {
	// Encrypt encrypts plaintext with randomized padding.
	Encrypt(plaintext []byte, publicKey *rsa.PublicKey) ([]byte, error)

	// Decrypt reverses Encrypt. Every failure returns ErrDecryptionFailed.
	Decrypt(ciphertext []byte, privateKey *rsa.PrivateKey) ([]byte, error)

	// MaxPlaintextSize returns the largest plaintext Encrypt accepts for publicKey.
	MaxPlaintextSize(publicKey *rsa.PublicKey) int

	// SerializePrivateKey encodes privateKey as PKCS#8 PEM text.
	SerializePrivateKey(privateKey *rsa.PrivateKey) (string, error)

	// DeserializePrivateKey parses text produced by SerializePrivateKey.
	DeserializePrivateKey(text string) (*rsa.PrivateKey, error)

	// EncodeCiphertext renders ciphertext as ASCII-safe text.
	EncodeCiphertext(ciphertext []byte) string

	// DecodeCiphertext reverses EncodeCiphertext.
	DecodeCiphertext(text string) ([]byte, error)
}

// KeyMaterialProtector optionally wraps serialized private keys before they are
// stored and unwraps them after they are taken back out.
type KeyMaterialProtector interface {
	Protect(ctx context.Context, keyMaterial string) (string, error)
	Reveal(ctx context.Context, storedMaterial string) (string, error)
}
