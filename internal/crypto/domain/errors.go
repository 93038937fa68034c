package domain

import (
	"github.com/allisson/nyx/internal/errors"
)

// Key and cipher failures. The ones wrapping ErrInvalidInput are caller
// mistakes; the rest surface as 500.
var (
	// ErrKeyGeneration indicates the RSA key pair could not be produced, either
	// because the randomness source failed or the size is unsupported.
	// Key generation is never retried.
	//
	// HTTP Status: 500 Internal Server Error
	ErrKeyGeneration = errors.New("key generation failed")

	// ErrKeySizeTooSmall indicates the requested modulus is below MinKeySizeBits.
	//
	// HTTP Status: 422 Unprocessable Entity
	ErrKeySizeTooSmall = errors.Wrap(errors.ErrInvalidInput, "key size below minimum of 2048 bits")

	// ErrPlaintextTooLarge indicates the plaintext does not fit in a single RSA
	// block for the key size and padding in use. Plaintext is never truncated.
	//
	// HTTP Status: 422 Unprocessable Entity
	ErrPlaintextTooLarge = errors.Wrap(errors.ErrInvalidInput, "plaintext too large for key size")

	// ErrEncryptionFailed indicates the public key operation itself failed.
	ErrEncryptionFailed = errors.New("encryption failed")

	// ErrDecryptionFailed covers a wrong key, a failed padding check and
	// ciphertext that is not valid base64. The three are not told apart.
	ErrDecryptionFailed = errors.New("decryption failed")

	// ErrKeyFormat indicates serialized private key material could not be parsed.
	ErrKeyFormat = errors.New("invalid private key format")

	// ErrUnsupportedPadding indicates the configured padding scheme is unknown.
	//
	// HTTP Status: 422 Unprocessable Entity
	ErrUnsupportedPadding = errors.Wrap(errors.ErrInvalidInput, "unsupported padding scheme")

	// ErrKMSUnavailable indicates KMS-wrapped key material was found but no
	// keeper is configured to unwrap it.
	ErrKMSUnavailable = errors.New("kms keeper not configured")
)
