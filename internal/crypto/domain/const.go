package domain

// Padding identifies the RSA encryption padding scheme used to seal secrets.
//
// Both schemes are randomized, so encrypting the same plaintext twice under the
// same public key produces different ciphertexts.
type Padding string

const (
	// PaddingOAEP is RSA-OAEP with SHA-256 as both the label hash and the MGF1 hash.
	PaddingOAEP Padding = "oaep"

	// PaddingPKCS1v15 is RSAES-PKCS1-v1_5. Kept for records sealed by the legacy service.
	PaddingPKCS1v15 Padding = "pkcs1v15"
)

const (
	// DefaultKeySizeBits is the RSA modulus size used when the caller does not ask for one.
	DefaultKeySizeBits = 2048

	// MinKeySizeBits is the smallest modulus accepted. Anything smaller offers no
	// meaningful confidentiality today.
	MinKeySizeBits = 2048

	// MaxKeySizeBits bounds key generation cost per request.
	MaxKeySizeBits = 16384
)

// KMSKeyMaterialPrefix marks private key material that was wrapped by a KMS keeper
// before it was stored.
const KMSKeyMaterialPrefix = "kms:"
