package dto

import (
	"time"

	secretsDomain "github.com/allisson/nyx/internal/secrets/domain"
)

// SealSecretResponse is returned after sealing. It carries the reference and
// nothing that could help decrypt the secret.
type SealSecretResponse struct {
	Reference   string    `json:"reference"`
	KeySizeBits int       `json:"key_size_bits"`
	CreatedAt   time.Time `json:"created_at"`
}

// MapSealedSecretToResponse converts a sealed secret to an API response.
func MapSealedSecretToResponse(sealed *secretsDomain.SealedSecret) SealSecretResponse {
	return SealSecretResponse{
		Reference:   sealed.Reference,
		KeySizeBits: sealed.KeySizeBits,
		CreatedAt:   sealed.CreatedAt,
	}
}

// UnsealSecretResponse carries the plaintext of a consumed secret.
// SECURITY: Must be transmitted over HTTPS in production.
type UnsealSecretResponse struct {
	Content string `json:"content"`
}

// LegacyEncryptResponse is returned by POST /encrypt.
type LegacyEncryptResponse struct {
	Key string `json:"key"`
}
