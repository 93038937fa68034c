// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/nyx/internal/validation"
)

// AllowedKeySizeBits lists the RSA modulus sizes a caller may request over HTTP.
var AllowedKeySizeBits = customValidation.KeySizeBits{2048, 3072, 4096}

// SealSecretRequest contains the parameters for sealing a secret.
type SealSecretRequest struct {
	Content     string `json:"content"`
	KeySizeBits int    `json:"key_size_bits"`
}

// Validate checks if the seal request is valid. maxContentBytes bounds the
// request before any key is generated.
func (r *SealSecretRequest) Validate(maxContentBytes int) error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Content,
			validation.Required,
			customValidation.MaxBytes(maxContentBytes),
		),
		validation.Field(&r.KeySizeBits, AllowedKeySizeBits),
	)
}

// LegacyEncryptRequest is the body accepted by POST /encrypt.
type LegacyEncryptRequest struct {
	Content string `json:"content"`
}

// Validate checks if the legacy encrypt request is valid.
func (r *LegacyEncryptRequest) Validate(maxContentBytes int) error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Content,
			validation.Required,
			customValidation.MaxBytes(maxContentBytes),
		),
	)
}
