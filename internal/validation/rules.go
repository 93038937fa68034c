// Package validation holds the jellydator rules shared by request DTOs and config.
package validation

import (
	"fmt"
	"slices"
	"strings"

	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/nyx/internal/errors"
)

// WrapValidationError turns a rule failure into ErrInvalidInput, keeping the
// rule message as context.
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// MaxBytes limits the UTF-8 encoded size of a string. validation.Length counts
// runes, which is the wrong unit for a payload bound.
type MaxBytes int

// Validate checks the byte length of value.
func (m MaxBytes) Validate(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_max_bytes_type", "must be a string")
	}
	if len(s) > int(m) {
		return validation.NewError(
			"validation_max_bytes",
			fmt.Sprintf("must be at most %d bytes", int(m)),
		)
	}
	return nil
}

// KeySizeBits restricts an RSA modulus size to a known list. Zero passes so the
// configured default can apply.
type KeySizeBits []int

// Validate checks value against the allowed sizes.
func (k KeySizeBits) Validate(value interface{}) error {
	size, ok := value.(int)
	if !ok {
		return validation.NewError("validation_key_size_type", "must be an integer")
	}
	if size == 0 || slices.Contains(k, size) {
		return nil
	}

	allowed := make([]string, len(k))
	for i, v := range k {
		allowed[i] = fmt.Sprint(v)
	}
	return validation.NewError(
		"validation_key_size",
		"must be one of "+strings.Join(allowed, ", "),
	)
}

// NoWhitespace rejects values padded with whitespace, a common copy-paste slip in
// connection URLs.
var NoWhitespace = validation.NewStringRuleWithError(
	func(s string) bool {
		return s == strings.TrimSpace(s)
	},
	validation.NewError("validation_no_whitespace", "must not contain leading or trailing whitespace"),
)

// NotBlank rejects values made only of whitespace.
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)
