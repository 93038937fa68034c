package validation

import (
	"testing"

	validation "github.com/jellydator/validation"
	"github.com/stretchr/testify/assert"

	apperrors "github.com/allisson/nyx/internal/errors"
)

func TestMaxBytes(t *testing.T) {
	rule := MaxBytes(4)

	tests := []struct {
		name      string
		input     interface{}
		shouldErr bool
	}{
		{name: "under limit", input: "abc", shouldErr: false},
		{name: "at limit", input: "abcd", shouldErr: false},
		{name: "over limit", input: "abcde", shouldErr: true},
		{name: "multibyte runes count as bytes", input: "ééé", shouldErr: true},
		{name: "not a string", input: 42, shouldErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := rule.Validate(tt.input)
			if tt.shouldErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestKeySizeBits(t *testing.T) {
	rule := KeySizeBits{2048, 3072, 4096}

	tests := []struct {
		name      string
		input     interface{}
		shouldErr bool
	}{
		{name: "zero selects default", input: 0, shouldErr: false},
		{name: "allowed 2048", input: 2048, shouldErr: false},
		{name: "allowed 4096", input: 4096, shouldErr: false},
		{name: "too small", input: 1024, shouldErr: true},
		{name: "not listed", input: 2049, shouldErr: true},
		{name: "not an int", input: "2048", shouldErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := rule.Validate(tt.input)
			if tt.shouldErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}

	err := rule.Validate(1024)
	assert.EqualError(t, err, "must be one of 2048, 3072, 4096")
}

func TestStringRules(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		noWhitespace bool
		notBlank     bool
	}{
		{name: "plain url", input: "redis://cache:6379/0", noWhitespace: true, notBlank: true},
		{name: "leading space", input: " redis://cache", noWhitespace: false, notBlank: true},
		{name: "trailing newline", input: "postgres://db\n", noWhitespace: false, notBlank: true},
		{name: "inner space", input: "a b", noWhitespace: true, notBlank: true},
		{name: "only tabs", input: "\t\t", noWhitespace: false, notBlank: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.noWhitespace, NoWhitespace.Validate(tt.input) == nil)
			assert.Equal(t, tt.notBlank, NotBlank.Validate(tt.input) == nil)
		})
	}

	// Empty values are left to validation.Required.
	assert.NoError(t, NoWhitespace.Validate(""))
	assert.NoError(t, NotBlank.Validate(""))
}

func TestWrapValidationError(t *testing.T) {
	assert.NoError(t, WrapValidationError(nil))

	err := validation.Validate(5000, KeySizeBits{2048})
	wrapped := WrapValidationError(err)
	assert.ErrorIs(t, wrapped, apperrors.ErrInvalidInput)
	assert.Equal(t, "must be one of 2048: invalid input", wrapped.Error())
}
