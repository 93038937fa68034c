package service

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"fmt"
	"hash"
	"io"

	cryptoDomain "github.com/allisson/nyx/internal/crypto/domain"
)

const (
	pkcs8PEMType = "PRIVATE KEY"
	pkcs1PEMType = "RSA PRIVATE KEY"

	// pkcs1v15Overhead is the minimum padding length of RSAES-PKCS1-v1_5.
	pkcs1v15Overhead = 11
)

// RSACipher implements AsymmetricCipher with RSA and either OAEP (SHA-256) or
// PKCS#1 v1.5 padding.
//
// Security properties:
//   - Both paddings are randomized; the same plaintext never encrypts twice to
//     the same ciphertext.
//   - Decrypt collapses every failure into ErrDecryptionFailed so callers cannot
//     tell a padding error from a key mismatch.
//   - Private keys are serialized as PKCS#8 PEM.
//
// Thread safety:
//
//	RSACipher is stateless apart from its configuration and is safe for
//	concurrent use.
type RSACipher struct {
	padding cryptoDomain.Padding
	random  io.Reader
	newHash func() hash.Hash
}

// NewRSACipher creates a cipher for the given padding scheme.
func NewRSACipher(padding cryptoDomain.Padding) (*RSACipher, error) {
	return NewRSACipherWithRandom(padding, rand.Reader)
}

// NewRSACipherWithRandom creates a cipher that draws padding randomness from random.
func NewRSACipherWithRandom(padding cryptoDomain.Padding, random io.Reader) (*RSACipher, error) {
	switch padding {
	case cryptoDomain.PaddingOAEP, cryptoDomain.PaddingPKCS1v15:
	default:
		return nil, cryptoDomain.ErrUnsupportedPadding
	}

	return &RSACipher{
		padding: padding,
		random:  random,
		newHash: sha256.New,
	}, nil
}

// Padding returns the padding scheme this cipher uses.
func (c *RSACipher) Padding() cryptoDomain.Padding {
	return c.padding
}

// MaxPlaintextSize returns the payload bound for publicKey under the configured padding.
func (c *RSACipher) MaxPlaintextSize(publicKey *rsa.PublicKey) int {
	if publicKey == nil {
		return 0
	}

	k := publicKey.Size()
	var limit int
	switch c.padding {
	case cryptoDomain.PaddingOAEP:
		limit = k - 2*c.newHash().Size() - 2
	default:
		limit = k - pkcs1v15Overhead
	}

	if limit < 0 {
		return 0
	}
	return limit
}

// Encrypt encrypts plaintext under publicKey. Oversized input fails with
// ErrPlaintextTooLarge before any cryptographic work is done.
func (c *RSACipher) Encrypt(plaintext []byte, publicKey *rsa.PublicKey) ([]byte, error) {
	if publicKey == nil {
		return nil, cryptoDomain.ErrEncryptionFailed
	}
	if len(plaintext) > c.MaxPlaintextSize(publicKey) {
		return nil, cryptoDomain.ErrPlaintextTooLarge
	}

	var (
		ciphertext []byte
		err        error
	)
	switch c.padding {
	case cryptoDomain.PaddingOAEP:
		ciphertext, err = rsa.EncryptOAEP(c.newHash(), c.random, publicKey, plaintext, nil)
	default:
		ciphertext, err = rsa.EncryptPKCS1v15(c.random, publicKey, plaintext)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", cryptoDomain.ErrEncryptionFailed, err)
	}

	return ciphertext, nil
}

// Decrypt decrypts ciphertext with privateKey. The underlying error is dropped on
// purpose: only ErrDecryptionFailed ever leaves this method.
func (c *RSACipher) Decrypt(ciphertext []byte, privateKey *rsa.PrivateKey) ([]byte, error) {
	if privateKey == nil || len(ciphertext) == 0 {
		return nil, cryptoDomain.ErrDecryptionFailed
	}

	var (
		plaintext []byte
		err       error
	)
	switch c.padding {
	case cryptoDomain.PaddingOAEP:
		plaintext, err = rsa.DecryptOAEP(c.newHash(), nil, privateKey, ciphertext, nil)
	default:
		plaintext, err = rsa.DecryptPKCS1v15(nil, privateKey, ciphertext)
	}
	if err != nil {
		return nil, cryptoDomain.ErrDecryptionFailed
	}

	return plaintext, nil
}

// SerializePrivateKey encodes privateKey as a PKCS#8 PEM block.
func (c *RSACipher) SerializePrivateKey(privateKey *rsa.PrivateKey) (string, error) {
	if privateKey == nil {
		return "", cryptoDomain.ErrKeyFormat
	}

	der, err := x509.MarshalPKCS8PrivateKey(privateKey)
	if err != nil {
		return "", fmt.Errorf("%w: %w", cryptoDomain.ErrKeyFormat, err)
	}
	defer cryptoDomain.Zero(der)

	return string(pem.EncodeToMemory(&pem.Block{Type: pkcs8PEMType, Bytes: der})), nil
}

// DeserializePrivateKey parses a PKCS#8 (or PKCS#1) PEM encoded RSA private key.
func (c *RSACipher) DeserializePrivateKey(text string) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode([]byte(text))
	if block == nil {
		return nil, cryptoDomain.ErrKeyFormat
	}
	defer cryptoDomain.Zero(block.Bytes)

	switch block.Type {
	case pkcs8PEMType:
		key, err := x509.ParsePKCS8PrivateKey(block.Bytes)
		if err != nil {
			return nil, cryptoDomain.ErrKeyFormat
		}
		privateKey, ok := key.(*rsa.PrivateKey)
		if !ok {
			return nil, cryptoDomain.ErrKeyFormat
		}
		return privateKey, nil
	case pkcs1PEMType:
		privateKey, err := x509.ParsePKCS1PrivateKey(block.Bytes)
		if err != nil {
			return nil, cryptoDomain.ErrKeyFormat
		}
		return privateKey, nil
	default:
		return nil, cryptoDomain.ErrKeyFormat
	}
}

// EncodeCiphertext renders ciphertext as standard base64.
func (c *RSACipher) EncodeCiphertext(ciphertext []byte) string {
	return base64.StdEncoding.EncodeToString(ciphertext)
}

// DecodeCiphertext parses standard base64 text.
func (c *RSACipher) DecodeCiphertext(text string) ([]byte, error) {
	ciphertext, err := base64.StdEncoding.DecodeString(text)
	if err != nil {
		return nil, cryptoDomain.ErrDecryptionFailed
	}
	return ciphertext, nil
}
