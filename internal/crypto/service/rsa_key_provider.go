package service

import (
	"crypto/rand"
	"crypto/rsa"
	"fmt"
	"io"

	cryptoDomain "github.com/allisson/nyx/internal/crypto/domain"
)

// RSAKeyPairProvider generates RSA key pairs from a cryptographically secure
// randomness source.
//
// Thread safety:
//
//	The provider holds no mutable state and is safe for concurrent use as long as
//	the configured random reader is (crypto/rand.Reader is).
type RSAKeyPairProvider struct {
	random      io.Reader
	generateKey func(random io.Reader, bits int) (*rsa.PrivateKey, error)
}

// NewRSAKeyPairProvider creates a provider backed by crypto/rand.
func NewRSAKeyPairProvider() *RSAKeyPairProvider {
	return NewRSAKeyPairProviderWithRandom(rand.Reader)
}

// NewRSAKeyPairProviderWithRandom creates a provider reading entropy from random.
func NewRSAKeyPairProviderWithRandom(random io.Reader) *RSAKeyPairProvider {
	return &RSAKeyPairProvider{
		random:      random,
		generateKey: rsa.GenerateKey,
	}
}

// Generate creates a new RSA key pair of keySizeBits.
func (p *RSAKeyPairProvider) Generate(keySizeBits int) (*cryptoDomain.KeyPair, error) {
	if keySizeBits < cryptoDomain.MinKeySizeBits {
		return nil, cryptoDomain.ErrKeySizeTooSmall
	}
	if keySizeBits > cryptoDomain.MaxKeySizeBits {
		return nil, fmt.Errorf("%w: unsupported key size %d", cryptoDomain.ErrKeyGeneration, keySizeBits)
	}

	privateKey, err := p.generateKey(p.random, keySizeBits)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", cryptoDomain.ErrKeyGeneration, err)
	}

	return &cryptoDomain.KeyPair{
		PublicKey:  &privateKey.PublicKey,
		PrivateKey: privateKey,
	}, nil
}
