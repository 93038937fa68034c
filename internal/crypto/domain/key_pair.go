// Package domain defines the cryptographic value types used to seal secrets.
//
// Every sealed secret gets its own RSA key pair. The pair lives only for the
// duration of a single seal operation: the public half encrypts the plaintext and
// is then discarded, while the private half is serialized and stored next to the
// ciphertext it opens.
package domain

import (
	"context"
	"crypto/rsa"
)

// KeyPair is a freshly generated RSA key pair. It is never persisted as a whole.
type KeyPair struct {
	PublicKey  *rsa.PublicKey
	PrivateKey *rsa.PrivateKey
}

// SizeBits returns the modulus length of the pair in bits.
func (k *KeyPair) SizeBits() int {
	if k == nil || k.PublicKey == nil || k.PublicKey.N == nil {
		return 0
	}
	return k.PublicKey.N.BitLen()
}

// KMSKeeper is the subset of gocloud.dev's *secrets.Keeper used to wrap stored
// private key material.
type KMSKeeper interface {
	Encrypt(ctx context.Context, plaintext []byte) ([]byte, error)
	Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error)
	Close() error
}
