package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	cryptoDomain "github.com/allisson/nyx/internal/crypto/domain"
	cryptoService "github.com/allisson/nyx/internal/crypto/service"
	secretsDomain "github.com/allisson/nyx/internal/secrets/domain"
)

// secretUseCase implements the SecretUseCase interface.
type secretUseCase struct {
	keyProvider        cryptoService.KeyPairProvider
	cipher             cryptoService.AsymmetricCipher
	protector          cryptoService.KeyMaterialProtector
	store              SecretRecordStore
	defaultKeySizeBits int
	logger             *slog.Logger
}

// Seal generates a key pair, encrypts plaintext and stores ciphertext plus
// private key as one record. The store is written last so that any earlier
// failure leaves nothing behind.
func (s *secretUseCase) Seal(
	ctx context.Context,
	plaintext []byte,
	keySizeBits int,
) (*secretsDomain.SealedSecret, error) {
	if len(plaintext) == 0 {
		return nil, secretsDomain.ErrEmptyPlaintext
	}

	if keySizeBits == 0 {
		keySizeBits = s.defaultKeySizeBits
	}

	// A single RSA block can never carry as many bytes as the modulus holds, so
	// reject obviously oversized input before paying for key generation.
	if keySizeBits >= cryptoDomain.MinKeySizeBits && len(plaintext) >= keySizeBits/8 {
		return nil, cryptoDomain.ErrPlaintextTooLarge
	}

	keyPair, err := s.keyProvider.Generate(keySizeBits)
	if err != nil {
		return nil, err
	}

	rawCiphertext, err := s.cipher.Encrypt(plaintext, keyPair.PublicKey)
	if err != nil {
		return nil, err
	}

	keyMaterial, err := s.cipher.SerializePrivateKey(keyPair.PrivateKey)
	if err != nil {
		return nil, err
	}

	storedMaterial, err := s.protector.Protect(ctx, keyMaterial)
	if err != nil {
		return nil, err
	}

	record, err := s.store.Insert(ctx, s.cipher.EncodeCiphertext(rawCiphertext), storedMaterial)
	if err != nil {
		return nil, err
	}

	return &secretsDomain.SealedSecret{
		Reference:   record.Reference(),
		KeySizeBits: keyPair.SizeBits(),
		CreatedAt:   record.CreatedAt,
	}, nil
}

// Unseal takes the record out of the store and decrypts it. Once the take has
// succeeded the secret is gone, whatever happens afterwards.
func (s *secretUseCase) Unseal(ctx context.Context, reference string) ([]byte, error) {
	id, err := secretsDomain.ParseReference(reference)
	if err != nil {
		return nil, err
	}

	record, err := s.store.TakeAndDelete(ctx, id)
	if err != nil {
		// A store that cannot decode the payload has still consumed it.
		if errors.Is(err, secretsDomain.ErrCorruptedSecret) {
			s.logCorrupted(id.String(), err)
		}
		return nil, err
	}

	plaintext, err := s.open(ctx, record)
	if err != nil {
		s.logCorrupted(record.ID.String(), err)
		return nil, fmt.Errorf("%w: %w", secretsDomain.ErrCorruptedSecret, err)
	}

	return plaintext, nil
}

// logCorrupted reports a secret that was destroyed without being delivered.
func (s *secretUseCase) logCorrupted(secretID string, err error) {
	if s.logger == nil {
		return
	}
	s.logger.Error("consumed secret could not be opened",
		slog.String("secret_id", secretID),
		slog.Any("error", err),
	)
}

// open reverses Seal for a record that has already been removed from storage.
func (s *secretUseCase) open(ctx context.Context, record *secretsDomain.SecretRecord) ([]byte, error) {
	keyMaterial, err := s.protector.Reveal(ctx, record.PrivateKeyMaterial)
	if err != nil {
		return nil, err
	}

	privateKey, err := s.cipher.DeserializePrivateKey(keyMaterial)
	if err != nil {
		return nil, err
	}

	rawCiphertext, err := s.cipher.DecodeCiphertext(record.Ciphertext)
	if err != nil {
		return nil, err
	}

	return s.cipher.Decrypt(rawCiphertext, privateKey)
}

// Delete removes the record behind reference without opening it.
func (s *secretUseCase) Delete(ctx context.Context, reference string) (bool, error) {
	id, err := secretsDomain.ParseReference(reference)
	if err != nil {
		return false, err
	}

	deleted, err := s.store.Delete(ctx, id)
	if err != nil {
		return false, err
	}

	if deleted && s.logger != nil {
		s.logger.Info("secret deleted without being read", slog.String("secret_id", id.String()))
	}

	return deleted, nil
}

// NewSecretUseCase creates a new secret use case instance with the provided dependencies.
func NewSecretUseCase(
	keyProvider cryptoService.KeyPairProvider,
	cipher cryptoService.AsymmetricCipher,
	protector cryptoService.KeyMaterialProtector,
	store SecretRecordStore,
	defaultKeySizeBits int,
	logger *slog.Logger,
) SecretUseCase {
	if defaultKeySizeBits == 0 {
		defaultKeySizeBits = cryptoDomain.DefaultKeySizeBits
	}

	return &secretUseCase{
		keyProvider:        keyProvider,
		cipher:             cipher,
		protector:          protector,
		store:              store,
		defaultKeySizeBits: defaultKeySizeBits,
		logger:             logger,
	}
}
