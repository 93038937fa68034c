package app

import (
	"context"
	"fmt"

	cryptoDomain "github.com/allisson/nyx/internal/crypto/domain"
	cryptoService "github.com/allisson/nyx/internal/crypto/service"
)

// KeyPairProvider returns the RSA key pair provider.
func (c *Container) KeyPairProvider() cryptoService.KeyPairProvider {
	c.keyPairProviderInit.Do(func() {
		c.keyPairProvider = c.initKeyPairProvider()
	})
	return c.keyPairProvider
}

// AsymmetricCipher returns the RSA cipher configured with the selected padding.
func (c *Container) AsymmetricCipher() (cryptoService.AsymmetricCipher, error) {
	var err error
	c.cipherInit.Do(func() {
		c.cipher, err = c.initAsymmetricCipher()
		if err != nil {
			c.initErrors["cipher"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["cipher"]; exists {
		return nil, storedErr
	}
	return c.cipher, nil
}

// KMSService returns the KMS service.
func (c *Container) KMSService() cryptoService.KMSService {
	c.kmsServiceInit.Do(func() {
		c.kmsService = c.initKMSService()
	})
	return c.kmsService
}

// KeyMaterialProtector returns the protector applied to private keys before storage.
func (c *Container) KeyMaterialProtector() (cryptoService.KeyMaterialProtector, error) {
	var err error
	c.protectorInit.Do(func() {
		c.protector, err = c.initKeyMaterialProtector()
		if err != nil {
			c.initErrors["protector"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["protector"]; exists {
		return nil, storedErr
	}
	return c.protector, nil
}

// initKeyPairProvider creates the key pair provider backed by crypto/rand.
func (c *Container) initKeyPairProvider() cryptoService.KeyPairProvider {
	return cryptoService.NewRSAKeyPairProvider()
}

// initAsymmetricCipher creates the cipher for the configured padding scheme.
func (c *Container) initAsymmetricCipher() (cryptoService.AsymmetricCipher, error) {
	padding := cryptoDomain.Padding(c.config.RSAPadding)
	if padding == "" {
		padding = cryptoDomain.PaddingOAEP
	}

	cipher, err := cryptoService.NewRSACipher(padding)
	if err != nil {
		return nil, fmt.Errorf("failed to create rsa cipher: %w", err)
	}
	return cipher, nil
}

// initKMSService creates the KMS service for wrapping private key material.
func (c *Container) initKMSService() cryptoService.KMSService {
	return cryptoService.NewKMSService()
}

// initKeyMaterialProtector opens the KMS keeper when KMS_KEY_URI is set.
// Without a keeper, key material is stored as plain PEM.
func (c *Container) initKeyMaterialProtector() (cryptoService.KeyMaterialProtector, error) {
	if c.config.KMSKeyURI == "" {
		return cryptoService.NewPlaintextProtector(), nil
	}

	keeper, err := c.KMSService().OpenKeeper(context.Background(), c.config.KMSKeyURI)
	if err != nil {
		return nil, fmt.Errorf("failed to open kms keeper: %w", err)
	}
	c.kmsKeeper = keeper

	return cryptoService.NewKMSProtector(keeper), nil
}
