package app

import (
	"fmt"

	"github.com/allisson/nyx/internal/config"
	secretsHTTP "github.com/allisson/nyx/internal/secrets/http"
	secretsRepository "github.com/allisson/nyx/internal/secrets/repository"
	secretsUseCase "github.com/allisson/nyx/internal/secrets/usecase"
)

// SecretRecordStore returns the secret record store selected by SECRET_STORE.
func (c *Container) SecretRecordStore() (secretsUseCase.SecretRecordStore, error) {
	var err error
	c.secretStoreInit.Do(func() {
		c.secretStore, err = c.initSecretRecordStore()
		if err != nil {
			c.initErrors["secretStore"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["secretStore"]; exists {
		return nil, storedErr
	}
	return c.secretStore, nil
}

// SecretUseCase returns the secret use case.
func (c *Container) SecretUseCase() (secretsUseCase.SecretUseCase, error) {
	var err error
	c.secretUseCaseInit.Do(func() {
		c.secretUseCase, err = c.initSecretUseCase()
		if err != nil {
			c.initErrors["secretUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["secretUseCase"]; exists {
		return nil, storedErr
	}
	return c.secretUseCase, nil
}

// SecretHandler returns the HTTP handler for secret operations.
func (c *Container) SecretHandler() (*secretsHTTP.SecretHandler, error) {
	var err error
	c.secretHandlerInit.Do(func() {
		c.secretHandler, err = c.initSecretHandler()
		if err != nil {
			c.initErrors["secretHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["secretHandler"]; exists {
		return nil, storedErr
	}
	return c.secretHandler, nil
}

// initSecretRecordStore creates the store for the configured backend.
func (c *Container) initSecretRecordStore() (secretsUseCase.SecretRecordStore, error) {
	switch c.config.SecretStore {
	case config.SecretStoreMemory:
		c.Logger().Warn("using in-memory secret store; secrets are lost on restart")
		return secretsRepository.NewMemorySecretRecordStore(), nil

	case config.SecretStoreRedis:
		client, err := c.RedisClient()
		if err != nil {
			return nil, fmt.Errorf("failed to get redis client for secret store: %w", err)
		}
		return secretsRepository.NewRedisSecretRecordStore(client, c.config.RedisKeyPrefix), nil

	case config.SecretStoreDatabase, "":
		db, err := c.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get database for secret store: %w", err)
		}

		switch c.config.DBDriver {
		case "postgres":
			return secretsRepository.NewPostgreSQLSecretRecordStore(db), nil
		case "mysql":
			txManager, err := c.TxManager()
			if err != nil {
				return nil, fmt.Errorf("failed to get tx manager for secret store: %w", err)
			}
			return secretsRepository.NewMySQLSecretRecordStore(db, txManager), nil
		default:
			return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}

	default:
		return nil, fmt.Errorf("unsupported secret store: %s", c.config.SecretStore)
	}
}

// initSecretUseCase creates the secret use case with all its dependencies.
func (c *Container) initSecretUseCase() (secretsUseCase.SecretUseCase, error) {
	store, err := c.SecretRecordStore()
	if err != nil {
		return nil, fmt.Errorf("failed to get secret store for secret use case: %w", err)
	}

	cipher, err := c.AsymmetricCipher()
	if err != nil {
		return nil, fmt.Errorf("failed to get cipher for secret use case: %w", err)
	}

	protector, err := c.KeyMaterialProtector()
	if err != nil {
		return nil, fmt.Errorf("failed to get key material protector for secret use case: %w", err)
	}

	baseUseCase := secretsUseCase.NewSecretUseCase(
		c.KeyPairProvider(),
		cipher,
		protector,
		store,
		c.config.RSAKeySizeBits,
		c.Logger(),
	)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for secret use case: %w", err)
		}
		return secretsUseCase.NewSecretUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initSecretHandler creates the secret HTTP handler with all its dependencies.
func (c *Container) initSecretHandler() (*secretsHTTP.SecretHandler, error) {
	secretUseCase, err := c.SecretUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get secret use case for secret handler: %w", err)
	}

	return secretsHTTP.NewSecretHandler(secretUseCase, c.config.MaxPlaintextBytes, c.Logger()), nil
}
