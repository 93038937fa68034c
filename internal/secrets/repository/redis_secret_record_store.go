package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	apperrors "github.com/allisson/nyx/internal/errors"
	secretsDomain "github.com/allisson/nyx/internal/secrets/domain"
)

// DefaultRedisKeyPrefix namespaces record keys in a shared Redis database.
const DefaultRedisKeyPrefix = "nyx:secret:"

// RedisSecretRecordStore implements SecretRecordStore on Redis. Each record is one
// JSON value under prefix+id; GETDEL gives the single-command take.
type RedisSecretRecordStore struct {
	client    redis.UniversalClient
	keyPrefix string
}

func (r *RedisSecretRecordStore) key(id uuid.UUID) string {
	return r.keyPrefix + id.String()
}

// Insert stores a new record with SET NX so an existing key is never overwritten.
func (r *RedisSecretRecordStore) Insert(
	ctx context.Context,
	ciphertext, privateKeyMaterial string,
) (*secretsDomain.SecretRecord, error) {
	record, err := secretsDomain.NewSecretRecord(ciphertext, privateKeyMaterial)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(record)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to encode secret record")
	}

	stored, err := r.client.SetNX(ctx, r.key(record.ID), payload, 0).Result()
	if err != nil {
		return nil, apperrors.Storage(err, "failed to insert secret record")
	}
	if !stored {
		return nil, apperrors.Wrap(apperrors.ErrConflict, "secret record id already in use")
	}

	return record, nil
}

// TakeAndDelete fetches and removes the key with one GETDEL command.
func (r *RedisSecretRecordStore) TakeAndDelete(
	ctx context.Context,
	id uuid.UUID,
) (*secretsDomain.SecretRecord, error) {
	payload, err := r.client.GetDel(ctx, r.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, secretsDomain.ErrSecretNotFound
		}
		return nil, apperrors.Storage(err, "failed to take secret record")
	}

	var record secretsDomain.SecretRecord
	if err := json.Unmarshal(payload, &record); err != nil {
		return nil, fmt.Errorf("%w: %w", secretsDomain.ErrCorruptedSecret, err)
	}

	return &record, nil
}

// Delete removes the key and reports whether it existed.
func (r *RedisSecretRecordStore) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	removed, err := r.client.Del(ctx, r.key(id)).Result()
	if err != nil {
		return false, apperrors.Storage(err, "failed to delete secret record")
	}
	return removed > 0, nil
}

// Ping checks the Redis connection.
func (r *RedisSecretRecordStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// NewRedisSecretRecordStore creates a new Redis SecretRecordStore instance. An
// empty keyPrefix selects DefaultRedisKeyPrefix.
func NewRedisSecretRecordStore(client redis.UniversalClient, keyPrefix string) *RedisSecretRecordStore {
	if keyPrefix == "" {
		keyPrefix = DefaultRedisKeyPrefix
	}
	return &RedisSecretRecordStore{client: client, keyPrefix: keyPrefix}
}
