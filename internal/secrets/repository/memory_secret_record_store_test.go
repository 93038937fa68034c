package repository

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	secretsDomain "github.com/allisson/nyx/internal/secrets/domain"
)

func TestMemorySecretRecordStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemorySecretRecordStore()

	record, err := store.Insert(ctx, "Y2lwaGVy", "pem")
	require.NoError(t, err)
	assert.Equal(t, 1, store.Len())

	taken, err := store.TakeAndDelete(ctx, record.ID)
	require.NoError(t, err)
	assert.Equal(t, *record, *taken)
	assert.Equal(t, 0, store.Len())

	_, err = store.TakeAndDelete(ctx, record.ID)
	assert.ErrorIs(t, err, secretsDomain.ErrSecretNotFound)

	deleted, err := store.Delete(ctx, uuid.New())
	require.NoError(t, err)
	assert.False(t, deleted)

	assert.NoError(t, store.Ping(ctx))
}

func TestMemorySecretRecordStore_ConcurrentTake(t *testing.T) {
	ctx := context.Background()
	store := NewMemorySecretRecordStore()

	record, err := store.Insert(ctx, "Y2lwaGVy", "pem")
	require.NoError(t, err)

	var successes, misses atomic.Int32
	var g errgroup.Group
	for range 100 {
		g.Go(func() error {
			_, err := store.TakeAndDelete(ctx, record.ID)
			switch {
			case err == nil:
				successes.Add(1)
			case errors.Is(err, secretsDomain.ErrSecretNotFound):
				misses.Add(1)
			default:
				return err
			}
			return nil
		})
	}

	require.NoError(t, g.Wait())
	assert.Equal(t, int32(1), successes.Load())
	assert.Equal(t, int32(99), misses.Load())
}
