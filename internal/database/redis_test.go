package database

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectRedis(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		server := miniredis.RunT(t)

		client, err := ConnectRedis(context.Background(), RedisConfig{
			URL:            "redis://" + server.Addr() + "/0",
			RetryAttempts:  3,
			RetryInterval:  10 * time.Millisecond,
			ConnectTimeout: time.Second,
		})
		require.NoError(t, err)
		defer func() {
			assert.NoError(t, client.Close())
		}()

		assert.NoError(t, client.Ping(context.Background()).Err())
	})

	t.Run("Error_InvalidURL", func(t *testing.T) {
		client, err := ConnectRedis(context.Background(), RedisConfig{URL: "http://localhost"})
		assert.Nil(t, client)
		assert.ErrorContains(t, err, "failed to parse redis url")
	})

	t.Run("Error_ServerDown", func(t *testing.T) {
		server := miniredis.RunT(t)
		addr := server.Addr()
		server.Close()

		client, err := ConnectRedis(context.Background(), RedisConfig{
			URL:            "redis://" + addr + "/0",
			RetryAttempts:  2,
			RetryInterval:  10 * time.Millisecond,
			ConnectTimeout: time.Second,
		})
		assert.Nil(t, client)
		assert.ErrorIs(t, err, ErrRedisNotReady)
	})
}
