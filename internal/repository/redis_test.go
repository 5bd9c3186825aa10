package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisRateLimiter(t *testing.T) {
	s, err := miniredis.Run()
	require.NoError(t, err)
	defer s.Close()

	client := redis.NewClient(&redis.Options{
		Addr: s.Addr(),
	})
	defer client.Close()

	limiter := NewRedisRateLimiter(client)
	ctx := context.Background()

	t.Run("AllowsUpToLimit", func(t *testing.T) {
		for i := 0; i < 3; i++ {
			allowed, err := limiter.CheckRateLimit(ctx, "user:1", 3, time.Minute)
			require.NoError(t, err)
			assert.True(t, allowed)
		}

		allowed, err := limiter.CheckRateLimit(ctx, "user:1", 3, time.Minute)
		require.NoError(t, err)
		assert.False(t, allowed)
	})

	t.Run("KeysAreIndependent", func(t *testing.T) {
		allowed, err := limiter.CheckRateLimit(ctx, "user:2", 3, time.Minute)
		require.NoError(t, err)
		assert.True(t, allowed)
	})

	t.Run("WindowResets", func(t *testing.T) {
		for i := 0; i < 2; i++ {
			_, err := limiter.CheckRateLimit(ctx, "user:3", 2, time.Minute)
			require.NoError(t, err)
		}
		allowed, err := limiter.CheckRateLimit(ctx, "user:3", 2, time.Minute)
		require.NoError(t, err)
		assert.False(t, allowed)

		s.FastForward(2 * time.Minute)

		allowed, err = limiter.CheckRateLimit(ctx, "user:3", 2, time.Minute)
		require.NoError(t, err)
		assert.True(t, allowed)
	})

	t.Run("NilClient", func(t *testing.T) {
		nilLimiter := NewRedisRateLimiter(nil)
		_, err := nilLimiter.CheckRateLimit(ctx, "user:1", 3, time.Minute)
		assert.Error(t, err)
	})
}

func TestPingAndClose(t *testing.T) {
	s, err := miniredis.Run()
	require.NoError(t, err)
	defer s.Close()

	client := redis.NewClient(&redis.Options{Addr: s.Addr()})
	ctx := context.Background()

	assert.NoError(t, Ping(ctx, client))
	assert.NoError(t, Close(client))
	assert.NoError(t, Close(nil))
}
