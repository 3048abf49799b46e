package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   15,
	})

	ctx := context.Background()
	err := client.Ping(ctx).Err()
	if err != nil {
		t.Skipf("Redis not available: %v", err)
	}

	client.FlushDB(ctx)

	t.Cleanup(func() {
		client.FlushDB(ctx)
		client.Close()
	})

	return client
}

func TestRedisLimiter_Consume(t *testing.T) {
	client := setupTestRedis(t)
	limiter, err := NewRedisLimiter(client, 5, time.Hour)
	require.NoError(t, err)
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		d, err := limiter.Consume(ctx, "test-key")
		require.NoError(t, err, "request %d should be allowed", i)
		assert.Equal(t, 5-i, d.Remaining)
	}

	_, err = limiter.Consume(ctx, "test-key")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrLimitExceeded)

	var rlErr *RateLimitError
	require.ErrorAs(t, err, &rlErr)
	assert.Equal(t, 60, rlErr.Minutes())
}

func TestRedisLimiter_RejectedRequestsAreNotCounted(t *testing.T) {
	client := setupTestRedis(t)
	limiter, err := NewRedisLimiter(client, 3, time.Hour)
	require.NoError(t, err)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := limiter.Consume(ctx, "full")
		require.NoError(t, err)
	}
	for i := 0; i < 5; i++ {
		_, err := limiter.Consume(ctx, "full")
		require.ErrorIs(t, err, ErrLimitExceeded)
	}

	count, err := client.Get(ctx, "ratelimit:ai:full").Int()
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	ttl, err := client.PTTL(ctx, "ratelimit:ai:full").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
}

func TestRedisLimiter_WindowIsFixed(t *testing.T) {
	client := setupTestRedis(t)
	limiter, err := NewRedisLimiter(client, 10, time.Hour)
	require.NoError(t, err)
	ctx := context.Background()

	_, err = limiter.Consume(ctx, "fixed")
	require.NoError(t, err)
	require.NoError(t, client.PExpire(ctx, "ratelimit:ai:fixed", 30*time.Minute).Err())

	_, err = limiter.Consume(ctx, "fixed")
	require.NoError(t, err)

	ttl, err := client.PTTL(ctx, "ratelimit:ai:fixed").Result()
	require.NoError(t, err)
	assert.LessOrEqual(t, ttl, 30*time.Minute)
}

func TestRedisLimiter_Reset(t *testing.T) {
	client := setupTestRedis(t)
	limiter, err := NewRedisLimiter(client, 1, time.Minute)
	require.NoError(t, err)
	ctx := context.Background()

	_, err = limiter.Consume(ctx, "reset-key")
	require.NoError(t, err)
	_, err = limiter.Consume(ctx, "reset-key")
	require.Error(t, err)

	require.NoError(t, limiter.Reset(ctx, "reset-key"))

	_, err = limiter.Consume(ctx, "reset-key")
	assert.NoError(t, err)
}
