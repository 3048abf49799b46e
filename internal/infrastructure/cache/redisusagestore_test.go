package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boomerhub/boomerhub/internal/domain/usage"
	"github.com/boomerhub/boomerhub/internal/shared/logger"
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

func TestRedisUsageStore_GetMissing(t *testing.T) {
	store := NewRedisUsageStore(setupTestRedis(t), logger.NewNopLogger())

	missing, err := usage.NewUserIdentity("missing")
	require.NoError(t, err)

	_, err = store.Get(context.Background(), missing)
	assert.ErrorIs(t, err, usage.ErrRecordNotFound)
}

func TestRedisUsageStore_IncrementKeepsWindow(t *testing.T) {
	client := setupTestRedis(t)
	store := NewRedisUsageStore(client, logger.NewNopLogger())
	ctx := context.Background()
	guest, err := usage.NewGuestIdentity("a4f1e9d2-7c3b-4e8a-9f60-1b2c3d4e5f60", true)
	require.NoError(t, err)
	start := time.Date(2026, 2, 3, 10, 0, 0, 0, time.UTC)

	first, err := store.Increment(ctx, guest, 1, start)
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.Count())

	second, err := store.Increment(ctx, guest, 1, start.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(2), second.Count())
	assert.True(t, second.WindowStart().Equal(start))
	assert.True(t, second.Identity().IsGuest())

	ttl, err := client.TTL(ctx, usageKeyPrefix+"guest:"+guest.Key()).Result()
	require.NoError(t, err)
	assert.Equal(t, time.Duration(-1), ttl, "guest records never expire")
}

func TestRedisUsageStore_ConcurrentIncrements(t *testing.T) {
	store := NewRedisUsageStore(setupTestRedis(t), logger.NewNopLogger())
	ctx := context.Background()
	user, err := usage.NewUserIdentity("user-concurrent")
	require.NoError(t, err)
	now := time.Now()

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Increment(ctx, user, 1, now)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	record, err := store.Get(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, int64(n), record.Count())
}

func TestRedisUsageStore_SetOverwrites(t *testing.T) {
	client := setupTestRedis(t)
	store := NewRedisUsageStore(client, logger.NewNopLogger())
	ctx := context.Background()
	user, err := usage.NewUserIdentity("user-reset")
	require.NoError(t, err)
	day1 := time.Date(2026, 2, 3, 10, 0, 0, 0, time.UTC)

	record, err := store.Increment(ctx, user, 9, day1)
	require.NoError(t, err)

	record.ResetWindow(day1.Add(24 * time.Hour))
	require.NoError(t, store.Set(ctx, record))

	reloaded, err := store.Get(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, int64(0), reloaded.Count())
	assert.True(t, reloaded.WindowStart().Equal(day1.Add(24*time.Hour)))

	ttl, err := client.TTL(ctx, usageKeyPrefix+"user:"+user.Key()).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
}

func TestRedisUsageStore_GuestAndUserKeysDoNotCollide(t *testing.T) {
	store := NewRedisUsageStore(setupTestRedis(t), logger.NewNopLogger())
	ctx := context.Background()
	key := "5b6c7d8e-1f2a-4b3c-8d4e-5f6a7b8c9d0e"
	guest, err := usage.NewGuestIdentity(key, true)
	require.NoError(t, err)
	user, err := usage.NewUserIdentity(key)
	require.NoError(t, err)
	now := time.Date(2026, 2, 3, 10, 0, 0, 0, time.UTC)

	_, err = store.Increment(ctx, guest, 10, now)
	require.NoError(t, err)

	_, err = store.Get(ctx, user)
	assert.ErrorIs(t, err, usage.ErrRecordNotFound)

	record, err := store.Increment(ctx, user, 1, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), record.Count())
	assert.True(t, record.Identity().IsUser())

	record, err = store.Get(ctx, guest)
	require.NoError(t, err)
	assert.Equal(t, int64(10), record.Count())
	assert.True(t, record.Identity().IsGuest())
}
