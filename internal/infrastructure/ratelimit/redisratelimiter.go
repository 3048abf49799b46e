package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLimiter is a fixed-window limiter shared across instances through Redis.
type RedisLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
	prefix string
}

func NewRedisLimiter(client *redis.Client, limit int, window time.Duration) (*RedisLimiter, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("rate limit must be positive, got %d", limit)
	}
	if window <= 0 {
		return nil, fmt.Errorf("rate limit window must be positive, got %s", window)
	}
	return &RedisLimiter{
		client: client,
		limit:  limit,
		window: window,
		prefix: "ratelimit:ai:",
	}, nil
}

// consumeScript counts one request only while the window has room, so rejected
// requests never extend the count. The first request of a window sets its expiry.
// Returns {allowed, count, pttl}.
var consumeScript = redis.NewScript(`
local count = tonumber(redis.call('GET', KEYS[1]) or '0')
if count >= tonumber(ARGV[1]) then
	return {0, count, redis.call('PTTL', KEYS[1])}
end
count = redis.call('INCR', KEYS[1])
if count == 1 then
	redis.call('PEXPIRE', KEYS[1], ARGV[2])
end
return {1, count, redis.call('PTTL', KEYS[1])}
`)

// Consume counts one request against key's fixed window. A full window rejects
// the request without counting it.
func (l *RedisLimiter) Consume(ctx context.Context, key string) (*Decision, error) {
	now := time.Now()

	res, err := consumeScript.Run(ctx, l.client, []string{l.prefix + key}, l.limit, l.window.Milliseconds()).Int64Slice()
	if err != nil {
		return nil, fmt.Errorf("failed to execute rate limit script: %w", err)
	}
	if len(res) != 3 {
		return nil, fmt.Errorf("unexpected rate limit script reply: %v", res)
	}
	allowed, count, pttl := res[0] == 1, int(res[1]), res[2]

	resetsAt := now.Add(l.window)
	if pttl > 0 {
		resetsAt = now.Add(time.Duration(pttl) * time.Millisecond)
	}

	if !allowed {
		return nil, newRateLimitError(key, l.limit, resetsAt, now)
	}

	return &Decision{
		Key:       key,
		Count:     count,
		Limit:     l.limit,
		Remaining: l.limit - count,
		ResetsAt:  resetsAt,
	}, nil
}

// Reset clears key's window.
func (l *RedisLimiter) Reset(ctx context.Context, key string) error {
	if err := l.client.Del(ctx, l.prefix+key).Err(); err != nil {
		return fmt.Errorf("failed to reset rate limit for %s: %w", key, err)
	}
	return nil
}
