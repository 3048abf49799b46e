package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/boomerhub/boomerhub/internal/domain/usage"
	"github.com/boomerhub/boomerhub/internal/shared/logger"
)

const (
	usageKeyPrefix = "usage:record:"

	// A user record untouched for this long belongs to an earlier business day,
	// so dropping it is equivalent to the daily reset.
	userRecordTTL = 48 * time.Hour

	fieldType        = "type"
	fieldCount       = "count"
	fieldWindowStart = "window_start"
	fieldCreatedAt   = "created_at"
	fieldUpdatedAt   = "updated_at"
)

// RedisUsageStore implements usage.Store with one Redis hash per identity, keyed
// usage:record:<type>:<key>.
type RedisUsageStore struct {
	client *redis.Client
	logger logger.Interface
}

// NewRedisUsageStore creates a new Redis-backed usage store
func NewRedisUsageStore(client *redis.Client, logger logger.Interface) *RedisUsageStore {
	return &RedisUsageStore{
		client: client,
		logger: logger,
	}
}

func (s *RedisUsageStore) key(identity usage.Identity) string {
	return usageKeyPrefix + identity.String()
}

// Get loads the record for identity
func (s *RedisUsageStore) Get(ctx context.Context, identity usage.Identity) (*usage.UsageRecord, error) {
	result, err := s.client.HGetAll(ctx, s.key(identity)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get usage record from redis: %w", err)
	}
	if len(result) == 0 {
		return nil, usage.ErrRecordNotFound
	}
	return s.decode(identity, result)
}

// Set overwrites every field of the record
func (s *RedisUsageStore) Set(ctx context.Context, record *usage.UsageRecord) error {
	identity := record.Identity()
	key := s.key(identity)

	fields := map[string]interface{}{
		fieldType:        identity.Type().String(),
		fieldCount:       record.Count(),
		fieldWindowStart: record.WindowStart().UnixMilli(),
		fieldCreatedAt:   record.CreatedAt().UnixMilli(),
		fieldUpdatedAt:   record.UpdatedAt().UnixMilli(),
	}

	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, fields)
		s.applyTTL(ctx, pipe, key, identity)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to set usage record in redis: %w", err)
	}

	s.logger.Debugw("usage record stored",
		"identity", identity.Key(),
		"count", record.Count(),
	)
	return nil
}

// Increment adds delta with HINCRBY inside MULTI/EXEC. Window and creation
// fields are only written when the record is new.
func (s *RedisUsageStore) Increment(ctx context.Context, identity usage.Identity, delta int64, now time.Time) (*usage.UsageRecord, error) {
	key := s.key(identity)
	nowMs := now.UTC().UnixMilli()

	var all *redis.MapStringStringCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSetNX(ctx, key, fieldType, identity.Type().String())
		pipe.HSetNX(ctx, key, fieldWindowStart, nowMs)
		pipe.HSetNX(ctx, key, fieldCreatedAt, nowMs)
		pipe.HIncrBy(ctx, key, fieldCount, delta)
		pipe.HSet(ctx, key, fieldUpdatedAt, nowMs)
		s.applyTTL(ctx, pipe, key, identity)
		all = pipe.HGetAll(ctx, key)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to increment usage record in redis: %w", err)
	}

	return s.decode(identity, all.Val())
}

func (s *RedisUsageStore) applyTTL(ctx context.Context, pipe redis.Pipeliner, key string, identity usage.Identity) {
	if identity.IsUser() {
		pipe.Expire(ctx, key, userRecordTTL)
		return
	}
	pipe.Persist(ctx, key)
}

func (s *RedisUsageStore) decode(identity usage.Identity, fields map[string]string) (*usage.UsageRecord, error) {
	count, err := strconv.ParseInt(fields[fieldCount], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("usage record %q: invalid count: %w", identity.String(), err)
	}

	return usage.ReconstructUsageRecord(
		identity,
		count,
		parseMillis(fields[fieldWindowStart]),
		parseMillis(fields[fieldCreatedAt]),
		parseMillis(fields[fieldUpdatedAt]),
	), nil
}

func parseMillis(v string) time.Time {
	ms, _ := strconv.ParseInt(v, 10, 64)
	return time.UnixMilli(ms).UTC()
}
