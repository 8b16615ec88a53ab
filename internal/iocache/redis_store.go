package iocache

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/auralab/aura/internal/contract"
	"github.com/auralab/aura/schema"
)

// redisKeyPrefix namespaces cache entries so a shared Redis instance can
// hold unrelated data alongside the determinism cache.
const redisKeyPrefix = "aura:result:"

// Hash field names for one cache entry.
const (
	redisFieldPayload  = "payload"
	redisFieldVersion  = "layout_version"
	redisFieldStoredAt = "stored_at"
)

const redisOpTimeout = 5 * time.Second

// RedisStore persists determinism-cache entries in Redis, one hash per key.
// Entries carry no TTL since cache keys are content-addressed.
type RedisStore struct {
	client *redis.Client
}

var _ contract.CacheStore = &RedisStore{} // Compile-time check

// NewRedisStore connects to Redis using either a host:port address or a
// redis:// URL.
func NewRedisStore(connStr string) (contract.CacheStore, error) {
	var opts *redis.Options
	if strings.Contains(connStr, "://") {
		parsed, err := redis.ParseURL(connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse Redis URL %q: %w", connStr, err)
		}
		opts = parsed
	} else {
		opts = &redis.Options{Addr: connStr}
	}

	client := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %q. Check that the server is running: %w", connStr, err)
	}

	return &RedisStore{client: client}, nil
}

// Get retrieves a cached payload by key. Missing keys report sql.ErrNoRows
// so callers can treat every backend the same way.
func (rs *RedisStore) Get(key string) ([]byte, int, int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	fields, err := rs.client.HGetAll(ctx, redisKeyPrefix+key).Result()
	if err != nil {
		return nil, 0, 0, err
	}
	if len(fields) == 0 {
		return nil, 0, 0, sql.ErrNoRows
	}

	version, err := strconv.Atoi(fields[redisFieldVersion])
	if err != nil {
		return nil, 0, 0, fmt.Errorf("corrupt cache entry %s: bad version: %w", key, err)
	}
	storedAt, err := strconv.ParseInt(fields[redisFieldStoredAt], 10, 64)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("corrupt cache entry %s: bad timestamp: %w", key, err)
	}
	return []byte(fields[redisFieldPayload]), version, storedAt, nil
}

// Set inserts or replaces a cache entry.
func (rs *RedisStore) Set(key string, value []byte, version int, timestamp int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	return rs.client.HSet(ctx, redisKeyPrefix+key, map[string]any{
		redisFieldPayload:  value,
		redisFieldVersion:  version,
		redisFieldStoredAt: timestamp,
	}).Err()
}

// GetStatus returns status information about the Redis store. It scans the
// keyspace, so the entry count is approximate under concurrent writes.
func (rs *RedisStore) GetStatus() (schema.CacheStatus, error) {
	status := schema.CacheStatus{
		Backend: string(schema.RedisBackend),
	}

	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	if err := rs.client.Ping(ctx).Err(); err != nil {
		return status, nil
	}
	status.Connected = true

	var lastTs, oldestTs int64
	iter := rs.client.Scan(ctx, 0, redisKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		status.TotalEntries++

		raw, err := rs.client.HGet(ctx, iter.Val(), redisFieldStoredAt).Result()
		if err != nil {
			continue
		}
		ts, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			continue
		}
		if lastTs == 0 || ts > lastTs {
			lastTs = ts
		}
		if oldestTs == 0 || ts < oldestTs {
			oldestTs = ts
		}

		size, err := rs.client.MemoryUsage(ctx, iter.Val()).Result()
		if err == nil {
			status.TableSizeBytes += size
		}
	}
	if err := iter.Err(); err != nil {
		return status, fmt.Errorf("failed to scan cache keys: %w", err)
	}

	if status.TotalEntries > 0 {
		status.LastEntryTime = time.Unix(lastTs, 0)
		status.OldestEntryTime = time.Unix(oldestTs, 0)
	}
	return status, nil
}

// Close closes the Redis client.
func (rs *RedisStore) Close() error {
	return rs.client.Close()
}

// clearRedisCache connects to Redis and removes all namespaced cache keys.
func clearRedisCache(connStr string) error {
	store, err := NewRedisStore(connStr)
	if err != nil {
		return err
	}
	rs := store.(*RedisStore)
	defer func() { _ = rs.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	iter := rs.client.Scan(ctx, 0, redisKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := rs.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("failed to delete cache key %s: %w", iter.Val(), err)
		}
	}
	return iter.Err()
}
