package utils

import (
	"context"       // Context for Redis operations
	"encoding/json" // JSON encoding/decoding
	"errors"        // Error values
	"time"          // Time durations

	"github.com/redis/go-redis/v9" // Redis client
)

// Cache key builders
const (
	profileKeyPrefix = "account:profile:" // Prefix for per-account profile entries
	AccountsListKey  = "admin:accounts"   // Key for the admin account listing
	versionKeySuffix = ":ver"             // Suffix of the version counter guarding a key
	versionTTL       = 24 * time.Hour     // Lifetime of version counters
)

// ErrStaleCache is returned when a cache write lost the race against an invalidation
var ErrStaleCache = errors.New("cache entry invalidated during read")

// ProfileKey returns the cache key of an account profile
func ProfileKey(email string) string {
	return profileKeyPrefix + email
}

// versionKey returns the counter bumped whenever key is invalidated
func versionKey(key string) string {
	return key + versionKeySuffix
}

// GetCache retrieves a value from Redis and unmarshals it into dest
func GetCache(ctx context.Context, rdb *redis.Client, key string, dest any) (bool, error) {
	if rdb == nil {
		return false, nil // Caching disabled
	}
	val, err := rdb.Get(ctx, key).Result() // Get value from Redis
	if err == redis.Nil {
		return false, nil // Key does not exist
	} else if err != nil {
		return false, err // Other Redis error
	}
	return true, json.Unmarshal([]byte(val), dest) // Unmarshal JSON into dest
}

// CacheVersion returns the current version of key, empty when it was never invalidated
func CacheVersion(ctx context.Context, rdb *redis.Client, key string) (string, error) {
	if rdb == nil {
		return "", nil // Caching disabled
	}
	ver, err := rdb.Get(ctx, versionKey(key)).Result() // Get version counter
	if err == redis.Nil {
		return "", nil // Never invalidated
	}
	return ver, err
}

// SetCache stores value under key only if key's version still equals version.
// The version must be read before the value was loaded from the database.
func SetCache(ctx context.Context, rdb *redis.Client, key, version string, value any, ttl time.Duration) error {
	if rdb == nil {
		return nil // Caching disabled
	}
	b, err := json.Marshal(value) // Marshal value to JSON
	if err != nil {
		return err // Return error if marshaling fails
	}
	verKey := versionKey(key)
	// WATCH the version so an invalidation between the check and the SET aborts the transaction
	err = rdb.Watch(ctx, func(tx *redis.Tx) error {
		cur, err := tx.Get(ctx, verKey).Result()
		if err == redis.Nil {
			cur = ""
		} else if err != nil {
			return err
		}
		if cur != version {
			return ErrStaleCache // A mutation completed after the value was read
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, b, ttl) // Set value in Redis with TTL
			return nil
		})
		return err
	}, verKey)
	if errors.Is(err, redis.TxFailedErr) {
		return ErrStaleCache
	}
	return err
}

// InvalidateCache bumps the version of each key and deletes its cached value
func InvalidateCache(ctx context.Context, rdb *redis.Client, keys ...string) error {
	if rdb == nil || len(keys) == 0 {
		return nil // Caching disabled or nothing to invalidate
	}
	_, err := rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, key := range keys {
			pipe.Incr(ctx, versionKey(key))               // Fence out in-flight readers
			pipe.Expire(ctx, versionKey(key), versionTTL) // Let counters of idle keys expire
			pipe.Del(ctx, key)                            // Drop the cached value
		}
		return nil
	})
	return err
}
