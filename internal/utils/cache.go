package utils

import (
	"context"       // Request-scoped Redis calls
	"encoding/json" // Cached payloads are stored as JSON
	"sync"          // Guards the stale key set
	"time"          // Entry lifetime

	"github.com/redis/go-redis/v9" // Redis client
)

// Keys of the cached public reads
const (
	MarkersCacheKey     = "markers:all"
	WasteDailyCacheKey  = "waste_data:daily"
	WasteWeeklyCacheKey = "waste_data:weekly"
)

// GetCache loads the JSON stored under key into dest. found is false on a
// miss or when rdb is nil, in which case the caller reads the database.
func GetCache(ctx context.Context, rdb *redis.Client, key string, dest any) (bool, error) {
	if rdb == nil {
		return false, nil // No Redis configured
	}
	val, err := rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	} else if err != nil {
		return false, err
	}
	return true, json.Unmarshal([]byte(val), dest)
}

// SetCache stores value under key as JSON for ttl
func SetCache(ctx context.Context, rdb *redis.Client, key string, value any, ttl time.Duration) error {
	if rdb == nil {
		return nil
	}
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return rdb.Set(ctx, key, b, ttl).Err()
}

// DeleteCache drops keys after the rows behind them changed
func DeleteCache(ctx context.Context, rdb *redis.Client, keys ...string) error {
	if rdb == nil || len(keys) == 0 {
		return nil
	}
	return rdb.Del(ctx, keys...).Err()
}

// Cache is the read-through cache in front of the marker list and the waste
// statistics. Keys whose invalidation failed are marked stale: reads skip
// Redis for them until a fresh value has been written back.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration

	mu    sync.Mutex
	stale map[string]struct{}
}

// NewCache wraps rdb; a nil client disables caching
func NewCache(rdb *redis.Client, ttl time.Duration) *Cache {
	return &Cache{rdb: rdb, ttl: ttl, stale: make(map[string]struct{})}
}

// Get reports a miss for stale keys without asking Redis
func (c *Cache) Get(ctx context.Context, key string, dest any) (bool, error) {
	if c.isStale(key) {
		return false, nil
	}
	return GetCache(ctx, c.rdb, key, dest)
}

// Set writes value with the cache TTL; a successful write clears the stale mark
func (c *Cache) Set(ctx context.Context, key string, value any) error {
	if err := SetCache(ctx, c.rdb, key, value, c.ttl); err != nil {
		return err
	}
	c.mu.Lock()
	delete(c.stale, key)
	c.mu.Unlock()
	return nil
}

// Invalidate deletes keys. When Redis refuses, the keys stay stale until the
// next successful Set, so no read serves the outdated entry.
func (c *Cache) Invalidate(ctx context.Context, keys ...string) error {
	err := DeleteCache(ctx, c.rdb, keys...)
	if err != nil {
		c.mu.Lock()
		for _, k := range keys {
			c.stale[k] = struct{}{}
		}
		c.mu.Unlock()
	}
	return err
}

func (c *Cache) isStale(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.stale[key]
	return ok
}
