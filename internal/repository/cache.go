package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Cache is a JSON read-through cache in redis. A nil *Cache, or one without a
// client, is a valid no-op cache. Cache failures are logged and never
// surface to callers.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
	log zerolog.Logger
}

// NewCache creates a Cache. Pass a nil client to disable caching.
func NewCache(rdb *redis.Client, ttl time.Duration, log zerolog.Logger) *Cache {
	return &Cache{
		rdb: rdb,
		ttl: ttl,
		log: log.With().Str("component", "cache").Logger(),
	}
}

// Enabled reports whether reads and writes reach redis.
func (c *Cache) Enabled() bool {
	return c != nil && c.rdb != nil && c.ttl > 0
}

// get decodes key into dst and reports a hit.
func (c *Cache) get(ctx context.Context, key string, dst interface{}) bool {
	if !c.Enabled() {
		return false
	}

	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn().Err(err).Str("key", key).Msg("Cache read failed")
		}
		return false
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("Cache entry corrupt, ignoring")
		return false
	}
	return true
}

func (c *Cache) set(ctx context.Context, key string, v interface{}) {
	if !c.Enabled() {
		return
	}

	raw, err := json.Marshal(v)
	if err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("Cache encode failed")
		return
	}
	if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("Cache write failed")
	}
}

// deletePattern removes every key matching pattern, plus the listed keys.
func (c *Cache) deletePattern(ctx context.Context, pattern string, keys ...string) error {
	if !c.Enabled() {
		return nil
	}

	iter := c.rdb.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.rdb.Del(ctx, keys...).Err()
}
