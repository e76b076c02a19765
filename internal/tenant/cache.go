package tenant

import (
	"context"
	"encoding/json"
	"time"

	"taleschool_backend/platform/logger"

	"github.com/redis/go-redis/v9"
)

// Cache is a read-through cache for slug → school lookups. Implementations
// must treat every failure as a miss; the resolver always has the store to
// fall back on.
type Cache interface {
	Get(ctx context.Context, slug string) (School, bool)
	Set(ctx context.Context, slug string, school School)
	Invalidate(ctx context.Context, slug string)
}

const cacheKeyPrefix = "tenant:school:"

// RedisCache caches resolved schools in Redis with a bounded TTL. Only found
// schools are cached (including inactive ones); not-found lookups are not.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *logger.Logger
}

// NewRedisCache creates a Redis-backed tenant cache.
func NewRedisCache(client *redis.Client, ttl time.Duration, log *logger.Logger) *RedisCache {
	return &RedisCache{client: client, ttl: ttl, log: log}
}

// Get returns the cached school for slug, if present.
func (c *RedisCache) Get(ctx context.Context, slug string) (School, bool) {
	raw, err := c.client.Get(ctx, cacheKeyPrefix+slug).Bytes()
	if err != nil {
		return School{}, false
	}

	var school School
	if err := json.Unmarshal(raw, &school); err != nil {
		return School{}, false
	}
	return school, true
}

// Set stores a school under its slug.
func (c *RedisCache) Set(ctx context.Context, slug string, school School) {
	raw, err := json.Marshal(school)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, cacheKeyPrefix+slug, raw, c.ttl).Err(); err != nil && c.log != nil {
		c.log.Warn("tenant cache set failed", "slug", slug, "error", err)
	}
}

// Invalidate drops the cached entry for slug.
func (c *RedisCache) Invalidate(ctx context.Context, slug string) {
	if err := c.client.Del(ctx, cacheKeyPrefix+slug).Err(); err != nil && c.log != nil {
		c.log.Warn("tenant cache invalidate failed", "slug", slug, "error", err)
	}
}

var _ Cache = (*RedisCache)(nil)
