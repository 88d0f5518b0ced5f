package metadata

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const cacheKeyPrefix = "pagemeta:"

// RedisCache caches extraction results in Redis so re-adding the same link
// does not re-fetch the page. All operations are best-effort.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

// NewRedisCache constructs a cache with the given entry TTL.
func NewRedisCache(client *redis.Client, ttl time.Duration, log *zap.Logger) *RedisCache {
	return &RedisCache{client: client, ttl: ttl, log: log}
}

// Get returns the cached metadata for url, if present.
func (c *RedisCache) Get(ctx context.Context, url string) (*Meta, bool) {
	data, err := c.client.Get(ctx, cacheKeyPrefix+url).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Debug("metadata cache get failed", zap.String("url", url), zap.Error(err))
		}
		return nil, false
	}
	var m Meta
	if err := json.Unmarshal(data, &m); err != nil {
		c.log.Debug("metadata cache entry corrupt", zap.String("url", url), zap.Error(err))
		return nil, false
	}
	return &m, true
}

// Set stores metadata for url with the configured TTL.
func (c *RedisCache) Set(ctx context.Context, url string, m *Meta) {
	data, err := json.Marshal(m)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, cacheKeyPrefix+url, data, c.ttl).Err(); err != nil {
		c.log.Debug("metadata cache set failed", zap.String("url", url), zap.Error(err))
	}
}
