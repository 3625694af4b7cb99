package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const filterOptionsKey = "vehicles:filter-options"

// FilterCache holds the serialized filter-options aggregate in redis with a
// bounded TTL. Cache failures are logged and treated as misses so the read
// path can always fall back to recomputing from the store.
type FilterCache struct {
	client *redis.Client
	ttl    time.Duration
	log    zerolog.Logger
}

func NewFilterCache(client *redis.Client, ttl time.Duration, log zerolog.Logger) *FilterCache {
	return &FilterCache{client: client, ttl: ttl, log: log}
}

func (c *FilterCache) Get(ctx context.Context) ([]byte, bool) {
	payload, err := c.client.Get(ctx, filterOptionsKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn().Err(err).Msg("filter cache read failed")
		}
		return nil, false
	}
	return payload, true
}

func (c *FilterCache) Set(ctx context.Context, payload []byte) {
	if err := c.client.Set(ctx, filterOptionsKey, payload, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Msg("filter cache write failed")
	}
}

// Invalidate drops the cached aggregate. Called on every vehicle mutation.
func (c *FilterCache) Invalidate(ctx context.Context) {
	if err := c.client.Del(ctx, filterOptionsKey).Err(); err != nil {
		c.log.Warn().Err(err).Msg("filter cache invalidation failed")
	}
}
