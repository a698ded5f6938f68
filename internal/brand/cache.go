package brand

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const cacheKeyPrefix = "brand:manual:"

// Cache wraps Redis based caching of manuals by id. A nil cache is a no-op.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache instantiates the cache helper.
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// Get returns the cached manual, reporting a miss on any error.
func (c *Cache) Get(ctx context.Context, id uuid.UUID) (Manual, bool) {
	if c == nil || c.client == nil {
		return Manual{}, false
	}
	raw, err := c.client.Get(ctx, cacheKeyPrefix+id.String()).Bytes()
	if err != nil {
		return Manual{}, false
	}
	var m Manual
	if err := json.Unmarshal(raw, &m); err != nil {
		return Manual{}, false
	}
	return m, true
}

// Set stores the manual with the configured TTL.
func (c *Cache) Set(ctx context.Context, m Manual) error {
	if c == nil || c.client == nil {
		return nil
	}
	raw, err := json.Marshal(m)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, cacheKeyPrefix+m.ID.String(), raw, c.ttl).Err()
}

// Invalidate drops a manual from the cache.
func (c *Cache) Invalidate(ctx context.Context, id uuid.UUID) error {
	if c == nil || c.client == nil {
		return nil
	}
	err := c.client.Del(ctx, cacheKeyPrefix+id.String()).Err()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	return err
}
