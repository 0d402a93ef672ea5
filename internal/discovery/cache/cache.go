// Package cache provides a short-lived read-through cache for first-page
// discovery results. Nearby users repeatedly hit the same nearest query on
// page load, so the hottest key is cached with a small TTL.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"shopwise_backend/internal/discovery/transport"
)

// ResultCache caches serialized search responses in redis.
type ResultCache struct {
	client *redis.Client
	ttl    time.Duration
}

// New creates a result cache. A nil client disables caching.
func New(client *redis.Client, ttl time.Duration) *ResultCache {
	return &ResultCache{client: client, ttl: ttl}
}

// Key builds a cache key from the coordinate (rounded to ~100 m so nearby
// callers share entries), radius and page size.
func Key(lat, lng, radiusKm float64, limit int) string {
	return fmt.Sprintf("discovery:nearest:%.3f:%.3f:%.1f:%d", lat, lng, radiusKm, limit)
}

// Get returns the cached response for the key, or ok=false on miss.
func (c *ResultCache) Get(ctx context.Context, key string) (transport.SearchResponse, bool) {
	if c == nil || c.client == nil {
		return transport.SearchResponse{}, false
	}

	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			// Treat redis trouble as a miss; search still works without it.
			return transport.SearchResponse{}, false
		}
		return transport.SearchResponse{}, false
	}

	var resp transport.SearchResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return transport.SearchResponse{}, false
	}
	return resp, true
}

// Set stores the response under the key for the configured TTL.
func (c *ResultCache) Set(ctx context.Context, key string, resp transport.SearchResponse) {
	if c == nil || c.client == nil {
		return
	}

	raw, err := json.Marshal(resp)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, key, raw, c.ttl).Err()
}
