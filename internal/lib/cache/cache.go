// Package cache provides a small JSON-backed Redis cache for dashboard
// read models. Reads and writes are best-effort: a miss or a Redis
// failure never fails the request, the caller just hits the database.
package cache

import (
	"context"
	"encoding/json"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Cache keys for the dashboard read models.
const (
	KeyCardData = "dashboard:cards"
	KeyRevenue  = "dashboard:revenue"
)

// View is a generic JSON cache bound to a specific view type T.
// TTL zero means keys do not expire.
type View[T any] struct {
	client *goredis.Client
	ttl    time.Duration
	log    *zerolog.Logger
}

// NewView creates a View cache backed by the provided Redis client.
func NewView[T any](client *goredis.Client, ttl time.Duration, log *zerolog.Logger) *View[T] {
	return &View[T]{client: client, ttl: ttl, log: log}
}

// Get retrieves and unmarshals a value.
// Returns (nil, false) on any miss or deserialization error.
func (c *View[T]) Get(ctx context.Context, key string) (*T, bool) {
	if c.client == nil {
		return nil, false
	}
	data, err := c.client.Get(ctx, key).Result()
	if err != nil {
		return nil, false
	}
	var v T
	if err := json.Unmarshal([]byte(data), &v); err != nil {
		return nil, false
	}
	return &v, true
}

// Set marshals value and stores it under key. Errors are logged rather
// than returned; a cache write miss is non-fatal.
func (c *View[T]) Set(ctx context.Context, key string, value *T) {
	if c.client == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("view cache marshal failed")
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("view cache write failed")
	}
}

// Delete removes a key.
func (c *View[T]) Delete(ctx context.Context, key string) {
	if c.client == nil {
		return
	}
	if err := c.client.Del(ctx, key).Err(); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("view cache delete failed")
	}
}
