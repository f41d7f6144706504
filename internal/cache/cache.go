// Package cache provides a small Redis-backed JSON cache for catalogue reads.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"tofi-shop/internal/config"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
)

// Key builders. Shared so the order service can invalidate what the catalog
// service cached.
const FeaturedKey = "products:featured"

// ProductKey returns the cache key for a single product.
func ProductKey(id string) string {
	return "product:" + id
}

// Cache wraps a Redis client with JSON marshalling helpers.
type Cache struct {
	client *redis.Client
	logger zerolog.Logger
}

// New creates a Redis-backed cache and verifies connectivity.
func New(ctx context.Context, cfg config.RedisConfig, logger zerolog.Logger) (*Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	logger.Info().Str("addr", cfg.Addr).Msg("redis cache connected")

	return &Cache{
		client: client,
		logger: logger.With().Str("component", "cache").Logger(),
	}, nil
}

// GetJSON reads a key and unmarshals it into dest. The bool reports whether
// the key was present.
func (c *Cache) GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	data, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to get cache key %s: %w", key, err)
	}

	if err := json.Unmarshal([]byte(data), dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal cache key %s: %w", key, err)
	}
	return true, nil
}

// SetJSON marshals value and stores it under key with the given TTL.
func (c *Cache) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value for %s: %w", key, err)
	}
	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set cache key %s: %w", key, err)
	}
	return nil
}

// Delete removes the given keys. Missing keys are not an error.
func (c *Cache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to delete cache keys: %w", err)
	}
	return nil
}

// Close closes the underlying Redis client.
func (c *Cache) Close() error {
	return c.client.Close()
}
