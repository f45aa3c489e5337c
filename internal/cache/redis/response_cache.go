package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/davidbz/ember/internal/observability"
)

// ResponseCache implements domain.ResponseCache on top of Redis strings.
type ResponseCache struct {
	client *redis.Client
}

// NewResponseCache creates a cache backed by client.
func NewResponseCache(client *redis.Client) *ResponseCache {
	return &ResponseCache{client: client}
}

// NewClient connects to Redis and verifies the connection.
func NewClient(ctx context.Context, cfg *Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr, err)
	}

	return client, nil
}

// Get returns the cached text for key.
func (c *ResponseCache) Get(ctx context.Context, key string) (string, bool, error) {
	text, err := c.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("cache get failed: %w", err)
	}

	observability.FromContext(ctx).Debug("cache hit", observability.String("cache_key", key))
	return text, true, nil
}

// Set stores text under key. A non-positive ttl stores without expiry.
func (c *ResponseCache) Set(ctx context.Context, key string, text string, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}

	if err := c.client.Set(ctx, key, text, ttl).Err(); err != nil {
		return fmt.Errorf("cache set failed: %w", err)
	}

	observability.FromContext(ctx).Debug("cache stored",
		observability.String("cache_key", key),
		observability.Duration("ttl", ttl))
	return nil
}
