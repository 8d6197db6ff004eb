// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package rediscache

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/linuxfoundation/lfx-v2-content-service/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-content-service/internal/domain/port"
)

// Config holds the Redis connection settings
type Config struct {
	Address  string
	Password string
	DB       int
	// Prefix namespaces every key written by the cache
	Prefix string
}

// ContentCache stores content envelopes in Redis
type ContentCache struct {
	client *redis.Client
	prefix string
}

// NewContentCache connects to Redis and verifies the connection
func NewContentCache(ctx context.Context, cfg Config) (*ContentCache, error) {
	if cfg.Address == "" {
		return nil, fmt.Errorf("redis address is required")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	slog.InfoContext(ctx, "redis content cache initialized", "address", cfg.Address, "db", cfg.DB)

	return newContentCache(client, cfg.Prefix), nil
}

func newContentCache(client *redis.Client, prefix string) *ContentCache {
	if prefix == "" {
		prefix = "content"
	}
	return &ContentCache{client: client, prefix: prefix}
}

func (c *ContentCache) key(key string) string {
	return c.prefix + ":" + key
}

// Get implements port.ContentCache
func (c *ContentCache) Get(ctx context.Context, key string) (*model.ServerResponse, error) {
	data, err := c.client.Get(ctx, c.key(key)).Bytes()
	if err != nil {
		if stderrors.Is(err, redis.Nil) {
			return nil, port.ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to get from redis: %w", err)
	}

	var resp model.ServerResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cache data: %w", err)
	}

	return &resp, nil
}

// Set implements port.ContentCache
func (c *ContentCache) Set(ctx context.Context, key string, resp *model.ServerResponse, ttl time.Duration) error {
	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("failed to marshal cache data: %w", err)
	}

	if err := c.client.Set(ctx, c.key(key), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set in redis: %w", err)
	}

	return nil
}

// Close implements port.ContentCache
func (c *ContentCache) Close() error {
	return c.client.Close()
}
