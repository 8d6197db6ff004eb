// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"log"
	"log/slog"

	"github.com/google/uuid"

	"github.com/linuxfoundation/lfx-v2-content-service/internal/config"
	"github.com/linuxfoundation/lfx-v2-content-service/internal/domain/port"
	"github.com/linuxfoundation/lfx-v2-content-service/internal/infrastructure/contentapi"
	"github.com/linuxfoundation/lfx-v2-content-service/internal/infrastructure/mock"
	"github.com/linuxfoundation/lfx-v2-content-service/internal/infrastructure/rediscache"
	"github.com/linuxfoundation/lfx-v2-content-service/pkg/paging"
)

// ContentAPIImpl injects the backend content API implementation
func ContentAPIImpl(ctx context.Context, cfg config.ContentAPIConfig) port.ContentAPI {

	switch cfg.Source {
	case "mock":
		slog.InfoContext(ctx, "initializing mock content API")
		return mock.NewMockContentAPI()

	case "http":
		apiConfig := contentapi.Config{
			ContentBaseURL:    cfg.ContentBaseURL,
			LearnerBaseURL:    cfg.LearnerBaseURL,
			PublicBaseURL:     cfg.PublicBaseURL,
			HealthPath:        cfg.HealthPath,
			APIKey:            cfg.APIKey,
			Timeout:           cfg.Timeout,
			MaxRetries:        cfg.MaxRetries,
			RetryDelay:        cfg.RetryDelay,
			RequestsPerSecond: cfg.RequestsPerSecond,
			Burst:             cfg.Burst,
		}

		client, err := contentapi.NewClient(apiConfig)
		if err != nil {
			log.Fatalf("failed to initialize content API client: %v", err)
		}

		slog.InfoContext(ctx, "initializing HTTP content API",
			"content_base_url", cfg.ContentBaseURL,
			"learner_base_url", cfg.LearnerBaseURL,
			"public_base_url", cfg.PublicBaseURL,
			"timeout", cfg.Timeout,
			"max_retries", cfg.MaxRetries,
			"requests_per_second", cfg.RequestsPerSecond,
		)
		return client

	default:
		log.Fatalf("unsupported content API implementation: %s", cfg.Source)
	}

	return nil
}

// ContentCacheImpl injects the content cache implementation; nil disables caching
func ContentCacheImpl(ctx context.Context, cfg config.ContentCacheConfig, redisCfg config.RedisConfig) port.ContentCache {

	switch cfg.Source {
	case "none":
		slog.InfoContext(ctx, "content cache disabled")
		return nil

	case "mock":
		slog.InfoContext(ctx, "initializing in-memory content cache", "ttl", cfg.TTL)
		return mock.NewMockContentCache()

	case "redis":
		cache, err := rediscache.NewContentCache(ctx, rediscache.Config{
			Address:  redisCfg.Address,
			Password: redisCfg.Password,
			DB:       redisCfg.DB,
			Prefix:   cfg.Prefix,
		})
		if err != nil {
			log.Fatalf("failed to initialize redis content cache: %v", err)
		}
		return cache

	default:
		log.Fatalf("unsupported content cache implementation: %s", cfg.Source)
	}

	return nil
}

// PageTokenKeyImpl derives the page token key; a random secret is generated when none is configured
func PageTokenKeyImpl(ctx context.Context, cfg config.PagingConfig) *[32]byte {
	secret := cfg.Secret
	if secret == "" {
		slog.WarnContext(ctx, "no page token secret configured, page tokens will not survive a restart")
		secret = uuid.NewString()
	}
	return paging.SecretKey(secret)
}
