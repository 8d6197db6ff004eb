// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("", "name,body")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 25*time.Second, cfg.Server.GracefulShutdown)
	assert.Equal(t, "http", cfg.ContentAPI.Source)
	assert.Equal(t, 30*time.Second, cfg.ContentAPI.Timeout)
	assert.Equal(t, 2, cfg.ContentAPI.MaxRetries)
	assert.Equal(t, "name,body", cfg.Player.ContentGetFields)
	assert.Equal(t, "none", cfg.ContentCache.Source)
	assert.Equal(t, 5*time.Minute, cfg.ContentCache.TTL)
	assert.Equal(t, 20, cfg.Paging.DefaultPageSize)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("CONTENT_API_SOURCE", "mock")
	t.Setenv("CONTENT_API_TIMEOUT", "5s")
	t.Setenv("CONTENT_API_REQUESTS_PER_SECOND", "12.5")
	t.Setenv("PLAYER_BUILD_NUMBER", "2.4.0.7f3a")
	t.Setenv("PLAYER_ENABLE_TELEMETRY_VALIDATION", "true")
	t.Setenv("REDIS_DB", "3")

	cfg, err := Load("", "")
	require.NoError(t, err)

	assert.Equal(t, "mock", cfg.ContentAPI.Source)
	assert.Equal(t, 5*time.Second, cfg.ContentAPI.Timeout)
	assert.Equal(t, 12.5, cfg.ContentAPI.RequestsPerSecond)
	assert.Equal(t, "2.4.0.7f3a", cfg.Player.BuildNumber)
	assert.True(t, cfg.Player.EnableTelemetryValidation)
	assert.Equal(t, 3, cfg.Redis.DB)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  port: "9090"
  bind: 127.0.0.1
content_cache:
  source: redis
  ttl: 1m
redis:
  address: cache:6379
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path, "")
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9090", cfg.Server.Addr())
	assert.Equal(t, "redis", cfg.ContentCache.Source)
	assert.Equal(t, time.Minute, cfg.ContentCache.TTL)
	assert.Equal(t, "cache:6379", cfg.Redis.Address)
	// untouched keys keep their defaults
	assert.Equal(t, "http", cfg.ContentAPI.Source)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), "")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			ContentAPI:   ContentAPIConfig{Source: "http"},
			ContentCache: ContentCacheConfig{Source: "none"},
			Paging:       PagingConfig{DefaultPageSize: 20},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "unknown api source", mutate: func(c *Config) { c.ContentAPI.Source = "grpc" }, wantErr: true},
		{name: "unknown cache source", mutate: func(c *Config) { c.ContentCache.Source = "memcached" }, wantErr: true},
		{name: "zero page size", mutate: func(c *Config) { c.Paging.DefaultPageSize = 0 }, wantErr: true},
		{name: "cache without ttl", mutate: func(c *Config) { c.ContentCache.Source = "mock" }, wantErr: true},
		{
			name: "cache with ttl",
			mutate: func(c *Config) {
				c.ContentCache.Source = "redis"
				c.ContentCache.TTL = time.Minute
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestServerAddr(t *testing.T) {
	assert.Equal(t, ":8080", ServerConfig{Port: "8080", Bind: "*"}.Addr())
	assert.Equal(t, ":8080", ServerConfig{Port: "8080"}.Addr())
	assert.Equal(t, "0.0.0.0:8080", ServerConfig{Port: "8080", Bind: "0.0.0.0"}.Addr())
}
