// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package config loads the service configuration from defaults, an optional
// YAML file and the environment. Every key can be overridden by the upper-cased
// key with dots replaced by underscores, e.g. CONTENT_API_SOURCE.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/linuxfoundation/lfx-v2-content-service/pkg/constants"
)

// Config is the full service configuration
type Config struct {
	Server       ServerConfig       `mapstructure:"server"`
	Log          LogConfig          `mapstructure:"log"`
	ContentAPI   ContentAPIConfig   `mapstructure:"content_api"`
	Player       PlayerConfig       `mapstructure:"player"`
	ContentCache ContentCacheConfig `mapstructure:"content_cache"`
	Redis        RedisConfig        `mapstructure:"redis"`
	Paging       PagingConfig       `mapstructure:"paging"`
}

type ServerConfig struct {
	Port  string `mapstructure:"port"`
	Bind  string `mapstructure:"bind"`
	Debug bool   `mapstructure:"debug"`
	// GracefulShutdown bounds how long in-flight requests may take on shutdown
	GracefulShutdown time.Duration `mapstructure:"graceful_shutdown"`
}

type LogConfig struct {
	Level     string `mapstructure:"level"`
	AddSource bool   `mapstructure:"add_source"`
}

// ContentAPIConfig selects and configures the backend content API client
type ContentAPIConfig struct {
	// Source is http or mock
	Source            string        `mapstructure:"source"`
	ContentBaseURL    string        `mapstructure:"content_base_url"`
	LearnerBaseURL    string        `mapstructure:"learner_base_url"`
	PublicBaseURL     string        `mapstructure:"public_base_url"`
	HealthPath        string        `mapstructure:"health_path"`
	APIKey            string        `mapstructure:"api_key"`
	Timeout           time.Duration `mapstructure:"timeout"`
	MaxRetries        int           `mapstructure:"max_retries"`
	RetryDelay        time.Duration `mapstructure:"retry_delay"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second"`
	Burst             int           `mapstructure:"burst"`
}

type PlayerConfig struct {
	BuildNumber               string `mapstructure:"build_number"`
	EnableTelemetryValidation bool   `mapstructure:"enable_telemetry_validation"`
	ContentGetFields          string `mapstructure:"content_get_fields"`
}

// ContentCacheConfig selects the read cache of content and hierarchy envelopes
type ContentCacheConfig struct {
	// Source is none, redis or mock
	Source string        `mapstructure:"source"`
	TTL    time.Duration `mapstructure:"ttl"`
	Prefix string        `mapstructure:"prefix"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type PagingConfig struct {
	// Secret encrypts page tokens; a random secret is used when empty
	Secret          string `mapstructure:"secret"`
	DefaultPageSize int    `mapstructure:"default_page_size"`
}

// Defaults are registered for every key so that AutomaticEnv can override any of them
func setDefaults(v *viper.Viper, defaultFields string) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.bind", "*")
	v.SetDefault("server.debug", false)
	v.SetDefault("server.graceful_shutdown", "25s")

	v.SetDefault("log.level", "debug")
	v.SetDefault("log.add_source", false)

	v.SetDefault("content_api.source", "http")
	v.SetDefault("content_api.content_base_url", "http://localhost:3000/action")
	v.SetDefault("content_api.learner_base_url", "http://localhost:3000/learner")
	v.SetDefault("content_api.public_base_url", "http://localhost:3000/api")
	v.SetDefault("content_api.health_path", "health")
	v.SetDefault("content_api.api_key", "")
	v.SetDefault("content_api.timeout", "30s")
	v.SetDefault("content_api.max_retries", 2)
	v.SetDefault("content_api.retry_delay", "1s")
	v.SetDefault("content_api.requests_per_second", 0)
	v.SetDefault("content_api.burst", 1)

	v.SetDefault("player.build_number", "")
	v.SetDefault("player.enable_telemetry_validation", false)
	v.SetDefault("player.content_get_fields", defaultFields)

	v.SetDefault("content_cache.source", "none")
	v.SetDefault("content_cache.ttl", "5m")
	v.SetDefault("content_cache.prefix", "content")

	v.SetDefault("redis.address", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("paging.secret", "")
	v.SetDefault("paging.default_page_size", constants.DefaultPageSize)
}

// Load reads the configuration. configPath is optional; when set the file must exist.
// defaultFields is the default fields parameter of content reads.
func Load(configPath, defaultFields string) (*Config, error) {
	v := viper.New()
	setDefaults(v, defaultFields)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the source selectors and numeric bounds
func (c *Config) Validate() error {
	switch c.ContentAPI.Source {
	case "http", "mock":
	default:
		return fmt.Errorf("unsupported content API source: %s", c.ContentAPI.Source)
	}

	switch c.ContentCache.Source {
	case "none", "redis", "mock":
	default:
		return fmt.Errorf("unsupported content cache source: %s", c.ContentCache.Source)
	}

	if c.Paging.DefaultPageSize <= 0 {
		return fmt.Errorf("paging default page size must be positive, got %d", c.Paging.DefaultPageSize)
	}
	if c.ContentCache.Source != "none" && c.ContentCache.TTL <= 0 {
		return fmt.Errorf("content cache TTL must be positive, got %s", c.ContentCache.TTL)
	}

	return nil
}

// Addr returns the listen address
func (s ServerConfig) Addr() string {
	if s.Bind == "*" || s.Bind == "" {
		return ":" + s.Port
	}
	return s.Bind + ":" + s.Port
}
