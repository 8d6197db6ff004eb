// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package rediscache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewContentCacheRequiresAddress(t *testing.T) {
	_, err := NewContentCache(context.Background(), Config{})
	assert.Error(t, err)
}

func TestNewContentCacheFailsWhenUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	// nothing listens on port 1
	_, err := NewContentCache(ctx, Config{Address: "127.0.0.1:1"})
	assert.Error(t, err)
}

func TestKeyPrefix(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	defer client.Close()

	tests := []struct {
		name     string
		prefix   string
		key      string
		expected string
	}{
		{name: "default prefix", prefix: "", key: "read:do_1", expected: "content:read:do_1"},
		{name: "custom prefix", prefix: "player", key: "hierarchy:do_2", expected: "player:hierarchy:do_2"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cache := newContentCache(client, tc.prefix)
			require.NotNil(t, cache)
			assert.Equal(t, tc.expected, cache.key(tc.key))
		})
	}
}
