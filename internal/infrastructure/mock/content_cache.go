// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package mock

import (
	"context"
	"sync"
	"time"

	"github.com/linuxfoundation/lfx-v2-content-service/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-content-service/internal/domain/port"
)

type cacheEntry struct {
	resp      *model.ServerResponse
	expiresAt time.Time
}

// MockContentCache is an in-process implementation of port.ContentCache
type MockContentCache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
	now     func() time.Time
	gets    int
	sets    int
}

// NewMockContentCache creates an empty in-memory cache
func NewMockContentCache() *MockContentCache {
	return &MockContentCache{
		entries: make(map[string]cacheEntry),
		now:     time.Now,
	}
}

// Get implements port.ContentCache
func (c *MockContentCache) Get(ctx context.Context, key string) (*model.ServerResponse, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++

	entry, ok := c.entries[key]
	if !ok {
		return nil, port.ErrCacheMiss
	}
	if !entry.expiresAt.IsZero() && c.now().After(entry.expiresAt) {
		delete(c.entries, key)
		return nil, port.ErrCacheMiss
	}
	return entry.resp, nil
}

// Set implements port.ContentCache; a zero ttl never expires
func (c *MockContentCache) Set(ctx context.Context, key string, resp *model.ServerResponse, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++

	entry := cacheEntry{resp: resp}
	if ttl > 0 {
		entry.expiresAt = c.now().Add(ttl)
	}
	c.entries[key] = entry
	return nil
}

// Close implements port.ContentCache
func (c *MockContentCache) Close() error {
	return nil
}

// Stats returns how many Get and Set calls were made
func (c *MockContentCache) Stats() (gets, sets int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gets, c.sets
}
