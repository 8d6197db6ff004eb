// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package port

import (
	"context"
	"errors"
	"time"

	"github.com/linuxfoundation/lfx-v2-content-service/internal/domain/model"
)

// ErrCacheMiss is returned by ContentCache.Get when the key is absent
var ErrCacheMiss = errors.New("cache miss")

// ContentCache stores content and hierarchy envelopes between reads
type ContentCache interface {
	Get(ctx context.Context, key string) (*model.ServerResponse, error)
	Set(ctx context.Context, key string, resp *model.ServerResponse, ttl time.Duration) error
	Close() error
}
