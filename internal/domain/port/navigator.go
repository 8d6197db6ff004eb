// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package port

import (
	"context"

	"github.com/linuxfoundation/lfx-v2-content-service/internal/domain/model"
)

// Navigator is the playback surface that performs navigation
type Navigator interface {
	// StoreResourceCloseURL records where to return once playback is closed
	StoreResourceCloseURL(ctx context.Context)

	// Navigate moves to the given route
	Navigate(ctx context.Context, route model.Route) error
}
