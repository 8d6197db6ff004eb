// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package port

import (
	"context"

	"github.com/linuxfoundation/lfx-v2-content-service/internal/domain/model"
)

// ContentAPI defines the behavior of the backend content/learner/public REST APIs
// This abstraction allows different transports (HTTP, in-memory mock, etc.)
// without the domain layer knowing about specific implementations
type ContentAPI interface {
	// Get issues a GET request and returns the decoded envelope
	Get(ctx context.Context, req model.APIRequest) (*model.ServerResponse, error)

	// Post issues a POST request with a JSON body and returns the decoded envelope
	Post(ctx context.Context, req model.APIRequest) (*model.ServerResponse, error)

	// IsReady checks if the backend is reachable
	IsReady(ctx context.Context) error
}
