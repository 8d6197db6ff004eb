// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package mock

import (
	"context"
	"sync"

	"github.com/linuxfoundation/lfx-v2-content-service/internal/domain/model"
)

// MockNavigator records navigation calls in order
type MockNavigator struct {
	mu     sync.Mutex
	events []string
	routes []model.Route
	err    error
}

// NewMockNavigator creates a navigator that accepts every route
func NewMockNavigator() *MockNavigator {
	return &MockNavigator{}
}

// SetError makes Navigate fail with err
func (n *MockNavigator) SetError(err error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.err = err
}

// StoreResourceCloseURL implements port.Navigator
func (n *MockNavigator) StoreResourceCloseURL(ctx context.Context) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, "store-close-url")
}

// Navigate implements port.Navigator
func (n *MockNavigator) Navigate(ctx context.Context, route model.Route) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, "navigate:"+route.Path())
	n.routes = append(n.routes, route)
	return n.err
}

// Events returns the recorded calls in order
func (n *MockNavigator) Events() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.events...)
}

// Routes returns the routes navigated to
func (n *MockNavigator) Routes() []model.Route {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]model.Route(nil), n.routes...)
}
