// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package contentapi

import (
	"fmt"
	"time"

	"github.com/linuxfoundation/lfx-v2-content-service/pkg/constants"
)

var (
	defaultContentBaseURL = "http://localhost:3000/action"
	defaultLearnerBaseURL = "http://localhost:3000/learner"
	defaultPublicBaseURL  = "http://localhost:3000/api"
	defaultHealthPath     = "health"
)

// Config holds the configuration for the backend content API client
type Config struct {
	// ContentBaseURL is the base URL of the content API (composite and course search)
	ContentBaseURL string

	// LearnerBaseURL is the base URL of the learner API (user, org and batch search)
	LearnerBaseURL string

	// PublicBaseURL is the base URL of the public API (content read, hierarchy, content search)
	PublicBaseURL string

	// HealthPath is requested on the public API by readiness checks
	HealthPath string

	// APIKey, when set, is sent as a bearer token
	APIKey string

	// Timeout is the HTTP client timeout for API requests
	Timeout time.Duration

	// MaxRetries is the maximum number of retry attempts for failed requests
	MaxRetries int

	// RetryDelay is the delay between retry attempts
	RetryDelay time.Duration

	// RequestsPerSecond caps outbound requests; zero disables the limit
	RequestsPerSecond float64

	// Burst is the rate limiter bucket size
	Burst int
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() Config {
	return Config{
		ContentBaseURL: defaultContentBaseURL,
		LearnerBaseURL: defaultLearnerBaseURL,
		PublicBaseURL:  defaultPublicBaseURL,
		HealthPath:     defaultHealthPath,
		Timeout:        30 * time.Second,
		MaxRetries:     2,
		RetryDelay:     1 * time.Second,
		Burst:          1,
	}
}

// BaseURL returns the base URL of the given API surface
func (c Config) BaseURL(surface constants.APISurface) (string, error) {
	var base string
	switch surface {
	case constants.SurfaceContent:
		base = c.ContentBaseURL
	case constants.SurfaceLearner:
		base = c.LearnerBaseURL
	case constants.SurfacePublic:
		base = c.PublicBaseURL
	default:
		return "", fmt.Errorf("unknown API surface %q", surface)
	}
	if base == "" {
		return "", fmt.Errorf("no base URL configured for API surface %q", surface)
	}
	return base, nil
}

// Validate fills defaults and rejects unusable values
func (c *Config) Validate() error {
	if c.ContentBaseURL == "" {
		c.ContentBaseURL = defaultContentBaseURL
	}
	if c.LearnerBaseURL == "" {
		c.LearnerBaseURL = defaultLearnerBaseURL
	}
	if c.PublicBaseURL == "" {
		c.PublicBaseURL = defaultPublicBaseURL
	}
	if c.HealthPath == "" {
		c.HealthPath = defaultHealthPath
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("invalid timeout %v", c.Timeout)
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("invalid max retries %d", c.MaxRetries)
	}
	if c.RequestsPerSecond < 0 {
		return fmt.Errorf("invalid requests per second %v", c.RequestsPerSecond)
	}
	return nil
}
