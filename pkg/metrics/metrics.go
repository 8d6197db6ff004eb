// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package metrics provides Prometheus metrics for the content service
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// UpstreamRequestsTotal counts backend API requests by surface, endpoint and outcome
	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "content_service_upstream_requests_total",
			Help: "Total number of requests sent to the backend content APIs",
		},
		[]string{"surface", "endpoint", "status"},
	)

	// UpstreamRequestDuration observes backend API latency by surface and endpoint
	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "content_service_upstream_request_duration_seconds",
			Help:    "Duration of backend content API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"surface", "endpoint"},
	)

	// HTTPRetriesTotal counts retried outbound HTTP attempts
	HTTPRetriesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "content_service_http_retries_total",
			Help: "Total number of retried outbound HTTP attempts",
		},
	)

	// SearchCompositionsTotal counts composed search requests by entity kind
	SearchCompositionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "content_service_search_compositions_total",
			Help: "Total number of composed search requests",
		},
		[]string{"kind"},
	)

	// PlayerConfigsTotal counts derived player configurations by content MIME type
	PlayerConfigsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "content_service_player_configs_total",
			Help: "Total number of player configurations built",
		},
		[]string{"mime_type"},
	)

	// ContentCacheLookupsTotal counts content cache lookups by result (hit, miss, error)
	ContentCacheLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "content_service_content_cache_lookups_total",
			Help: "Total number of content cache lookups",
		},
		[]string{"result"},
	)
)
