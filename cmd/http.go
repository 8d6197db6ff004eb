// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"goa.design/clue/debug"
	goahttp "goa.design/goa/v3/http"

	"github.com/linuxfoundation/lfx-v2-content-service/cmd/service"
	"github.com/linuxfoundation/lfx-v2-content-service/internal/config"
	"github.com/linuxfoundation/lfx-v2-content-service/internal/middleware"
)

// handleHTTPServer configures and starts a HTTP server on the configured
// address. It shuts down the server once ctx is cancelled.
func handleHTTPServer(ctx context.Context, cfg config.ServerConfig, contentSvc *service.ContentSvc, wg *sync.WaitGroup, errc chan error) {

	// Provide the transport specific request decoder and response encoder.
	var (
		dec = goahttp.RequestDecoder
		enc = goahttp.ResponseEncoder
	)

	// Build the service HTTP request multiplexer and mount debug and profiler
	// endpoints in debug mode.
	var mux goahttp.Muxer
	{
		mux = goahttp.NewMuxer()
		if cfg.Debug {
			// Mount pprof handlers for memory profiling under /debug/pprof.
			debug.MountPprofHandlers(debug.Adapt(mux))
			// Mount /debug endpoint to enable or disable debug logs at runtime.
			debug.MountDebugLogEnabler(debug.Adapt(mux))
		}
	}

	mounts := service.Mount(mux, contentSvc, dec, enc)
	mux.Handle(http.MethodGet, "/metrics", promhttp.Handler().ServeHTTP)

	var handler http.Handler = mux

	handler = middleware.AccessLogMiddleware()(handler)

	// RequestID runs first so that every later log record carries it
	handler = middleware.RequestIDMiddleware()(handler)

	if cfg.Debug {
		// Log query and response bodies if debug logs are enabled.
		handler = debug.HTTP()(handler)
	}

	srv := &http.Server{Addr: cfg.Addr(), Handler: handler, ReadHeaderTimeout: time.Second * 60}
	for _, m := range mounts {
		slog.InfoContext(ctx, "HTTP endpoint mounted",
			"method", m.Method,
			"verb", m.Verb,
			"pattern", m.Pattern,
		)
	}

	wg.Add(1)
	go func() {
		defer wg.Done()

		// Start HTTP server in a separate goroutine.
		go func() {
			slog.InfoContext(ctx, "HTTP server listening", "host", cfg.Addr())
			errc <- srv.ListenAndServe()
		}()

		<-ctx.Done()
		slog.InfoContext(ctx, "shutting down HTTP server", "host", cfg.Addr())

		ctx, cancel := context.WithTimeout(context.Background(), cfg.GracefulShutdown)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			slog.ErrorContext(ctx, "failed to shutdown HTTP server", "error", err)
		}
	}()
}
