// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/linuxfoundation/lfx-v2-content-service/cmd/service"
	"github.com/linuxfoundation/lfx-v2-content-service/internal/config"
	usecase "github.com/linuxfoundation/lfx-v2-content-service/internal/service"
	"github.com/linuxfoundation/lfx-v2-content-service/pkg/constants"
	logging "github.com/linuxfoundation/lfx-v2-content-service/pkg/log"
)

func main() {
	// Flags override the matching configuration keys.
	var (
		configF = flag.String("config", "", "path to a YAML configuration file")
		dbgF    = flag.Bool("d", false, "enable debug logging and debug endpoints")
		port    = flag.String("p", "", "listen port")
		bind    = flag.String("bind", "", "interface to bind on")
	)
	flag.Usage = func() {
		flag.PrintDefaults()
		os.Exit(2)
	}
	flag.Parse()

	cfg, err := config.Load(*configF, constants.DefaultContentGetFields)
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}
	if *dbgF {
		cfg.Server.Debug = true
	}
	if *port != "" {
		cfg.Server.Port = *port
	}
	if *bind != "" {
		cfg.Server.Bind = *bind
	}

	logging.InitStructureLogConfig(logging.Config{
		Level:     cfg.Log.Level,
		AddSource: cfg.Log.AddSource,
	})

	ctx := context.Background()
	slog.InfoContext(ctx, "Starting content service",
		"addr", cfg.Server.Addr(),
		"debug", cfg.Server.Debug,
		"content-api-source", cfg.ContentAPI.Source,
		"content-cache-source", cfg.ContentCache.Source,
		"graceful-shutdown", cfg.Server.GracefulShutdown,
	)

	// Initialize the collaborators based on configuration
	contentAPI := service.ContentAPIImpl(ctx, cfg.ContentAPI)
	contentCache := service.ContentCacheImpl(ctx, cfg.ContentCache, cfg.Redis)
	pageKey := service.PageTokenKeyImpl(ctx, cfg.Paging)

	contentSvc := service.NewContentSvc(contentAPI, contentCache, usecase.PlayerSettings{
		BuildNumber:               cfg.Player.BuildNumber,
		EnableTelemetryValidation: cfg.Player.EnableTelemetryValidation,
		ContentGetFields:          cfg.Player.ContentGetFields,
		CacheTTL:                  cfg.ContentCache.TTL,
		FetchTimeout:              cfg.ContentAPI.Timeout * time.Duration(cfg.ContentAPI.MaxRetries+1),
	}, pageKey, cfg.Paging.DefaultPageSize)

	// Create channel used by both the signal handler and server goroutines
	// to notify the main goroutine when to stop the server.
	errc := make(chan error)

	go func() {
		c := make(chan os.Signal, 1)
		signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
		errc <- fmt.Errorf("%s", <-c)
	}()

	var wg sync.WaitGroup
	ctx, cancel := context.WithCancel(ctx)

	handleHTTPServer(ctx, cfg.Server, contentSvc, &wg, errc)

	// Wait for signal.
	slog.InfoContext(ctx, "received shutdown signal, stopping servers",
		"signal", <-errc,
	)

	// Send cancellation signal to the goroutines.
	cancel()

	// Wait for the HTTP server to drain before releasing the cache connection
	wg.Wait()

	if contentCache != nil {
		slog.InfoContext(ctx, "closing content cache")
		if err := contentCache.Close(); err != nil {
			slog.ErrorContext(ctx, "failed to close content cache", "error", err)
		}
	}

	slog.InfoContext(ctx, "exited")
}
