// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"log/slog"

	"github.com/linuxfoundation/lfx-v2-content-service/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-content-service/internal/domain/port"
	"github.com/linuxfoundation/lfx-v2-content-service/pkg/constants"
)

// DecidePlaybackRoute picks where a content card navigates to without playing it inline.
// ECML and every other non-collection MIME type share the resource route.
func DecidePlaybackRoute(content model.PlaybackContent) model.Route {
	if content.MimeType != constants.MimeTypeCollection {
		return model.Route{Kind: model.RouteResource, ID: content.Identifier}
	}

	if content.ContentType != constants.ContentTypeCourse {
		return model.Route{Kind: model.RouteCollection, ID: content.Identifier}
	}

	if content.BatchID != "" {
		id := content.CourseID
		if id == "" {
			id = content.Identifier
		}
		return model.Route{Kind: model.RouteCourse, ID: id, BatchID: content.BatchID}
	}

	return model.Route{Kind: model.RouteCourse, ID: content.Identifier}
}

// Play records the close URL, then navigates once the caller's current work
// has completed. The returned channel yields the navigation result and is closed.
func (b *PlayerConfigBuilder) Play(ctx context.Context, content model.PlaybackContent, navigator port.Navigator) <-chan error {
	navigator.StoreResourceCloseURL(ctx)

	route := DecidePlaybackRoute(content)
	done := make(chan error, 1)

	// navigation outlives the request that triggered it
	navCtx := context.WithoutCancel(ctx)
	go func() {
		defer close(done)
		err := navigator.Navigate(navCtx, route)
		if err != nil {
			slog.ErrorContext(navCtx, "playback navigation failed", "route", route.Path(), "error", err)
		}
		done <- err
	}()

	return done
}
