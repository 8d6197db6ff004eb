// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"log/slog"

	"github.com/linuxfoundation/lfx-v2-content-service/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-content-service/internal/domain/port"
	usecase "github.com/linuxfoundation/lfx-v2-content-service/internal/service"
	"github.com/linuxfoundation/lfx-v2-content-service/pkg/errors"
)

// ContentSvc exposes query composition and player configuration over HTTP
type ContentSvc struct {
	contentAPI      port.ContentAPI
	composer        *usecase.QueryComposer
	builder         *usecase.PlayerConfigBuilder
	pageKey         *[32]byte
	defaultPageSize int
}

// Search composes a search of kind, sends it and returns one page of results
func (s *ContentSvc) Search(ctx context.Context, kind string, p *SearchPayload) (*SearchResponse, error) {

	slog.DebugContext(ctx, "contentSvc.search",
		"kind", kind,
		"query", p.Query,
	)

	entityKind := model.EntityKind(kind)
	if !entityKind.Valid() {
		return nil, wrapError(ctx, errors.NewValidation("unknown search kind "+kind))
	}

	params, err := s.payloadToSearchParams(ctx, p)
	if err != nil {
		return nil, wrapError(ctx, err)
	}

	req, err := s.composer.Compose(entityKind, params)
	if err != nil {
		return nil, wrapError(ctx, err)
	}

	resp, err := s.composer.Execute(ctx, req)
	if err != nil {
		return nil, wrapError(ctx, err)
	}

	result, err := s.composer.ExtractResult(entityKind, resp)
	if err != nil {
		return nil, wrapError(ctx, err)
	}

	res, err := s.domainResultToResponse(req, result)
	if err != nil {
		return nil, wrapError(ctx, err)
	}

	return res, nil
}

// SearchContentByUser lists the content created by userID
func (s *ContentSvc) SearchContentByUser(ctx context.Context, userID string, p *model.CreatorSearchParams) (*SearchResponse, error) {

	slog.DebugContext(ctx, "contentSvc.search-content-by-user",
		"user_id", userID,
	)

	params := *p
	params.UserID = userID

	resp, err := s.composer.SearchContentByUser(ctx, params)
	if err != nil {
		return nil, wrapError(ctx, err)
	}

	result, err := s.composer.ExtractResult(model.KindComposite, resp)
	if err != nil {
		return nil, wrapError(ctx, err)
	}

	return &SearchResponse{Items: result.Items, Count: result.Count, Facets: result.Facets}, nil
}

// SubOrganisations lists the organisations under rootOrgID
func (s *ContentSvc) SubOrganisations(ctx context.Context, rootOrgID string) (*SearchResponse, error) {

	slog.DebugContext(ctx, "contentSvc.sub-organisations",
		"root_org_id", rootOrgID,
	)

	if rootOrgID == "" {
		return nil, wrapError(ctx, errors.NewValidation("root organisation id is required"))
	}

	resp, err := s.composer.SubOrganisationDetails(ctx, rootOrgID)
	if err != nil {
		return nil, wrapError(ctx, err)
	}

	result, err := s.composer.ExtractResult(model.KindOrg, resp)
	if err != nil {
		return nil, wrapError(ctx, err)
	}

	return &SearchResponse{Items: result.Items, Count: result.Count}, nil
}

// PlayerConfig fetches a content record and returns its player configuration
func (s *ContentSvc) PlayerConfig(ctx context.Context, contentID string, p *PlayerConfigPayload) (*model.PlayerConfig, error) {

	slog.DebugContext(ctx, "contentSvc.player-config",
		"content_id", contentID,
		"course_id", p.CourseID,
	)

	cfg, err := s.builder.ConfigByContent(ctx, contentID, p.FetchOptions, p.User)
	if err != nil {
		return nil, wrapError(ctx, err)
	}

	return cfg, nil
}

// GetContent returns the raw content read envelope
func (s *ContentSvc) GetContent(ctx context.Context, contentID string, params map[string]string) (*model.ServerResponse, error) {

	slog.DebugContext(ctx, "contentSvc.get-content",
		"content_id", contentID,
	)

	resp, err := s.builder.FetchContent(ctx, contentID, params)
	if err != nil {
		return nil, wrapError(ctx, err)
	}

	return resp, nil
}

// GetHierarchy returns the raw collection hierarchy envelope
func (s *ContentSvc) GetHierarchy(ctx context.Context, identifier string, params map[string]string) (*model.ServerResponse, error) {

	slog.DebugContext(ctx, "contentSvc.get-hierarchy",
		"identifier", identifier,
	)

	resp, err := s.builder.FetchCollectionHierarchy(ctx, identifier, params)
	if err != nil {
		return nil, wrapError(ctx, err)
	}

	return resp, nil
}

// PlaybackRoute decides where a content card navigates to
func (s *ContentSvc) PlaybackRoute(ctx context.Context, p *model.PlaybackContent) (*RouteResponse, error) {

	slog.DebugContext(ctx, "contentSvc.playback-route",
		"identifier", p.Identifier,
		"mime_type", p.MimeType,
	)

	if p.Identifier == "" {
		return nil, wrapError(ctx, errors.NewValidation("content identifier is required"))
	}

	route := usecase.DecidePlaybackRoute(*p)
	return &RouteResponse{Route: route, Path: route.Path()}, nil
}

// ReviewerBody prepares an ECML body for review
func (s *ContentSvc) ReviewerBody(ctx context.Context, p *ReviewerBody) (*ReviewerBody, error) {

	slog.DebugContext(ctx, "contentSvc.reviewer-body",
		"length", len(p.Body),
	)

	body, err := usecase.SanitizeReviewerBody(p.Body)
	if err != nil {
		return nil, wrapError(ctx, err)
	}

	return &ReviewerBody{Body: body}, nil
}

// Readyz checks that the backend content API is reachable
func (s *ContentSvc) Readyz(ctx context.Context) error {
	if err := s.contentAPI.IsReady(ctx); err != nil {
		return wrapError(ctx, errors.NewServiceUnavailable("content API is not ready", err))
	}
	return nil
}

// NewContentSvc returns the content service implementation
func NewContentSvc(contentAPI port.ContentAPI, cache port.ContentCache, settings usecase.PlayerSettings, pageKey *[32]byte, defaultPageSize int) *ContentSvc {
	return &ContentSvc{
		contentAPI:      contentAPI,
		composer:        usecase.NewQueryComposer(contentAPI),
		builder:         usecase.NewPlayerConfigBuilder(contentAPI, cache, settings),
		pageKey:         pageKey,
		defaultPageSize: defaultPageSize,
	}
}
