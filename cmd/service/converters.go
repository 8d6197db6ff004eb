// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"log/slog"

	"github.com/linuxfoundation/lfx-v2-content-service/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-content-service/pkg/paging"
)

// payloadToSearchParams resolves the page token and the default page size.
// A page token pins both the offset and the limit of the next page.
func (s *ContentSvc) payloadToSearchParams(ctx context.Context, p *SearchPayload) (model.SearchParams, error) {
	params := p.SearchParams

	if p.PageToken != "" {
		cursor, err := paging.DecodePageToken(ctx, p.PageToken, s.pageKey)
		if err != nil {
			slog.ErrorContext(ctx, "failed to decode page token", "error", err)
			return params, err
		}
		offset := cursor.Offset
		params.Offset = &offset
		params.Limit = cursor.Limit
		params.PageNumber = 0
		slog.DebugContext(ctx, "decoded page token",
			"offset", cursor.Offset,
			"limit", cursor.Limit,
		)
	}

	if params.Limit == 0 {
		params.Limit = s.defaultPageSize
	}

	return params, nil
}

// domainResultToResponse converts an extracted search result to the response,
// adding a page token when the page was full and more results follow
func (s *ContentSvc) domainResultToResponse(req model.SearchRequest, result *model.SearchResult) (*SearchResponse, error) {
	res := &SearchResponse{
		Items:  result.Items,
		Count:  result.Count,
		Facets: result.Facets,
	}

	offset := 0
	if req.Body.Request.Offset != nil {
		offset = *req.Body.Request.Offset
	}

	cursor, ok := paging.NextCursor(offset, req.Body.Request.Limit, len(result.Items), result.Count)
	if !ok {
		return res, nil
	}

	token, err := paging.EncodePageToken(cursor, s.pageKey)
	if err != nil {
		return nil, err
	}
	res.PageToken = &token

	return res, nil
}
