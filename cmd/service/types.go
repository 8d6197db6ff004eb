// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"github.com/linuxfoundation/lfx-v2-content-service/internal/domain/model"
)

// SearchPayload is the body of POST /search/{kind}
type SearchPayload struct {
	model.SearchParams
	// PageToken is the opaque token returned by the previous page
	PageToken string `json:"page_token,omitempty"`
}

// SearchResponse is one page of search results
type SearchResponse struct {
	Items  []map[string]any  `json:"items"`
	Count  int               `json:"count"`
	Facets *model.FacetIndex `json:"facets,omitempty"`
	// PageToken is set when more results follow
	PageToken *string `json:"page_token,omitempty"`
}

// PlayerConfigPayload is the body of POST /content/{contentId}/player-config
type PlayerConfigPayload struct {
	model.FetchOptions
	User model.UserContext `json:"user"`
}

// RouteResponse is a navigation intent together with its application path
type RouteResponse struct {
	model.Route
	Path string `json:"path"`
}

// ReviewerBody is the body of POST /reviewer/body and its response
type ReviewerBody struct {
	Body string `json:"body"`
}

// ErrorResponse is written for every failed request
type ErrorResponse struct {
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}
