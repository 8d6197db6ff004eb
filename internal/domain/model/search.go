// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package model

import (
	"github.com/linuxfoundation/lfx-v2-content-service/pkg/constants"
)

// EntityKind names the entity a search targets
type EntityKind string

const (
	// KindContent searches resources, textbooks and other content
	KindContent EntityKind = "content"
	// KindCourse searches courses
	KindCourse EntityKind = "course"
	// KindBatch searches course batches
	KindBatch EntityKind = "batch"
	// KindUser searches users
	KindUser EntityKind = "user"
	// KindOrg searches organisations
	KindOrg EntityKind = "org"
	// KindComposite searches across entities without entity defaults
	KindComposite EntityKind = "composite"
)

// Valid reports whether k is a known entity kind
func (k EntityKind) Valid() bool {
	switch k {
	case KindContent, KindCourse, KindBatch, KindUser, KindOrg, KindComposite:
		return true
	}
	return false
}

// SearchParams is the high-level search intent handed to the composer
type SearchParams struct {
	// Filters maps a field name to a value or value set
	Filters map[string]any `json:"filters,omitempty"`
	// Limit is the page size; zero means absent
	Limit int `json:"limit,omitempty"`
	// PageNumber is 1-based; zero means absent
	PageNumber int `json:"pageNumber,omitempty"`
	// Offset, when set (including zero), takes precedence over page derivation
	Offset *int `json:"offset,omitempty"`
	// Query is the free-text query
	Query string `json:"query,omitempty"`
	// SortBy maps a field to asc or desc
	SortBy map[string]string `json:"sort_by,omitempty"`
	// Facets lists the facet fields to compute
	Facets []string `json:"facets,omitempty"`
	// Exists lists fields that must be present
	Exists []string `json:"exists,omitempty"`
	// SoftConstraints boosts matching fields without filtering
	SoftConstraints map[string]any `json:"softConstraints,omitempty"`
	// Mode is the backend search mode (e.g. soft)
	Mode string `json:"mode,omitempty"`
	// Params are forwarded as URL query parameters
	Params map[string]string `json:"params,omitempty"`
	// SkipDefaultContentTypes suppresses the default contentType filter on content searches
	SkipDefaultContentTypes bool `json:"skipDefaultContentTypes,omitempty"`
}

// CreatorSearchParams searches the content created by one user
type CreatorSearchParams struct {
	UserID        string            `json:"userId,omitempty"`
	Status        []string          `json:"status,omitempty"`
	ContentType   []string          `json:"contentType,omitempty"`
	MimeType      any               `json:"mimeType,omitempty"`
	ObjectType    any               `json:"objectType,omitempty"`
	Concept       any               `json:"concept,omitempty"`
	LastUpdatedOn string            `json:"lastUpdatedOn,omitempty"`
	Limit         int               `json:"limit,omitempty"`
	PageNumber    int               `json:"pageNumber,omitempty"`
	Query         string            `json:"query,omitempty"`
	Params        map[string]string `json:"params,omitempty"`
}

// SearchQuery is the backend's filter/offset/limit/sort document
type SearchQuery struct {
	Filters         map[string]any    `json:"filters,omitempty"`
	Offset          *int              `json:"offset,omitempty"`
	Limit           int               `json:"limit,omitempty"`
	Query           string            `json:"query,omitempty"`
	SortBy          map[string]string `json:"sort_by,omitempty"`
	Facets          []string          `json:"facets,omitempty"`
	Exists          []string          `json:"exists,omitempty"`
	SoftConstraints map[string]any    `json:"softConstraints,omitempty"`
	Mode            string            `json:"mode,omitempty"`
}

// SearchBody wraps the query the way the backend expects it
type SearchBody struct {
	Request SearchQuery `json:"request"`
}

// SearchRequest is a normalized, ready-to-send search document
type SearchRequest struct {
	Kind    EntityKind
	Surface constants.APISurface
	Path    string
	Params  map[string]string
	Body    SearchBody
}

// APIRequest converts the search document into a POST request for the API client
func (r SearchRequest) APIRequest() APIRequest {
	return APIRequest{
		Surface: r.Surface,
		Path:    r.Path,
		Params:  r.Params,
		Data:    r.Body,
	}
}

// SearchResult is the uniform list+count shape extracted from any search envelope
type SearchResult struct {
	// Items are the entity records in backend order
	Items []map[string]any `json:"items"`
	// Count is the total number of matches, which may exceed len(Items)
	Count int `json:"count"`
	// Facets are the facet value sets keyed by facet name
	Facets *FacetIndex `json:"facets,omitempty"`
}

// Facet is one named set of candidate filter values
type Facet struct {
	Name   string `json:"name"`
	Values any    `json:"values"`
}
