// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"github.com/spf13/cast"

	"github.com/linuxfoundation/lfx-v2-content-service/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-content-service/internal/domain/port"
	"github.com/linuxfoundation/lfx-v2-content-service/pkg/constants"
	"github.com/linuxfoundation/lfx-v2-content-service/pkg/errors"
	"github.com/linuxfoundation/lfx-v2-content-service/pkg/metrics"
)

// QueryComposer translates search intents into backend search documents.
// The Build* methods are pure; the call methods send the built document
// through the content API and return the envelope unchanged.
type QueryComposer struct {
	contentAPI port.ContentAPI
}

// Compose builds the search document for kind
func (q *QueryComposer) Compose(kind model.EntityKind, params model.SearchParams) (model.SearchRequest, error) {
	switch kind {
	case model.KindContent:
		return q.BuildContentSearch(params), nil
	case model.KindCourse:
		return q.BuildCourseSearch(params), nil
	case model.KindBatch:
		return q.BuildBatchSearch(params), nil
	case model.KindUser:
		return q.BuildUserSearch(params), nil
	case model.KindOrg:
		return q.BuildOrgSearch(params), nil
	case model.KindComposite:
		return q.BuildCompositeSearch(params), nil
	}
	return model.SearchRequest{}, errors.NewValidation(fmt.Sprintf("unknown search kind %q", kind))
}

// BuildContentSearch builds a content search. The default content types are
// added only when filters are present, carry no contentType and defaults are
// not suppressed.
func (q *QueryComposer) BuildContentSearch(params model.SearchParams) model.SearchRequest {
	filters := maps.Clone(params.Filters)
	if filters != nil && !params.SkipDefaultContentTypes {
		if _, ok := filters["contentType"]; !ok {
			filters["contentType"] = slices.Clone(constants.DefaultContentTypes)
		}
	}

	return model.SearchRequest{
		Kind:    model.KindContent,
		Surface: constants.SurfacePublic,
		Path:    constants.PathContentSearch,
		Params:  params.Params,
		Body: model.SearchBody{Request: model.SearchQuery{
			Filters:         filters,
			Offset:          resolveOffset(params),
			Limit:           params.Limit,
			Query:           params.Query,
			SortBy:          params.SortBy,
			Facets:          params.Facets,
			Exists:          params.Exists,
			SoftConstraints: params.SoftConstraints,
			Mode:            params.Mode,
		}},
	}
}

// BuildCourseSearch builds a course search
func (q *QueryComposer) BuildCourseSearch(params model.SearchParams) model.SearchRequest {
	return model.SearchRequest{
		Kind:    model.KindCourse,
		Surface: constants.SurfaceContent,
		Path:    constants.PathCourseSearch,
		Params:  params.Params,
		Body: model.SearchBody{Request: model.SearchQuery{
			Filters: maps.Clone(params.Filters),
			Offset:  resolveOffset(params),
			Limit:   params.Limit,
			Query:   params.Query,
			SortBy:  params.SortBy,
			Facets:  params.Facets,
		}},
	}
}

// BuildBatchSearch builds a batch search; an explicit offset of zero is kept
func (q *QueryComposer) BuildBatchSearch(params model.SearchParams) model.SearchRequest {
	return model.SearchRequest{
		Kind:    model.KindBatch,
		Surface: constants.SurfaceLearner,
		Path:    constants.PathBatchSearch,
		Params:  params.Params,
		Body: model.SearchBody{Request: model.SearchQuery{
			Filters: maps.Clone(params.Filters),
			Offset:  resolveOffset(params),
			Limit:   params.Limit,
			Query:   params.Query,
			SortBy:  params.SortBy,
		}},
	}
}

// BuildUserSearch builds a user search boosted towards users with badges
func (q *QueryComposer) BuildUserSearch(params model.SearchParams) model.SearchRequest {
	soft := maps.Clone(params.SoftConstraints)
	if soft == nil {
		soft = make(map[string]any, len(constants.UserSearchSoftConstraints))
	}
	maps.Copy(soft, constants.UserSearchSoftConstraints)

	return model.SearchRequest{
		Kind:    model.KindUser,
		Surface: constants.SurfaceLearner,
		Path:    constants.PathUserSearch,
		Params:  params.Params,
		Body: model.SearchBody{Request: model.SearchQuery{
			Filters:         maps.Clone(params.Filters),
			Offset:          resolveOffset(params),
			Limit:           params.Limit,
			Query:           params.Query,
			SortBy:          params.SortBy,
			SoftConstraints: soft,
		}},
	}
}

// BuildOrgSearch builds an organisation search
func (q *QueryComposer) BuildOrgSearch(params model.SearchParams) model.SearchRequest {
	return model.SearchRequest{
		Kind:    model.KindOrg,
		Surface: constants.SurfaceLearner,
		Path:    constants.PathOrgSearch,
		Params:  params.Params,
		Body: model.SearchBody{Request: model.SearchQuery{
			Filters: maps.Clone(params.Filters),
			Offset:  resolveOffset(params),
			Limit:   params.Limit,
			Query:   params.Query,
			SortBy:  params.SortBy,
		}},
	}
}

// BuildCompositeSearch builds a cross-entity search with no entity defaults
func (q *QueryComposer) BuildCompositeSearch(params model.SearchParams) model.SearchRequest {
	return model.SearchRequest{
		Kind:    model.KindComposite,
		Surface: constants.SurfaceContent,
		Path:    constants.PathCompositeSearch,
		Params:  params.Params,
		Body: model.SearchBody{Request: model.SearchQuery{
			Filters:         maps.Clone(params.Filters),
			Offset:          resolveOffset(params),
			Limit:           params.Limit,
			Query:           params.Query,
			SortBy:          params.SortBy,
			Facets:          params.Facets,
			Exists:          params.Exists,
			SoftConstraints: params.SoftConstraints,
			Mode:            params.Mode,
		}},
	}
}

// BuildCreatorSearch builds a composite search over the content created by one user
func (q *QueryComposer) BuildCreatorSearch(params model.CreatorSearchParams) model.SearchRequest {
	status := params.Status
	if len(status) == 0 {
		status = constants.DefaultCreatorSearchStatus
	}
	contentType := params.ContentType
	if len(contentType) == 0 {
		contentType = constants.DefaultCreatorSearchContentTypes
	}
	filters := map[string]any{
		"status":      slices.Clone(status),
		"createdBy":   params.UserID,
		"contentType": slices.Clone(contentType),
	}
	if params.MimeType != nil {
		filters["mimeType"] = params.MimeType
	}
	if params.ObjectType != nil {
		filters["objectType"] = params.ObjectType
	}
	if params.Concept != nil {
		filters["concept"] = params.Concept
	}

	direction := params.LastUpdatedOn
	if direction == "" {
		direction = constants.DefaultSortDirection
	}

	return model.SearchRequest{
		Kind:    model.KindComposite,
		Surface: constants.SurfaceContent,
		Path:    constants.PathCompositeSearch,
		Params:  params.Params,
		Body: model.SearchBody{Request: model.SearchQuery{
			Filters: filters,
			Offset:  pageOffset(params.PageNumber, params.Limit),
			Limit:   params.Limit,
			Query:   params.Query,
			SortBy:  map[string]string{"lastUpdatedOn": direction},
		}},
	}
}

// BuildOrganisationDetails builds an organisation search by identifier
func (q *QueryComposer) BuildOrganisationDetails(orgIDs []string) model.SearchRequest {
	return q.BuildOrgSearch(model.SearchParams{
		Filters: map[string]any{"id": slices.Clone(orgIDs)},
	})
}

// BuildSubOrganisationDetails builds a search for every organisation under a root organisation
func (q *QueryComposer) BuildSubOrganisationDetails(rootOrgID string) model.SearchRequest {
	return q.BuildOrgSearch(model.SearchParams{
		Filters: map[string]any{"rootOrgId": rootOrgID},
	})
}

// BuildUserList builds a filter-only user listing without the badge boost
func (q *QueryComposer) BuildUserList(filters map[string]any) model.SearchRequest {
	return model.SearchRequest{
		Kind:    model.KindUser,
		Surface: constants.SurfaceLearner,
		Path:    constants.PathUserSearch,
		Body: model.SearchBody{Request: model.SearchQuery{
			Filters: maps.Clone(filters),
		}},
	}
}

// Search composes and sends a search of kind
func (q *QueryComposer) Search(ctx context.Context, kind model.EntityKind, params model.SearchParams) (*model.ServerResponse, error) {
	req, err := q.Compose(kind, params)
	if err != nil {
		return nil, err
	}
	return q.Execute(ctx, req)
}

// SearchContentByUser sends a search for the content created by one user
func (q *QueryComposer) SearchContentByUser(ctx context.Context, params model.CreatorSearchParams) (*model.ServerResponse, error) {
	if params.UserID == "" {
		return nil, errors.NewValidation("user id is required")
	}
	return q.Execute(ctx, q.BuildCreatorSearch(params))
}

// OrganisationDetails sends an organisation search by identifier
func (q *QueryComposer) OrganisationDetails(ctx context.Context, orgIDs []string) (*model.ServerResponse, error) {
	return q.Execute(ctx, q.BuildOrganisationDetails(orgIDs))
}

// SubOrganisationDetails sends a search for the organisations under rootOrgID
func (q *QueryComposer) SubOrganisationDetails(ctx context.Context, rootOrgID string) (*model.ServerResponse, error) {
	return q.Execute(ctx, q.BuildSubOrganisationDetails(rootOrgID))
}

// UserList sends a filter-only user listing
func (q *QueryComposer) UserList(ctx context.Context, filters map[string]any) (*model.ServerResponse, error) {
	return q.Execute(ctx, q.BuildUserList(filters))
}

// Execute posts a built search document and returns the backend response unchanged
func (q *QueryComposer) Execute(ctx context.Context, req model.SearchRequest) (*model.ServerResponse, error) {
	slog.DebugContext(ctx, "sending search",
		"kind", req.Kind,
		"surface", req.Surface,
		"path", req.Path,
	)
	metrics.SearchCompositionsTotal.WithLabelValues(string(req.Kind)).Inc()

	resp, err := q.contentAPI.Post(ctx, req.APIRequest())
	if err != nil {
		slog.ErrorContext(ctx, "search failed", "kind", req.Kind, "error", err)
		return nil, err
	}

	return resp, nil
}

// searchEnvelope is the list+count block of a search result
type searchEnvelope struct {
	Content []map[string]any `json:"content"`
	Count   any              `json:"count"`
	Facets  []*model.Facet   `json:"facets"`
}

// ExtractResult reads the uniform list+count shape from a search envelope.
// Learner searches (user, org, batch) nest it under result.response.
func (q *QueryComposer) ExtractResult(kind model.EntityKind, resp *model.ServerResponse) (*model.SearchResult, error) {
	if resp == nil {
		return nil, errors.NewUnexpected("empty search response")
	}

	var block searchEnvelope
	switch kind {
	case model.KindUser, model.KindOrg, model.KindBatch:
		if _, err := resp.DecodeResult("response", &block); err != nil {
			return nil, errors.NewUnexpected("failed to decode search response", err)
		}
	default:
		for key, dst := range map[string]any{
			"content": &block.Content,
			"count":   &block.Count,
			"facets":  &block.Facets,
		} {
			if _, err := resp.DecodeResult(key, dst); err != nil {
				return nil, errors.NewUnexpected(fmt.Sprintf("failed to decode search %s", key), err)
			}
		}
	}

	result := &model.SearchResult{
		Items: block.Content,
		Count: cast.ToInt(block.Count),
	}
	if result.Items == nil {
		result.Items = []map[string]any{}
	}
	if len(block.Facets) > 0 {
		result.Facets = ExtractFacets(block.Facets)
	}

	return result, nil
}

// ExtractFacets indexes facets by name in list order, skipping nil entries
func ExtractFacets(facets []*model.Facet) *model.FacetIndex {
	index := model.NewFacetIndex()
	for _, f := range facets {
		if f == nil {
			continue
		}
		index.Set(f.Name, f.Values)
	}
	return index
}

// resolveOffset prefers an explicit offset, including zero, over page derivation
func resolveOffset(params model.SearchParams) *int {
	if params.Offset != nil {
		offset := *params.Offset
		return &offset
	}
	return pageOffset(params.PageNumber, params.Limit)
}

// pageOffset derives the offset of a 1-based page; nil unless both page and limit are set.
// Out-of-range values are passed through to the backend.
func pageOffset(pageNumber, limit int) *int {
	if pageNumber == 0 || limit == 0 {
		return nil
	}
	offset := (pageNumber - 1) * limit
	return &offset
}

// NewQueryComposer creates a new QueryComposer instance
func NewQueryComposer(contentAPI port.ContentAPI) *QueryComposer {
	return &QueryComposer{
		contentAPI: contentAPI,
	}
}
