// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package mock

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"sync"

	"github.com/linuxfoundation/lfx-v2-content-service/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-content-service/pkg/constants"
	"github.com/linuxfoundation/lfx-v2-content-service/pkg/errors"
)

// RecordedRequest is one call received by MockContentAPI
type RecordedRequest struct {
	Method  string
	Request model.APIRequest
}

// MockContentAPI is an in-memory implementation of port.ContentAPI for testing
// and local runs without a backend
type MockContentAPI struct {
	mu           sync.Mutex
	contents     map[string]model.ContentData
	hierarchies  map[string]model.ContentData
	users        []map[string]any
	orgs         []map[string]any
	batches      []map[string]any
	responses    map[string]*model.ServerResponse
	errs         map[string]error
	requests     []RecordedRequest
	isReadyError error
}

// NewMockContentAPI creates a mock backend with sample content, users, organisations and batches
func NewMockContentAPI() *MockContentAPI {
	m := &MockContentAPI{
		contents:    make(map[string]model.ContentData),
		hierarchies: make(map[string]model.ContentData),
		responses:   make(map[string]*model.ServerResponse),
		errs:        make(map[string]error),
		users: []map[string]any{
			{"identifier": "user-ada", "firstName": "Ada", "lastName": "Lovelace", "rootOrgId": "org-root"},
			{"identifier": "user-alan", "firstName": "Alan", "lastName": "Turing", "rootOrgId": "org-root"},
		},
		orgs: []map[string]any{
			{"id": "org-root", "orgName": "Riverside Education Board", "hashTagId": "ht-root", "rootOrgId": "org-root"},
			{"id": "org-north", "orgName": "Northern District Schools", "hashTagId": "ht-north", "rootOrgId": "org-root"},
		},
		batches: []map[string]any{
			{"identifier": "batch-1", "courseId": "do_course_1", "name": "Spring cohort", "status": 1},
			{"identifier": "batch-2", "courseId": "do_course_1", "name": "Autumn cohort", "status": 0},
		},
	}

	for _, c := range []model.ContentData{
		{
			"identifier":  "do_ecml_1",
			"name":        "Fractions practice",
			"mimeType":    constants.MimeTypeECML,
			"contentType": "Resource",
			"body":        `{"theme":{"id":"theme","plugin-manifest":{"plugin":[]},"stage":[]}}`,
			"status":      "Live",
		},
		{
			"identifier":  "do_video_1",
			"name":        "Photosynthesis explained",
			"mimeType":    "video/mp4",
			"contentType": "Resource",
			"artifactUrl": "https://cdn.content.test/photosynthesis.mp4",
			"status":      "Live",
		},
		{
			"identifier":  "do_textbook_1",
			"name":        "Grade 5 Mathematics",
			"mimeType":    constants.MimeTypeCollection,
			"contentType": "TextBook",
			"status":      "Live",
		},
		{
			"identifier":  "do_course_1",
			"name":        "Introduction to Algebra",
			"mimeType":    constants.MimeTypeCollection,
			"contentType": constants.ContentTypeCourse,
			"status":      "Live",
		},
	} {
		m.contents[c.Identifier()] = c
	}

	m.hierarchies["do_course_1"] = model.ContentData{
		"identifier":  "do_course_1",
		"mimeType":    constants.MimeTypeCollection,
		"contentType": constants.ContentTypeCourse,
		"children": []any{
			map[string]any{"identifier": "do_ecml_1"},
			map[string]any{"identifier": "do_video_1"},
		},
	}

	return m
}

// AddContent stores a content record served by content reads and searches
func (m *MockContentAPI) AddContent(content model.ContentData) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.contents[content.Identifier()] = content
}

// SetResponse overrides the envelope returned for a path
func (m *MockContentAPI) SetResponse(path string, resp *model.ServerResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[path] = resp
}

// SetError makes every call to path fail with err
func (m *MockContentAPI) SetError(path string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errs[path] = err
}

// SetIsReadyError sets the error returned by IsReady
func (m *MockContentAPI) SetIsReadyError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.isReadyError = err
}

// Requests returns a copy of the calls received so far
func (m *MockContentAPI) Requests() []RecordedRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]RecordedRequest(nil), m.requests...)
}

// LastRequest returns the most recent call
func (m *MockContentAPI) LastRequest() (RecordedRequest, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.requests) == 0 {
		return RecordedRequest{}, false
	}
	return m.requests[len(m.requests)-1], true
}

// Get implements port.ContentAPI
func (m *MockContentAPI) Get(ctx context.Context, req model.APIRequest) (*model.ServerResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.requests = append(m.requests, RecordedRequest{Method: http.MethodGet, Request: req})
	slog.DebugContext(ctx, "mock content API get", "path", req.Path, "params", req.Params)

	if resp, ok, err := m.override(req.Path); ok {
		return resp, err
	}

	var (
		store map[string]model.ContentData
		id    string
	)
	switch {
	case strings.HasPrefix(req.Path, constants.PathContentGet+"/"):
		store, id = m.contents, strings.TrimPrefix(req.Path, constants.PathContentGet+"/")
	case strings.HasPrefix(req.Path, constants.PathCollectionHierarchy+"/"):
		store, id = m.hierarchies, strings.TrimPrefix(req.Path, constants.PathCollectionHierarchy+"/")
	default:
		return nil, errors.NewNotFound(fmt.Sprintf("%s not found", req.Path))
	}

	content, ok := store[id]
	if !ok {
		return nil, errors.NewNotFound(fmt.Sprintf("content %s not found", id))
	}
	return envelope("api.content.read", map[string]any{"content": content})
}

// Post implements port.ContentAPI
func (m *MockContentAPI) Post(ctx context.Context, req model.APIRequest) (*model.ServerResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.requests = append(m.requests, RecordedRequest{Method: http.MethodPost, Request: req})
	slog.DebugContext(ctx, "mock content API post", "path", req.Path)

	if resp, ok, err := m.override(req.Path); ok {
		return resp, err
	}

	query := strings.ToLower(searchQuery(req.Data))

	switch req.Path {
	case constants.PathContentSearch, constants.PathCompositeSearch, constants.PathCourseSearch:
		ids := make([]string, 0, len(m.contents))
		for id := range m.contents {
			ids = append(ids, id)
		}
		sort.Strings(ids)

		items := []any{}
		for _, id := range ids {
			if matches(m.contents[id], query, "name") {
				items = append(items, m.contents[id])
			}
		}
		return envelope("api.content.search", map[string]any{
			"count":   len(items),
			"content": page(items, req.Data),
			"facets": []any{
				map[string]any{"name": "contentType", "values": map[string]any{"Resource": 2}},
			},
		})
	case constants.PathUserSearch:
		return learnerEnvelope(filter(m.users, query, "firstName", "lastName"), req.Data)
	case constants.PathOrgSearch:
		return learnerEnvelope(filter(m.orgs, query, "orgName"), req.Data)
	case constants.PathBatchSearch:
		return learnerEnvelope(filter(m.batches, query, "name"), req.Data)
	}

	return nil, errors.NewNotFound(fmt.Sprintf("%s not found", req.Path))
}

// IsReady implements port.ContentAPI
func (m *MockContentAPI) IsReady(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.isReadyError
}

func (m *MockContentAPI) override(path string) (*model.ServerResponse, bool, error) {
	if err, ok := m.errs[path]; ok {
		return nil, true, err
	}
	if resp, ok := m.responses[path]; ok {
		return resp, true, nil
	}
	return nil, false, nil
}

func searchQuery(data any) string {
	if body, ok := data.(model.SearchBody); ok {
		return body.Request.Query
	}
	return ""
}

// page applies the offset and limit of a search body; count stays the total
func page(items []any, data any) []any {
	body, ok := data.(model.SearchBody)
	if !ok {
		return items
	}
	start := 0
	if body.Request.Offset != nil {
		start = min(max(*body.Request.Offset, 0), len(items))
	}
	end := len(items)
	if body.Request.Limit > 0 {
		end = min(start+body.Request.Limit, len(items))
	}
	return items[start:end]
}

func matches(record map[string]any, query string, fields ...string) bool {
	if query == "" {
		return true
	}
	for _, f := range fields {
		if s, ok := record[f].(string); ok && strings.Contains(strings.ToLower(s), query) {
			return true
		}
	}
	return false
}

func filter(records []map[string]any, query string, fields ...string) []any {
	items := []any{}
	for _, r := range records {
		if matches(r, query, fields...) {
			items = append(items, r)
		}
	}
	return items
}

func learnerEnvelope(items []any, data any) (*model.ServerResponse, error) {
	return envelope("api.learner.search", map[string]any{
		"response": map[string]any{
			"count":   len(items),
			"content": page(items, data),
		},
	})
}

func envelope(id string, result map[string]any) (*model.ServerResponse, error) {
	raw := make(map[string]json.RawMessage, len(result))
	for k, v := range result {
		b, err := json.Marshal(v)
		if err != nil {
			return nil, errors.NewUnexpected("failed to encode mock result", err)
		}
		raw[k] = b
	}
	return &model.ServerResponse{
		ID:           id,
		Ver:          "1.0",
		Params:       model.ResponseParams{Status: "successful"},
		ResponseCode: constants.ResponseCodeOK,
		Result:       raw,
	}, nil
}
