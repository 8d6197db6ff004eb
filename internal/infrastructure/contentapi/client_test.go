// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package contentapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/linuxfoundation/lfx-v2-content-service/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-content-service/pkg/constants"
	"github.com/linuxfoundation/lfx-v2-content-service/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(baseURL string) Config {
	return Config{
		ContentBaseURL: baseURL + "/action",
		LearnerBaseURL: baseURL + "/learner",
		PublicBaseURL:  baseURL + "/api",
		Timeout:        5 * time.Second,
		MaxRetries:     0,
		RetryDelay:     time.Millisecond,
	}
}

func TestClientGetRoutesToSurfaceAndEncodesParams(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/content/v1/read/do_123", r.URL.Path)
		assert.Equal(t, "body,name", r.URL.Query().Get("fields"))
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		_, _ = w.Write([]byte(`{"id":"api.content.read","ver":"1.0","params":{"status":"successful"},"responseCode":"OK","result":{"content":{"identifier":"do_123"}}}`))
	}))
	defer ts.Close()

	cfg := testConfig(ts.URL)
	cfg.APIKey = "secret"
	client, err := NewClient(cfg)
	require.NoError(t, err)

	resp, err := client.Get(context.Background(), model.APIRequest{
		Surface: constants.SurfacePublic,
		Path:    constants.PathContentGet + "/do_123",
		Params:  map[string]string{"fields": "body,name"},
	})
	require.NoError(t, err)

	var content model.ContentData
	found, err := resp.DecodeResult("content", &content)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "do_123", content.Identifier())
}

func TestClientPostSendsJSONBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/learner/user/v1/search", r.URL.Path)

		raw, _ := io.ReadAll(r.Body)
		var body map[string]any
		if assert.NoError(t, json.Unmarshal(raw, &body)) {
			request, _ := body["request"].(map[string]any)
			assert.Equal(t, "ada", request["query"])
		}

		_, _ = w.Write([]byte(`{"responseCode":"OK","params":{"status":"successful"},"result":{"response":{"count":1,"content":[{"id":"u1"}]}}}`))
	}))
	defer ts.Close()

	client, err := NewClient(testConfig(ts.URL))
	require.NoError(t, err)

	resp, err := client.Post(context.Background(), model.APIRequest{
		Surface: constants.SurfaceLearner,
		Path:    constants.PathUserSearch,
		Data:    model.SearchBody{Request: model.SearchQuery{Query: "ada"}},
	})
	require.NoError(t, err)
	assert.Contains(t, resp.Result, "response")
}

func TestClientMapsErrors(t *testing.T) {
	tests := []struct {
		name         string
		status       int
		body         string
		expectedType any
	}{
		{name: "not found", status: http.StatusNotFound, body: `{}`, expectedType: errors.NotFound{}},
		{name: "bad request", status: http.StatusBadRequest, body: `{}`, expectedType: errors.Validation{}},
		{name: "server error", status: http.StatusInternalServerError, body: `{}`, expectedType: errors.ServiceUnavailable{}},
		{name: "forbidden", status: http.StatusForbidden, body: `{}`, expectedType: errors.Unexpected{}},
		{name: "failed envelope", status: http.StatusOK, body: `{"responseCode":"CLIENT_ERROR","params":{"status":"failed","err":"ERR_SEARCH","errmsg":"bad filter"}}`, expectedType: errors.Unexpected{}},
		{name: "undecodable body", status: http.StatusOK, body: `<html>`, expectedType: errors.Unexpected{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer ts.Close()

			client, err := NewClient(testConfig(ts.URL))
			require.NoError(t, err)

			_, err = client.Get(context.Background(), model.APIRequest{
				Surface: constants.SurfacePublic,
				Path:    constants.PathContentGet + "/missing",
			})
			require.Error(t, err)
			assert.IsType(t, tc.expectedType, err)
		})
	}
}

func TestClientUnknownSurface(t *testing.T) {
	client, err := NewClient(testConfig("http://127.0.0.1:1"))
	require.NoError(t, err)

	_, err = client.Get(context.Background(), model.APIRequest{Surface: "nope", Path: "x"})
	assert.IsType(t, errors.Validation{}, err)
}

func TestClientIsReady(t *testing.T) {
	healthy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/health", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer healthy.Close()

	client, err := NewClient(testConfig(healthy.URL))
	require.NoError(t, err)
	assert.NoError(t, client.IsReady(context.Background()))

	unhealthy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer unhealthy.Close()

	client, err = NewClient(testConfig(unhealthy.URL))
	require.NoError(t, err)
	assert.IsType(t, errors.ServiceUnavailable{}, client.IsReady(context.Background()))
}

func TestNewClientValidatesConfig(t *testing.T) {
	tests := []struct {
		name        string
		config      Config
		expectError bool
	}{
		{name: "defaults", config: DefaultConfig(), expectError: false},
		{name: "missing base URLs are defaulted", config: Config{Timeout: time.Second}, expectError: false},
		{name: "zero timeout", config: Config{}, expectError: true},
		{name: "negative retries", config: Config{Timeout: time.Second, MaxRetries: -1}, expectError: true},
		{name: "negative rate", config: Config{Timeout: time.Second, RequestsPerSecond: -1}, expectError: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewClient(tc.config)
			if tc.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, "http://localhost:3000/api", config.PublicBaseURL)
	assert.Equal(t, 30*time.Second, config.Timeout)
	assert.Equal(t, 2, config.MaxRetries)

	base, err := config.BaseURL(constants.SurfaceLearner)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:3000/learner", base)
}
