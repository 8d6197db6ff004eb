// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package contentapi

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/linuxfoundation/lfx-v2-content-service/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-content-service/pkg/errors"
	"github.com/linuxfoundation/lfx-v2-content-service/pkg/httpclient"
	"github.com/linuxfoundation/lfx-v2-content-service/pkg/metrics"
)

// Client talks to the backend content, learner and public APIs
type Client struct {
	config     Config
	httpClient *httpclient.Client
}

// Get issues a GET request against the surface and path of req
func (c *Client) Get(ctx context.Context, req model.APIRequest) (*model.ServerResponse, error) {
	return c.makeRequest(ctx, http.MethodGet, req)
}

// Post issues a POST request with req.Data as the JSON body
func (c *Client) Post(ctx context.Context, req model.APIRequest) (*model.ServerResponse, error) {
	return c.makeRequest(ctx, http.MethodPost, req)
}

// buildURL resolves the request path against its surface and encodes the query parameters
func (c *Client) buildURL(req model.APIRequest) (string, error) {
	base, err := c.config.BaseURL(req.Surface)
	if err != nil {
		return "", err
	}

	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("failed to parse base URL: %w", err)
	}
	u = u.JoinPath(req.Path)

	if len(req.Params) > 0 {
		q := u.Query()
		for k, v := range req.Params {
			q.Set(k, v)
		}
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}

// makeRequest performs the HTTP request using the generic HTTP client and decodes the envelope
func (c *Client) makeRequest(ctx context.Context, method string, req model.APIRequest) (*model.ServerResponse, error) {
	target, err := c.buildURL(req)
	if err != nil {
		return nil, errors.NewValidation("invalid API request", err)
	}

	var body []byte
	if method == http.MethodPost {
		body, err = json.Marshal(req.Data)
		if err != nil {
			return nil, errors.NewValidation("failed to encode request body", err)
		}
	}

	headers := map[string]string{}
	if c.config.APIKey != "" {
		headers["Authorization"] = fmt.Sprintf("Bearer %s", c.config.APIKey)
	}

	slog.DebugContext(ctx, "calling content API",
		"method", method,
		"surface", req.Surface,
		"url", target,
	)

	start := time.Now()
	resp, err := c.httpClient.Request(ctx, method, target, body, headers)
	metrics.UpstreamRequestDuration.WithLabelValues(string(req.Surface), req.Path).Observe(time.Since(start).Seconds())
	if err != nil {
		var httpErr *httpclient.RetryableError
		if stderrors.As(err, &httpErr) {
			metrics.UpstreamRequestsTotal.WithLabelValues(string(req.Surface), req.Path, strconv.Itoa(httpErr.StatusCode)).Inc()
			switch {
			case httpErr.StatusCode == http.StatusNotFound:
				return nil, errors.NewNotFound(fmt.Sprintf("%s not found", req.Path), err)
			case httpErr.StatusCode == http.StatusBadRequest, httpErr.StatusCode == http.StatusUnprocessableEntity:
				return nil, errors.NewValidation("invalid request", err)
			case httpErr.StatusCode >= http.StatusInternalServerError:
				return nil, errors.NewServiceUnavailable(fmt.Sprintf("%s API unavailable", req.Surface), err)
			default:
				return nil, errors.NewUnexpected("unexpected error", err)
			}
		}
		metrics.UpstreamRequestsTotal.WithLabelValues(string(req.Surface), req.Path, "transport_error").Inc()
		return nil, errors.NewServiceUnavailable("request failed", err)
	}

	var envelope model.ServerResponse
	if err := json.Unmarshal(resp.Body, &envelope); err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(string(req.Surface), req.Path, "decode_error").Inc()
		return nil, errors.NewUnexpected("failed to decode response", err)
	}

	if envelope.Failed() {
		metrics.UpstreamRequestsTotal.WithLabelValues(string(req.Surface), req.Path, "failed").Inc()
		return nil, errors.NewUnexpected("content API returned a failed response",
			fmt.Errorf("%s: %s (%s)", envelope.ResponseCode, envelope.Params.ErrMsg, envelope.Params.Err))
	}

	metrics.UpstreamRequestsTotal.WithLabelValues(string(req.Surface), req.Path, strconv.Itoa(resp.StatusCode)).Inc()
	return &envelope, nil
}

// IsReady checks if the public content API is reachable
func (c *Client) IsReady(ctx context.Context) error {
	u, err := url.Parse(c.config.PublicBaseURL)
	if err != nil {
		return errors.NewUnexpected("invalid public base URL", err)
	}

	resp, err := c.httpClient.Request(ctx, http.MethodGet, u.JoinPath(c.config.HealthPath).String(), nil, nil)
	if err != nil {
		return errors.NewServiceUnavailable("failed to check if content API is reachable", err)
	}

	if resp.StatusCode != http.StatusOK {
		return errors.NewServiceUnavailable("content API is not reachable", fmt.Errorf("status code: %d", resp.StatusCode))
	}

	return nil
}

// NewClient creates a new content API client
func NewClient(config Config) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid content API configuration: %w", err)
	}

	httpConfig := httpclient.Config{
		Timeout:           config.Timeout,
		MaxRetries:        config.MaxRetries,
		RetryDelay:        config.RetryDelay,
		RetryBackoff:      true,
		RequestsPerSecond: config.RequestsPerSecond,
		Burst:             config.Burst,
	}

	return &Client{
		config:     config,
		httpClient: httpclient.NewClient(httpConfig),
	}, nil
}
