// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net/url"
	"path"
	"strings"
	"time"

	"dario.cat/mergo"
	"github.com/mitchellh/copystructure"
	"golang.org/x/sync/singleflight"

	"github.com/linuxfoundation/lfx-v2-content-service/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-content-service/internal/domain/port"
	"github.com/linuxfoundation/lfx-v2-content-service/pkg/constants"
	"github.com/linuxfoundation/lfx-v2-content-service/pkg/errors"
	"github.com/linuxfoundation/lfx-v2-content-service/pkg/metrics"
)

// PlayerSettings are the build-time inputs of player configuration
type PlayerSettings struct {
	// BuildNumber is the application build version, e.g. 2.4.0.7f3a
	BuildNumber string
	// EnableTelemetryValidation is copied into config.enableTelemetryValidation
	EnableTelemetryValidation bool
	// ContentGetFields is the default fields parameter of content reads
	ContentGetFields string
	// CacheTTL is how long fetched envelopes stay in the content cache
	CacheTTL time.Duration
	// FetchTimeout bounds a backend read shared by concurrent callers; zero means one minute
	FetchTimeout time.Duration
}

const defaultFetchTimeout = time.Minute

// PlayerConfigBuilder fetches content metadata and derives playback configurations
type PlayerConfigBuilder struct {
	contentAPI port.ContentAPI
	cache      port.ContentCache
	settings   PlayerSettings
	group      singleflight.Group
}

// FetchContent reads a content record. Caller params override the default
// fields parameter on key collision.
func (b *PlayerConfigBuilder) FetchContent(ctx context.Context, contentID string, params map[string]string) (*model.ServerResponse, error) {
	if contentID == "" {
		return nil, errors.NewValidation("content id is required")
	}

	defaults := map[string]string{}
	if b.settings.ContentGetFields != "" {
		defaults["fields"] = b.settings.ContentGetFields
	}
	query, err := mergeParams(defaults, params)
	if err != nil {
		return nil, err
	}

	return b.fetch(ctx, path.Join(constants.PathContentGet, contentID), query)
}

// FetchCollectionHierarchy reads the hierarchy of a collection
func (b *PlayerConfigBuilder) FetchCollectionHierarchy(ctx context.Context, identifier string, params map[string]string) (*model.ServerResponse, error) {
	if identifier == "" {
		return nil, errors.NewValidation("collection identifier is required")
	}

	query, err := mergeParams(nil, params)
	if err != nil {
		return nil, err
	}

	return b.fetch(ctx, path.Join(constants.PathCollectionHierarchy, identifier), query)
}

// fetch deduplicates concurrent identical reads and serves them from the cache when one is configured.
// The shared read is detached from any single caller; each caller stops waiting on its own ctx.
func (b *PlayerConfigBuilder) fetch(ctx context.Context, apiPath string, query map[string]string) (*model.ServerResponse, error) {
	key := cacheKey(apiPath, query)

	timeout := b.settings.FetchTimeout
	if timeout <= 0 {
		timeout = defaultFetchTimeout
	}

	ch := b.group.DoChan(key, func() (any, error) {
		sharedCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
		defer cancel()
		return b.load(sharedCtx, apiPath, key, query)
	})

	select {
	case <-ctx.Done():
		slog.WarnContext(ctx, "content fetch abandoned by caller", "path", apiPath, "error", ctx.Err())
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			slog.ErrorContext(ctx, "content fetch failed", "path", apiPath, "error", res.Err)
			return nil, res.Err
		}
		slog.DebugContext(ctx, "content fetched", "path", apiPath, "shared", res.Shared)
		return res.Val.(*model.ServerResponse), nil
	}
}

func (b *PlayerConfigBuilder) load(ctx context.Context, apiPath, key string, query map[string]string) (*model.ServerResponse, error) {
	if b.cache != nil {
		cached, err := b.cache.Get(ctx, key)
		switch {
		case err == nil:
			metrics.ContentCacheLookupsTotal.WithLabelValues("hit").Inc()
			return cached, nil
		case stderrors.Is(err, port.ErrCacheMiss):
			metrics.ContentCacheLookupsTotal.WithLabelValues("miss").Inc()
		default:
			metrics.ContentCacheLookupsTotal.WithLabelValues("error").Inc()
			slog.WarnContext(ctx, "content cache read failed", "key", key, "error", err)
		}
	}

	resp, err := b.contentAPI.Get(ctx, model.APIRequest{
		Surface: constants.SurfacePublic,
		Path:    apiPath,
		Params:  query,
	})
	if err != nil {
		return nil, err
	}

	if b.cache != nil && b.settings.CacheTTL > 0 {
		if err := b.cache.Set(ctx, key, resp, b.settings.CacheTTL); err != nil {
			slog.WarnContext(ctx, "content cache write failed", "key", key, "error", err)
		}
	}
	return resp, nil
}

// ConfigByContent fetches a content record and builds its player configuration
// from the default template
func (b *PlayerConfigBuilder) ConfigByContent(ctx context.Context, contentID string, opts model.FetchOptions, user model.UserContext) (*model.PlayerConfig, error) {
	resp, err := b.FetchContent(ctx, contentID, opts.Params)
	if err != nil {
		return nil, err
	}

	var content model.ContentData
	found, err := resp.DecodeResult("content", &content)
	if err != nil {
		return nil, errors.NewUnexpected("failed to decode content", err)
	}
	if !found {
		return nil, errors.NewNotFound(fmt.Sprintf("content %s not found", contentID))
	}

	details := model.ContentDetails{
		ContentID:   content.Identifier(),
		ContentData: content,
	}
	if details.ContentID == "" {
		details.ContentID = contentID
	}
	if opts.CourseID != "" {
		details.CourseID = opts.CourseID
		details.BatchHashTagID = opts.BatchHashTagID
	}

	return b.BuildConfig(details, user, model.DefaultPlayerTemplate())
}

// BuildConfig derives a player configuration from content details and the
// user context. The base template and the user context are never modified;
// only ContentData is shared with the result, as its metadata.
func (b *PlayerConfigBuilder) BuildConfig(details model.ContentDetails, user model.UserContext, base model.PlayerConfig) (*model.PlayerConfig, error) {
	copied, err := copystructure.Copy(base)
	if err != nil {
		return nil, errors.NewUnexpected("failed to copy player template", err)
	}
	cfg := copied.(model.PlayerConfig)

	cfg.Context.ContentID = details.ContentID
	cfg.Context.SID = user.SessionID
	cfg.Context.UID = user.UserID
	cfg.Context.Channel = user.Channel
	cfg.Context.ContextRollup = rollup(user.OrganisationIDs)
	cfg.Context.Dims = contextDims(user.Dims, details.CourseID, details.BatchHashTagID)
	cfg.Context.Tags = contextTags(user.Organisations, user.Channel)
	cfg.Context.App = []string{user.Channel}
	if details.CourseID != "" {
		cfg.Context.Cdata = []model.Cdata{{ID: details.CourseID, Type: constants.CdataTypeCourse}}
	}
	cfg.Context.Pdata.ID = user.AppID
	cfg.Context.Pdata.Ver = pdataVersion(b.settings.BuildNumber)

	cfg.Metadata = details.ContentData
	if details.ContentData.MimeType() == constants.MimeTypeECML {
		cfg.Data = details.ContentData.Body()
	} else {
		cfg.Data = map[string]any{}
	}

	if cfg.Config == nil {
		cfg.Config = map[string]any{}
	}
	cfg.Config["enableTelemetryValidation"] = b.settings.EnableTelemetryValidation

	metrics.PlayerConfigsTotal.WithLabelValues(details.ContentData.MimeType()).Inc()

	return &cfg, nil
}

// rollup keys the organisation chain by position: l1, l2, ...
func rollup(orgIDs []string) map[string]string {
	out := make(map[string]string, len(orgIDs))
	for i, id := range orgIDs {
		out[fmt.Sprintf("l%d", i+1)] = id
	}
	return out
}

// contextDims returns a new slice; the course and then the batch are appended
// only inside a course
func contextDims(dims []string, courseID, batchHashTagID string) []string {
	out := make([]string, 0, len(dims)+2)
	out = append(out, dims...)
	if courseID == "" {
		return out
	}
	out = append(out, courseID)
	if batchHashTagID != "" {
		out = append(out, batchHashTagID)
	}
	return out
}

// contextTags lists one tag per organisation, hash tag first, then the channel
func contextTags(orgs []model.Organisation, channel string) []string {
	tags := make([]string, 0, len(orgs)+1)
	for _, org := range orgs {
		switch {
		case org.HashTagID != "":
			tags = append(tags, org.HashTagID)
		case org.OrganisationID != "":
			tags = append(tags, org.OrganisationID)
		}
	}
	if channel != "" {
		tags = append(tags, channel)
	}
	return tags
}

// pdataVersion drops the last dot-separated segment of the build number
func pdataVersion(buildNumber string) string {
	buildNumber = strings.TrimSpace(buildNumber)
	if buildNumber == "" {
		return constants.DefaultPlayerVersion
	}
	idx := strings.LastIndex(buildNumber, ".")
	if idx < 0 {
		return buildNumber
	}
	if idx == 0 {
		return constants.DefaultPlayerVersion
	}
	return buildNumber[:idx]
}

func mergeParams(defaults, params map[string]string) (map[string]string, error) {
	query := make(map[string]string, len(defaults)+len(params))
	if err := mergo.Merge(&query, defaults); err != nil {
		return nil, errors.NewUnexpected("failed to merge default params", err)
	}
	if err := mergo.Merge(&query, params, mergo.WithOverride); err != nil {
		return nil, errors.NewUnexpected("failed to merge params", err)
	}
	return query, nil
}

func cacheKey(apiPath string, query map[string]string) string {
	values := url.Values{}
	for k, v := range query {
		values.Set(k, v)
	}
	if len(values) == 0 {
		return apiPath
	}
	// Encode sorts by key
	return apiPath + "?" + values.Encode()
}

// NewPlayerConfigBuilder creates a new PlayerConfigBuilder; cache may be nil
func NewPlayerConfigBuilder(contentAPI port.ContentAPI, cache port.ContentCache, settings PlayerSettings) *PlayerConfigBuilder {
	return &PlayerConfigBuilder{
		contentAPI: contentAPI,
		cache:      cache,
		settings:   settings,
	}
}
