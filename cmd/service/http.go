// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	stderrors "errors"
	"io"
	"log/slog"
	"net/http"

	goahttp "goa.design/goa/v3/http"

	"github.com/linuxfoundation/lfx-v2-content-service/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-content-service/internal/middleware"
	"github.com/linuxfoundation/lfx-v2-content-service/pkg/errors"
)

// MountPoint describes one mounted endpoint
type MountPoint struct {
	Method  string
	Verb    string
	Pattern string
}

type server struct {
	svc *ContentSvc
	mux goahttp.Muxer
	dec func(*http.Request) goahttp.Decoder
	enc func(context.Context, http.ResponseWriter) goahttp.Encoder
}

// Mount registers the content service endpoints on mux and returns what was mounted
func Mount(mux goahttp.Muxer, svc *ContentSvc, dec func(*http.Request) goahttp.Decoder, enc func(context.Context, http.ResponseWriter) goahttp.Encoder) []MountPoint {
	s := &server{svc: svc, mux: mux, dec: dec, enc: enc}

	mounts := []struct {
		MountPoint
		handler http.HandlerFunc
	}{
		{MountPoint{"search", http.MethodPost, "/search/{kind}"}, s.search},
		{MountPoint{"search-content-by-user", http.MethodPost, "/users/{userId}/content"}, s.searchContentByUser},
		{MountPoint{"sub-organisations", http.MethodGet, "/organisations/{rootOrgId}/sub-organisations"}, s.subOrganisations},
		{MountPoint{"player-config", http.MethodPost, "/content/{contentId}/player-config"}, s.playerConfig},
		{MountPoint{"get-content", http.MethodGet, "/content/{contentId}"}, s.getContent},
		{MountPoint{"get-hierarchy", http.MethodGet, "/hierarchy/{identifier}"}, s.getHierarchy},
		{MountPoint{"playback-route", http.MethodPost, "/playback/route"}, s.playbackRoute},
		{MountPoint{"reviewer-body", http.MethodPost, "/reviewer/body"}, s.reviewerBody},
		{MountPoint{"readyz", http.MethodGet, "/readyz"}, s.readyz},
		{MountPoint{"livez", http.MethodGet, "/livez"}, s.livez},
	}

	points := make([]MountPoint, 0, len(mounts))
	for _, m := range mounts {
		mux.Handle(m.Verb, m.Pattern, m.handler)
		points = append(points, m.MountPoint)
	}
	return points
}

func (s *server) search(w http.ResponseWriter, r *http.Request) {
	var p SearchPayload
	if !s.decode(w, r, &p) {
		return
	}
	res, err := s.svc.Search(r.Context(), s.mux.Vars(r)["kind"], &p)
	s.respond(w, r, http.StatusOK, res, err)
}

func (s *server) searchContentByUser(w http.ResponseWriter, r *http.Request) {
	var p model.CreatorSearchParams
	if !s.decode(w, r, &p) {
		return
	}
	res, err := s.svc.SearchContentByUser(r.Context(), s.mux.Vars(r)["userId"], &p)
	s.respond(w, r, http.StatusOK, res, err)
}

func (s *server) subOrganisations(w http.ResponseWriter, r *http.Request) {
	res, err := s.svc.SubOrganisations(r.Context(), s.mux.Vars(r)["rootOrgId"])
	s.respond(w, r, http.StatusOK, res, err)
}

func (s *server) playerConfig(w http.ResponseWriter, r *http.Request) {
	var p PlayerConfigPayload
	if !s.decode(w, r, &p) {
		return
	}
	res, err := s.svc.PlayerConfig(r.Context(), s.mux.Vars(r)["contentId"], &p)
	s.respond(w, r, http.StatusOK, res, err)
}

func (s *server) getContent(w http.ResponseWriter, r *http.Request) {
	res, err := s.svc.GetContent(r.Context(), s.mux.Vars(r)["contentId"], queryParams(r))
	s.respond(w, r, http.StatusOK, res, err)
}

func (s *server) getHierarchy(w http.ResponseWriter, r *http.Request) {
	res, err := s.svc.GetHierarchy(r.Context(), s.mux.Vars(r)["identifier"], queryParams(r))
	s.respond(w, r, http.StatusOK, res, err)
}

func (s *server) playbackRoute(w http.ResponseWriter, r *http.Request) {
	var p model.PlaybackContent
	if !s.decode(w, r, &p) {
		return
	}
	res, err := s.svc.PlaybackRoute(r.Context(), &p)
	s.respond(w, r, http.StatusOK, res, err)
}

func (s *server) reviewerBody(w http.ResponseWriter, r *http.Request) {
	var p ReviewerBody
	if !s.decode(w, r, &p) {
		return
	}
	res, err := s.svc.ReviewerBody(r.Context(), &p)
	s.respond(w, r, http.StatusOK, res, err)
}

func (s *server) readyz(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Readyz(r.Context()); err != nil {
		s.respond(w, r, http.StatusOK, nil, err)
		return
	}
	writeOK(w)
}

func (s *server) livez(w http.ResponseWriter, _ *http.Request) {
	writeOK(w)
}

func writeOK(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// decode reads the JSON body into v; an empty body leaves v at its zero value
func (s *server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	err := s.dec(r).Decode(v)
	if err == nil || stderrors.Is(err, io.EOF) {
		return true
	}
	s.respond(w, r, 0, nil, errors.NewValidation("invalid request body", err))
	return false
}

func (s *server) respond(w http.ResponseWriter, r *http.Request, status int, v any, err error) {
	ctx := r.Context()
	if err != nil {
		var httpErr *HTTPError
		if !stderrors.As(err, &httpErr) {
			httpErr = wrapError(ctx, err)
		}
		status = httpErr.Status
		v = &ErrorResponse{
			Message:   httpErr.Message,
			RequestID: middleware.RequestIDFromContext(ctx),
		}
	}

	enc := s.enc(ctx, w)
	w.WriteHeader(status)
	if err := enc.Encode(v); err != nil {
		slog.ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

// queryParams flattens the URL query, keeping the first value of each key
func queryParams(r *http.Request) map[string]string {
	values := r.URL.Query()
	if len(values) == 0 {
		return nil
	}
	params := make(map[string]string, len(values))
	for k := range values {
		params[k] = values.Get(k)
	}
	return params
}
