// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package model

import "path"

// RouteKind is the navigation target family of a playback
type RouteKind string

const (
	RouteCollection RouteKind = "collection"
	RouteCourse     RouteKind = "course"
	RouteResource   RouteKind = "resource"
)

// PlaybackContent is the subset of a content card needed to pick a route
type PlaybackContent struct {
	Identifier  string `json:"identifier"`
	MimeType    string `json:"mimeType"`
	ContentType string `json:"contentType"`
	CourseID    string `json:"courseId,omitempty"`
	BatchID     string `json:"batchId,omitempty"`
}

// Route is a navigation intent
type Route struct {
	Kind    RouteKind `json:"kind"`
	ID      string    `json:"id"`
	BatchID string    `json:"batchId,omitempty"`
}

// Path renders the route as an application path
func (r Route) Path() string {
	switch r.Kind {
	case RouteCollection:
		return path.Join("/resources/play/collection", r.ID)
	case RouteCourse:
		if r.BatchID != "" {
			return path.Join("/learn/course", r.ID, "batch", r.BatchID)
		}
		return path.Join("/learn/course", r.ID)
	default:
		return path.Join("/resources/play/content", r.ID)
	}
}
