// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package constants

// APISurface identifies which backend API an endpoint belongs to.
type APISurface string

const (
	// SurfaceContent is the authenticated content API
	SurfaceContent APISurface = "content"
	// SurfaceLearner is the learner (user, org, batch) API
	SurfaceLearner APISurface = "learner"
	// SurfacePublic is the public read API
	SurfacePublic APISurface = "public"
)

// Endpoint paths, relative to the base URL of their surface.
const (
	PathContentGet          = "content/v1/read"
	PathCollectionHierarchy = "course/v1/hierarchy"
	PathCompositeSearch     = "composite/v1/search"
	PathCourseSearch        = "course/v1/search"
	PathContentSearch       = "content/v1/search"
	PathBatchSearch         = "course/v1/batch/list"
	PathUserSearch          = "user/v1/search"
	PathOrgSearch           = "org/v1/search"
)
