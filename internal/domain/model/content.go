// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package model

// ContentData is the full content metadata record returned by the backend
type ContentData map[string]any

func (c ContentData) str(key string) string {
	if c == nil {
		return ""
	}
	if s, ok := c[key].(string); ok {
		return s
	}
	return ""
}

// Identifier returns the content identifier
func (c ContentData) Identifier() string { return c.str("identifier") }

// MimeType returns the content MIME type
func (c ContentData) MimeType() string { return c.str("mimeType") }

// ContentType returns the content type (Resource, Course, ...)
func (c ContentData) ContentType() string { return c.str("contentType") }

// Body returns the raw body, nil when absent
func (c ContentData) Body() any {
	if c == nil {
		return nil
	}
	return c["body"]
}

// ContentDetails is the input of player configuration derivation.
// BatchHashTagID is only meaningful together with CourseID.
type ContentDetails struct {
	ContentID      string
	ContentData    ContentData
	CourseID       string
	BatchHashTagID string
}

// FetchOptions carries caller query parameters and the optional enrollment context
type FetchOptions struct {
	// Params override the default query parameters on key collision
	Params map[string]string `json:"params,omitempty"`
	// CourseID is the enclosing course, if any
	CourseID string `json:"courseId,omitempty"`
	// BatchHashTagID is the enrolled batch; ignored without CourseID
	BatchHashTagID string `json:"batchHashTagId,omitempty"`
}
