// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package constants

const (
	// DefaultPageSize is the page size used by the HTTP facade when a search
	// request carries neither a limit nor a page token
	DefaultPageSize = 20

	// NonceSize is the secretbox nonce length used in page tokens
	NonceSize = 24

	// DefaultSortDirection is applied to lastUpdatedOn in searches by creator
	DefaultSortDirection = "desc"
)

// DefaultContentTypes are added to content search filters that omit contentType.
var DefaultContentTypes = []string{
	"Collection",
	"TextBook",
	"LessonPlan",
	"Resource",
}

// DefaultCreatorSearchStatus is the status filter of a search by content creator.
var DefaultCreatorSearchStatus = []string{"Live"}

// DefaultCreatorSearchContentTypes is the contentType filter of a search by content creator.
var DefaultCreatorSearchContentTypes = []string{"Course"}

// UserSearchSoftConstraints is always attached to user searches.
var UserSearchSoftConstraints = map[string]any{"badgeAssertions": 1}
