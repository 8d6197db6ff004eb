// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package constants

// MIME types the player distinguishes.
const (
	MimeTypeCollection = "application/vnd.ekstep.content-collection"
	MimeTypeECML       = "application/vnd.ekstep.ecml-archive"
)

// ContentTypeCourse is the contentType of a course collection.
const ContentTypeCourse = "Course"

// CdataTypeCourse is the correlation data type attached for course playback.
const CdataTypeCourse = "course"

// DefaultPlayerVersion is the pdata.ver used when no build number is known.
const DefaultPlayerVersion = "1.0"

// DefaultContentGetFields is the "fields" query parameter sent on content reads.
const DefaultContentGetFields = "body,editorState,templateId,languageCode,template,gradeLevel,status,concepts,versionKey,name,appIcon,contentType,owner,domain,code,visibility,createdBy,description,language,mediaType,mimeType,osId,languageCode,createdOn,lastUpdatedOn,audience,ageGroup,attributions,artifactUrl,board,medium,subject,me_averageRating,resourceType,creator,creators,contributors,channel,licenseDetails"

// ECML plugin identifiers touched by reviewer body sanitization.
const (
	QuestionSetPluginID = "org.ekstep.questionset"
	QuestionPluginID    = "org.ekstep.question"
)
