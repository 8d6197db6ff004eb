// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package constants

type requestIDHeaderType string

// RequestIDHeader is the header name for the request ID
const RequestIDHeader requestIDHeaderType = "X-REQUEST-ID"

const (
	// ResponseStatusFailed is the params.status value of a failed API envelope
	ResponseStatusFailed = "failed"
	// ResponseCodeOK is the responseCode value of a successful API envelope
	ResponseCodeOK = "OK"
)
