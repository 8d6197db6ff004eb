// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	stderrors "errors"
	"log/slog"
	"net/http"

	"github.com/linuxfoundation/lfx-v2-content-service/pkg/errors"
)

// HTTPError is an error with the status code it is reported with
type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return e.Message
}

func wrapError(ctx context.Context, err error) *HTTPError {

	f := func(err error) *HTTPError {
		if err == nil {
			return &HTTPError{Status: http.StatusInternalServerError, Message: "unknown error"}
		}

		var (
			httpErr     *HTTPError
			validation  errors.Validation
			notFound    errors.NotFound
			unavailable errors.ServiceUnavailable
		)
		switch {
		case stderrors.As(err, &httpErr):
			return httpErr
		case stderrors.As(err, &validation):
			return &HTTPError{Status: http.StatusBadRequest, Message: validation.Error()}
		case stderrors.As(err, &notFound):
			return &HTTPError{Status: http.StatusNotFound, Message: notFound.Error()}
		case stderrors.As(err, &unavailable):
			return &HTTPError{Status: http.StatusServiceUnavailable, Message: unavailable.Error()}
		default:
			return &HTTPError{Status: http.StatusInternalServerError, Message: err.Error()}
		}
	}

	slog.ErrorContext(ctx, "request failed",
		"error", err,
	)
	return f(err)
}
