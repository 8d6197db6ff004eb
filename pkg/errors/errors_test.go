// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessages(t *testing.T) {
	cause := stderrors.New("boom")

	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{name: "validation without cause", err: NewValidation("bad filters"), expected: "bad filters"},
		{name: "validation with cause", err: NewValidation("bad filters", cause), expected: "bad filters: boom"},
		{name: "not found", err: NewNotFound("content not found"), expected: "content not found"},
		{name: "unexpected with cause", err: NewUnexpected("decode failed", cause), expected: "decode failed: boom"},
		{name: "service unavailable", err: NewServiceUnavailable("learner API down", cause), expected: "learner API down: boom"},
	}

	assertion := assert.New(t)
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assertion.Equal(tc.expected, tc.err.Error())
		})
	}
}

func TestErrorsUnwrapToCause(t *testing.T) {
	cause := stderrors.New("connection refused")

	err := NewServiceUnavailable("content API unreachable", cause)

	assert.True(t, stderrors.Is(err, cause))

	var target ServiceUnavailable
	assert.True(t, stderrors.As(error(err), &target))
}
