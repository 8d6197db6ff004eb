// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linuxfoundation/lfx-v2-content-service/pkg/errors"
)

const sampleReviewerBody = `{
  "theme": {
    "id": "theme",
    "plugin-manifest": {"plugin": [{"id": "org.ekstep.questionset", "ver": "1.0"}]},
    "stage": [
      {
        "id": "stage1",
        "org.ekstep.questionset": [
          {
            "id": "qs1",
            "config": {"__cdata": "{\"total_items\":5,\"shuffle_questions\":true,\"show_feedback\":true,\"max_score\":1.5}"},
            "org.ekstep.question": [{"id": "q1"}, {"id": "q2"}, {"id": "q3"}]
          }
        ]
      },
      {
        "id": "stage2",
        "org.ekstep.text": [{"id": "t1", "__text": "<b>Intro</b>"}]
      }
    ]
  }
}`

func questionSetConfig(t *testing.T, body string, stage, set int) map[string]any {
	t.Helper()

	var doc struct {
		Theme struct {
			Stage []map[string]json.RawMessage `json:"stage"`
		} `json:"theme"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &doc))

	var sets []struct {
		Config struct {
			Cdata string `json:"__cdata"`
		} `json:"config"`
	}
	require.NoError(t, json.Unmarshal(doc.Theme.Stage[stage]["org.ekstep.questionset"], &sets))

	var cfg map[string]any
	require.NoError(t, json.Unmarshal([]byte(sets[set].Config.Cdata), &cfg))
	return cfg
}

func TestSanitizeReviewerBody(t *testing.T) {
	out, err := SanitizeReviewerBody(sampleReviewerBody)
	require.NoError(t, err)
	require.True(t, json.Valid([]byte(out)))

	cfg := questionSetConfig(t, out, 0, 0)
	assert.Equal(t, float64(3), cfg["total_items"])
	assert.Equal(t, false, cfg["shuffle_questions"])
	assert.Equal(t, true, cfg["show_feedback"])
	assert.Equal(t, 1.5, cfg["max_score"])

	// markup is not HTML-escaped
	assert.Contains(t, out, "<b>Intro</b>")
}

func TestSanitizeReviewerBodyMalformed(t *testing.T) {
	tests := []string{
		"{bad json",
		"",
		"null",
		"[1,2,3]",
		`{"a":1} trailing`,
	}

	for _, raw := range tests {
		t.Run(raw, func(t *testing.T) {
			out, err := SanitizeReviewerBody(raw)
			require.NoError(t, err)
			assert.Equal(t, raw, out)
		})
	}
}

func TestSanitizeReviewerBodyStructure(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "no theme", body: `{"id":"x"}`},
		{name: "no plugin manifest", body: `{"theme":{"stage":[]}}`},
		{name: "no plugin list", body: `{"theme":{"plugin-manifest":{},"stage":[]}}`},
		{name: "no stage list", body: `{"theme":{"plugin-manifest":{"plugin":[]}}}`},
		{
			name: "question set without questions",
			body: `{"theme":{"plugin-manifest":{"plugin":[]},"stage":[{"org.ekstep.questionset":[{"config":{"__cdata":"{}"}}]}]}}`,
		},
		{
			name: "question set without config",
			body: `{"theme":{"plugin-manifest":{"plugin":[]},"stage":[{"org.ekstep.questionset":[{"org.ekstep.question":[]}]}]}}`,
		},
		{
			name: "invalid embedded config",
			body: `{"theme":{"plugin-manifest":{"plugin":[]},"stage":[{"org.ekstep.questionset":[{"config":{"__cdata":"{oops"},"org.ekstep.question":[]}]}]}}`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := SanitizeReviewerBody(tc.body)
			require.Error(t, err)
			var validation errors.Validation
			assert.ErrorAs(t, err, &validation)
		})
	}
}

func TestSanitizeReviewerBodyWithoutQuestionSets(t *testing.T) {
	body := `{"theme":{"plugin-manifest":{"plugin":[]},"stage":[{"id":"s1"}]}}`

	out, err := SanitizeReviewerBody(body)

	require.NoError(t, err)
	assert.JSONEq(t, body, out)
}
