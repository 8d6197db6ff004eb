// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/linuxfoundation/lfx-v2-content-service/pkg/constants"
	"github.com/linuxfoundation/lfx-v2-content-service/pkg/errors"
)

// reviewerBody is the outcome of parsing a content body
type reviewerBody interface {
	reviewerBody()
}

// parsedBody is a body that decoded to a JSON object
type parsedBody struct {
	doc map[string]any
}

// malformedBody is a body that is not a JSON object; it is returned as-is
type malformedBody struct {
	raw string
}

func (parsedBody) reviewerBody()    {}
func (malformedBody) reviewerBody() {}

func parseReviewerBody(raw string) reviewerBody {
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()

	var doc map[string]any
	if err := dec.Decode(&doc); err != nil || doc == nil || dec.More() {
		return malformedBody{raw: raw}
	}
	return parsedBody{doc: doc}
}

// SanitizeReviewerBody rewrites every question set of an ECML body so that a
// reviewer sees all of its questions in order: total_items is set to the number
// of questions and shuffle_questions is turned off. A body that is not JSON is
// returned unchanged. A JSON body missing the plugin manifest, the stage list or
// a question set config is rejected with a validation error.
func SanitizeReviewerBody(raw string) (string, error) {
	var doc map[string]any
	switch body := parseReviewerBody(raw).(type) {
	case malformedBody:
		return body.raw, nil
	case parsedBody:
		doc = body.doc
	}

	theme, ok := doc["theme"].(map[string]any)
	if !ok {
		return "", errors.NewValidation("content body has no theme")
	}
	manifest, ok := theme["plugin-manifest"].(map[string]any)
	if !ok {
		return "", errors.NewValidation("content body has no plugin manifest")
	}
	if _, ok := manifest["plugin"].([]any); !ok {
		return "", errors.NewValidation("content body plugin manifest has no plugin list")
	}
	stages, ok := theme["stage"].([]any)
	if !ok {
		return "", errors.NewValidation("content body has no stage list")
	}

	for i, s := range stages {
		stage, ok := s.(map[string]any)
		if !ok {
			continue
		}
		questionSets, ok := stage[constants.QuestionSetPluginID].([]any)
		if !ok {
			continue
		}
		for j, qs := range questionSets {
			questionSet, ok := qs.(map[string]any)
			if !ok {
				return "", errors.NewValidation(fmt.Sprintf("stage %d question set %d is not an object", i, j))
			}
			if err := sanitizeQuestionSet(questionSet); err != nil {
				return "", errors.NewValidation(fmt.Sprintf("stage %d question set %d", i, j), err)
			}
		}
	}

	out, err := marshalJSON(doc)
	if err != nil {
		return "", errors.NewUnexpected("failed to encode content body", err)
	}
	return out, nil
}

func sanitizeQuestionSet(questionSet map[string]any) error {
	questions, ok := questionSet[constants.QuestionPluginID].([]any)
	if !ok {
		return fmt.Errorf("no %s list", constants.QuestionPluginID)
	}
	config, ok := questionSet["config"].(map[string]any)
	if !ok {
		return fmt.Errorf("no config")
	}
	cdata, ok := config["__cdata"].(string)
	if !ok {
		return fmt.Errorf("config has no __cdata")
	}

	dec := json.NewDecoder(strings.NewReader(cdata))
	dec.UseNumber()
	var settings map[string]any
	if err := dec.Decode(&settings); err != nil {
		return fmt.Errorf("invalid config __cdata: %w", err)
	}
	if settings == nil {
		settings = map[string]any{}
	}

	settings["total_items"] = len(questions)
	settings["shuffle_questions"] = false

	encoded, err := marshalJSON(settings)
	if err != nil {
		return err
	}
	config["__cdata"] = encoded
	return nil
}

// marshalJSON encodes v without HTML escaping, so markup inside the body survives
func marshalJSON(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}
