// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package model

import "github.com/linuxfoundation/lfx-v2-content-service/pkg/constants"

// Pdata identifies the producer of telemetry
type Pdata struct {
	ID  string `json:"id"`
	Ver string `json:"ver"`
	PID string `json:"pid"`
}

// Cdata is one correlation entry
type Cdata struct {
	ID   string `json:"id"`
	Type string `json:"type"`
}

// PlayerContext is the context block of a player configuration
type PlayerContext struct {
	Mode          string            `json:"mode"`
	Partner       []string          `json:"partner"`
	Pdata         Pdata             `json:"pdata"`
	ContentID     string            `json:"contentId"`
	SID           string            `json:"sid"`
	UID           string            `json:"uid"`
	TimeDiff      int               `json:"timeDiff"`
	ContextRollup map[string]string `json:"contextRollup"`
	Channel       string            `json:"channel"`
	DID           string            `json:"did"`
	Dims          []string          `json:"dims"`
	Tags          []string          `json:"tags"`
	App           []string          `json:"app"`
	Cdata         []Cdata           `json:"cdata,omitempty"`
}

// PlayerConfig is the render-ready playback configuration
type PlayerConfig struct {
	Context  PlayerContext  `json:"context"`
	Config   map[string]any `json:"config"`
	Metadata ContentData    `json:"metadata"`
	Data     any            `json:"data"`
}

// DefaultPlayerTemplate returns a fresh base template
func DefaultPlayerTemplate() PlayerConfig {
	return PlayerConfig{
		Context: PlayerContext{
			Mode:    "play",
			Partner: []string{},
			Pdata: Pdata{
				Ver: constants.DefaultPlayerVersion,
				PID: "content-player",
			},
			ContextRollup: map[string]string{},
			Dims:          []string{},
			Tags:          []string{},
			App:           []string{},
		},
		Config: map[string]any{
			"showEndPage":   false,
			"showStartPage": true,
			"overlay": map[string]any{
				"showUser": false,
			},
			"enableTelemetryValidation": false,
		},
		Metadata: ContentData{},
		Data:     map[string]any{},
	}
}
