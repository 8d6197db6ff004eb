// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package model

// Organisation is one organisation the user belongs to
type Organisation struct {
	OrganisationID string `json:"organisationId,omitempty"`
	HashTagID      string `json:"hashTagId,omitempty"`
}

// UserContext is the session and profile context supplied by the caller on every call
type UserContext struct {
	SessionID string `json:"sessionId"`
	UserID    string `json:"userid"`
	Channel   string `json:"channel"`
	AppID     string `json:"appId"`
	// OrganisationIDs is the ordered organisational chain used for rollup
	OrganisationIDs []string `json:"organisationIds"`
	// Organisations is the ordered membership list used for tags
	Organisations []Organisation `json:"organisations"`
	// Dims are the ordered rollup dimension values
	Dims []string `json:"dims"`
}
