// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package model

import (
	"encoding/json"

	"github.com/linuxfoundation/lfx-v2-content-service/pkg/constants"
)

// APIRequest is a request to one of the backend API surfaces
type APIRequest struct {
	// Surface selects the base URL
	Surface constants.APISurface
	// Path is relative to the surface base URL
	Path string
	// Params are encoded as URL query parameters
	Params map[string]string
	// Data is JSON-encoded as the POST body; ignored on GET
	Data any
}

// ResponseParams is the status block of every backend envelope
type ResponseParams struct {
	ResMsgID string `json:"resmsgid"`
	MsgID    string `json:"msgid"`
	Status   string `json:"status"`
	Err      string `json:"err"`
	ErrMsg   string `json:"errmsg"`
}

// ServerResponse is the backend response envelope
type ServerResponse struct {
	ID           string                     `json:"id"`
	Ver          string                     `json:"ver"`
	Ts           string                     `json:"ts"`
	Params       ResponseParams             `json:"params"`
	ResponseCode string                     `json:"responseCode"`
	Result       map[string]json.RawMessage `json:"result"`
}

// Failed reports whether the envelope carries the backend's error indicator
func (r *ServerResponse) Failed() bool {
	if r == nil {
		return true
	}
	if r.Params.Status == constants.ResponseStatusFailed {
		return true
	}
	return r.ResponseCode != "" && r.ResponseCode != constants.ResponseCodeOK
}

// DecodeResult unmarshals result[key] into v; found is false when the key is absent
func (r *ServerResponse) DecodeResult(key string, v any) (found bool, err error) {
	if r == nil || r.Result == nil {
		return false, nil
	}
	raw, ok := r.Result[key]
	if !ok || len(raw) == 0 || string(raw) == "null" {
		return false, nil
	}
	return true, json.Unmarshal(raw, v)
}
