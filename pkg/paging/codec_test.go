// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package paging

import (
	"context"
	"encoding/base64"
	"testing"

	"github.com/linuxfoundation/lfx-v2-content-service/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodePageToken(t *testing.T) {
	key := SecretKey("page-token-secret")
	ctx := context.Background()

	tests := []struct {
		name   string
		cursor Cursor
	}{
		{name: "first page boundary", cursor: Cursor{Offset: 0, Limit: 20}},
		{name: "deep page", cursor: Cursor{Offset: 4980, Limit: 20}},
		{name: "single item pages", cursor: Cursor{Offset: 7, Limit: 1}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			token, err := EncodePageToken(tc.cursor, key)
			require.NoError(t, err)
			assert.NotEmpty(t, token)

			decoded, err := DecodePageToken(ctx, token, key)
			require.NoError(t, err)
			assert.Equal(t, tc.cursor, decoded)
		})
	}
}

func TestEncodePageTokenIsNonDeterministic(t *testing.T) {
	key := SecretKey("secret")
	cursor := Cursor{Offset: 40, Limit: 20}

	first, err := EncodePageToken(cursor, key)
	require.NoError(t, err)
	second, err := EncodePageToken(cursor, key)
	require.NoError(t, err)

	assert.NotEqual(t, first, second, "fresh nonce per token")
}

func TestDecodePageTokenErrors(t *testing.T) {
	key := SecretKey("secret")
	ctx := context.Background()

	valid, err := EncodePageToken(Cursor{Offset: 20, Limit: 20}, key)
	require.NoError(t, err)

	invalidCursor, err := EncodePageToken(Cursor{Offset: -1, Limit: 20}, key)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
		key   *[32]byte
	}{
		{name: "not base64", token: "!!!not-base64!!!", key: key},
		{name: "too short", token: base64.RawURLEncoding.EncodeToString([]byte("short")), key: key},
		{name: "wrong key", token: valid, key: SecretKey("other-secret")},
		{name: "negative offset", token: invalidCursor, key: key},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodePageToken(ctx, tc.token, tc.key)
			require.Error(t, err)
			assert.IsType(t, errors.Validation{}, err)
		})
	}
}

func TestNextCursor(t *testing.T) {
	tests := []struct {
		name                           string
		offset, limit, returned, total int
		expected                       Cursor
		ok                             bool
	}{
		{name: "full page with more", offset: 0, limit: 20, returned: 20, total: 45, expected: Cursor{Offset: 20, Limit: 20}, ok: true},
		{name: "partial page", offset: 40, limit: 20, returned: 5, total: 45, ok: false},
		{name: "full last page", offset: 20, limit: 20, returned: 20, total: 40, ok: false},
		{name: "no limit", offset: 0, limit: 0, returned: 10, total: 100, ok: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cursor, ok := NextCursor(tc.offset, tc.limit, tc.returned, tc.total)
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.Equal(t, tc.expected, cursor)
			}
		})
	}
}
