// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package paging

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/linuxfoundation/lfx-v2-content-service/pkg/constants"
	"github.com/linuxfoundation/lfx-v2-content-service/pkg/errors"
	"golang.org/x/crypto/nacl/secretbox"
)

// Cursor is the position carried by an opaque page token.
type Cursor struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// SecretKey derives the 32-byte secretbox key from a configured secret of any length.
func SecretKey(secret string) *[32]byte {
	key := sha256.Sum256([]byte(secret))
	return &key
}

// DecodePageToken takes a base64-encoded, secretbox-encrypted token and returns its cursor.
// Returns an error if decoding, decryption, or unmarshaling fails.
func DecodePageToken(ctx context.Context, encoded string, secretKey *[32]byte) (Cursor, error) {

	slog.DebugContext(ctx, "decoding page token",
		"encoded_token", encoded,
	)

	encrypted, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return Cursor{}, errors.NewValidation("invalid encoded page token", err)
	}

	if len(encrypted) < constants.NonceSize+secretbox.Overhead {
		return Cursor{}, errors.NewValidation(
			"invalid page token length",
			fmt.Errorf("expected at least %d bytes, got %d", constants.NonceSize+secretbox.Overhead, len(encrypted)),
		)
	}

	var decryptNonce [constants.NonceSize]byte
	copy(decryptNonce[:], encrypted[:constants.NonceSize])
	decrypted, ok := secretbox.Open(nil, encrypted[constants.NonceSize:], &decryptNonce, secretKey)
	if !ok {
		return Cursor{}, errors.NewValidation("failed to decrypt page token")
	}

	var cursor Cursor
	if err := json.Unmarshal(decrypted, &cursor); err != nil {
		return Cursor{}, errors.NewValidation("failed to unmarshal page cursor", err)
	}
	if cursor.Offset < 0 || cursor.Limit <= 0 {
		return Cursor{}, errors.NewValidation(
			"invalid page cursor",
			fmt.Errorf("offset %d, limit %d", cursor.Offset, cursor.Limit),
		)
	}

	slog.DebugContext(ctx, "decoded page token successfully",
		"offset", cursor.Offset,
		"limit", cursor.Limit,
	)

	return cursor, nil
}

// EncodePageToken encrypts the cursor with secretbox and returns a URL-safe base64 token.
func EncodePageToken(cursor Cursor, secretKey *[32]byte) (string, error) {
	encodedCursor, err := json.Marshal(cursor)
	if err != nil {
		return "", errors.NewUnexpected("failed to marshal page cursor", err)
	}

	var nonce [constants.NonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return "", errors.NewUnexpected("failed to generate nonce for page token", err)
	}

	encrypted := secretbox.Seal(nonce[:], encodedCursor, &nonce, secretKey)

	return base64.RawURLEncoding.EncodeToString(encrypted), nil
}

// NextCursor returns the cursor of the page following [offset, offset+limit)
// when a full page came back and more matches remain.
func NextCursor(offset, limit, returned, total int) (Cursor, bool) {
	if limit <= 0 || returned < limit || offset+returned >= total {
		return Cursor{}, false
	}
	return Cursor{Offset: offset + returned, Limit: limit}, true
}
