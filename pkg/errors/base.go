// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package errors holds the typed errors shared by the content service layers.
// The HTTP facade maps each type to a status code.
package errors

import "fmt"

// base carries the message and the joined causes of every error type
type base struct {
	message string
	err     error
}

func (b base) error() string {
	if b.err == nil {
		return b.message
	}
	return fmt.Sprintf("%s: %v", b.message, b.err)
}
