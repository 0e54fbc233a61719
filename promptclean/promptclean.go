/*
Copyright 2026 ClaudeCodex Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package promptclean normalizes free-text instructions into byte-safe
// strings suitable for a child process's stdin or argv.
package promptclean

import (
	"context"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/chainguard-dev/clog"
)

// Sanitize strips replacement-character artifacts, invalid byte sequences,
// and surrogate code points from prompt, returning well-formed UTF-8.
//
// Sanitize never fails: if the cleaned text somehow does not survive strict
// validation, it logs a warning and returns the prompt unchanged, since a
// generation attempt with a possibly-malformed prompt beats no attempt.
// The function is idempotent.
func Sanitize(ctx context.Context, prompt string) string {
	if utf8.ValidString(prompt) && !strings.ContainsRune(prompt, utf8.RuneError) {
		return prompt
	}

	var b strings.Builder
	b.Grow(len(prompt))
	for _, r := range prompt {
		// Ranging over an invalid sequence yields RuneError, the same
		// code point as a genuine U+FFFD artifact. Both are dropped.
		if r == utf8.RuneError {
			continue
		}
		// Surrogates are not representable in well-formed UTF-8; they
		// show up when an upstream encoder passed through unpaired
		// UTF-16 code units.
		if utf16.IsSurrogate(r) {
			continue
		}
		b.WriteRune(r)
	}

	cleaned := b.String()
	if !utf8.ValidString(cleaned) {
		clog.FromContext(ctx).
			With("prompt_length", len(prompt)).
			Warn("Prompt sanitization produced invalid text, using original prompt")
		return prompt
	}
	return cleaned
}
