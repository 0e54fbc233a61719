/*
Copyright 2026 ClaudeCodex Authors
SPDX-License-Identifier: Apache-2.0
*/

package modelselect

import (
	"context"
	"slices"

	"github.com/adhyaay-karnwal/claudecodex/apikey"
	"github.com/chainguard-dev/clog"
)

// Mode distinguishes which surface the model identifier is destined for.
// CLI agents and the hosted completion APIs accept different identifiers,
// so each provider carries a separate default and allow-list per mode.
type Mode string

const (
	// ModeCLI selects models for spawned agent executables.
	ModeCLI Mode = "cli"
	// ModeAPI selects models for direct hosted completion calls.
	ModeAPI Mode = "api"
)

// DefaultSentinel is the caller-supplied value that explicitly requests the
// provider default, equivalent to omitting the model entirely.
const DefaultSentinel = "default"

type cell struct {
	fallback string
	allowed  []string
}

// Catalog holds the default model and allow-list for each provider and mode.
type Catalog struct {
	cells map[apikey.Provider]map[Mode]cell
}

// Default returns the built-in catalog.
//
// The CLI cells carry the short aliases the agent executables understand,
// while the API cells carry full dated identifiers; the two must not be
// conflated.
func Default() *Catalog {
	return &Catalog{cells: map[apikey.Provider]map[Mode]cell{
		apikey.Anthropic: {
			ModeCLI: {
				fallback: "sonnet",
				allowed:  []string{"sonnet", "opus", "haiku", "claude-sonnet-4-20250514", "claude-opus-4-1-20250805"},
			},
			ModeAPI: {
				fallback: "claude-sonnet-4-20250514",
				allowed:  []string{"claude-sonnet-4-20250514", "claude-opus-4-1-20250805", "claude-3-5-haiku-20241022"},
			},
		},
		apikey.OpenAI: {
			ModeCLI: {
				fallback: "gpt-5",
				allowed:  []string{"gpt-5", "gpt-5-codex", "o3", "o4-mini", "codex-mini-latest"},
			},
			ModeAPI: {
				fallback: "gpt-4o",
				allowed:  []string{"gpt-4o", "gpt-4o-mini", "gpt-4.1", "o3", "gpt-5"},
			},
		},
	}}
}

// Select validates a caller-supplied model identifier against the catalog.
//
// An absent, empty, or DefaultSentinel model yields the provider+mode
// default. A model outside the allow-list logs a warning and yields the
// default as well; invalid model selection is never a hard error. A model
// inside the allow-list is returned unchanged.
func (c *Catalog) Select(ctx context.Context, model string, provider apikey.Provider, mode Mode) string {
	entry := c.cells[provider][mode]

	if model == "" || model == DefaultSentinel {
		return entry.fallback
	}
	if slices.Contains(entry.allowed, model) {
		return model
	}

	clog.FromContext(ctx).
		With("model", model).
		With("provider", provider).
		With("mode", mode).
		With("fallback", entry.fallback).
		Warn("Requested model not in allow-list, substituting default")
	return entry.fallback
}

// Select validates model against the built-in catalog.
func Select(ctx context.Context, model string, provider apikey.Provider, mode Mode) string {
	return Default().Select(ctx, model, provider, mode)
}
