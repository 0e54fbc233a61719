/*
Copyright 2026 ClaudeCodex Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package chatapi implements text generation against the hosted completion
// endpoints, the no-subprocess alternative to the CLI-backed agents.
//
// Clients are constructed per request from the request's own credential, so
// the package holds no state across calls. Usage figures on this path are
// exact, taken from the provider's reported token counts.
package chatapi

import (
	"fmt"

	"github.com/adhyaay-karnwal/claudecodex/apikey"
	"github.com/adhyaay-karnwal/claudecodex/retry"
)

// Completion is the normalized output of a direct API call. Token figures
// are provider-reported and exact.
type Completion struct {
	Content      string
	InputTokens  int64
	OutputTokens int64
	TotalTokens  int64
}

// Params bound a completion request. Zero values are replaced by
// DefaultParams values.
type Params struct {
	// MaxTokens caps the response length.
	MaxTokens int64
	// Temperature is kept low for deterministic completions.
	Temperature float64
	// Retry controls absorption of transient provider errors. The default
	// runs every call exactly once.
	Retry retry.Config
	// BaseURL overrides the provider endpoint, for proxies and tests.
	// Empty uses the provider default.
	BaseURL string
}

// DefaultParams returns the standard completion parameters.
func DefaultParams() Params {
	return Params{
		MaxTokens:   4096,
		Temperature: 0.2,
		Retry:       retry.Disabled(),
	}
}

func (p Params) withDefaults() Params {
	d := DefaultParams()
	if p.MaxTokens <= 0 {
		p.MaxTokens = d.MaxTokens
	}
	if p.Temperature <= 0 {
		p.Temperature = d.Temperature
	}
	return p
}

// APIError wraps a transport or provider failure on the direct API path,
// preserving the provider name and the underlying message.
type APIError struct {
	Provider apikey.Provider
	Err      error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("chatapi: %s completion failed: %v", e.Provider, e.Err)
}

func (e *APIError) Unwrap() error { return e.Err }
