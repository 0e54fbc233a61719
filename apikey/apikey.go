/*
Copyright 2026 ClaudeCodex Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package apikey classifies vendor API keys by their prefix convention.
//
// Anthropic keys carry the "sk-ant-" prefix and OpenAI keys the bare "sk-"
// prefix. Because "sk-ant-" is itself prefixed by "sk-", detection checks
// the more specific Anthropic prefix first. Classification is purely
// lexical: no network calls, and the key material itself is never logged.
package apikey

import (
	"errors"
	"strings"
)

// Provider identifies the vendor/credential family an API key belongs to.
type Provider string

const (
	// Anthropic keys start with "sk-ant-".
	Anthropic Provider = "anthropic"
	// OpenAI keys start with "sk-" (but not "sk-ant-").
	OpenAI Provider = "openai"
)

const (
	anthropicPrefix = "sk-ant-"
	openaiPrefix    = "sk-"
)

// ErrUnrecognizedKey indicates the credential matches neither provider's
// prefix convention. It deliberately carries no key material.
var ErrUnrecognizedKey = errors.New("apikey: credential matches no known provider prefix")

// Detect returns the provider a credential belongs to.
//
// The Anthropic prefix is checked before the OpenAI prefix since the latter
// is a sub-prefix of the former.
func Detect(credential string) (Provider, error) {
	switch {
	case strings.HasPrefix(credential, anthropicPrefix):
		return Anthropic, nil
	case strings.HasPrefix(credential, openaiPrefix):
		return OpenAI, nil
	default:
		return "", ErrUnrecognizedKey
	}
}

// String returns the provider name as used in logs and error messages.
func (p Provider) String() string {
	return string(p)
}
