/*
Copyright 2026 ClaudeCodex Authors
SPDX-License-Identifier: Apache-2.0
*/

package cliagent

import (
	"fmt"

	"github.com/adhyaay-karnwal/claudecodex/apikey"
)

// KeyMismatchError indicates a well-formed credential that belongs to the
// wrong provider for the chosen agent.
type KeyMismatchError struct {
	Agent string
	Want  apikey.Provider
	Got   apikey.Provider
}

func (e *KeyMismatchError) Error() string {
	return fmt.Sprintf("cliagent: %s expects a %s credential, got a %s credential", e.Agent, e.Want, e.Got)
}

// ExecError indicates the agent process ran but exited non-zero. Both
// captured streams are preserved for diagnostics.
type ExecError struct {
	Agent    string
	ExitCode int
	Stdout   string
	Stderr   string
}

func (e *ExecError) Error() string {
	return fmt.Sprintf("cliagent: %s exited with code %d: %s", e.Agent, e.ExitCode, firstNonEmpty(e.Stderr, e.Stdout))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
