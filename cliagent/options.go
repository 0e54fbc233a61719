/*
Copyright 2026 ClaudeCodex Authors
SPDX-License-Identifier: Apache-2.0
*/

package cliagent

type config struct {
	bin string
}

// Option is a functional option for configuring an agent.
type Option func(*config)

// WithExecutable overrides the agent executable name or path. Useful for
// pinned install locations and for tests that substitute stub binaries.
func WithExecutable(path string) Option {
	return func(c *config) {
		if path != "" {
			c.bin = path
		}
	}
}
