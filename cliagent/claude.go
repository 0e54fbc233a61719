/*
Copyright 2026 ClaudeCodex Authors
SPDX-License-Identifier: Apache-2.0
*/

package cliagent

import "github.com/adhyaay-karnwal/claudecodex/apikey"

// claudeInstructions is staged as CLAUDE.md in the workspace root for the
// duration of an invocation.
const claudeInstructions = `# Automated invocation

This session is driven by an unattended code-generation service.

- Apply the requested change directly; do not ask clarifying questions.
- Keep edits minimal and scoped to the instruction.
- Do not create commits, branches, or pull requests.
- Do not modify files outside this workspace.
`

// ClaudeCode invokes the Claude Code executable. The prompt is delivered on
// stdin with permission prompts bypassed, since no human is attached.
type ClaudeCode struct {
	bin string
}

// NewClaudeCode returns a ClaudeCode agent.
func NewClaudeCode(opts ...Option) *ClaudeCode {
	cfg := config{bin: "claude"}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &ClaudeCode{bin: cfg.bin}
}

// Name implements Agent.
func (c *ClaudeCode) Name() string { return c.bin }

// Provider implements Agent.
func (c *ClaudeCode) Provider() apikey.Provider { return apikey.Anthropic }

// InstructionFile implements Agent.
func (c *ClaudeCode) InstructionFile() string { return "CLAUDE.md" }

func (c *ClaudeCode) instructions() string { return claudeInstructions }

func (c *ClaudeCode) command(inv Invocation) (args []string, stdin []byte) {
	args = []string{
		"--print",
		"--dangerously-skip-permissions",
		"--output-format", "text",
		"--model", inv.Model,
	}
	return args, []byte(inv.Prompt)
}
