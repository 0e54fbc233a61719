/*
Copyright 2026 ClaudeCodex Authors
SPDX-License-Identifier: Apache-2.0
*/

package cliagent

import "github.com/adhyaay-karnwal/claudecodex/apikey"

// codexInstructions is staged as AGENTS.md in the workspace root for the
// duration of an invocation.
const codexInstructions = `# Automated invocation

This session is driven by an unattended code-generation service.

- Apply the requested change directly; do not ask clarifying questions.
- Keep edits minimal and scoped to the instruction.
- Do not create commits, branches, or pull requests.
- Do not modify files outside this workspace.
`

// Codex invokes the Codex executable in automatic edit mode. Unlike Claude
// Code it takes the prompt as a trailing positional argument.
type Codex struct {
	bin string
}

// NewCodex returns a Codex agent.
func NewCodex(opts ...Option) *Codex {
	cfg := config{bin: "codex"}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Codex{bin: cfg.bin}
}

// Name implements Agent.
func (c *Codex) Name() string { return c.bin }

// Provider implements Agent.
func (c *Codex) Provider() apikey.Provider { return apikey.OpenAI }

// InstructionFile implements Agent.
func (c *Codex) InstructionFile() string { return "AGENTS.md" }

func (c *Codex) instructions() string { return codexInstructions }

func (c *Codex) command(inv Invocation) (args []string, stdin []byte) {
	args = []string{"--auto-edit", "--quiet"}
	if inv.Model != "" {
		args = append(args, "-m", inv.Model)
	}
	args = append(args, inv.Prompt)
	return args, nil
}
