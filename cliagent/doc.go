/*
Copyright 2026 ClaudeCodex Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package cliagent runs code-generation agents that exist only as
// command-line executables.
//
// Two agents are supported, each with its own argument convention:
//
//   - Claude Code receives the prompt on stdin with permission prompts
//     bypassed (no human is attached to approve edits)
//   - Codex runs in automatic edit mode with the prompt as a trailing
//     positional argument
//
// Before invocation each agent's guardrail file (CLAUDE.md or AGENTS.md)
// is staged into the workspace root and removed again in a guaranteed
// cleanup phase, so successive requests against the same directory do not
// observe each other's state. The credential travels only through the
// child environment.
//
// Token usage on this path is estimated from text length; CLI agents do
// not report exact counts.
package cliagent
