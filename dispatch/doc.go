/*
Copyright 2026 ClaudeCodex Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package dispatch is the orchestration core of the invocation subsystem.
//
// A single logical call, Dispatcher.Generate, takes a validated generation
// request (task kind, credential, prompt, optional model and workspace)
// and routes it through a closed four-way strategy table:
//
//	{code, anthropic} → Claude Code CLI against the workspace
//	{code, openai}    → Codex CLI against the workspace
//	{text, anthropic} → Anthropic Messages API
//	{text, openai}    → OpenAI chat completions API
//
// The provider is always inferred from the credential prefix, never
// user-assigned. Per request the dispatcher classifies the credential,
// sanitizes the prompt, selects the model, invokes the strategy, and
// normalizes the outcome; it either fully completes with a Result or fails
// with a typed error. There is no partial success.
//
// The dispatcher knows nothing about HTTP, sessions, or repositories. The
// HTTP-facing collaborator owns request validation, authentication,
// response serialization, and any retry or admission-control policy.
//
// Failure taxonomy surfaced to callers:
//
//   - apikey.ErrUnrecognizedKey: credential matches no provider prefix
//   - *cliagent.KeyMismatchError: well-formed key, wrong provider for agent
//   - ErrUnsupportedTask: task kind outside {code, text}
//   - *procrunner.SpawnError: agent executable could not be started
//   - *procrunner.TimeoutError: agent still running at the deadline
//   - *cliagent.ExecError: agent exited non-zero (carries both streams)
//   - *chatapi.APIError: transport or provider failure on the text path
//
// Sanitization and model-selection problems are absorbed (fallback to the
// original prompt or the default model) and never surface as failures.
package dispatch
