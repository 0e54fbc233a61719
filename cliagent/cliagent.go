/*
Copyright 2026 ClaudeCodex Authors
SPDX-License-Identifier: Apache-2.0
*/

package cliagent

import (
	"context"
	"strings"
	"time"

	"github.com/adhyaay-karnwal/claudecodex/apikey"
	"github.com/adhyaay-karnwal/claudecodex/procrunner"
	"github.com/chainguard-dev/clog"
)

// DefaultTimeout bounds a single agent invocation. Generation may involve
// multi-step autonomous edits, so the limit is deliberately generous.
const DefaultTimeout = 30 * time.Minute

// charsPerToken is the divisor for length-based usage estimates. CLI agents
// do not report exact token counts, so estimates are not authoritative.
const charsPerToken = 4

// RunFunc spawns a child process. Production code passes procrunner.Run;
// tests substitute fakes.
type RunFunc func(ctx context.Context, command string, args []string, opts procrunner.Options) (*procrunner.Outcome, error)

// Agent is an external, independently-versioned executable that performs
// autonomous code edits given a prompt and a working directory.
type Agent interface {
	// Name is the agent's executable name, used in logs and errors.
	Name() string
	// Provider is the credential family the agent expects.
	Provider() apikey.Provider
	// InstructionFile names the guardrail file staged into the workspace
	// root for the invocation. Empty means the agent stages nothing.
	InstructionFile() string

	command(inv Invocation) (args []string, stdin []byte)
	instructions() string
}

// Invocation carries one generation request against an agent. The prompt
// is expected to be sanitized and the model already selected.
type Invocation struct {
	APIKey    string
	Prompt    string
	Model     string
	Workspace string
	// Timeout overrides DefaultTimeout when positive.
	Timeout time.Duration
}

// Result is the normalized output of a successful agent run. Token figures
// are length-based estimates.
type Result struct {
	Content      string
	InputTokens  int64
	OutputTokens int64
	TotalTokens  int64
}

// Generate invokes agent for a single request.
//
// The credential is validated against the agent's expected provider, the
// guardrail file is staged into the workspace (best effort, removed again
// in a guaranteed cleanup phase), and the agent executable is spawned via
// run. A non-zero exit escalates to *ExecError carrying both captured
// streams; spawn and timeout failures from the runner pass through as-is.
func Generate(ctx context.Context, agent Agent, run RunFunc, inv Invocation) (*Result, error) {
	log := clog.FromContext(ctx)

	provider, err := apikey.Detect(inv.APIKey)
	if err != nil {
		return nil, err
	}
	if provider != agent.Provider() {
		return nil, &KeyMismatchError{Agent: agent.Name(), Want: agent.Provider(), Got: provider}
	}

	if inv.Workspace != "" && agent.InstructionFile() != "" {
		if cleanup := stageInstructions(ctx, inv.Workspace, agent.InstructionFile(), agent.instructions()); cleanup != nil {
			defer cleanup()
		}
	}

	timeout := inv.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	args, stdin := agent.command(inv)
	outcome, err := run(ctx, agent.Name(), args, procrunner.Options{
		Stdin:   stdin,
		Env:     map[string]string{credentialEnv(provider): inv.APIKey},
		Dir:     inv.Workspace,
		Timeout: timeout,
	})
	if err != nil {
		return nil, err
	}
	if outcome.ExitCode != 0 {
		return nil, &ExecError{
			Agent:    agent.Name(),
			ExitCode: outcome.ExitCode,
			Stdout:   outcome.Stdout,
			Stderr:   outcome.Stderr,
		}
	}

	content := strings.TrimSpace(outcome.Stdout)
	result := &Result{
		Content:      content,
		InputTokens:  estimateTokens(inv.Prompt),
		OutputTokens: estimateTokens(content),
	}
	result.TotalTokens = result.InputTokens + result.OutputTokens

	log.With("agent", agent.Name()).
		With("content_length", len(content)).
		With("estimated_tokens", result.TotalTokens).
		Info("Agent generation completed")
	return result, nil
}

// credentialEnv names the environment variable the agent reads its API key
// from. The key is injected only into the child environment, never argv.
func credentialEnv(provider apikey.Provider) string {
	if provider == apikey.Anthropic {
		return "ANTHROPIC_API_KEY"
	}
	return "OPENAI_API_KEY"
}

// estimateTokens approximates a token count from text length.
func estimateTokens(text string) int64 {
	return int64((len(text) + charsPerToken - 1) / charsPerToken)
}
