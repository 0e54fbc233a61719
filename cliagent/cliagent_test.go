/*
Copyright 2026 ClaudeCodex Authors
SPDX-License-Identifier: Apache-2.0
*/

package cliagent_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/adhyaay-karnwal/claudecodex/apikey"
	"github.com/adhyaay-karnwal/claudecodex/cliagent"
	"github.com/adhyaay-karnwal/claudecodex/procrunner"
	"github.com/google/go-cmp/cmp"
)

const (
	anthropicKey = "sk-ant-abc123456789"
	openaiKey    = "sk-proj-abc123456789"
)

// capturedRun records a single runner call and returns a canned outcome.
type capturedRun struct {
	command string
	args    []string
	opts    procrunner.Options
	calls   int

	outcome *procrunner.Outcome
	err     error
}

func (c *capturedRun) run(_ context.Context, command string, args []string, opts procrunner.Options) (*procrunner.Outcome, error) {
	c.calls++
	c.command = command
	c.args = args
	c.opts = opts
	return c.outcome, c.err
}

func TestGenerateClaudeArgv(t *testing.T) {
	t.Parallel()
	fake := &capturedRun{outcome: &procrunner.Outcome{Stdout: "done\n"}}

	result, err := cliagent.Generate(context.Background(), cliagent.NewClaudeCode(), fake.run, cliagent.Invocation{
		APIKey: anthropicKey,
		Prompt: "fix the bug",
		Model:  "sonnet",
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if fake.command != "claude" {
		t.Errorf("command = %q, want claude", fake.command)
	}
	wantArgs := []string{"--print", "--dangerously-skip-permissions", "--output-format", "text", "--model", "sonnet"}
	if diff := cmp.Diff(wantArgs, fake.args); diff != "" {
		t.Errorf("args mismatch (-want +got):\n%s", diff)
	}
	if got := string(fake.opts.Stdin); got != "fix the bug" {
		t.Errorf("stdin = %q, want the prompt", got)
	}
	if got := fake.opts.Env["ANTHROPIC_API_KEY"]; got != anthropicKey {
		t.Errorf("ANTHROPIC_API_KEY = %q, want the credential", got)
	}
	if fake.opts.Timeout != cliagent.DefaultTimeout {
		t.Errorf("timeout = %v, want %v", fake.opts.Timeout, cliagent.DefaultTimeout)
	}

	// ceil(len("fix the bug")/4) = 3 in, ceil(len("done")/4) = 1 out.
	want := &cliagent.Result{Content: "done", InputTokens: 3, OutputTokens: 1, TotalTokens: 4}
	if diff := cmp.Diff(want, result); diff != "" {
		t.Errorf("Result mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerateCodexArgv(t *testing.T) {
	t.Parallel()
	fake := &capturedRun{outcome: &procrunner.Outcome{Stdout: "patched"}}

	_, err := cliagent.Generate(context.Background(), cliagent.NewCodex(), fake.run, cliagent.Invocation{
		APIKey: openaiKey,
		Prompt: "add a test",
		Model:  "gpt-5",
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if fake.command != "codex" {
		t.Errorf("command = %q, want codex", fake.command)
	}
	wantArgs := []string{"--auto-edit", "--quiet", "-m", "gpt-5", "add a test"}
	if diff := cmp.Diff(wantArgs, fake.args); diff != "" {
		t.Errorf("args mismatch (-want +got):\n%s", diff)
	}
	if fake.opts.Stdin != nil {
		t.Errorf("codex stdin = %q, want unconnected", fake.opts.Stdin)
	}
	if got := fake.opts.Env["OPENAI_API_KEY"]; got != openaiKey {
		t.Errorf("OPENAI_API_KEY = %q, want the credential", got)
	}
}

func TestGenerateKeyValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		agent        cliagent.Agent
		key          string
		wantMismatch bool
	}{{
		name:  "unrecognized key fails before spawning",
		agent: cliagent.NewClaudeCode(),
		key:   "not-a-key",
	}, {
		name:         "openai key rejected by claude",
		agent:        cliagent.NewClaudeCode(),
		key:          openaiKey,
		wantMismatch: true,
	}, {
		name:         "anthropic key rejected by codex",
		agent:        cliagent.NewCodex(),
		key:          anthropicKey,
		wantMismatch: true,
	}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			fake := &capturedRun{outcome: &procrunner.Outcome{}}
			_, err := cliagent.Generate(context.Background(), tt.agent, fake.run, cliagent.Invocation{
				APIKey: tt.key,
				Prompt: "anything",
			})
			if tt.wantMismatch {
				var mismatch *cliagent.KeyMismatchError
				if !errors.As(err, &mismatch) {
					t.Fatalf("error = %v, want *KeyMismatchError", err)
				}
			} else if !errors.Is(err, apikey.ErrUnrecognizedKey) {
				t.Fatalf("error = %v, want ErrUnrecognizedKey", err)
			}
			if fake.calls != 0 {
				t.Fatalf("runner called %d times, want 0 (no process before validation)", fake.calls)
			}
		})
	}
}

func TestGenerateNonZeroExit(t *testing.T) {
	t.Parallel()
	fake := &capturedRun{outcome: &procrunner.Outcome{
		Stdout:   "partial",
		Stderr:   "agent blew up",
		ExitCode: 2,
	}}

	_, err := cliagent.Generate(context.Background(), cliagent.NewClaudeCode(), fake.run, cliagent.Invocation{
		APIKey: anthropicKey,
		Prompt: "do something",
	})

	var execErr *cliagent.ExecError
	if !errors.As(err, &execErr) {
		t.Fatalf("error = %v, want *ExecError", err)
	}
	if execErr.ExitCode != 2 || execErr.Stderr != "agent blew up" || execErr.Stdout != "partial" {
		t.Fatalf("ExecError missing diagnostics: %+v", execErr)
	}
}

func TestGenerateRunnerErrorsPassThrough(t *testing.T) {
	t.Parallel()
	timeout := &procrunner.TimeoutError{Command: "claude", Timeout: time.Minute}
	fake := &capturedRun{err: timeout}

	_, err := cliagent.Generate(context.Background(), cliagent.NewClaudeCode(), fake.run, cliagent.Invocation{
		APIKey: anthropicKey,
		Prompt: "slow task",
	})

	var timeoutErr *procrunner.TimeoutError
	if !errors.As(err, &timeoutErr) {
		t.Fatalf("error = %v, want the runner's *TimeoutError unchanged", err)
	}
}

func TestGenerateStagesAndRemovesInstructionFile(t *testing.T) {
	t.Parallel()
	workspace := t.TempDir()
	staged := filepath.Join(workspace, "CLAUDE.md")

	var seenDuringRun bool
	run := func(_ context.Context, _ string, _ []string, _ procrunner.Options) (*procrunner.Outcome, error) {
		_, err := os.Stat(staged)
		seenDuringRun = err == nil
		return &procrunner.Outcome{Stdout: "ok"}, nil
	}

	if _, err := cliagent.Generate(context.Background(), cliagent.NewClaudeCode(), run, cliagent.Invocation{
		APIKey:    anthropicKey,
		Prompt:    "edit files",
		Workspace: workspace,
	}); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if !seenDuringRun {
		t.Error("instruction file was not staged during the invocation")
	}
	if _, err := os.Stat(staged); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("instruction file still present after the invocation: %v", err)
	}
}

func TestGenerateCleansUpInstructionFileOnFailure(t *testing.T) {
	t.Parallel()
	workspace := t.TempDir()

	run := func(_ context.Context, _ string, _ []string, _ procrunner.Options) (*procrunner.Outcome, error) {
		return &procrunner.Outcome{Stderr: "nope", ExitCode: 1}, nil
	}

	_, err := cliagent.Generate(context.Background(), cliagent.NewCodex(), run, cliagent.Invocation{
		APIKey:    openaiKey,
		Prompt:    "edit files",
		Workspace: workspace,
	})
	if err == nil {
		t.Fatal("expected an ExecError")
	}

	if _, statErr := os.Stat(filepath.Join(workspace, "AGENTS.md")); !errors.Is(statErr, os.ErrNotExist) {
		t.Errorf("AGENTS.md not cleaned up after failed invocation: %v", statErr)
	}
}

func TestGenerateLeavesExistingInstructionFileAlone(t *testing.T) {
	t.Parallel()
	workspace := t.TempDir()
	existing := filepath.Join(workspace, "CLAUDE.md")
	if err := os.WriteFile(existing, []byte("user content\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	run := func(_ context.Context, _ string, _ []string, _ procrunner.Options) (*procrunner.Outcome, error) {
		return &procrunner.Outcome{Stdout: "ok"}, nil
	}
	if _, err := cliagent.Generate(context.Background(), cliagent.NewClaudeCode(), run, cliagent.Invocation{
		APIKey:    anthropicKey,
		Prompt:    "edit files",
		Workspace: workspace,
	}); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	content, err := os.ReadFile(existing)
	if err != nil {
		t.Fatalf("pre-existing CLAUDE.md was removed: %v", err)
	}
	if string(content) != "user content\n" {
		t.Errorf("pre-existing CLAUDE.md was rewritten: %q", content)
	}
}

// TestGenerateAgainstStubExecutable exercises the full path through
// procrunner with a shell script standing in for the agent binary.
func TestGenerateAgainstStubExecutable(t *testing.T) {
	t.Parallel()
	bin := filepath.Join(t.TempDir(), "claude")
	script := "#!/bin/sh\n" +
		"# echo the stdin prompt back, proving delivery and env injection\n" +
		"cat\n" +
		"printf ' key=%s' \"${ANTHROPIC_API_KEY:+set}\"\n"
	if err := os.WriteFile(bin, []byte(script), 0o755); err != nil {
		t.Fatal(err)
	}

	agent := cliagent.NewClaudeCode(cliagent.WithExecutable(bin))
	result, err := cliagent.Generate(context.Background(), agent, procrunner.Run, cliagent.Invocation{
		APIKey:  anthropicKey,
		Prompt:  "hello agent",
		Model:   "sonnet",
		Timeout: 10 * time.Second,
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if result.Content != "hello agent key=set" {
		t.Fatalf("Content = %q, want prompt echo plus env marker", result.Content)
	}
}
