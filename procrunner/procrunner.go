/*
Copyright 2026 ClaudeCodex Authors
SPDX-License-Identifier: Apache-2.0
*/

package procrunner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"os/exec"
	"strings"
	"syscall"
	"time"

	"github.com/chainguard-dev/clog"
	"golang.org/x/sync/errgroup"
)

// Options configures a single child-process invocation.
type Options struct {
	// Stdin is the payload delivered on the child's standard input. A nil
	// slice leaves stdin unconnected so the child cannot block on a read;
	// an empty non-nil slice connects an immediately-closed stdin.
	Stdin []byte

	// Env is overlaid on the parent environment after the fixed
	// non-interactive variables. Later layers win.
	Env map[string]string

	// Dir is the child's working directory. Empty means inherit.
	Dir string

	// Timeout is the hard wall-clock limit. Zero or negative waits
	// indefinitely for the child to exit.
	Timeout time.Duration
}

// Outcome carries the captured streams and exit code of a child process
// that ran to completion. A non-zero ExitCode is data, not an error; the
// caller decides whether it is a failure.
type Outcome struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// SpawnError indicates the executable could not be started at all.
type SpawnError struct {
	Command string
	Err     error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("procrunner: spawning %q: %v", e.Command, e.Err)
}

func (e *SpawnError) Unwrap() error { return e.Err }

// TimeoutError indicates the child was still running when the wall-clock
// limit elapsed. The child received a single SIGTERM; the error is reported
// immediately without waiting for it to clean up.
type TimeoutError struct {
	Command string
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("procrunner: %q did not exit within %v", e.Command, e.Timeout)
}

// nonInteractiveEnv marks the child environment as non-interactive so CLI
// agents skip color output, progress spinners, and confirmation prompts.
var nonInteractiveEnv = map[string]string{
	"NO_COLOR":    "1",
	"FORCE_COLOR": "0",
	"CI":          "true",
	"TERM":        "dumb",
	"NODE_ENV":    "production",
}

// Run spawns command with args and waits for exactly one of three terminal
// resolutions: the child exits (any code), the timeout elapses, or the
// spawn itself fails. Both output streams are accumulated in memory as they
// arrive; no size bound is enforced at this layer.
func Run(ctx context.Context, command string, args []string, opts Options) (*Outcome, error) {
	log := clog.FromContext(ctx)

	cmd := exec.Command(command, args...)
	cmd.Dir = opts.Dir
	cmd.Env = mergeEnv(os.Environ(), opts.Env)
	if opts.Stdin != nil {
		cmd.Stdin = bytes.NewReader(opts.Stdin)
	}

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, &SpawnError{Command: command, Err: err}
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, &SpawnError{Command: command, Err: err}
	}

	var outBuf, errBuf bytes.Buffer
	pumps := new(errgroup.Group)
	pumps.Go(func() error {
		_, err := io.Copy(&outBuf, stdout)
		return err
	})
	pumps.Go(func() error {
		_, err := io.Copy(&errBuf, stderr)
		return err
	})

	start := time.Now()
	if err := cmd.Start(); err != nil {
		return nil, &SpawnError{Command: command, Err: err}
	}

	log.With("command", command).
		With("pid", cmd.Process.Pid).
		With("dir", opts.Dir).
		With("timeout", opts.Timeout).
		Info("Started child process")

	// The pipes must be fully drained before Wait releases them.
	done := make(chan error, 1)
	go func() {
		pumpErr := pumps.Wait()
		waitErr := cmd.Wait()
		if waitErr == nil {
			waitErr = pumpErr
		}
		done <- waitErr
	}()

	var timeout <-chan time.Time
	if opts.Timeout > 0 {
		timer := time.NewTimer(opts.Timeout)
		defer timer.Stop()
		timeout = timer.C
	}

	// Exactly one branch resolves the invocation; whichever loses the race
	// becomes a no-op, so a late exit cannot double-resolve and a late
	// stdout chunk cannot trigger a second signal.
	select {
	case waitErr := <-done:
		outcome := &Outcome{Stdout: outBuf.String(), Stderr: errBuf.String()}
		var exitErr *exec.ExitError
		switch {
		case waitErr == nil:
		case errors.As(waitErr, &exitErr):
			outcome.ExitCode = exitErr.ExitCode()
		default:
			return nil, fmt.Errorf("procrunner: reading %q output: %w", command, waitErr)
		}
		log.With("command", command).
			With("exit_code", outcome.ExitCode).
			With("duration", time.Since(start)).
			Info("Child process exited")
		return outcome, nil

	case <-timeout:
		if err := cmd.Process.Signal(syscall.SIGTERM); err != nil {
			log.With("command", command).
				With("error", err).
				Warn("Failed to signal timed-out child process")
		}
		return nil, &TimeoutError{Command: command, Timeout: opts.Timeout}
	}
}

// mergeEnv layers the fixed non-interactive variables and the caller's
// overrides onto the base environment. Later layers win.
func mergeEnv(base []string, overrides map[string]string) []string {
	merged := make(map[string]string, len(base)+len(nonInteractiveEnv)+len(overrides))
	for _, kv := range base {
		if k, v, ok := strings.Cut(kv, "="); ok {
			merged[k] = v
		}
	}
	maps.Copy(merged, nonInteractiveEnv)
	maps.Copy(merged, overrides)

	env := make([]string, 0, len(merged))
	for k, v := range merged {
		env = append(env, k+"="+v)
	}
	return env
}
