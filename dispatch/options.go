/*
Copyright 2026 ClaudeCodex Authors
SPDX-License-Identifier: Apache-2.0
*/

package dispatch

import (
	"errors"
	"fmt"
	"time"

	"github.com/adhyaay-karnwal/claudecodex/apikey"
	"github.com/adhyaay-karnwal/claudecodex/chatapi"
	"github.com/adhyaay-karnwal/claudecodex/cliagent"
	"github.com/adhyaay-karnwal/claudecodex/modelselect"
	"github.com/adhyaay-karnwal/claudecodex/retry"
)

// Option is a functional option for configuring the Dispatcher.
type Option func(*Dispatcher) error

// WithCatalog replaces the built-in model catalog.
func WithCatalog(catalog *modelselect.Catalog) Option {
	return func(d *Dispatcher) error {
		if catalog == nil {
			return errors.New("catalog cannot be nil")
		}
		d.catalog = catalog
		return nil
	}
}

// WithRunner replaces the process runner used for CLI-backed agents.
// Tests use this to substitute fakes.
func WithRunner(run cliagent.RunFunc) Option {
	return func(d *Dispatcher) error {
		if run == nil {
			return errors.New("runner cannot be nil")
		}
		d.run = run
		return nil
	}
}

// WithExecutables overrides the agent executable names or paths. Empty
// values keep the defaults ("claude" and "codex").
func WithExecutables(claudeBin, codexBin string) Option {
	return func(d *Dispatcher) error {
		if claudeBin != "" {
			d.claudeBin = claudeBin
		}
		if codexBin != "" {
			d.codexBin = codexBin
		}
		return nil
	}
}

// WithCLITimeout sets the wall-clock limit for CLI-backed invocations.
func WithCLITimeout(timeout time.Duration) Option {
	return func(d *Dispatcher) error {
		if timeout <= 0 {
			return fmt.Errorf("CLI timeout must be positive, got %v", timeout)
		}
		d.cliTimeout = timeout
		return nil
	}
}

// WithCompletionParams sets the parameters for the direct-API text path.
func WithCompletionParams(params chatapi.Params) Option {
	return func(d *Dispatcher) error {
		if err := params.Retry.Validate(); err != nil {
			return err
		}
		d.params = params
		return nil
	}
}

// WithRetry opts in to absorbing transient provider errors on the
// direct-API path. By default nothing is retried by the core.
func WithRetry(cfg retry.Config) Option {
	return func(d *Dispatcher) error {
		if err := cfg.Validate(); err != nil {
			return err
		}
		d.params.Retry = cfg
		return nil
	}
}

// WithCaller replaces the direct-API completion implementation for one
// provider. Tests use this to substitute fakes.
func WithCaller(provider apikey.Provider, caller Caller) Option {
	return func(d *Dispatcher) error {
		if caller == nil {
			return errors.New("caller cannot be nil")
		}
		if _, ok := d.callers[provider]; !ok {
			return fmt.Errorf("unknown provider %q", provider)
		}
		d.callers[provider] = caller
		return nil
	}
}
