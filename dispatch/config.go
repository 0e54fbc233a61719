/*
Copyright 2026 ClaudeCodex Authors
SPDX-License-Identifier: Apache-2.0
*/

package dispatch

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/adhyaay-karnwal/claudecodex/chatapi"
	"github.com/adhyaay-karnwal/claudecodex/modelselect"
	"github.com/sethvargo/go-envconfig"
)

// EnvConfig carries the deployment knobs for the invocation core. The
// HTTP-facing collaborator typically loads this once at startup and hands
// the resulting options to New.
type EnvConfig struct {
	// ClaudeBin and CodexBin name the agent executables.
	ClaudeBin string `env:"CLAUDE_BIN,default=claude"`
	CodexBin  string `env:"CODEX_BIN,default=codex"`

	// AgentTimeout bounds a single CLI-backed invocation. Generous by
	// default since agents may perform multi-step autonomous edits.
	AgentTimeout time.Duration `env:"AGENT_TIMEOUT,default=30m"`

	// CompletionMaxTokens and CompletionTemperature shape the direct-API
	// text path.
	CompletionMaxTokens   int64   `env:"COMPLETION_MAX_TOKENS,default=4096"`
	CompletionTemperature float64 `env:"COMPLETION_TEMPERATURE,default=0.2"`

	// ModelCatalog optionally points at a YAML file overriding the
	// built-in model defaults and allow-lists.
	ModelCatalog string `env:"MODEL_CATALOG"`
}

// OptionsFromEnv loads EnvConfig from the process environment and converts
// it into Dispatcher options.
func OptionsFromEnv(ctx context.Context) ([]Option, error) {
	var cfg EnvConfig
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("processing environment: %w", err)
	}
	return cfg.Options()
}

// Options converts the config into Dispatcher options.
func (c EnvConfig) Options() ([]Option, error) {
	opts := []Option{
		WithExecutables(c.ClaudeBin, c.CodexBin),
		WithCLITimeout(c.AgentTimeout),
		WithCompletionParams(chatapi.Params{
			MaxTokens:   c.CompletionMaxTokens,
			Temperature: c.CompletionTemperature,
		}),
	}

	if c.ModelCatalog != "" {
		f, err := os.Open(c.ModelCatalog)
		if err != nil {
			return nil, fmt.Errorf("opening model catalog: %w", err)
		}
		defer f.Close()
		catalog, err := modelselect.LoadCatalog(f)
		if err != nil {
			return nil, fmt.Errorf("loading model catalog %q: %w", c.ModelCatalog, err)
		}
		opts = append(opts, WithCatalog(catalog))
	}
	return opts, nil
}
