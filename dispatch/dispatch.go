/*
Copyright 2026 ClaudeCodex Authors
SPDX-License-Identifier: Apache-2.0
*/

package dispatch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/adhyaay-karnwal/claudecodex/apikey"
	"github.com/adhyaay-karnwal/claudecodex/chatapi"
	"github.com/adhyaay-karnwal/claudecodex/cliagent"
	"github.com/adhyaay-karnwal/claudecodex/metrics"
	"github.com/adhyaay-karnwal/claudecodex/modelselect"
	"github.com/adhyaay-karnwal/claudecodex/procrunner"
	"github.com/adhyaay-karnwal/claudecodex/promptclean"
	"github.com/chainguard-dev/clog"
	"github.com/google/uuid"
)

// TaskKind selects the generation strategy family.
type TaskKind string

const (
	// TaskCode routes to a CLI-backed agent operating on a workspace.
	TaskCode TaskKind = "code"
	// TaskText routes to the provider's hosted completion endpoint.
	TaskText TaskKind = "text"
)

// ErrUnsupportedTask indicates a task kind outside the closed
// {code, text} enumeration.
var ErrUnsupportedTask = errors.New("dispatch: unsupported task kind")

// Request is one validated generation request. The credential and prompt
// are owned by this call; nothing retains them past its completion.
type Request struct {
	Task   TaskKind
	APIKey string
	Prompt string
	// Model is optional; empty or "default" selects the provider default.
	Model string
	// Workspace is the directory a CLI-backed agent edits. Unused on the
	// text path.
	Workspace string
}

// Usage is the token accounting for one generation. Figures are exact on
// the text path and length-based estimates on the code path.
type Usage struct {
	InputTokens  int64
	OutputTokens int64
	TotalTokens  int64
}

// Result is the normalized outcome of a successful generation.
type Result struct {
	Content string
	Usage   Usage
}

// Caller performs a direct hosted completion. chatapi.CompleteAnthropic
// and chatapi.CompleteOpenAI are the production implementations; tests
// substitute fakes.
type Caller func(ctx context.Context, key, prompt, model string, params chatapi.Params) (*chatapi.Completion, error)

type route struct {
	task     TaskKind
	provider apikey.Provider
}

type strategy func(ctx context.Context, req Request) (*Result, error)

// Dispatcher routes generation requests to one of four strategies keyed by
// {task kind, provider}. It holds no per-request state and is safe for
// concurrent use; each request runs independently with no shared mutable
// state and no admission control at this layer.
type Dispatcher struct {
	catalog    *modelselect.Catalog
	run        cliagent.RunFunc
	params     chatapi.Params
	cliTimeout time.Duration
	claudeBin  string
	codexBin   string
	callers    map[apikey.Provider]Caller

	strategies   map[route]strategy
	genaiMetrics *metrics.GenAI
}

// New creates a Dispatcher with the four-way strategy table wired up.
func New(opts ...Option) (*Dispatcher, error) {
	d := &Dispatcher{
		catalog:    modelselect.Default(),
		run:        procrunner.Run,
		params:     chatapi.DefaultParams(),
		cliTimeout: cliagent.DefaultTimeout,
		claudeBin:  "claude",
		codexBin:   "codex",
		callers: map[apikey.Provider]Caller{
			apikey.Anthropic: chatapi.CompleteAnthropic,
			apikey.OpenAI:    chatapi.CompleteOpenAI,
		},
		genaiMetrics: metrics.NewGenAI("claudecodex.generate"),
	}

	for _, opt := range opts {
		if err := opt(d); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	claude := cliagent.NewClaudeCode(cliagent.WithExecutable(d.claudeBin))
	codex := cliagent.NewCodex(cliagent.WithExecutable(d.codexBin))

	d.strategies = map[route]strategy{
		{TaskCode, apikey.Anthropic}: d.cliStrategy(claude),
		{TaskCode, apikey.OpenAI}:    d.cliStrategy(codex),
		{TaskText, apikey.Anthropic}: d.apiStrategy(apikey.Anthropic),
		{TaskText, apikey.OpenAI}:    d.apiStrategy(apikey.OpenAI),
	}
	return d, nil
}

// Generate runs one request through classification, sanitization, model
// selection, and the selected strategy, producing a normalized result or a
// typed failure. The credential is never logged and never appears in any
// returned value.
func (d *Dispatcher) Generate(ctx context.Context, req Request) (result *Result, err error) {
	log := clog.FromContext(ctx).
		With("invocation_id", uuid.NewString()).
		With("task", req.Task)
	ctx = clog.WithLogger(ctx, log)

	if req.Task != TaskCode && req.Task != TaskText {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedTask, req.Task)
	}

	provider, err := apikey.Detect(req.APIKey)
	if err != nil {
		return nil, err
	}
	log = log.With("provider", provider)
	ctx = clog.WithLogger(ctx, log)

	agentDim := string(req.Task) + "/" + provider.String()
	defer func() {
		outcome := "succeeded"
		if err != nil {
			outcome = "failed"
		}
		d.genaiMetrics.RecordInvocation(ctx, agentDim, outcome)
	}()

	log.With("prompt_length", len(req.Prompt)).Info("Dispatching generation request")
	return d.strategies[route{req.Task, provider}](ctx, req)
}

// cliStrategy builds the Code-path strategy for one agent.
func (d *Dispatcher) cliStrategy(agent cliagent.Agent) strategy {
	return func(ctx context.Context, req Request) (*Result, error) {
		prompt := promptclean.Sanitize(ctx, req.Prompt)
		model := d.catalog.Select(ctx, req.Model, agent.Provider(), modelselect.ModeCLI)

		res, err := cliagent.Generate(ctx, agent, d.run, cliagent.Invocation{
			APIKey:    req.APIKey,
			Prompt:    prompt,
			Model:     model,
			Workspace: req.Workspace,
			Timeout:   d.cliTimeout,
		})
		if err != nil {
			return nil, err
		}

		d.genaiMetrics.RecordTokens(ctx, model, metrics.Estimated, res.InputTokens, res.OutputTokens)
		return &Result{
			Content: res.Content,
			Usage: Usage{
				InputTokens:  res.InputTokens,
				OutputTokens: res.OutputTokens,
				TotalTokens:  res.TotalTokens,
			},
		}, nil
	}
}

// apiStrategy builds the Text-path strategy for one provider.
func (d *Dispatcher) apiStrategy(provider apikey.Provider) strategy {
	return func(ctx context.Context, req Request) (*Result, error) {
		prompt := promptclean.Sanitize(ctx, req.Prompt)
		model := d.catalog.Select(ctx, req.Model, provider, modelselect.ModeAPI)

		completion, err := d.callers[provider](ctx, req.APIKey, prompt, model, d.params)
		if err != nil {
			return nil, err
		}

		d.genaiMetrics.RecordTokens(ctx, model, metrics.Exact, completion.InputTokens, completion.OutputTokens)
		return &Result{
			Content: completion.Content,
			Usage: Usage{
				InputTokens:  completion.InputTokens,
				OutputTokens: completion.OutputTokens,
				TotalTokens:  completion.TotalTokens,
			},
		}, nil
	}
}
