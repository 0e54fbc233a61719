/*
Copyright 2026 ClaudeCodex Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package metrics provides OpenTelemetry metrics for generation requests.
package metrics

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// Exactness records whether a usage figure came from provider-reported
// token counts or from a length-based estimate.
type Exactness string

const (
	// Exact usage is reported by the provider on the direct API path.
	Exact Exactness = "exact"
	// Estimated usage is derived from text length on the CLI path and is
	// not authoritative.
	Estimated Exactness = "estimated"
)

// GenAI provides counters for token usage and agent invocations, with
// graceful degradation if counter creation fails.
type GenAI struct {
	meter            metric.Meter
	promptTokens     metric.Int64Counter
	completionTokens metric.Int64Counter
	invocations      metric.Int64Counter
}

// NewGenAI creates a GenAI metrics instance on the named meter. The meter
// name should be unified across the subsystem (e.g. "claudecodex.generate")
// with model, agent path, and exactness serving as dimensions. If any
// counter fails to initialize it is replaced with a no-op so metrics never
// break generation.
func NewGenAI(meterName string) *GenAI {
	meter := otel.Meter(meterName, metric.WithInstrumentationVersion("1.0.0"))

	promptTokens, err := meter.Int64Counter("genai.token.prompt",
		metric.WithDescription("The number of prompt tokens used"),
		metric.WithUnit("{tokens}"))
	if err != nil {
		slog.Warn("Failed to create prompt tokens counter, metrics will be disabled", "error", err, "meter", meterName)
		promptTokens = noop.Int64Counter{}
	}

	completionTokens, err := meter.Int64Counter("genai.token.completion",
		metric.WithDescription("The number of completion tokens used"),
		metric.WithUnit("{tokens}"))
	if err != nil {
		slog.Warn("Failed to create completion tokens counter, metrics will be disabled", "error", err, "meter", meterName)
		completionTokens = noop.Int64Counter{}
	}

	invocations, err := meter.Int64Counter("genai.invocations",
		metric.WithDescription("The number of generation invocations by outcome"),
		metric.WithUnit("{invocations}"))
	if err != nil {
		slog.Warn("Failed to create invocation counter, metrics will be disabled", "error", err, "meter", meterName)
		invocations = noop.Int64Counter{}
	}

	return &GenAI{
		meter:            meter,
		promptTokens:     promptTokens,
		completionTokens: completionTokens,
		invocations:      invocations,
	}
}

// RecordTokens records prompt and completion token usage for one
// invocation, tagged with the model and whether the figures are exact.
func (m *GenAI) RecordTokens(ctx context.Context, model string, exactness Exactness, promptTokens, completionTokens int64) {
	attrs := metric.WithAttributes(
		attribute.String("model", model),
		attribute.String("exactness", string(exactness)),
	)
	m.promptTokens.Add(ctx, promptTokens, attrs)
	m.completionTokens.Add(ctx, completionTokens, attrs)
}

// RecordInvocation counts one generation request by agent path and outcome.
func (m *GenAI) RecordInvocation(ctx context.Context, agent, outcome string) {
	m.invocations.Add(ctx, 1, metric.WithAttributes(
		attribute.String("agent", agent),
		attribute.String("outcome", outcome),
	))
}
