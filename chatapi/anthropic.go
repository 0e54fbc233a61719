/*
Copyright 2026 ClaudeCodex Authors
SPDX-License-Identifier: Apache-2.0
*/

package chatapi

import (
	"context"
	"errors"
	"strings"

	"github.com/adhyaay-karnwal/claudecodex/apikey"
	"github.com/adhyaay-karnwal/claudecodex/retry"
	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// CompleteAnthropic runs a single-turn completion against the Anthropic
// Messages API with a client constructed from the request credential.
func CompleteAnthropic(ctx context.Context, key, prompt, model string, params Params) (*Completion, error) {
	params = params.withDefaults()
	// Retries are governed solely by params.Retry, not the SDK's built-in
	// policy.
	opts := []option.RequestOption{option.WithAPIKey(key), option.WithMaxRetries(0)}
	if params.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(params.BaseURL))
	}
	client := anthropic.NewClient(opts...)

	message, err := retry.Do(ctx, params.Retry, "anthropic_completion", isRetryableAnthropic, func() (*anthropic.Message, error) {
		return client.Messages.New(ctx, anthropic.MessageNewParams{
			Model:       anthropic.Model(model),
			MaxTokens:   params.MaxTokens,
			Temperature: anthropic.Float(params.Temperature),
			Messages: []anthropic.MessageParam{
				anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
			},
		})
	})
	if err != nil {
		return nil, &APIError{Provider: apikey.Anthropic, Err: err}
	}

	var sb strings.Builder
	for _, block := range message.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	if sb.Len() == 0 {
		return nil, &APIError{Provider: apikey.Anthropic, Err: errors.New("response contained no text content")}
	}

	return &Completion{
		Content:      sb.String(),
		InputTokens:  message.Usage.InputTokens,
		OutputTokens: message.Usage.OutputTokens,
		TotalTokens:  message.Usage.InputTokens + message.Usage.OutputTokens,
	}, nil
}

// isRetryableAnthropic classifies rate-limit and server-side errors as
// transient. 529 is Anthropic's overloaded status.
func isRetryableAnthropic(err error) bool {
	var apierr *anthropic.Error
	if errors.As(err, &apierr) {
		return apierr.StatusCode == 429 || apierr.StatusCode >= 500
	}
	return false
}
