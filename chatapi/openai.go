/*
Copyright 2026 ClaudeCodex Authors
SPDX-License-Identifier: Apache-2.0
*/

package chatapi

import (
	"context"
	"errors"

	"github.com/adhyaay-karnwal/claudecodex/apikey"
	"github.com/adhyaay-karnwal/claudecodex/retry"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// CompleteOpenAI runs a single-turn completion against the OpenAI chat
// completions API with a client constructed from the request credential.
func CompleteOpenAI(ctx context.Context, key, prompt, model string, params Params) (*Completion, error) {
	params = params.withDefaults()
	// Retries are governed solely by params.Retry, not the SDK's built-in
	// policy.
	opts := []option.RequestOption{option.WithAPIKey(key), option.WithMaxRetries(0)}
	if params.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(params.BaseURL))
	}
	client := openai.NewClient(opts...)

	completion, err := retry.Do(ctx, params.Retry, "openai_completion", isRetryableOpenAI, func() (*openai.ChatCompletion, error) {
		return client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
			Model: openai.ChatModel(model),
			Messages: []openai.ChatCompletionMessageParamUnion{
				openai.UserMessage(prompt),
			},
			Temperature: openai.Float(params.Temperature),
			MaxTokens:   openai.Int(params.MaxTokens),
		})
	})
	if err != nil {
		return nil, &APIError{Provider: apikey.OpenAI, Err: err}
	}
	if len(completion.Choices) == 0 {
		return nil, &APIError{Provider: apikey.OpenAI, Err: errors.New("response contained no choices")}
	}

	return &Completion{
		Content:      completion.Choices[0].Message.Content,
		InputTokens:  completion.Usage.PromptTokens,
		OutputTokens: completion.Usage.CompletionTokens,
		TotalTokens:  completion.Usage.TotalTokens,
	}, nil
}

// isRetryableOpenAI classifies rate-limit and server-side errors as
// transient.
func isRetryableOpenAI(err error) bool {
	var apierr *openai.Error
	if errors.As(err, &apierr) {
		return apierr.StatusCode == 429 || apierr.StatusCode >= 500
	}
	return false
}
