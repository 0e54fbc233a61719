/*
Copyright 2026 ClaudeCodex Authors
SPDX-License-Identifier: Apache-2.0
*/

package chatapi_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/adhyaay-karnwal/claudecodex/apikey"
	"github.com/adhyaay-karnwal/claudecodex/chatapi"
	"github.com/google/go-cmp/cmp"
)

func TestCompleteAnthropic(t *testing.T) {
	t.Parallel()

	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "msg_test",
			"type": "message",
			"role": "assistant",
			"model": "claude-sonnet-4-20250514",
			"content": [{"type": "text", "text": "the answer"}],
			"stop_reason": "end_turn",
			"usage": {"input_tokens": 12, "output_tokens": 4}
		}`))
	}))
	defer srv.Close()

	got, err := chatapi.CompleteAnthropic(context.Background(),
		"sk-ant-test", "what is the answer?", "claude-sonnet-4-20250514",
		chatapi.Params{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("CompleteAnthropic: %v", err)
	}

	want := &chatapi.Completion{
		Content:      "the answer",
		InputTokens:  12,
		OutputTokens: 4,
		TotalTokens:  16,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Completion mismatch (-want +got):\n%s", diff)
	}

	if gotBody["model"] != "claude-sonnet-4-20250514" {
		t.Errorf("request model = %v", gotBody["model"])
	}
	if gotBody["max_tokens"] != float64(4096) {
		t.Errorf("request max_tokens = %v, want default 4096", gotBody["max_tokens"])
	}
	if gotBody["temperature"] != 0.2 {
		t.Errorf("request temperature = %v, want default 0.2", gotBody["temperature"])
	}
}

func TestCompleteAnthropicProviderError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"type": "error", "error": {"type": "invalid_request_error", "message": "prompt too long"}}`))
	}))
	defer srv.Close()

	_, err := chatapi.CompleteAnthropic(context.Background(),
		"sk-ant-test", "p", "claude-sonnet-4-20250514",
		chatapi.Params{BaseURL: srv.URL})

	var apiErr *chatapi.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want *APIError", err)
	}
	if apiErr.Provider != apikey.Anthropic {
		t.Errorf("APIError.Provider = %q, want anthropic", apiErr.Provider)
	}
}

func TestCompleteOpenAI(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "chatcmpl-test",
			"object": "chat.completion",
			"model": "gpt-4o",
			"choices": [{
				"index": 0,
				"message": {"role": "assistant", "content": "bonjour"},
				"finish_reason": "stop"
			}],
			"usage": {"prompt_tokens": 9, "completion_tokens": 2, "total_tokens": 11}
		}`))
	}))
	defer srv.Close()

	got, err := chatapi.CompleteOpenAI(context.Background(),
		"sk-test", "translate hello", "gpt-4o",
		chatapi.Params{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("CompleteOpenAI: %v", err)
	}

	want := &chatapi.Completion{
		Content:      "bonjour",
		InputTokens:  9,
		OutputTokens: 2,
		TotalTokens:  11,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Completion mismatch (-want +got):\n%s", diff)
	}
}

func TestCompleteOpenAIProviderError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error": {"type": "invalid_request_error", "message": "bad key", "code": "invalid_api_key"}}`))
	}))
	defer srv.Close()

	_, err := chatapi.CompleteOpenAI(context.Background(),
		"sk-test", "p", "gpt-4o",
		chatapi.Params{BaseURL: srv.URL})

	var apiErr *chatapi.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want *APIError", err)
	}
	if apiErr.Provider != apikey.OpenAI {
		t.Errorf("APIError.Provider = %q, want openai", apiErr.Provider)
	}
}
