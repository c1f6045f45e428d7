package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"copymill/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestLLM(t *testing.T, handler http.HandlerFunc) (*LLMService, *[]time.Duration) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	svc, err := NewLLMService(&config.OpenAIConfig{
		APIKey:      "test-key",
		BaseURL:     server.URL,
		Model:       "gpt-4o",
		MaxRetries:  2,
		BackoffBase: 500 * time.Millisecond,
	}, zap.NewNop())
	require.NoError(t, err)

	var slept []time.Duration
	svc.sleep = func(d time.Duration) { slept = append(slept, d) }
	return svc, &slept
}

func chatReply(t *testing.T, w http.ResponseWriter, content string) {
	t.Helper()
	err := json.NewEncoder(w).Encode(map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"content": content}},
		},
		"usage": map[string]any{
			"prompt_tokens":     100,
			"completion_tokens": 50,
			"total_tokens":      150,
		},
	})
	require.NoError(t, err)
}

func TestNewLLMService_MissingAPIKey(t *testing.T) {
	_, err := NewLLMService(&config.OpenAIConfig{}, zap.NewNop())
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestComplete_Success(t *testing.T) {
	var attempts int
	svc, slept := newTestLLM(t, func(w http.ResponseWriter, r *http.Request) {
		attempts++
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		chatReply(t, w, "  generated text  ")
	})

	text, usage, err := svc.Complete(context.Background(), "system", "user", CompleteOptions{MaxTokens: 100})
	require.NoError(t, err)
	assert.Equal(t, "generated text", text)
	assert.Equal(t, Usage{PromptTokens: 100, CompletionTokens: 50, TotalTokens: 150}, usage)
	assert.Equal(t, 1, attempts)
	assert.Empty(t, *slept)
}

func TestComplete_RetriesThenSucceeds(t *testing.T) {
	var attempts int
	svc, slept := newTestLLM(t, func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		chatReply(t, w, "recovered")
	})

	text, _, err := svc.Complete(context.Background(), "system", "user", CompleteOptions{})
	require.NoError(t, err)
	assert.Equal(t, "recovered", text)
	assert.Equal(t, 3, attempts)
	// Exponential backoff: base, then doubled.
	assert.Equal(t, []time.Duration{500 * time.Millisecond, 1000 * time.Millisecond}, *slept)
}

func TestComplete_NonRetryableFailsImmediately(t *testing.T) {
	var attempts int
	svc, _ := newTestLLM(t, func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error": "bad request"}`))
	})

	_, _, err := svc.Complete(context.Background(), "system", "user", CompleteOptions{})
	require.Error(t, err)

	var providerErr *ProviderError
	require.ErrorAs(t, err, &providerErr)
	assert.Equal(t, http.StatusBadRequest, providerErr.Status)
	assert.False(t, providerErr.Retryable)
	assert.Equal(t, 1, attempts)
}

func TestComplete_ExhaustsRetries(t *testing.T) {
	var attempts int
	svc, _ := newTestLLM(t, func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, _, err := svc.Complete(context.Background(), "system", "user", CompleteOptions{})
	require.Error(t, err)

	var providerErr *ProviderError
	require.ErrorAs(t, err, &providerErr)
	assert.Equal(t, http.StatusServiceUnavailable, providerErr.Status)
	assert.True(t, providerErr.Retryable)
	assert.Equal(t, 3, attempts)
}

func TestCompleteJSON_FencedOutput(t *testing.T) {
	svc, _ := newTestLLM(t, func(w http.ResponseWriter, r *http.Request) {
		chatReply(t, w, "```json\n{\"tone\": \"warm\"}\n```")
	})

	var out struct {
		Tone string `json:"tone"`
	}
	_, err := svc.CompleteJSON(context.Background(), "system", "user", CompleteOptions{}, &out)
	require.NoError(t, err)
	assert.Equal(t, "warm", out.Tone)
}

func TestCompleteJSON_SalvagesFromProse(t *testing.T) {
	svc, _ := newTestLLM(t, func(w http.ResponseWriter, r *http.Request) {
		chatReply(t, w, `Sure, here is the analysis you asked for: {"tone": "direct", "avg_word_count": 120} Hope that helps!`)
	})

	var out struct {
		Tone         string `json:"tone"`
		AvgWordCount int    `json:"avg_word_count"`
	}
	_, err := svc.CompleteJSON(context.Background(), "system", "user", CompleteOptions{}, &out)
	require.NoError(t, err)
	assert.Equal(t, "direct", out.Tone)
	assert.Equal(t, 120, out.AvgWordCount)
}

func TestCompleteJSON_MalformedResponse(t *testing.T) {
	svc, _ := newTestLLM(t, func(w http.ResponseWriter, r *http.Request) {
		chatReply(t, w, "I'm sorry, I cannot produce that output.")
	})

	var out map[string]any
	_, err := svc.CompleteJSON(context.Background(), "system", "user", CompleteOptions{}, &out)
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestCompleteJSON_RequestsJSONMode(t *testing.T) {
	svc, _ := newTestLLM(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		format, ok := body["response_format"].(map[string]any)
		require.True(t, ok, "response_format should be set")
		assert.Equal(t, "json_object", format["type"])
		chatReply(t, w, `{}`)
	})

	var out map[string]any
	_, err := svc.CompleteJSON(context.Background(), "system", "user", CompleteOptions{}, &out)
	require.NoError(t, err)
}

func TestProviderError_Unwrapping(t *testing.T) {
	err := error(&ProviderError{Status: 502, Body: "upstream"})
	var target *ProviderError
	assert.True(t, errors.As(err, &target))
	assert.Contains(t, err.Error(), "502")
}
