package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"copymill/pkg/config"

	"go.uber.org/zap"
)

// retryableStatuses is the fixed set of HTTP statuses worth another attempt.
// Any other non-2xx status fails immediately.
var retryableStatuses = map[int]bool{
	http.StatusTooManyRequests:     true,
	http.StatusInternalServerError: true,
	http.StatusBadGateway:          true,
	http.StatusServiceUnavailable:  true,
	http.StatusGatewayTimeout:      true,
}

const providerBodyLimit = 512

type CompleteOptions struct {
	MaxTokens   int
	Temperature float64
	JSONMode    bool
}

// Usage is the provider-reported token accounting for one call. Counts are
// trusted as-is for cost computation.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// Completer is the completion surface the rest of the pipeline depends on.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string, opts CompleteOptions) (string, Usage, error)
	CompleteJSON(ctx context.Context, systemPrompt, userPrompt string, opts CompleteOptions, out any) (Usage, error)
}

// LLMService talks to an OpenAI-compatible chat completion endpoint over
// plain HTTP with retry and backoff. It does not log usage itself: only the
// caller knows which feature the tokens belong to.
type LLMService struct {
	httpClient *http.Client
	config     *config.OpenAIConfig
	logger     *zap.Logger

	// sleep is swappable in tests so backoff does not slow them down.
	sleep func(time.Duration)
}

func NewLLMService(cfg *config.OpenAIConfig, logger *zap.Logger) (*LLMService, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	return &LLMService{
		httpClient: &http.Client{},
		config:     cfg,
		logger:     logger,
		sleep:      time.Sleep,
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	Temperature    float64         `json:"temperature"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

// Complete sends one chat completion request per attempt. Statuses in the
// retry set get up to MaxRetries additional attempts with exponential backoff
// (BackoffBase doubled per attempt); the backoff sleeps are synchronous
// within the calling request. Callers needing deadlines wrap the context
// themselves.
func (s *LLMService) Complete(ctx context.Context, systemPrompt, userPrompt string, opts CompleteOptions) (string, Usage, error) {
	body := chatRequest{
		Model: s.config.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Temperature: opts.Temperature,
		MaxTokens:   opts.MaxTokens,
	}
	if opts.JSONMode {
		body.ResponseFormat = &responseFormat{Type: "json_object"}
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", Usage{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt <= s.config.MaxRetries; attempt++ {
		if attempt > 0 {
			s.sleep(s.config.BackoffBase * time.Duration(1<<(attempt-1)))
		}

		text, usage, err := s.doRequest(ctx, payload)
		if err == nil {
			return text, usage, nil
		}
		lastErr = err

		if pe, ok := err.(*ProviderError); ok && pe.Retryable {
			s.logger.Warn("Completion request failed, retrying",
				zap.Int("attempt", attempt+1),
				zap.Int("status", pe.Status),
			)
			continue
		}
		return "", Usage{}, err
	}

	return "", Usage{}, lastErr
}

func (s *LLMService) doRequest(ctx context.Context, payload []byte) (string, Usage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.config.BaseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", Usage{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.config.APIKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", Usage{}, fmt.Errorf("failed to reach completion endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, providerBodyLimit))
		return "", Usage{}, &ProviderError{
			Status:    resp.StatusCode,
			Body:      string(bodyBytes),
			Retryable: retryableStatuses[resp.StatusCode],
		}
	}

	var chat chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chat); err != nil {
		return "", Usage{}, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(chat.Choices) == 0 {
		return "", Usage{}, fmt.Errorf("no choices in completion response")
	}

	usage := Usage{
		PromptTokens:     chat.Usage.PromptTokens,
		CompletionTokens: chat.Usage.CompletionTokens,
		TotalTokens:      chat.Usage.TotalTokens,
	}
	return strings.TrimSpace(chat.Choices[0].Message.Content), usage, nil
}

// CompleteJSON asks for JSON mode and unmarshals the result into out, running
// the salvage parser first because model output is not contractually bare
// JSON even when asked.
func (s *LLMService) CompleteJSON(ctx context.Context, systemPrompt, userPrompt string, opts CompleteOptions, out any) (Usage, error) {
	opts.JSONMode = true
	raw, usage, err := s.Complete(ctx, systemPrompt, userPrompt, opts)
	if err != nil {
		return usage, err
	}

	extracted, ok := extractJSON(raw)
	if !ok {
		s.logger.Warn("Model output contained no parseable JSON", zap.Int("length", len(raw)))
		return usage, ErrMalformedResponse
	}
	if err := json.Unmarshal([]byte(extracted), out); err != nil {
		return usage, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return usage, nil
}
