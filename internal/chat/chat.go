// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package chat requests generated text from an OpenAI-compatible chat
// completion API (xAI by default).
package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pdiddy/promptdoc/internal/httputil"
	"github.com/pdiddy/promptdoc/pkg/types"
)

const (
	DefaultBaseURL   = "https://api.x.ai/v1"
	DefaultModel     = "grok-2-1212"
	DefaultMaxTokens = 1000
	defaultTimeout   = 2 * time.Minute
)

// ErrEmptyCompletion is returned when the API answers without text.
var ErrEmptyCompletion = errors.New("chat API returned no text")

// Backend abstracts the chat API so tests can supply a mock.
type Backend interface {
	Complete(ctx context.Context, prompt string) (Completion, error)
}

// Completion is the generated text plus bookkeeping from the API.
type Completion struct {
	Text         string
	Model        string
	RequestID    string
	FinishReason string
	Usage        Usage
}

// Usage tracks token usage.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// XAIBackend calls an OpenAI-compatible /chat/completions endpoint.
type XAIBackend struct {
	cfg    types.AIConfig
	client *http.Client
}

// NewXAIBackend returns a backend with defaults filled in. client may be
// nil.
func NewXAIBackend(cfg types.AIConfig, client *http.Client) (*XAIBackend, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("chat API key is not set (add .secrets/xai-api-key or --api-key)")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = DefaultMaxTokens
	}
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		client = &http.Client{Timeout: timeout}
	}
	return &XAIBackend{cfg: cfg, client: client}, nil
}

type chatRequest struct {
	Model     string        `json:"model"`
	MaxTokens int           `json:"max_tokens"`
	Messages  []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Model   string       `json:"model"`
	Choices []chatChoice `json:"choices"`
	Usage   Usage        `json:"usage"`
}

type chatChoice struct {
	Message      chatMessage `json:"message"`
	FinishReason string      `json:"finish_reason"`
}

// Complete sends prompt as a single user message.
func (b *XAIBackend) Complete(ctx context.Context, prompt string) (Completion, error) {
	body, err := json.Marshal(chatRequest{
		Model:     b.cfg.Model,
		MaxTokens: b.cfg.MaxTokens,
		Messages:  []chatMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return Completion{}, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.cfg.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return Completion{}, fmt.Errorf("creating request: %w", err)
	}
	requestID := uuid.New().String()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+b.cfg.APIKey)
	req.Header.Set("X-Request-Id", requestID)
	if b.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", b.cfg.UserAgent)
	}

	resp, err := httputil.DoWithRetry(ctx, b.client, req, b.cfg.MaxRetries)
	if err != nil {
		return Completion{}, fmt.Errorf("calling chat API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return Completion{}, fmt.Errorf("chat API returned %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var cr chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return Completion{}, fmt.Errorf("decoding chat response: %w", err)
	}
	if len(cr.Choices) == 0 || strings.TrimSpace(cr.Choices[0].Message.Content) == "" {
		return Completion{}, ErrEmptyCompletion
	}

	model := cr.Model
	if model == "" {
		model = b.cfg.Model
	}
	return Completion{
		Text:         cr.Choices[0].Message.Content,
		Model:        model,
		RequestID:    requestID,
		FinishReason: cr.Choices[0].FinishReason,
		Usage:        cr.Usage,
	}, nil
}
