// Package ai proxies content-generation requests to a configured upstream
// LLM API. The API key never leaves the server; browsers only ever talk to
// this endpoint.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

const (
	defaultTimeout = 60 * time.Second
	maxPromptLen   = 8000
	// Upstream error bodies are passed through truncated; they can carry
	// large HTML error pages.
	maxErrorBody = 2048
)

type Config struct {
	URL     string
	APIKey  string
	Model   string
	Timeout time.Duration
}

type Client struct {
	cfg    Config
	http   *http.Client
	logger zerolog.Logger
}

func NewClient(cfg Config, logger zerolog.Logger) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}

// Enabled reports whether an upstream is configured at all.
func (c *Client) Enabled() bool { return c.cfg.URL != "" }

// GenerateRequest is the app-facing request shape.
type GenerateRequest struct {
	Prompt  string `json:"prompt"`
	Context string `json:"context,omitempty"`
}

// GenerateResponse carries the upstream's generated text.
type GenerateResponse struct {
	Content string `json:"content"`
	Model   string `json:"model"`
}

// chat wire format, OpenAI-compatible.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Generate forwards a prompt to the upstream and returns its completion.
func (c *Client) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("ai: no upstream configured")
	}
	if req.Prompt == "" {
		return nil, fmt.Errorf("ai: prompt is required")
	}
	if len(req.Prompt) > maxPromptLen {
		return nil, fmt.Errorf("ai: prompt exceeds %d characters", maxPromptLen)
	}

	messages := []chatMessage{}
	if req.Context != "" {
		messages = append(messages, chatMessage{Role: "system", Content: req.Context})
	}
	messages = append(messages, chatMessage{Role: "user", Content: req.Prompt})

	payload, err := json.Marshal(chatRequest{Model: c.cfg.Model, Messages: messages})
	if err != nil {
		return nil, fmt.Errorf("ai: marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.URL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("ai: create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("ai: upstream call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		c.logger.Error().Int("status", resp.StatusCode).Msg("ai upstream returned error")
		return nil, fmt.Errorf("ai: upstream returned %d: %s", resp.StatusCode, body)
	}

	var cr chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return nil, fmt.Errorf("ai: decode response: %w", err)
	}
	if len(cr.Choices) == 0 {
		return nil, fmt.Errorf("ai: upstream returned no choices")
	}
	return &GenerateResponse{Content: cr.Choices[0].Message.Content, Model: c.cfg.Model}, nil
}
