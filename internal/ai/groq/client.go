// Package groq implements the text-generation capability against the Groq
// OpenAI-compatible chat completions API.
package groq

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/content-suite/content-suite/internal/ai"
)

const defaultBaseURL = "https://api.groq.com/openai/v1"

// Config holds client construction options.
type Config struct {
	APIKey  string
	BaseURL string
	// DefaultModel is used when a request does not name a model.
	DefaultModel string
}

// Client wraps interactions with the Groq chat completions endpoint.
type Client struct {
	apiKey       string
	baseURL      string
	defaultModel string
	httpClient   *http.Client
}

// NewClient constructs a new client.
func NewClient(cfg Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		apiKey:       cfg.APIKey,
		baseURL:      baseURL,
		defaultModel: cfg.DefaultModel,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Usage ai.Usage `json:"usage"`
	Model string   `json:"model"`
}

// Generate performs a chat completion and returns the first choice.
func (c *Client) Generate(ctx context.Context, req ai.TextRequest) (ai.TextResult, error) {
	if c.apiKey == "" {
		return ai.TextResult{}, errors.New("groq: api key not configured")
	}
	model := req.Model
	if model == "" {
		model = c.defaultModel
	}

	payload, err := json.Marshal(chatRequest{
		Model: model,
		Messages: []chatMessage{
			{Role: "system", Content: req.System},
			{Role: "user", Content: req.Prompt},
		},
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		return ai.TextResult{}, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, fmt.Sprintf("%s/chat/completions", c.baseURL), bytes.NewReader(payload))
	if err != nil {
		return ai.TextResult{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return ai.TextResult{}, fmt.Errorf("groq: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return ai.TextResult{}, fmt.Errorf("groq: read response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return ai.TextResult{}, fmt.Errorf("groq: completion failed with status %d", resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return ai.TextResult{}, fmt.Errorf("groq: decode response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return ai.TextResult{}, errors.New("groq: response contained no choices")
	}
	resultModel := parsed.Model
	if resultModel == "" {
		resultModel = model
	}
	return ai.TextResult{
		Text:  parsed.Choices[0].Message.Content,
		Model: resultModel,
		Usage: parsed.Usage,
	}, nil
}
