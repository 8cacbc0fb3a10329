package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sowonlabs/bunryu/internal/common"
)

// openAICompatibleClient implements Client against any OpenAI-style chat
// completions endpoint, with a configurable URL and API key header. Used
// for self-hosted and vendor models such as EXAONE.
type openAICompatibleClient struct {
	httpClient   *http.Client
	apiKey       string
	apiKeyHeader string
	baseURL      string
	maxTokens    int
}

func newOpenAICompatibleClient(cfg Config) (Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("%w: API URL is required for openai-compatible models", common.ErrInvalidConfig)
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: API key is required", common.ErrMissingAPIKey)
	}

	apiKeyHeader := cfg.APIKeyHeader
	if apiKeyHeader == "" {
		apiKeyHeader = "Authorization"
	}

	maxTokens := cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = defaultMaxTokens
	}

	return &openAICompatibleClient{
		apiKey:       cfg.APIKey,
		apiKeyHeader: apiKeyHeader,
		baseURL:      cfg.BaseURL,
		maxTokens:    maxTokens,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}, nil
}

// chatResponse is the subset of the chat completions envelope we read.
type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete posts a chat completion request and returns the raw text.
func (c *openAICompatibleClient) Complete(ctx context.Context, req Request) (string, error) {
	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = c.maxTokens
	}

	body := map[string]any{
		"stream":      false,
		"temperature": req.Temperature,
		"max_tokens":  maxTokens,
		"messages": []map[string]string{
			{"role": "system", "content": req.System},
			{"role": "user", "content": req.User},
		},
	}
	if req.Model != "" {
		body["model"] = req.Model
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(jsonBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKeyHeader == "Authorization" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	} else {
		httpReq.Header.Set(c.apiKeyHeader, c.apiKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", &TransportError{Provider: "openai-compatible", Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &TransportError{Provider: "openai-compatible", Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		return "", &TransportError{Provider: "openai-compatible", StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	var envelope chatResponse
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		return "", &TransportError{Provider: "openai-compatible", Body: string(respBody), Err: err}
	}

	if len(envelope.Choices) == 0 || envelope.Choices[0].Message.Content == "" {
		return "", &TransportError{Provider: "openai-compatible", Body: "no message content in response"}
	}

	return envelope.Choices[0].Message.Content, nil
}
