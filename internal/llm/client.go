// Package llm provides the model-calling capability of the classification
// pipeline: provider clients, the model registry, and response parsing.
package llm

import (
	"context"
	"time"
)

// Request carries one completion call. Model and temperature are explicit
// per-invocation parameters rather than ambient state.
type Request struct {
	System      string
	User        string
	Model       string
	Temperature float64
	MaxTokens   int
}

// Client is the model-calling capability: send system+user text, receive
// raw text back. Implementations do not parse or validate the response.
type Client interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// Config holds provider client configuration resolved at the CLI edge.
type Config struct {
	APIKey       string
	BaseURL      string
	APIKeyHeader string
	MaxTokens    int
	RateLimit    int
	MaxRetries   int
	RetryDelay   time.Duration
}

const defaultMaxTokens = 1024
