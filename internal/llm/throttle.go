package llm

import (
	"context"
	"errors"
	"net/http"

	"github.com/sowonlabs/bunryu/internal/common"
)

// throttledClient wraps a provider client with rate limiting and retry.
// This is transport-layer behavior: the classification pipeline itself
// never retries, it sees only the final outcome.
type throttledClient struct {
	inner     Client
	limiter   *rateLimiter
	retryOpts common.RetryOptions
}

// NewThrottledClient bounds request rate and retries transient transport
// failures (429, 5xx, network errors) with exponential backoff.
func NewThrottledClient(inner Client, cfg Config) Client {
	retryOpts := common.RetryOptions{
		MaxAttempts:  cfg.MaxRetries,
		InitialDelay: cfg.RetryDelay,
	}
	return &throttledClient{
		inner:     inner,
		limiter:   newRateLimiter(cfg.RateLimit),
		retryOpts: retryOpts,
	}
}

func (c *throttledClient) Complete(ctx context.Context, req Request) (string, error) {
	if err := c.limiter.wait(ctx); err != nil {
		return "", err
	}

	var out string
	err := common.WithRetry(ctx, func() error {
		text, err := c.inner.Complete(ctx, req)
		if err != nil {
			return markRetryable(err)
		}
		out = text
		return nil
	}, c.retryOpts)
	return out, err
}

// markRetryable flags transient transport failures for WithRetry.
func markRetryable(err error) error {
	var te *TransportError
	if !errors.As(err, &te) {
		return err
	}
	switch {
	case te.StatusCode == http.StatusTooManyRequests,
		te.StatusCode >= http.StatusInternalServerError,
		te.StatusCode == 0 && te.Err != nil:
		return &common.RetryableError{Err: err, Retryable: true}
	}
	return err
}
