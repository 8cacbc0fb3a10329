package llm

import "fmt"

// TransportError indicates the model-calling capability itself failed:
// a non-2xx provider response, a network error, or a malformed provider
// envelope. The provider detail is preserved for diagnostics. Transport
// failures are never retried by the pipeline; retries live in the
// throttled client wrapper only.
type TransportError struct {
	Err        error
	Provider   string
	Body       string
	StatusCode int
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s API error (status %d): %s", e.Provider, e.StatusCode, e.Body)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s request failed: %v", e.Provider, e.Err)
	}
	return fmt.Sprintf("%s request failed: %s", e.Provider, e.Body)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ParseError indicates the model's raw text contained no extractable JSON
// object, the JSON was malformed, or required keys were missing. The raw
// text is carried so an operator can inspect model drift.
type ParseError struct {
	Err     error
	RawText string
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to parse model response: %v", e.Err)
	}
	return "failed to parse model response"
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
