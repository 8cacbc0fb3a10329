package llm

import (
	"encoding/json"
	"errors"
	"regexp"

	"github.com/sowonlabs/bunryu/internal/model"
)

var (
	// fencedJSONRegex captures the first brace-delimited object inside a
	// markdown code fence, optionally tagged json.
	fencedJSONRegex = regexp.MustCompile("(?s)```(?:json)?\\s*(\\{.*?\\})\\s*```")
	// braceObjectRegex captures the first minimal, non-nested object.
	braceObjectRegex = regexp.MustCompile(`\{[^{}]*\}`)
)

// classificationPayload decodes the required response schema. Pointer fields
// distinguish a missing key from a zero value.
type classificationPayload struct {
	AccountCode *string  `json:"account_code"`
	AccountName *string  `json:"account_name"`
	Confidence  *float64 `json:"confidence"`
	Reason      *string  `json:"reason"`
}

// ParseClassification extracts a structured classification from the model's
// raw text. A fenced code block takes precedence over a stray brace object.
// Confidence is passed through unclamped; range enforcement is the
// orchestrator's concern. Failures carry the raw text for diagnosis.
func ParseClassification(raw string) (model.ClassifyResult, error) {
	var candidates []string

	if m := fencedJSONRegex.FindStringSubmatch(raw); m != nil {
		candidates = append(candidates, m[1])
	}
	if m := braceObjectRegex.FindString(raw); m != "" {
		candidates = append(candidates, m)
	}

	if len(candidates) == 0 {
		return model.ClassifyResult{}, &ParseError{RawText: raw, Err: errors.New("no JSON object found")}
	}

	var lastErr error
	for _, candidate := range candidates {
		var payload classificationPayload
		if err := json.Unmarshal([]byte(candidate), &payload); err != nil {
			lastErr = err
			continue
		}
		if err := validatePayload(payload); err != nil {
			lastErr = err
			continue
		}
		return model.ClassifyResult{
			AccountCode: *payload.AccountCode,
			AccountName: *payload.AccountName,
			Confidence:  *payload.Confidence,
			Reason:      *payload.Reason,
		}, nil
	}

	return model.ClassifyResult{}, &ParseError{RawText: raw, Err: lastErr}
}

func validatePayload(p classificationPayload) error {
	switch {
	case p.AccountCode == nil || *p.AccountCode == "":
		return errors.New("missing account_code")
	case p.AccountName == nil || *p.AccountName == "":
		return errors.New("missing account_name")
	case p.Confidence == nil:
		return errors.New("missing confidence")
	case p.Reason == nil:
		return errors.New("missing reason")
	}
	return nil
}
