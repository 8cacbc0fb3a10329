// Package classify orchestrates the classification pipeline: rule engine
// first, AI fallback second, reconciliation last.
package classify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sowonlabs/bunryu/internal/common"
	"github.com/sowonlabs/bunryu/internal/llm"
	"github.com/sowonlabs/bunryu/internal/model"
	"github.com/sowonlabs/bunryu/internal/prompt"
	"github.com/sowonlabs/bunryu/internal/reconcile"
	"github.com/sowonlabs/bunryu/internal/rule"
)

// Classifier runs the two-stage classification pipeline. It is stateless
// across invocations; every call operates on the snapshot it is given.
type Classifier struct {
	client llm.Client
	logger *slog.Logger
}

// New creates a classifier using the given model-calling client.
func New(client llm.Client, logger *slog.Logger) *Classifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Classifier{client: client, logger: logger}
}

// Input is the per-invocation context snapshot. Rules must be pre-filtered
// to active and sorted by priority descending; accounts must be active only.
// Model and temperature are explicit parameters, never ambient state.
type Input struct {
	Templates   model.PromptTemplates
	ModelID     string
	Rules       []model.ClassificationRule
	Accounts    []model.Account
	Examples    []model.ConfirmedExample
	Temperature float64
	MaxTokens   int
}

// Classify produces a classification for one transaction.
//
// The rule path cannot fail on well-formed input; every error originates on
// the AI path and is terminal for this transaction. Nothing is downgraded
// to a default account.
func (c *Classifier) Classify(ctx context.Context, tx model.Transaction, in Input) (model.ClassifyResult, error) {
	if match := rule.Match(in.Rules, tx); match.Matched {
		c.logger.Debug("rule matched",
			"rule", match.Rule.Name,
			"account_code", match.Account.Code,
			"merchant", tx.MerchantName)
		return model.ClassifyResult{
			AccountCode: match.Account.Code,
			AccountName: match.Account.Name,
			Confidence:  1.0,
			Reason:      fmt.Sprintf("룰 %q에 의해 자동 분류되었습니다.", match.Rule.Name),
			Method:      model.MethodRule,
		}, nil
	}

	if !hasActiveAccount(in.Accounts) {
		return model.ClassifyResult{}, fmt.Errorf("%w: register accounts before classifying", common.ErrNoActiveAccounts)
	}

	prompts, err := prompt.BuildPrompts(tx, in.Accounts, in.Examples, in.Templates)
	if err != nil {
		return model.ClassifyResult{}, err
	}

	raw, err := c.client.Complete(ctx, llm.Request{
		System:      prompts.System,
		User:        prompts.User,
		Model:       in.ModelID,
		Temperature: in.Temperature,
		MaxTokens:   in.MaxTokens,
	})
	if err != nil {
		return model.ClassifyResult{}, fmt.Errorf("model call failed: %w", err)
	}

	parsed, err := llm.ParseClassification(raw)
	if err != nil {
		return model.ClassifyResult{}, err
	}

	result, err := reconcile.Reconcile(parsed, in.Accounts)
	if err != nil {
		return model.ClassifyResult{}, err
	}

	result.Confidence = clamp01(result.Confidence)
	result.Method = model.MethodAI

	c.logger.Debug("ai classification",
		"account_code", result.AccountCode,
		"confidence", result.Confidence,
		"merchant", tx.MerchantName)

	return result, nil
}

func hasActiveAccount(accounts []model.Account) bool {
	for _, a := range accounts {
		if a.IsActive {
			return true
		}
	}
	return false
}

// clamp01 bounds model-reported confidence so emitted results always sit
// in [0,1] regardless of what the model claimed.
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
