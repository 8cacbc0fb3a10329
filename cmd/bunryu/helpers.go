package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/viper"

	"github.com/sowonlabs/bunryu/internal/classify"
	"github.com/sowonlabs/bunryu/internal/cli"
	"github.com/sowonlabs/bunryu/internal/common"
	"github.com/sowonlabs/bunryu/internal/config"
	"github.com/sowonlabs/bunryu/internal/llm"
	"github.com/sowonlabs/bunryu/internal/model"
	"github.com/sowonlabs/bunryu/internal/prompt"
	"github.com/sowonlabs/bunryu/internal/storage"
)

// openStore opens the configured database and applies migrations.
func openStore(ctx context.Context) (*storage.Store, error) {
	store, err := storage.NewStore(config.DBPath())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return store, nil
}

func closeStore(store *storage.Store) {
	if err := store.Close(); err != nil {
		slog.Error("failed to close database", "error", err)
	}
}

// buildClassifier resolves a model from the registry and wires a throttled
// provider client into a classifier.
func buildClassifier(modelID string) (*classify.Classifier, llm.ModelSpec, error) {
	if modelID == "" {
		modelID = llm.DefaultModelID
	}

	spec, ok := llm.Lookup(modelID)
	if !ok {
		return nil, llm.ModelSpec{}, fmt.Errorf("%w: %s", common.ErrUnknownModel, modelID)
	}

	client, err := llm.NewClient(spec, config.LLMConfig(spec))
	if err != nil {
		if errors.Is(err, common.ErrMissingAPIKey) {
			return nil, llm.ModelSpec{}, common.NewUserError(
				fmt.Sprintf("API 키가 없습니다: %s 환경 변수를 설정하세요", spec.APIKeyEnv), err)
		}
		return nil, llm.ModelSpec{}, err
	}
	client = llm.NewThrottledClient(client, config.LLMConfig(spec))

	return classify.New(client, slog.Default()), spec, nil
}

// loadInput assembles the per-invocation snapshot: active rules sorted by
// priority, active accounts, recent confirmed examples, and templates.
func loadInput(ctx context.Context, store *storage.Store, spec llm.ModelSpec) (classify.Input, error) {
	rules, err := store.ListRules(ctx, true)
	if err != nil {
		return classify.Input{}, err
	}

	accounts, err := store.ListAccounts(ctx, true)
	if err != nil {
		return classify.Input{}, err
	}

	examples, err := store.RecentConfirmedExamples(ctx, config.ExampleLimit())
	if err != nil {
		return classify.Input{}, err
	}

	templates, err := store.GetPromptTemplates(ctx)
	if err != nil {
		return classify.Input{}, err
	}

	return classify.Input{
		Rules:       rules,
		Accounts:    accounts,
		Examples:    examples,
		Templates:   templates,
		ModelID:     spec.ModelID,
		Temperature: config.Temperature(),
		MaxTokens:   viper.GetInt("llm.max_tokens"),
	}, nil
}

// renderResult prints one classification in a compact styled block.
func renderResult(result model.ClassifyResult) string {
	tag := cli.AITagStyle.Render("[AI]")
	if result.Method == model.MethodRule {
		tag = cli.RuleTagStyle.Render("[RULE]")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s %s\n", tag, result.AccountCode, result.AccountName)
	fmt.Fprintf(&b, "  %s %.0f%%\n", cli.SubtleStyle.Render("confidence"), result.Confidence*100)
	fmt.Fprintf(&b, "  %s %s\n", cli.SubtleStyle.Render("reason"), result.Reason)
	return b.String()
}

// saveClassification persists the transaction and its result, returning the
// result id.
func saveClassification(ctx context.Context, store *storage.Store, tx *model.Transaction, result model.ClassifyResult) (string, error) {
	if tx.ID == "" {
		if err := store.SaveTransaction(ctx, tx); err != nil {
			return "", err
		}
	}

	account, err := store.GetAccountByCode(ctx, result.AccountCode)
	if err != nil {
		return "", err
	}

	rec := model.ClassificationRecord{
		TransactionID: tx.ID,
		AccountID:     account.ID,
		Confidence:    result.Confidence,
		Reason:        result.Reason,
		Method:        result.Method,
	}
	if err := store.SaveResult(ctx, &rec); err != nil {
		return "", err
	}
	return rec.ID, nil
}

// amountColumn formats an amount for table output.
func amountColumn(amount float64) string {
	return prompt.FormatWon(amount)
}
