package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sowonlabs/bunryu/internal/model"
)

func classifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Classify a single transaction",
		Long: `Classify one transaction into a ledger account.

The rule engine runs first; if no rule matches, the configured AI model
picks an account from the registered account list.

Examples:
  bunryu classify --merchant "스타벅스 강남점" --mcc 5814 --amount 6500
  bunryu classify --merchant "대한항공" --amount 450000 --model exaone-35-7-8b --save`,
		RunE: runClassify,
	}

	cmd.Flags().String("merchant", "", "merchant name (가맹점)")
	cmd.Flags().String("mcc", "", "merchant category code")
	cmd.Flags().Float64("amount", 0, "transaction amount in KRW (required)")
	cmd.Flags().String("date", "", "transaction date (YYYY-MM-DD)")
	cmd.Flags().String("desc", "", "description (적요)")
	cmd.Flags().String("card", "", "card type (corporate, personal)")
	cmd.Flags().String("model", "", "model id (default: claude-sonnet)")
	cmd.Flags().Bool("save", false, "persist the transaction and result")
	_ = cmd.MarkFlagRequired("amount")

	_ = viper.BindPFlag("classification.model", cmd.Flags().Lookup("model"))

	return cmd
}

func runClassify(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	amount, _ := cmd.Flags().GetFloat64("amount")
	if amount <= 0 {
		return fmt.Errorf("amount must be positive")
	}

	merchant, _ := cmd.Flags().GetString("merchant")
	mcc, _ := cmd.Flags().GetString("mcc")
	date, _ := cmd.Flags().GetString("date")
	desc, _ := cmd.Flags().GetString("desc")
	card, _ := cmd.Flags().GetString("card")
	save, _ := cmd.Flags().GetBool("save")

	tx := model.Transaction{
		MerchantName:    merchant,
		MCCCode:         mcc,
		Amount:          amount,
		TransactionDate: date,
		Description:     desc,
		CardType:        model.CardType(card),
	}

	store, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer closeStore(store)

	classifier, spec, err := buildClassifier(viper.GetString("classification.model"))
	if err != nil {
		return err
	}

	input, err := loadInput(ctx, store, spec)
	if err != nil {
		return err
	}

	result, err := classifier.Classify(ctx, tx, input)
	if err != nil {
		return fmt.Errorf("classification failed: %w", err)
	}

	fmt.Print(renderResult(result))

	if save {
		resultID, err := saveClassification(ctx, store, &tx, result)
		if err != nil {
			return fmt.Errorf("failed to save classification: %w", err)
		}
		fmt.Printf("saved result %s (confirm with: bunryu confirm %s)\n", resultID, resultID)
	}

	return nil
}
