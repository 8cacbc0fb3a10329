package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sowonlabs/bunryu/internal/cli"
	"github.com/sowonlabs/bunryu/internal/common"
	"github.com/sowonlabs/bunryu/internal/model"
	"github.com/sowonlabs/bunryu/internal/rule"
)

func rulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Manage classification rules",
	}
	cmd.AddCommand(rulesListCmd())
	cmd.AddCommand(rulesAddCmd())
	cmd.AddCommand(rulesSeedCmd())
	return cmd
}

func rulesListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List rules in evaluation order",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			all, _ := cmd.Flags().GetBool("all")

			store, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer closeStore(store)

			rules, err := store.ListRules(ctx, !all)
			if err != nil {
				return err
			}
			if len(rules) == 0 {
				fmt.Println("no rules defined (use: bunryu rules seed)")
				return nil
			}

			for _, r := range rules {
				status := ""
				if !r.IsActive {
					status = cli.SubtleStyle.Render(" (inactive)")
				}
				fmt.Printf("[%3d] %s → %s %s%s\n", r.Priority, r.Name, r.Account.Code, r.Account.Name, status)
				fmt.Printf("      %s\n", cli.SubtleStyle.Render(describeConditions(r.Conditions)))
			}
			return nil
		},
	}
	cmd.Flags().Bool("all", false, "include inactive rules")
	return cmd
}

func rulesAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a classification rule",
		Long: `Add a rule mapping transaction attributes to an account.

All given conditions must hold together (AND); omitted conditions match
anything.

Example:
  bunryu rules add "회식" --account 51400 --mcc 5812,5813 --min 50000 --priority 9`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			accountCode, _ := cmd.Flags().GetString("account")
			mccList, _ := cmd.Flags().GetString("mcc")
			contains, _ := cmd.Flags().GetString("contains")
			priority, _ := cmd.Flags().GetInt("priority")

			conditions := model.RuleConditions{MerchantNameContains: contains}
			if mccList != "" {
				conditions.MCCCodes = strings.Split(mccList, ",")
			}
			if cmd.Flags().Changed("min") {
				v, _ := cmd.Flags().GetFloat64("min")
				conditions.AmountMin = &v
			}
			if cmd.Flags().Changed("max") {
				v, _ := cmd.Flags().GetFloat64("max")
				conditions.AmountMax = &v
			}

			store, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer closeStore(store)

			r := model.ClassificationRule{
				Name:       args[0],
				Priority:   priority,
				Conditions: conditions,
				Account:    model.Account{Code: accountCode},
				IsActive:   true,
			}
			if err := store.SaveRule(ctx, &r); err != nil {
				return err
			}
			fmt.Printf("added rule %q → %s %s\n", r.Name, r.Account.Code, r.Account.Name)
			return nil
		},
	}

	cmd.Flags().String("account", "", "target account code (required)")
	cmd.Flags().String("mcc", "", "comma-separated MCC codes (match any)")
	cmd.Flags().String("contains", "", "merchant name substring, case-insensitive")
	cmd.Flags().Float64("min", 0, "minimum amount, inclusive")
	cmd.Flags().Float64("max", 0, "maximum amount, inclusive")
	cmd.Flags().Int("priority", 0, "evaluation priority, higher first")
	_ = cmd.MarkFlagRequired("account")

	return cmd
}

func rulesSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Install the built-in starter rules",
		Long: `Install starter rules covering common Korean corporate-card spend
patterns. Rules referencing account codes that are not registered yet are
skipped, so import accounts first.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer closeStore(store)

			accounts, err := store.ListAccounts(ctx, true)
			if err != nil {
				return err
			}
			if len(accounts) == 0 {
				return fmt.Errorf("%w: 계정과목을 먼저 등록하세요 (bunryu accounts import)", common.ErrNoActiveAccounts)
			}

			installed, skipped := 0, 0
			for _, seed := range rule.SeedRules() {
				r := model.ClassificationRule{
					Name:       seed.Name,
					Priority:   seed.Priority,
					Conditions: seed.Conditions,
					Account:    model.Account{Code: seed.AccountCode},
					IsActive:   true,
				}
				if err := store.SaveRule(ctx, &r); err != nil {
					if errors.Is(err, common.ErrNotFound) {
						skipped++
						continue
					}
					return err
				}
				installed++
			}

			fmt.Printf("installed %d rules", installed)
			if skipped > 0 {
				fmt.Printf(", skipped %d (missing account codes)", skipped)
			}
			fmt.Println()
			return nil
		},
	}
}

func describeConditions(c model.RuleConditions) string {
	var parts []string
	if len(c.MCCCodes) > 0 {
		parts = append(parts, "mcc in ["+strings.Join(c.MCCCodes, ",")+"]")
	}
	if c.MerchantNameContains != "" {
		parts = append(parts, fmt.Sprintf("merchant contains %q", c.MerchantNameContains))
	}
	if c.AmountMin != nil {
		parts = append(parts, fmt.Sprintf("amount ≥ %s", amountColumn(*c.AmountMin)))
	}
	if c.AmountMax != nil {
		parts = append(parts, fmt.Sprintf("amount ≤ %s", amountColumn(*c.AmountMax)))
	}
	if len(parts) == 0 {
		return "matches everything"
	}
	return strings.Join(parts, " AND ")
}
