package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sowonlabs/bunryu/internal/cli"
)

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show classification statistics",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer closeStore(store)

			stats, err := store.GetStats(ctx)
			if err != nil {
				return err
			}

			fmt.Println(cli.TitleStyle.Render("Classification stats"))
			fmt.Printf("transactions:      %d\n", stats.TotalTransactions)
			fmt.Printf("rule classified:   %d\n", stats.RuleCount)
			fmt.Printf("ai classified:     %d\n", stats.AICount)
			fmt.Printf("confirmed:         %d (%.0f%%)\n", stats.ConfirmedCount, stats.ConfirmationRate*100)
			fmt.Printf("avg confidence:    %.2f\n", stats.AvgConfidence)

			if len(stats.TopAccounts) > 0 {
				fmt.Println()
				fmt.Println(cli.TitleStyle.Render("Top accounts"))
				for _, u := range stats.TopAccounts {
					fmt.Printf("%s %s  %d건  %s\n", u.Code, u.Name, u.Count, amountColumn(u.TotalAmount))
				}
			}
			return nil
		},
	}
}
