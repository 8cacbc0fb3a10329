package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func confirmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "confirm <result-id>",
		Short: "Confirm a classification result",
		Long: `Mark a saved classification result as confirmed. Confirmed results
become few-shot examples for future AI classifications.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer closeStore(store)

			if err := store.ConfirmResult(ctx, args[0]); err != nil {
				return err
			}
			fmt.Printf("confirmed %s\n", args[0])
			return nil
		},
	}
}
