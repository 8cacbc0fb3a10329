package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sowonlabs/bunryu/internal/cli"
	"github.com/sowonlabs/bunryu/internal/prompt"
)

func promptsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prompts",
		Short: "Manage AI prompt templates",
		Long: `Show or customize the system/user prompt templates used for AI
classification. The JSON response format instruction is appended
automatically and cannot be edited.`,
	}
	cmd.AddCommand(promptsShowCmd())
	cmd.AddCommand(promptsSetCmd())
	cmd.AddCommand(promptsResetCmd())
	return cmd
}

func promptsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current templates and available placeholders",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer closeStore(store)

			templates, err := store.GetPromptTemplates(ctx)
			if err != nil {
				return err
			}

			fmt.Println(cli.TitleStyle.Render("System prompt"))
			fmt.Println(templates.SystemPrompt)
			fmt.Println()
			fmt.Println(cli.TitleStyle.Render("User prompt"))
			fmt.Println(templates.UserPrompt)
			fmt.Println()
			fmt.Println(cli.TitleStyle.Render("Placeholders"))
			for _, p := range prompt.Placeholders {
				fmt.Printf("  %-22s %-8s %s\n", p.Key, cli.SubtleStyle.Render(p.Target), p.Description)
			}
			return nil
		},
	}
}

func promptsSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Replace a template from a file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			systemFile, _ := cmd.Flags().GetString("system")
			userFile, _ := cmd.Flags().GetString("user")
			if systemFile == "" && userFile == "" {
				return fmt.Errorf("provide --system and/or --user")
			}

			store, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer closeStore(store)

			templates, err := store.GetPromptTemplates(ctx)
			if err != nil {
				return err
			}

			if systemFile != "" {
				content, err := os.ReadFile(systemFile)
				if err != nil {
					return fmt.Errorf("failed to read system template: %w", err)
				}
				templates.SystemPrompt = string(content)
			}
			if userFile != "" {
				content, err := os.ReadFile(userFile)
				if err != nil {
					return fmt.Errorf("failed to read user template: %w", err)
				}
				templates.UserPrompt = string(content)
			}

			if err := store.SetPromptTemplates(ctx, templates); err != nil {
				return err
			}
			fmt.Println("prompt templates updated")
			return nil
		},
	}
	cmd.Flags().String("system", "", "file containing the system prompt template")
	cmd.Flags().String("user", "", "file containing the user prompt template")
	return cmd
}

func promptsResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Revert to the built-in default templates",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer closeStore(store)

			if err := store.ResetPromptTemplates(ctx); err != nil {
				return err
			}
			fmt.Println("prompt templates reset to defaults")
			return nil
		},
	}
}
