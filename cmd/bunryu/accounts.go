package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sowonlabs/bunryu/internal/cli"
	"github.com/sowonlabs/bunryu/internal/model"
)

func accountsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "Manage ledger accounts (계정과목)",
	}
	cmd.AddCommand(accountsListCmd())
	cmd.AddCommand(accountsAddCmd())
	cmd.AddCommand(accountsImportCmd())
	cmd.AddCommand(accountsActivateCmd())
	return cmd
}

func accountsListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List accounts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			all, _ := cmd.Flags().GetBool("all")

			store, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer closeStore(store)

			accounts, err := store.ListAccounts(ctx, !all)
			if err != nil {
				return err
			}
			if len(accounts) == 0 {
				fmt.Println("no accounts registered (use: bunryu accounts import)")
				return nil
			}

			for _, a := range accounts {
				status := ""
				if !a.IsActive {
					status = cli.SubtleStyle.Render(" (inactive)")
				}
				category := ""
				if a.Category != "" {
					category = cli.SubtleStyle.Render("  " + a.Category)
				}
				fmt.Printf("%s  %s%s%s\n", a.Code, a.Name, category, status)
			}
			return nil
		},
	}
	cmd.Flags().Bool("all", false, "include inactive accounts")
	return cmd
}

func accountsAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <code> <name>",
		Short: "Register an account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			category, _ := cmd.Flags().GetString("category")

			store, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer closeStore(store)

			account := model.Account{
				Code:     args[0],
				Name:     args[1],
				Category: category,
				IsActive: true,
			}
			if err := store.SaveAccount(ctx, &account); err != nil {
				return err
			}
			fmt.Printf("added %s %s\n", account.Code, account.Name)
			return nil
		},
	}
	cmd.Flags().String("category", "", "account category grouping")
	return cmd
}

func accountsImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Import accounts from a CSV file (columns: code, name, category)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			accounts, err := readAccountCSV(args[0])
			if err != nil {
				return err
			}

			store, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer closeStore(store)

			result, err := store.ImportAccounts(ctx, accounts)
			if err != nil {
				return err
			}

			fmt.Printf("imported: %d, skipped: %d\n", result.Imported, result.Skipped)
			for _, rowErr := range result.Errors {
				fmt.Println(cli.WarningStyle.Render(fmt.Sprintf("  row %d: %s", rowErr.Row, rowErr.Error)))
			}
			return nil
		},
	}
}

func accountsActivateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "activate <code>",
		Short: "Activate or deactivate an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			off, _ := cmd.Flags().GetBool("off")

			store, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer closeStore(store)

			if err := store.SetAccountActive(ctx, args[0], !off); err != nil {
				return err
			}
			state := "activated"
			if off {
				state = "deactivated"
			}
			fmt.Printf("%s %s\n", state, args[0])
			return nil
		},
	}
	cmd.Flags().Bool("off", false, "deactivate instead of activate")
	return cmd
}

// readAccountCSV parses a headered CSV of code,name,category rows.
func readAccountCSV(path string) ([]model.Account, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	col := map[string]int{}
	for i, name := range header {
		col[strings.TrimSpace(strings.ToLower(name))] = i
	}
	if _, ok := col["code"]; !ok {
		return nil, fmt.Errorf("CSV header must contain code and name columns")
	}
	if _, ok := col["name"]; !ok {
		return nil, fmt.Errorf("CSV header must contain code and name columns")
	}

	field := func(record []string, name string) string {
		idx, ok := col[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	var accounts []model.Account
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("malformed CSV row: %w", err)
		}
		accounts = append(accounts, model.Account{
			Code:     field(record, "code"),
			Name:     field(record, "name"),
			Category: field(record, "category"),
			IsActive: true,
		})
	}
	return accounts, nil
}
