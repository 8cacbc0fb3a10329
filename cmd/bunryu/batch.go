package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sowonlabs/bunryu/internal/classify"
	"github.com/sowonlabs/bunryu/internal/cli"
	"github.com/sowonlabs/bunryu/internal/model"
)

func batchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch <file.csv>",
		Short: "Classify transactions from a CSV file",
		Long: `Classify every row of a CSV file.

Expected header columns: merchant_name, mcc_code, amount, transaction_date,
description, card_type. Only amount is required per row.

Rows are processed in concurrent groups to bound outstanding AI calls; a
failing row never aborts the rest of the batch.`,
		Args: cobra.ExactArgs(1),
		RunE: runBatch,
	}

	cmd.Flags().String("model", "", "model id (default: claude-sonnet)")
	cmd.Flags().Bool("save", false, "persist transactions and results")
	cmd.Flags().Int("group-size", 0, "concurrent group size (default 5)")

	return cmd
}

// csvRow pairs a parsed transaction with its 1-based row number.
type csvRow struct {
	err error
	tx  model.Transaction
	row int
}

func runBatch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	modelID, _ := cmd.Flags().GetString("model")
	save, _ := cmd.Flags().GetBool("save")
	groupSize, _ := cmd.Flags().GetInt("group-size")
	if groupSize <= 0 {
		groupSize = viper.GetInt("classification.group_size")
	}

	rows, err := readTransactionCSV(args[0])
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("no rows in %s", args[0])
	}

	store, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer closeStore(store)

	classifier, spec, err := buildClassifier(modelID)
	if err != nil {
		return err
	}

	input, err := loadInput(ctx, store, spec)
	if err != nil {
		return err
	}

	// Invalid rows are recorded up front and excluded from classification.
	var txs []model.Transaction
	var txRows []int
	invalid := map[int]error{}
	for _, r := range rows {
		if r.err != nil {
			invalid[r.row] = r.err
			continue
		}
		txs = append(txs, r.tx)
		txRows = append(txRows, r.row)
	}

	bar := progressbar.NewOptions(len(txs),
		progressbar.OptionSetDescription("classifying"),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)

	batch := classifier.ClassifyBatch(ctx, txs, input, classify.BatchOptions{
		GroupSize: groupSize,
		OnProgress: func(completed, _ int) {
			_ = bar.Set(completed)
		},
	})
	_ = bar.Finish()

	failed := len(invalid)
	var rowErrors []string
	for row, rowErr := range invalid {
		rowErrors = append(rowErrors, fmt.Sprintf("row %d: %v", row, rowErr))
	}

	for _, item := range batch.Items {
		row := txRows[item.Index]
		if item.Err != nil {
			failed++
			rowErrors = append(rowErrors, fmt.Sprintf("row %d: %v", row, item.Err))
			continue
		}
		if save {
			tx := txs[item.Index]
			if _, saveErr := saveClassification(ctx, store, &tx, item.Result); saveErr != nil {
				failed++
				rowErrors = append(rowErrors, fmt.Sprintf("row %d: %v", row, saveErr))
			}
		}
	}

	fmt.Println(cli.TitleStyle.Render("Batch classification"))
	fmt.Printf("total:    %d\n", len(rows))
	fmt.Printf("success:  %s\n", cli.SuccessStyle.Render(strconv.Itoa(batch.Succeeded)))
	fmt.Printf("  rule:   %d\n", batch.RuleClassified)
	fmt.Printf("  ai:     %d\n", batch.AIClassified)
	fmt.Printf("failed:   %s\n", cli.ErrorStyle.Render(strconv.Itoa(failed)))
	for _, msg := range rowErrors {
		fmt.Println(cli.ErrorStyle.Render("  " + msg))
	}

	return nil
}

// readTransactionCSV parses a headered CSV into transactions. Per-row
// validation failures are carried alongside valid rows so the caller can
// report them without dropping the batch.
func readTransactionCSV(path string) ([]csvRow, error) {
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
	if _, ok := col["amount"]; !ok {
		return nil, fmt.Errorf("CSV header must contain an amount column")
	}

	field := func(record []string, name string) string {
		idx, ok := col[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	var rows []csvRow
	rowNum := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		rowNum++
		if err != nil {
			rows = append(rows, csvRow{row: rowNum, err: fmt.Errorf("malformed CSV row: %w", err)})
			continue
		}

		amount, err := strconv.ParseFloat(field(record, "amount"), 64)
		if err != nil || amount <= 0 {
			rows = append(rows, csvRow{row: rowNum, err: fmt.Errorf("유효하지 않은 금액")})
			continue
		}

		rows = append(rows, csvRow{
			row: rowNum,
			tx: model.Transaction{
				MerchantName:    field(record, "merchant_name"),
				MCCCode:         field(record, "mcc_code"),
				Amount:          amount,
				TransactionDate: field(record, "transaction_date"),
				Description:     field(record, "description"),
				CardType:        model.CardType(field(record, "card_type")),
			},
		})
	}

	return rows, nil
}
