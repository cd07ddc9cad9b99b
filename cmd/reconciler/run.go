package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"bank-reconciliation/internal/domain"
	"bank-reconciliation/internal/gateway"
	"bank-reconciliation/internal/logger"
	"bank-reconciliation/internal/usecase"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a reconciliation over two CSV transaction feeds",
	Long: `Run loads the bank statement feed and the book ledger feed from CSV files,
matches them and writes the JSON report to stdout or to --output.

Both feeds share one CSV layout:

  id,date,description,amount,type[,category[,reference]]

where date is YYYY-MM-DD or RFC3339 and type is debit or credit.`,
	Example: `  # Reconcile June with default matcher settings
  reconciler run --bank statement.csv --book ledger.csv \
    --start 2023-06-01 --end 2023-06-30 \
    --account-name "Operating Account" --account-number 12345 --currency USD

  # Several statement exports covering one period
  reconciler run --bank statement_a.csv --bank statement_b.csv \
    --book ledger.csv --start 2023-06-01 --end 2023-06-30 \
    --account-name "Operating Account" --account-number 12345

  # Tighten the fuzzy threshold via a settings file
  reconciler run --bank statement.csv --book ledger.csv \
    --start 2023-06-01 --end 2023-06-30 \
    --account-name "Operating Account" --account-number 12345 \
    --settings settings.yaml --output report.json`,
	RunE: runReconciliation,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringSlice("bank", nil, "Path to a bank statement CSV feed, repeatable (required)")
	runCmd.Flags().String("book", "", "Path to the book ledger CSV feed (required)")
	runCmd.Flags().String("start", "", "Period start date (YYYY-MM-DD) (required)")
	runCmd.Flags().String("end", "", "Period end date (YYYY-MM-DD) (required)")
	runCmd.Flags().String("settings", "", "Path to a YAML file overriding matcher settings")
	runCmd.Flags().String("output", "", "Write the JSON report to this file instead of stdout")
	runCmd.Flags().String("account-name", "", "Account name (required)")
	runCmd.Flags().String("account-number", "", "Account number (required)")
	runCmd.Flags().String("bank-name", "", "Bank name")
	runCmd.Flags().String("currency", "USD", "Currency code")
	runCmd.Flags().String("opening-balance", "0", "Account opening balance")
	runCmd.Flags().String("closing-balance", "0", "Account closing balance")

	_ = runCmd.MarkFlagRequired("bank")
	_ = runCmd.MarkFlagRequired("book")
	_ = runCmd.MarkFlagRequired("start")
	_ = runCmd.MarkFlagRequired("end")
	_ = runCmd.MarkFlagRequired("account-name")
	_ = runCmd.MarkFlagRequired("account-number")
}

func runReconciliation(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("run")

	bankPaths, _ := cmd.Flags().GetStringSlice("bank")
	bookPath, _ := cmd.Flags().GetString("book")
	startStr, _ := cmd.Flags().GetString("start")
	endStr, _ := cmd.Flags().GetString("end")
	settingsPath, _ := cmd.Flags().GetString("settings")
	outputPath, _ := cmd.Flags().GetString("output")

	start, err := time.Parse(time.DateOnly, startStr)
	if err != nil {
		return fmt.Errorf("invalid start date, use YYYY-MM-DD: %w", err)
	}
	end, err := time.Parse(time.DateOnly, endStr)
	if err != nil {
		return fmt.Errorf("invalid end date, use YYYY-MM-DD: %w", err)
	}

	account, err := accountFromFlags(cmd)
	if err != nil {
		return err
	}

	settings, err := loadSettings(settingsPath)
	if err != nil {
		return err
	}

	log.Info().
		Strs("bank_feeds", bankPaths).
		Str("book_feed", bookPath).
		Str("period_start", startStr).
		Str("period_end", endStr).
		Msg("starting reconciliation run")

	repo := gateway.NewCSVTransactionRepository()
	uc := usecase.NewReconciliationUseCase(repo)

	report, err := uc.Run(context.Background(), usecase.RunRequest{
		Account:   account,
		Period:    domain.Period{Start: start, End: end},
		BankPaths: bankPaths,
		BookPath:  bookPath,
		Settings:  settings,
	})
	if err != nil {
		return fmt.Errorf("reconciliation failed: %w", err)
	}

	output, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to generate JSON report: %w", err)
	}

	if outputPath != "" {
		if err := os.WriteFile(outputPath, output, 0644); err != nil {
			return fmt.Errorf("failed to write report to %s: %w", outputPath, err)
		}
		log.Info().Str("output", outputPath).Msg("report written")
		return nil
	}

	fmt.Println(string(output))
	return nil
}

func accountFromFlags(cmd *cobra.Command) (domain.AccountInfo, error) {
	name, _ := cmd.Flags().GetString("account-name")
	number, _ := cmd.Flags().GetString("account-number")
	bankName, _ := cmd.Flags().GetString("bank-name")
	currency, _ := cmd.Flags().GetString("currency")
	openingStr, _ := cmd.Flags().GetString("opening-balance")
	closingStr, _ := cmd.Flags().GetString("closing-balance")

	opening, err := decimal.NewFromString(openingStr)
	if err != nil {
		return domain.AccountInfo{}, fmt.Errorf("invalid opening balance '%s': %w", openingStr, err)
	}
	closing, err := decimal.NewFromString(closingStr)
	if err != nil {
		return domain.AccountInfo{}, fmt.Errorf("invalid closing balance '%s': %w", closingStr, err)
	}

	return domain.AccountInfo{
		Name:           name,
		Number:         number,
		BankName:       bankName,
		Currency:       currency,
		OpeningBalance: opening,
		ClosingBalance: closing,
	}, nil
}

func loadSettings(path string) (*domain.Settings, error) {
	if path == "" {
		return nil, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file %s: %w", path, err)
	}
	var settings domain.Settings
	if err := yaml.Unmarshal(raw, &settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings file %s: %w", path, err)
	}
	return &settings, nil
}
