package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"bank-reconciliation/internal/logger"
)

var version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:   "reconciler",
	Short: "Reconcile a bank statement feed against internal book records",
	Long: `Reconciler pairs transactions from a bank statement feed with entries from
the internal book ledger, under uncertainty: dates may differ by a few days,
descriptions may be phrased differently and references may be missing.

Matching runs in two phases: an exact pass over amount, date and reference,
then a weighted fuzzy pass with auditable confidence scores. The result is a
JSON report with the matched pairs, both unmatched sets and a balance
summary.`,
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := logger.DefaultConfig()

		config.Level, _ = cmd.Flags().GetString("log-level")
		if !cmd.Flags().Changed("log-level") {
			if v := os.Getenv("LOG_LEVEL"); v != "" {
				config.Level = v
			}
		}

		config.Format, _ = cmd.Flags().GetString("log-format")
		if !cmd.Flags().Changed("log-format") {
			if v := os.Getenv("LOG_FORMAT"); v != "" {
				config.Format = v
			}
		}

		return logger.Setup(config)
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "console", "Log format (console, json)")
}
