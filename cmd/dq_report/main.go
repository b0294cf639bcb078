// Package main provides the entry point for the DQ reporting CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "dq_report",
	Short: "FinTech data quality reporting pipeline",
	Long:  "dq_report aggregates the latest data-quality run into a canonical report document and generates a CTO-facing narrative from it via a text-completion service.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
