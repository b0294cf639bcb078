package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yiqitkaan/fintech-data-quality-ai/internal/config"
	"github.com/yiqitkaan/fintech-data-quality-ai/internal/db"
	"github.com/yiqitkaan/fintech-data-quality-ai/internal/pipeline"
	"github.com/yiqitkaan/fintech-data-quality-ai/internal/report"
	"github.com/yiqitkaan/fintech-data-quality-ai/internal/rules"
)

var reportCommand = &cobra.Command{
	Use:   "report",
	Short: "Aggregate the latest DQ run into latest_run.json",
	Long:  "Fetches the latest run's violation rows from the database, aggregates them into the canonical report document, and overwrites the latest_run.json artifact.",
	RunE:  runReportCmd,
}

var (
	reportConfigPath string
	reportDir        string
	reportDBURL      string
	reportVerbose    bool
)

func init() {
	reportCommand.Flags().StringVar(&reportConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	reportCommand.Flags().StringVar(&reportDir, "reports-dir", "", "Directory for report artifacts (defaults to REPORTS_DIR env var)")
	reportCommand.Flags().StringVar(&reportDBURL, "db-url", "", "PostgreSQL connection URL (defaults to DATABASE_URL env var)")
	reportCommand.Flags().BoolVarP(&reportVerbose, "verbose", "v", false, "Print detailed debug information")

	rootCmd.AddCommand(reportCommand)
}

func runReportCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadConfig(reportConfigPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("reports-dir") {
		cfg.ReportsDir = reportDir
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = reportDBURL
	}

	database, err := db.Connect(ctx, cfg.DSN())
	if err != nil {
		return err
	}
	defer database.Close()

	p := pipeline.New(database, report.NewStore(cfg.ReportsDir), nil, rules.Default(), reportVerbose)
	if _, err := p.BuildReport(ctx); err != nil {
		return err
	}
	return nil
}

// loadConfig reads the optional JSON config file, fills the gaps from the
// environment, and validates the result.
func loadConfig(path string) (config.Config, error) {
	var cfg config.Config
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loaded
	}

	cfg = cfg.MergeWithDefaults(config.FromEnv())
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
