package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/yiqitkaan/fintech-data-quality-ai/internal/completion"
	"github.com/yiqitkaan/fintech-data-quality-ai/internal/db"
	"github.com/yiqitkaan/fintech-data-quality-ai/internal/pipeline"
	"github.com/yiqitkaan/fintech-data-quality-ai/internal/report"
	"github.com/yiqitkaan/fintech-data-quality-ai/internal/rules"
)

var runCommand = &cobra.Command{
	Use:   "run",
	Short: "Run the full DQ reporting pipeline end-to-end",
	Long:  "Orchestrates the whole pipeline: fetch latest run rows -> aggregate -> persist latest_run.json -> build prompt -> call completion service -> persist narrative.",
	RunE:  runPipelineCmd,
}

var (
	runConfigPath string
	runDir        string
	runDBURL      string
	runAPIKey     string
	runModel      string
	runTimeoutMS  int
	runVerbose    bool
)

func init() {
	runCommand.Flags().StringVar(&runConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	runCommand.Flags().StringVar(&runDir, "reports-dir", "", "Directory for report artifacts (defaults to REPORTS_DIR env var)")
	runCommand.Flags().StringVar(&runDBURL, "db-url", "", "PostgreSQL connection URL (defaults to DATABASE_URL env var)")
	runCommand.Flags().StringVar(&runAPIKey, "api-key", "", "Completion service API key (defaults to OPENAI_API_KEY env var)")
	runCommand.Flags().StringVar(&runModel, "model", "", "Completion model identifier (defaults to OPENAI_MODEL env var)")
	runCommand.Flags().IntVar(&runTimeoutMS, "timeout-ms", 0, "Completion request timeout in milliseconds (defaults to OPENAI_TIMEOUT_MS env var)")
	runCommand.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "Print detailed debug information")

	rootCmd.AddCommand(runCommand)
}

func runPipelineCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadConfig(runConfigPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("reports-dir") {
		cfg.ReportsDir = runDir
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = runDBURL
	}
	if cmd.Flags().Changed("api-key") {
		cfg.OpenAIAPIKey = runAPIKey
	}
	if cmd.Flags().Changed("model") {
		cfg.OpenAIModel = runModel
	}
	if cmd.Flags().Changed("timeout-ms") {
		cfg.TimeoutMS = runTimeoutMS
	}

	database, err := db.Connect(ctx, cfg.DSN())
	if err != nil {
		return err
	}
	defer database.Close()

	client := completion.New(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.Timeout())

	p := pipeline.New(database, report.NewStore(cfg.ReportsDir), client, rules.Default(), runVerbose)
	return p.Run(ctx, completionOptions(cfg.OpenAIModel, cfg.Timeout()))
}
