package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/yiqitkaan/fintech-data-quality-ai/internal/completion"
	"github.com/yiqitkaan/fintech-data-quality-ai/internal/pipeline"
	"github.com/yiqitkaan/fintech-data-quality-ai/internal/report"
	"github.com/yiqitkaan/fintech-data-quality-ai/internal/rules"
)

var narrativeCommand = &cobra.Command{
	Use:   "narrative",
	Short: "Generate the CTO narrative from latest_run.json",
	Long:  "Reads the latest_run.json artifact, builds the CTO prompt from it and the rule catalog, calls the completion service, and writes the markdown narrative named after the run id and generation date.",
	RunE:  runNarrativeCmd,
}

var (
	narrativeConfigPath string
	narrativeDir        string
	narrativeAPIKey     string
	narrativeModel      string
	narrativeTimeoutMS  int
	narrativeVerbose    bool
)

func init() {
	narrativeCommand.Flags().StringVar(&narrativeConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	narrativeCommand.Flags().StringVar(&narrativeDir, "reports-dir", "", "Directory for report artifacts (defaults to REPORTS_DIR env var)")
	narrativeCommand.Flags().StringVar(&narrativeAPIKey, "api-key", "", "Completion service API key (defaults to OPENAI_API_KEY env var)")
	narrativeCommand.Flags().StringVar(&narrativeModel, "model", "", "Completion model identifier (defaults to OPENAI_MODEL env var)")
	narrativeCommand.Flags().IntVar(&narrativeTimeoutMS, "timeout-ms", 0, "Completion request timeout in milliseconds (defaults to OPENAI_TIMEOUT_MS env var)")
	narrativeCommand.Flags().BoolVarP(&narrativeVerbose, "verbose", "v", false, "Print detailed debug information")

	rootCmd.AddCommand(narrativeCommand)
}

func runNarrativeCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadConfig(narrativeConfigPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("reports-dir") {
		cfg.ReportsDir = narrativeDir
	}
	if cmd.Flags().Changed("api-key") {
		cfg.OpenAIAPIKey = narrativeAPIKey
	}
	if cmd.Flags().Changed("model") {
		cfg.OpenAIModel = narrativeModel
	}
	if cmd.Flags().Changed("timeout-ms") {
		cfg.TimeoutMS = narrativeTimeoutMS
	}

	client := completion.New(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.Timeout())

	p := pipeline.New(nil, report.NewStore(cfg.ReportsDir), client, rules.Default(), narrativeVerbose)
	if _, err := p.GenerateNarrative(ctx, completionOptions(cfg.OpenAIModel, cfg.Timeout())); err != nil {
		return err
	}
	return nil
}

func completionOptions(model string, timeout time.Duration) completion.Options {
	return completion.Options{Model: model, Timeout: timeout}
}
