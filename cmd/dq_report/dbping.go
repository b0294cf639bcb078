package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yiqitkaan/fintech-data-quality-ai/internal/db"
)

var dbCommand = &cobra.Command{
	Use:   "db",
	Short: "Database utilities",
}

var dbPingCommand = &cobra.Command{
	Use:   "ping",
	Short: "Verify the database connection",
	RunE:  runDBPingCmd,
}

var (
	dbPingConfigPath string
	dbPingDBURL      string
)

func init() {
	dbPingCommand.Flags().StringVar(&dbPingConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	dbPingCommand.Flags().StringVar(&dbPingDBURL, "db-url", "", "PostgreSQL connection URL (defaults to DATABASE_URL env var)")

	dbCommand.AddCommand(dbPingCommand)
	rootCmd.AddCommand(dbCommand)
}

func runDBPingCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadConfig(dbPingConfigPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = dbPingDBURL
	}

	database, err := db.Connect(ctx, cfg.DSN())
	if err != nil {
		return err
	}
	defer database.Close()

	serverTime, name, err := database.Ping(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("CONNECTED_TO: %s (server time %s)\n", name, serverTime.UTC().Format("2006-01-02 15:04:05"))
	return nil
}
