// Package cli provides the command-line interface for chatstats.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/raphaelgruber/chatstats-go/internal/config"
	"github.com/raphaelgruber/chatstats-go/internal/db"
	"github.com/raphaelgruber/chatstats-go/internal/service"
)

var (
	// Version is set at build time.
	Version = "0.1.0"

	// Global flags
	verbose bool

	// Global config and db client
	cfg      config.Config
	dbClient *db.Client

	// Services built in the pre-run hook
	chatSvc      *service.ChatService
	analyticsSvc *service.AnalyticsService
	clickSvc     *service.ClickService
	reportSvc    *service.ReportService
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "chatstats",
	Short: "Conversational log analytics",
	Long: `Chatstats inspects an append-only conversational log: it pairs
questions with their answers, and reports chat volume, user rankings and
answer-click behaviour.`,
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip DB connection for version and help commands
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		ctx := context.Background()
		dbCfg := db.Config{
			URL:       cfg.SurrealDBURL,
			Namespace: cfg.SurrealDBNamespace,
			Database:  cfg.SurrealDBDatabase,
			Username:  cfg.SurrealDBUser,
			Password:  cfg.SurrealDBPass,
			AuthLevel: cfg.SurrealDBAuthLevel,
		}

		dbClient, err = db.NewClient(ctx, dbCfg, nil)
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}

		if err := dbClient.InitSchema(ctx); err != nil {
			return fmt.Errorf("initialize schema: %w", err)
		}

		logger := slog.New(slog.DiscardHandler)
		if verbose {
			logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
		}

		bound := time.Duration(cfg.ProximityBoundHours) * time.Hour
		chatSvc = service.NewChatService(dbClient, bound, logger)
		analyticsSvc = service.NewAnalyticsService(dbClient, logger)
		clickSvc = service.NewClickService(dbClient, logger)
		reportSvc = service.NewReportService(dbClient, logger)

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if dbClient != nil {
			if err := dbClient.Close(context.Background()); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to close database: %v\n", err)
			}
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Add subcommands
	rootCmd.AddCommand(chatsCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(rankingCmd)
	rootCmd.AddCommand(reportCmd)
}
