// Package cmd implements the command-line interface for the political
// violence monitor.
package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/Redoy0/political-violence-monitor/cmd/cleanup"
	"github.com/Redoy0/political-violence-monitor/cmd/httpd"
	"github.com/Redoy0/political-violence-monitor/cmd/scheduler"
	"github.com/Redoy0/political-violence-monitor/cmd/scrape"
	"github.com/Redoy0/political-violence-monitor/cmd/sources"
)

var rootCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Political violence news monitor for Bangladesh",
	Long: `Monitor Bangladeshi news outlets for reports of political violence,
classify candidate articles, and maintain a deduplicated incident database.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// Execute runs the root command. The context is cancelled on SIGINT or
// SIGTERM so long-running commands shut down cleanly.
func Execute() error {
	// Load .env early so environment variables are visible to viper.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file (default is ./config.yaml or ./config/config.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	rootCmd.AddCommand(scrape.Command())
	rootCmd.AddCommand(scheduler.Command())
	rootCmd.AddCommand(httpd.Command())
	rootCmd.AddCommand(sources.Command())
	rootCmd.AddCommand(cleanup.Command())
}
