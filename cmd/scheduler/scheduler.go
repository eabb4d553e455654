// Package scheduler implements the periodic monitoring command.
package scheduler

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/Redoy0/political-violence-monitor/cmd/common"
)

// Command returns the scheduler command.
func Command() *cobra.Command {
	return &cobra.Command{
		Use:   "scheduler",
		Short: "Run the monitor on a cron schedule",
		Long: `Start a long-running process that executes a full monitoring pass on
the configured cron schedule. Runs until interrupted.`,
		RunE: runScheduler,
	}
}

func runScheduler(cmd *cobra.Command, _ []string) error {
	deps, err := common.NewDeps(cmd)
	if err != nil {
		return fmt.Errorf("initializing dependencies: %w", err)
	}

	monitor, err := common.NewMonitor(deps, prometheus.NewRegistry())
	if err != nil {
		return err
	}
	defer monitor.Close()

	loc, err := time.LoadLocation(deps.Config.Scheduler.Timezone)
	if err != nil {
		return fmt.Errorf("loading timezone %q: %w", deps.Config.Scheduler.Timezone, err)
	}

	ctx := cmd.Context()
	log := deps.Logger.WithComponent("scheduler")

	c := cron.New(cron.WithLocation(loc), cron.WithChain(cron.Recover(cron.DefaultLogger)))
	_, err = c.AddFunc(deps.Config.Scheduler.Schedule, func() {
		log.Info("Scheduled run starting")
		result, runErr := monitor.Pipeline.Run(ctx, nil)
		if runErr != nil {
			log.Error("Scheduled run failed", "error", runErr)
			return
		}
		log.Info("Scheduled run finished",
			"total_articles", result.TotalArticles,
			"incidents_created", result.IncidentsCreated,
			"errors", len(result.Errors))
	})
	if err != nil {
		return fmt.Errorf("registering schedule %q: %w", deps.Config.Scheduler.Schedule, err)
	}

	log.Info("Scheduler started",
		"schedule", deps.Config.Scheduler.Schedule,
		"timezone", deps.Config.Scheduler.Timezone)
	c.Start()

	<-ctx.Done()
	log.Info("Shutdown signal received, stopping scheduler")

	stopCtx := c.Stop()
	<-stopCtx.Done()

	return nil
}
