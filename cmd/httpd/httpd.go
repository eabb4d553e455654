// Package httpd implements the HTTP API server command.
package httpd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/Redoy0/political-violence-monitor/cmd/common"
	"github.com/Redoy0/political-violence-monitor/internal/api"
)

const shutdownTimeout = 10 * time.Second

// Command returns the httpd command.
func Command() *cobra.Command {
	return &cobra.Command{
		Use:   "httpd",
		Short: "Start the HTTP API server",
		Long: `Serve the incident API: list persisted incidents, trigger scrape
runs on demand, and expose health and Prometheus metrics endpoints.`,
		RunE: runServer,
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	deps, err := common.NewDeps(cmd)
	if err != nil {
		return fmt.Errorf("initializing dependencies: %w", err)
	}

	registry := prometheus.NewRegistry()
	monitor, err := common.NewMonitor(deps, registry)
	if err != nil {
		return err
	}
	defer monitor.Close()

	handler := api.NewIncidentHandler(monitor.Incidents, monitor.Pipeline, deps.Logger)
	router := api.NewRouter(handler, registry, deps.Logger, deps.Config.App.Debug)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", deps.Config.Server.Port),
		Handler:      router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		deps.Logger.Info("HTTP server listening", "addr", server.Addr)
		if serveErr := server.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			errCh <- serveErr
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-cmd.Context().Done():
	}

	deps.Logger.Info("Shutdown signal received, draining connections")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}
	return nil
}
