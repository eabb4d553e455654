// Package common provides shared dependency construction for command
// implementations.
package common

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Redoy0/political-violence-monitor/internal/config"
	"github.com/Redoy0/political-violence-monitor/internal/logger"
)

// Deps holds the dependencies every command needs.
type Deps struct {
	Config *config.Config
	Logger logger.Interface
}

// NewDeps loads configuration and builds the logger from the command's
// persistent flags.
func NewDeps(cmd *cobra.Command) (*Deps, error) {
	cfgFile, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("reading config flag: %w", err)
	}
	debug, err := cmd.Flags().GetBool("debug")
	if err != nil {
		return nil, fmt.Errorf("reading debug flag: %w", err)
	}

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	if debug {
		cfg.App.Debug = true
		cfg.Logging.Level = "debug"
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.App.Environment == "development",
		Encoding:    cfg.Logging.Encoding,
	})
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}

	return &Deps{Config: cfg, Logger: log}, nil
}
