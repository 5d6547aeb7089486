package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/terraincognita07/wavelength/internal/config"
	"github.com/terraincognita07/wavelength/internal/db"
	"github.com/terraincognita07/wavelength/internal/logging"
	"gorm.io/gorm"
)

var version = "dev"

// cliState is filled by the root pre-run hook before any subcommand runs.
type cliState struct {
	cfg    config.Config
	logger *logrus.Logger

	databaseURL string
	logLevel    string
	logFormat   string
}

func newRootCommand() *cobra.Command {
	state := &cliState{}

	root := &cobra.Command{
		Use:   "wavelength",
		Short: "Journaling and self-reflection API with analytics",
		Long: `Wavelength serves the layer, phase, curriculum and strategy reference data,
a per-user journal over it, and analytics derived from the journal.

Configuration is read from the environment (DATABASE_URL, PORT, LOG_LEVEL,
CACHE_BACKEND, ...). Flags override the matching variables.

EXAMPLES:

  wavelength serve --port 9000
  wavelength migrate
  wavelength seed --with-sample-journal
  wavelength overview --user-id 1 --start 2025-09-01
  wavelength mcp`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return state.load(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&state.databaseURL, "database-url", "", "database url, overrides DATABASE_URL")
	flags.StringVar(&state.logLevel, "log-level", "", "log level, overrides LOG_LEVEL")
	flags.StringVar(&state.logFormat, "log-format", "", "json or text, overrides LOG_FORMAT")

	root.AddCommand(
		newServeCommand(state),
		newMigrateCommand(state),
		newSeedCommand(state),
		newOverviewCommand(state),
		newMCPCommand(state),
	)
	return root
}

func (state *cliState) load(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("database-url") {
		cfg.DatabaseURL = state.databaseURL
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = state.logLevel
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = state.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.New(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, Output: os.Stderr})
	if err != nil {
		return err
	}

	state.cfg = cfg
	state.logger = logger
	return nil
}

func (state *cliState) openDatabase() (*gorm.DB, func(), error) {
	path, err := state.cfg.SQLitePath()
	if err != nil {
		return nil, nil, err
	}

	database, err := db.OpenSQLite(path, state.logger)
	if err != nil {
		return nil, nil, fmt.Errorf("database init failed: %w", err)
	}

	closeDatabase := func() {
		if sqlDB, err := database.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	return database, closeDatabase, nil
}
