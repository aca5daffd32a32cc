package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/finanzas/internal/config"
	"github.com/MrJamesThe3rd/finanzas/internal/database"
	"github.com/MrJamesThe3rd/finanzas/internal/logging"
)

// env is loaded once before any subcommand runs.
type env struct {
	cfg    *config.Config
	logger *slog.Logger
}

func (e *env) open() (*sql.DB, error) {
	db, err := database.New(e.cfg.ConnectionString(), e.cfg.DB.MaxOpenConns)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	return db, nil
}

func newRootCommand() *cobra.Command {
	e := &env{}

	root := &cobra.Command{
		Use:   "finctl",
		Short: "Maintenance tasks for the finance backend",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			_ = godotenv.Load()

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			logger, err := logging.New(os.Stderr, cfg.App.LogFormat, cfg.App.LogLevel)
			if err != nil {
				return err
			}

			slog.SetDefault(logger)
			e.cfg, e.logger = cfg, logger

			return nil
		},
	}

	root.AddCommand(
		newMigrateCommand(e),
		newFixSequencesCommand(e),
		newClearCommand(e),
		newLoadDemoCommand(e),
		newExportCommand(e),
		newTokenCommand(e),
	)

	return root
}
