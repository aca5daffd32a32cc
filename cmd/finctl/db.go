package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/finanzas/internal/database"
)

func newMigrateCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := e.open()
			if err != nil {
				return err
			}
			defer db.Close()

			if err := database.RunMigrations(db); err != nil {
				return err
			}

			version, dirty, err := database.MigrationVersion(db)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "schema at version %d (dirty: %t)\n", version, dirty)

			return nil
		},
	}
}

func newFixSequencesCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "fix-sequences",
		Short: "Move every id sequence past the largest stored id",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := e.open()
			if err != nil {
				return err
			}
			defer db.Close()

			if err := database.FixSequences(cmd.Context(), db); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "sequences fixed")

			return nil
		},
	}
}
