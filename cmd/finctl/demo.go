package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/finanzas/internal/app"
	"github.com/MrJamesThe3rd/finanzas/internal/demo"
)

var errNotConfirmed = errors.New("refusing to delete data without --yes")

func newClearCommand(e *env) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every row of user data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return errNotConfirmed
			}

			db, err := e.open()
			if err != nil {
				return err
			}
			defer db.Close()

			if err := app.New(db, e.cfg, e.logger, nil).Demo.ClearAll(cmd.Context()); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "all data cleared")

			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "confirm the deletion")

	return cmd
}

func newLoadDemoCommand(e *env) *cobra.Command {
	var (
		yes  bool
		file string
	)

	cmd := &cobra.Command{
		Use:   "load-demo",
		Short: "Replace all data with the demo dataset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return errNotConfirmed
			}

			var ds *demo.Dataset

			if file != "" {
				raw, err := os.ReadFile(file)
				if err != nil {
					return fmt.Errorf("read dataset: %w", err)
				}

				if ds, err = demo.Parse(raw); err != nil {
					return err
				}
			}

			db, err := e.open()
			if err != nil {
				return err
			}
			defer db.Close()

			counts, err := app.New(db, e.cfg, e.logger, nil).Demo.LoadDemo(cmd.Context(), ds)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "accounts:        %d\n", counts.Accounts)
			fmt.Fprintf(out, "categories:      %d\n", counts.Categories)
			fmt.Fprintf(out, "budget plans:    %d\n", counts.BudgetPlans)
			fmt.Fprintf(out, "loans:           %d\n", counts.Loans)
			fmt.Fprintf(out, "credit cards:    %d\n", counts.CreditCards)
			fmt.Fprintf(out, "installments:    %d\n", counts.Installments)
			fmt.Fprintf(out, "transactions:    %d\n", counts.Transactions)
			fmt.Fprintf(out, "quick templates: %d\n", counts.QuickTemplates)

			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "confirm replacing existing data")
	cmd.Flags().StringVar(&file, "file", "", "YAML dataset to load instead of the embedded one")

	return cmd
}
