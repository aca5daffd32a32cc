package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/finanzas/internal/app"
	"github.com/MrJamesThe3rd/finanzas/internal/transaction"
)

func newExportCommand(e *env) *cobra.Command {
	var start, end, out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write transactions to an .xlsx file in the import layout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var filter transaction.ListFilter

			if start != "" {
				t, err := time.Parse(time.DateOnly, start)
				if err != nil {
					return fmt.Errorf("invalid --start: %w", err)
				}

				filter.StartDate = &t
			}

			if end != "" {
				t, err := time.Parse(time.DateOnly, end)
				if err != nil {
					return fmt.Errorf("invalid --end: %w", err)
				}

				filter.EndDate = &t
			}

			db, err := e.open()
			if err != nil {
				return err
			}
			defer db.Close()

			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("create %s: %w", out, err)
			}
			defer f.Close()

			n, err := app.New(db, e.cfg, e.logger, nil).Export.Export(cmd.Context(), filter, f)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "exported %d transactions to %s\n", n, out)

			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "first date, YYYY-MM-DD")
	cmd.Flags().StringVar(&end, "end", "", "last date, YYYY-MM-DD")
	cmd.Flags().StringVarP(&out, "out", "o", "movimientos.xlsx", "output file")

	return cmd
}
