package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"expy/internal/cli"
	"expy/internal/core"
	"expy/internal/storage"
)

func newStatsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show totals per category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := a.store.Count(cmd.Context())
			if err != nil {
				return describeFault(err, "count transactions")
			}
			fmt.Fprintf(a.out, "Database: %s\nTransactions: %d\n\n", a.store.Path(), n)
			if n == 0 {
				return nil
			}

			txs, err := a.store.GetFiltered(cmd.Context(), storage.Filter{})
			if err != nil {
				return describeFault(err, "list transactions")
			}
			return cli.PrintSummary(a.out, core.Summarize(txs))
		},
	}
}
