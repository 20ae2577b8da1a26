package cmd

import (
	"github.com/spf13/cobra"

	"expy/internal/cli"
	"expy/internal/core"
)

func newListCommand(a *app) *cobra.Command {
	var (
		f       cli.ListFlags
		summary bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions, optionally filtered",
		Long: `List transactions. Filters combine: a transaction is shown only when it
matches every filter given. Range bounds are inclusive; --to with a plain date
covers that whole day.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := f.Filter()
			if err != nil {
				return err
			}

			txs, err := a.store.GetFiltered(cmd.Context(), filter)
			if err != nil {
				return describeFault(err, "list transactions")
			}

			if err := cli.PrintTransactions(a.out, txs); err != nil {
				return err
			}
			if summary && len(txs) > 0 {
				return cli.PrintSummary(a.out, core.Summarize(txs))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&f.From, "from", "", "earliest date (inclusive)")
	cmd.Flags().StringVar(&f.To, "to", "", "latest date (inclusive)")
	cmd.Flags().StringArrayVar(&f.Categories, "category", nil, "category to include (repeatable)")
	cmd.Flags().StringVar(&f.Min, "min", "", "smallest value in dollars (inclusive)")
	cmd.Flags().StringVar(&f.Max, "max", "", "largest value in dollars (inclusive)")
	cmd.Flags().BoolVar(&f.ByDate, "by-date", false, "sort by date instead of insertion order")
	cmd.Flags().BoolVar(&summary, "summary", false, "print totals per category")

	return cmd
}
