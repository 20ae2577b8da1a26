package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"expy/internal/cli"
	"expy/internal/core"
)

func newGetCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Show one transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := cli.ParseID(args[0])
			if err != nil {
				return err
			}

			t, ok, err := a.store.GetByID(cmd.Context(), id)
			if err != nil {
				return describeFault(err, "get transaction")
			}
			if !ok {
				fmt.Fprintf(a.out, "No transaction with id %d.\n", id)
				return nil
			}
			return cli.PrintTransactions(a.out, []core.Transaction{t})
		},
	}
}
