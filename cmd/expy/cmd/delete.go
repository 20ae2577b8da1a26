package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"expy/internal/cli"
	"expy/internal/core"
)

func newDeleteCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Remove a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := cli.ParseID(args[0])
			if err != nil {
				return err
			}

			t := core.Transaction{ID: core.NewID(id)}
			ok, err := a.store.Delete(cmd.Context(), t)
			if err != nil {
				return describeFault(err, "delete transaction")
			}
			if !ok {
				fmt.Fprintf(a.out, "Nothing to delete: no transaction with id %d.\n", id)
				return nil
			}
			fmt.Fprintf(a.out, "Deleted transaction %d.\n", id)
			return nil
		},
	}
}
