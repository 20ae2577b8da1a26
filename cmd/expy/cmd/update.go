package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"expy/internal/cli"
)

func newUpdateCommand(a *app) *cobra.Command {
	var f transactionFlags

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Change fields of a transaction",
		Long:  "Change fields of a transaction. Only the flags given are changed.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := cli.ParseID(args[0])
			if err != nil {
				return err
			}

			t, ok, err := a.store.GetByID(cmd.Context(), id)
			if err != nil {
				return describeFault(err, "update transaction")
			}
			if !ok {
				fmt.Fprintf(a.out, "Nothing to update: no transaction with id %d.\n", id)
				return nil
			}

			if err := f.apply(cmd, &t); err != nil {
				return err
			}

			ok, err = a.store.Update(cmd.Context(), t)
			if err != nil {
				return describeFault(err, "update transaction")
			}
			if !ok {
				fmt.Fprintf(a.out, "Nothing to update: no transaction with id %d.\n", id)
				return nil
			}
			fmt.Fprintf(a.out, "Updated transaction %d.\n", id)
			return nil
		},
	}

	f.register(cmd)
	return cmd
}
