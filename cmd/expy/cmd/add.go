package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"expy/internal/cli"
	"expy/internal/core"
)

// transactionFlags are shared by add and update.
type transactionFlags struct {
	id          int64
	date        string
	category    string
	description string
	value       string
	ccValue     string
}

func (f *transactionFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.date, "date", "", "date as YYYY-MM-DD, RFC 3339 or epoch seconds")
	cmd.Flags().StringVar(&f.category, "category", "", "category label")
	cmd.Flags().StringVar(&f.description, "description", "", "free-form description")
	cmd.Flags().StringVar(&f.value, "value", "", "amount in dollars, e.g. 12.34")
	cmd.Flags().StringVar(&f.ccValue, "cc-value", "", "amount charged to the credit card, in dollars")
}

// apply copies the flags the user set onto t.
func (f *transactionFlags) apply(cmd *cobra.Command, t *core.Transaction) error {
	flags := cmd.Flags()
	if flags.Changed("date") {
		d, err := cli.ParseDate(f.date)
		if err != nil {
			return fmt.Errorf("--date: %w", err)
		}
		t.Date = d
	}
	if flags.Changed("category") {
		t.Category = f.category
	}
	if flags.Changed("description") {
		t.Description = f.description
	}
	if flags.Changed("value") {
		m, err := core.ParseDollars(f.value)
		if err != nil {
			return fmt.Errorf("--value: %w", err)
		}
		t.SetValueCents(m.Cents)
	}
	if flags.Changed("cc-value") {
		m, err := core.ParseDollars(f.ccValue)
		if err != nil {
			return fmt.Errorf("--cc-value: %w", err)
		}
		t.SetCCValueCents(m.Cents)
	}
	return nil
}

func newAddCommand(a *app) *cobra.Command {
	var f transactionFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a new transaction",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t := core.NewTransaction(core.NoID, time.Now().UTC().Truncate(24*time.Hour).Unix(), "", "", 0, 0)
			if cmd.Flags().Changed("id") {
				if f.id < 1 {
					return fmt.Errorf("--id: invalid id %d: must be a positive integer", f.id)
				}
				t.ID = core.NewID(f.id)
			}
			if err := f.apply(cmd, &t); err != nil {
				return err
			}

			ok, err := a.store.Create(cmd.Context(), &t)
			if err != nil {
				return describeFault(err, "add transaction")
			}
			if !ok {
				fmt.Fprintln(a.out, "Transaction was not added.")
				return nil
			}
			fmt.Fprintf(a.out, "Added transaction %s.\n", t.ID)
			return nil
		},
	}

	f.register(cmd)
	cmd.Flags().Int64Var(&f.id, "id", 0, "explicit id (default: next free id)")
	_ = cmd.MarkFlagRequired("category")
	_ = cmd.MarkFlagRequired("value")

	return cmd
}
