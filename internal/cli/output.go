package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"expy/internal/core"
)

// PrintTransactions writes txs as an aligned table.
func PrintTransactions(w io.Writer, txs []core.Transaction) error {
	if len(txs) == 0 {
		_, err := fmt.Fprintln(w, "No transactions found.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tCATEGORY\tDESCRIPTION\tVALUE\tCC VALUE\t")
	for _, t := range txs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t\n",
			t.ID, t.Date.UTC().Format(dateLayout), t.Category, t.Description, t.Value, t.CCValue)
	}
	return tw.Flush()
}

// PrintSummary writes totals overall and per category.
func PrintSummary(w io.Writer, s core.Summary) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CATEGORY\tCOUNT\tVALUE\tCC VALUE")
	for _, c := range s.ByCategory {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", c.Name, c.Count, c.Amount, c.CCTotal)
	}
	fmt.Fprintf(tw, "TOTAL\t%d\t%s\t%s\n", s.Count, s.Total, s.CCTotal)
	return tw.Flush()
}
