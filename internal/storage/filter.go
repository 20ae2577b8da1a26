package storage

import (
	"strings"
	"time"
)

// DateRange bounds the transaction date, inclusive on both ends.
type DateRange struct {
	From time.Time
	To   time.Time
}

// ValueRange bounds the transaction value in cents, inclusive on both ends.
type ValueRange struct {
	Min int64
	Max int64
}

// Filter selects transactions. Every criterion is optional; the ones that are
// set must all hold.
type Filter struct {
	DateRange  *DateRange
	Categories []string // any of; empty means no constraint
	ValueRange *ValueRange

	// OrderByDate sorts by date instead of insertion order.
	OrderByDate bool
}

// IsEmpty reports whether the filter imposes no constraint.
func (f Filter) IsEmpty() bool {
	return f.DateRange == nil && len(f.Categories) == 0 && f.ValueRange == nil
}

// buildFilteredQuery returns the SELECT for f and its bound arguments.
// Values are never written into the query text.
func buildFilteredQuery(f Filter) (string, []any) {
	var (
		clauses []string
		args    []any
	)

	if f.DateRange != nil {
		clauses = append(clauses, "date BETWEEN ? AND ?")
		args = append(args, f.DateRange.From.Unix(), f.DateRange.To.Unix())
	}

	if len(f.Categories) > 0 {
		placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(f.Categories)), ", ")
		clauses = append(clauses, "category IN ("+placeholders+")")
		for _, c := range f.Categories {
			args = append(args, c)
		}
	}

	if f.ValueRange != nil {
		clauses = append(clauses, "value BETWEEN ? AND ?")
		args = append(args, f.ValueRange.Min, f.ValueRange.Max)
	}

	var b strings.Builder
	b.WriteString(selectColumns)
	if len(clauses) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(clauses, " AND "))
	}
	if f.OrderByDate {
		b.WriteString(" ORDER BY date, t_id")
	} else {
		b.WriteString(" ORDER BY t_id")
	}

	return b.String(), args
}
