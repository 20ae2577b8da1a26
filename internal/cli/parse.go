package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"expy/internal/core"
	"expy/internal/storage"
)

const dateLayout = "2006-01-02"

// Open ends of a range given on the command line.
const (
	minBound = -1 << 62
	maxBound = 1 << 62
)

// ParseDate accepts YYYY-MM-DD (UTC midnight), RFC 3339, or epoch seconds.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(n, 0).UTC(), nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q: use YYYY-MM-DD, RFC 3339 or epoch seconds", s)
}

// ParseID parses a positive transaction id.
func ParseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid id %q: must be a positive integer", s)
	}
	return id, nil
}

// ListFlags holds the raw list filters as typed on the command line.
type ListFlags struct {
	From       string
	To         string
	Categories []string
	Min        string
	Max        string
	ByDate     bool
}

// Filter converts the flags to a storage filter. A missing bound of a range
// is open-ended. A --to given as a plain date covers that whole day.
func (f ListFlags) Filter() (storage.Filter, error) {
	filter := storage.Filter{OrderByDate: f.ByDate}

	if f.From != "" || f.To != "" {
		dr := &storage.DateRange{From: time.Unix(minBound, 0).UTC(), To: time.Unix(maxBound, 0).UTC()}
		if f.From != "" {
			from, err := ParseDate(f.From)
			if err != nil {
				return filter, fmt.Errorf("--from: %w", err)
			}
			dr.From = from
		}
		if f.To != "" {
			to, err := ParseDate(f.To)
			if err != nil {
				return filter, fmt.Errorf("--to: %w", err)
			}
			if _, err := time.Parse(dateLayout, strings.TrimSpace(f.To)); err == nil {
				to = to.Add(24*time.Hour - time.Second)
			}
			dr.To = to
		}
		filter.DateRange = dr
	}

	for _, c := range f.Categories {
		if c = strings.TrimSpace(c); c != "" {
			filter.Categories = append(filter.Categories, c)
		}
	}

	if f.Min != "" || f.Max != "" {
		vr := &storage.ValueRange{Min: minBound, Max: maxBound}
		if f.Min != "" {
			m, err := core.ParseDollars(f.Min)
			if err != nil {
				return filter, fmt.Errorf("--min: %w", err)
			}
			vr.Min = m.Cents
		}
		if f.Max != "" {
			m, err := core.ParseDollars(f.Max)
			if err != nil {
				return filter, fmt.Errorf("--max: %w", err)
			}
			vr.Max = m.Cents
		}
		filter.ValueRange = vr
	}

	return filter, nil
}
