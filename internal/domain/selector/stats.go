package selector

import (
	"slices"

	"github.com/okian/dkcron/internal/domain/model"
	"github.com/shopspring/decimal"
)

// Stats is the per start date breakdown of a lobby listing, keyed by
// YYYY-MM-DD.
type Stats map[string]*DateStats

// DateStats counts the contests starting on one date.
type DateStats struct {
	// Count is every contest on the date.
	Count int
	// DoubleUps counts single-entry double-ups by entry fee string.
	DoubleUps map[string]int
}

// FeeCount is one row of the double-up breakdown.
type FeeCount struct {
	Fee   decimal.Decimal
	Count int
}

func (s Stats) add(c model.Contest) {
	date := c.StartDate()
	ds, ok := s[date]
	if !ok {
		ds = &DateStats{DoubleUps: map[string]int{}}
		s[date] = ds
	}
	ds.Count++

	if c.IsSingleEntry() && c.IsDoubleUp {
		ds.DoubleUps[c.EntryFee.String()]++
	}
}

// Dates returns the dates present, ascending.
func (s Stats) Dates() []string {
	dates := make([]string, 0, len(s))
	for d := range s {
		dates = append(dates, d)
	}
	slices.Sort(dates)
	return dates
}

// Total returns the number of contests seen across all dates.
func (s Stats) Total() int {
	total := 0
	for _, ds := range s {
		total += ds.Count
	}
	return total
}

// Fees returns the double-up counts ordered by fee value.
func (ds *DateStats) Fees() []FeeCount {
	out := make([]FeeCount, 0, len(ds.DoubleUps))
	for key, n := range ds.DoubleUps {
		out = append(out, FeeCount{Fee: decimal.RequireFromString(key), Count: n})
	}
	slices.SortFunc(out, func(a, b FeeCount) int {
		return a.Fee.Cmp(b.Fee)
	})
	return out
}
