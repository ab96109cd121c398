// Package selector picks the contest to schedule from a lobby listing.
package selector

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"github.com/okian/dkcron/internal/domain/model"
	"github.com/shopspring/decimal"
)

// DefaultEntryFee is the fee matched when the caller does not choose one.
var DefaultEntryFee = decimal.NewFromInt(25)

// Criteria are the caller's filters. Single-entry and double-up are always
// required and are not configurable.
type Criteria struct {
	Date     time.Time // only the calendar date is compared
	EntryFee decimal.Decimal
	Query    string // optional name substring that must be present
	Exclude  string // optional name substring that rejects a contest
}

// Matches reports whether c satisfies every leg of the criteria. Exclude is
// checked before Query.
func (cr Criteria) Matches(c model.Contest) bool {
	if !sameDate(c.StartDt, cr.Date) ||
		!c.IsSingleEntry() ||
		!c.EntryFee.Equal(cr.EntryFee) ||
		!c.IsDoubleUp {
		return false
	}
	if cr.Exclude != "" && strings.Contains(c.Name, cr.Exclude) {
		return false
	}
	if cr.Query != "" && !strings.Contains(c.Name, cr.Query) {
		return false
	}
	return true
}

// Result is the outcome of Select.
type Result struct {
	// Contest is the largest match, or nil when nothing matched.
	Contest *model.Contest
	// Matched counts contests that satisfied the criteria.
	Matched int
	// Stats covers the whole input, not only the matches.
	Stats Stats
}

// Select returns the matching contest with the most entries. Among matches
// with equal entries the first one in input order wins.
func Select(contests []model.Contest, cr Criteria) Result {
	res := Result{Stats: Stats{}}
	for _, c := range contests {
		res.Stats.add(c)

		if !cr.Matches(c) {
			continue
		}
		res.Matched++
		if res.Contest == nil || c.Entries > res.Contest.Entries {
			best := c
			res.Contest = &best
		}
	}
	return res
}

// ByEntries returns the contests at fee with more than limit entries,
// largest first. Equal sizes keep input order.
func ByEntries(contests []model.Contest, fee decimal.Decimal, limit int) []model.Contest {
	var out []model.Contest
	for _, c := range contests {
		if c.EntryFee.Equal(fee) && c.Entries > limit {
			out = append(out, c)
		}
	}
	slices.SortStableFunc(out, func(a, b model.Contest) int {
		return cmp.Compare(b.Entries, a.Entries)
	})
	return out
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
