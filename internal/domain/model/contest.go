// Package model contains domain models passed between layers.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Contest is one lobby contest, decoded once from its raw record and never
// mutated afterwards.
type Contest struct {
	ID         string
	Name       string
	DraftGroup string // links the contest to its salary set
	StartDt    time.Time

	TotalPrizes   decimal.Decimal
	Entries       int // contest capacity
	EntryFee      decimal.Decimal
	EntryCount    int // current sign-ups
	MaxEntryCount int // entries allowed per user

	IsDoubleUp bool
}

// IsSingleEntry reports whether a user may enter the contest only once.
func (c Contest) IsSingleEntry() bool {
	return c.MaxEntryCount == 1
}

// IsFree reports whether the contest has no entry fee.
func (c Contest) IsFree() bool {
	return c.EntryFee.IsZero()
}

// StartDate returns the calendar date of the start time as YYYY-MM-DD.
func (c Contest) StartDate() string {
	return c.StartDt.Format(time.DateOnly)
}
