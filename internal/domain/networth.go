package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// DayLayout is the calendar day format used for history entries
const DayLayout = "2006-01-02"

// Totals holds the aggregated ledger figures at a point in time
type Totals struct {
	TotalAssets      decimal.Decimal
	TotalLiabilities decimal.Decimal
	NetWorth         decimal.Decimal // TotalAssets - TotalLiabilities, may be negative
}

// NetWorthEntry is an immutable dated snapshot of the ledger totals
// Several entries may share the same Date
type NetWorthEntry struct {
	Date             string // YYYY-MM-DD
	TotalAssets      decimal.Decimal
	TotalLiabilities decimal.Decimal
	NetWorth         decimal.Decimal
	CreatedAt        time.Time // Assigned by the store, zero when the store does not track it
}

// Totals returns the figures carried by the entry
func (e *NetWorthEntry) Totals() Totals {
	return Totals{
		TotalAssets:      e.TotalAssets,
		TotalLiabilities: e.TotalLiabilities,
		NetWorth:         e.NetWorth,
	}
}

// Validate ensures the entry adheres to domain rules
// CRITICAL: NetWorth must equal TotalAssets - TotalLiabilities
func (e *NetWorthEntry) Validate() error {
	if _, err := ParseDay(e.Date); err != nil {
		return err
	}
	if !e.NetWorth.Equal(e.TotalAssets.Sub(e.TotalLiabilities)) {
		return errors.New("net worth must equal total assets minus total liabilities")
	}
	return nil
}

// CheckRecord verifies the shape of an entry returned by a store
func (e *NetWorthEntry) CheckRecord() error {
	if e == nil {
		return &MalformedRecordError{Kind: "history", Err: errors.New("record is nil")}
	}
	if _, err := ParseDay(e.Date); err != nil {
		return &MalformedRecordError{Kind: "history", Field: "date", Err: err}
	}
	if !e.NetWorth.Equal(e.TotalAssets.Sub(e.TotalLiabilities)) {
		return &MalformedRecordError{Kind: "history", Field: "net_worth", Err: errors.New("net worth does not match totals")}
	}
	return nil
}

// DayOf formats t as a calendar day in the given location
// A nil location keeps t's own location
func DayOf(t time.Time, loc *time.Location) string {
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format(DayLayout)
}

// ParseDay parses a YYYY-MM-DD calendar day
func ParseDay(s string) (time.Time, error) {
	d, err := time.Parse(DayLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid day %q, want format %s: %w", s, DayLayout, err)
	}
	return d, nil
}
