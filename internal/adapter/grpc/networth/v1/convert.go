package networthv1

import (
	"time"

	"github.com/simaogato/networth-backend/internal/domain"
)

// NewLedger builds the ledger view from the controller's collections
func NewLedger(phase string, degraded bool, totals domain.Totals, assets []*domain.Asset, liabilities []*domain.Liability, history []*domain.NetWorthEntry) *Ledger {
	out := &Ledger{
		Phase:       phase,
		Degraded:    degraded,
		Totals:      FromTotals(totals),
		Assets:      make([]Asset, 0, len(assets)),
		Liabilities: make([]Liability, 0, len(liabilities)),
		History:     make([]HistoryEntry, 0, len(history)),
	}
	for _, a := range assets {
		out.Assets = append(out.Assets, *FromAsset(a))
	}
	for _, l := range liabilities {
		out.Liabilities = append(out.Liabilities, *FromLiability(l))
	}
	for _, e := range history {
		out.History = append(out.History, *FromEntry(e))
	}
	return out
}

// FromTotals converts domain totals to their wire form
func FromTotals(t domain.Totals) Totals {
	return Totals{
		TotalAssets:      t.TotalAssets.String(),
		TotalLiabilities: t.TotalLiabilities.String(),
		NetWorth:         t.NetWorth.String(),
	}
}

// FromAsset converts a domain asset to its wire form
func FromAsset(a *domain.Asset) *Asset {
	return &Asset{
		ID:          a.ID,
		Category:    string(a.Category),
		Description: a.Description,
		Value:       a.Value.String(),
		CreatedAt:   formatTime(a.CreatedAt),
	}
}

// FromLiability converts a domain liability to its wire form
func FromLiability(l *domain.Liability) *Liability {
	return &Liability{
		ID:          l.ID,
		Category:    string(l.Category),
		Description: l.Description,
		Amount:      l.Amount.String(),
		CreatedAt:   formatTime(l.CreatedAt),
	}
}

// FromEntry converts a history entry to its wire form
func FromEntry(e *domain.NetWorthEntry) *HistoryEntry {
	return &HistoryEntry{
		Date:             e.Date,
		TotalAssets:      e.TotalAssets.String(),
		TotalLiabilities: e.TotalLiabilities.String(),
		NetWorth:         e.NetWorth.String(),
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
