package aggregator

import (
	"github.com/shopspring/decimal"
	"github.com/simaogato/networth-backend/internal/domain"
)

// Aggregate computes the ledger totals from the given collections
// Logic:
//  1. TotalAssets = sum of Value over assets, in collection order
//  2. TotalLiabilities = sum of Amount over liabilities, in collection order
//  3. NetWorth = TotalAssets - TotalLiabilities (never clamped)
//
// Empty or nil collections contribute zero. Nil elements are skipped.
func Aggregate(assets []*domain.Asset, liabilities []*domain.Liability) domain.Totals {
	totalAssets := decimal.Zero
	for _, asset := range assets {
		if asset == nil {
			continue
		}
		totalAssets = totalAssets.Add(asset.Value)
	}

	totalLiabilities := decimal.Zero
	for _, liability := range liabilities {
		if liability == nil {
			continue
		}
		totalLiabilities = totalLiabilities.Add(liability.Amount)
	}

	return domain.Totals{
		TotalAssets:      totalAssets,
		TotalLiabilities: totalLiabilities,
		NetWorth:         totalAssets.Sub(totalLiabilities),
	}
}
