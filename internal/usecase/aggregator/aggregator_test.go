package aggregator

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/simaogato/networth-backend/internal/domain"
	"github.com/stretchr/testify/assert"
)

func asset(value string) *domain.Asset {
	return &domain.Asset{ID: value, Category: domain.AssetCategoryCash, Value: decimal.RequireFromString(value)}
}

func liability(amount string) *domain.Liability {
	return &domain.Liability{ID: amount, Category: domain.LiabilityCategoryLoans, Amount: decimal.RequireFromString(amount)}
}

func TestAggregate(t *testing.T) {
	tests := []struct {
		name            string
		assets          []*domain.Asset
		liabilities     []*domain.Liability
		wantAssets      string
		wantLiabilities string
		wantNetWorth    string
	}{
		{
			name:            "Empty ledger yields zero totals",
			wantAssets:      "0",
			wantLiabilities: "0",
			wantNetWorth:    "0",
		},
		{
			name:            "Single asset",
			assets:          []*domain.Asset{asset("1000")},
			wantAssets:      "1000",
			wantLiabilities: "0",
			wantNetWorth:    "1000",
		},
		{
			name:            "Asset and liability",
			assets:          []*domain.Asset{asset("1000")},
			liabilities:     []*domain.Liability{liability("400")},
			wantAssets:      "1000",
			wantLiabilities: "400",
			wantNetWorth:    "600",
		},
		{
			name:            "Only liabilities gives negative net worth",
			liabilities:     []*domain.Liability{liability("400")},
			wantAssets:      "0",
			wantLiabilities: "400",
			wantNetWorth:    "-400",
		},
		{
			name:            "Fractional amounts stay exact",
			assets:          []*domain.Asset{asset("0.1"), asset("0.2")},
			liabilities:     []*domain.Liability{liability("0.3")},
			wantAssets:      "0.3",
			wantLiabilities: "0.3",
			wantNetWorth:    "0",
		},
		{
			name:            "Nil elements are skipped",
			assets:          []*domain.Asset{nil, asset("5")},
			liabilities:     []*domain.Liability{liability("2"), nil},
			wantAssets:      "5",
			wantLiabilities: "2",
			wantNetWorth:    "3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			totals := Aggregate(tt.assets, tt.liabilities)

			assert.True(t, decimal.RequireFromString(tt.wantAssets).Equal(totals.TotalAssets), "total assets: %s", totals.TotalAssets)
			assert.True(t, decimal.RequireFromString(tt.wantLiabilities).Equal(totals.TotalLiabilities), "total liabilities: %s", totals.TotalLiabilities)
			assert.True(t, decimal.RequireFromString(tt.wantNetWorth).Equal(totals.NetWorth), "net worth: %s", totals.NetWorth)

			// Identity must hold for every input
			assert.True(t, totals.NetWorth.Equal(totals.TotalAssets.Sub(totals.TotalLiabilities)))
		})
	}
}

func TestAggregate_IsIdempotentAndOrderIndependent(t *testing.T) {
	assets := []*domain.Asset{asset("10.5"), asset("200"), asset("3.25")}
	liabilities := []*domain.Liability{liability("7"), liability("0.75")}

	first := Aggregate(assets, liabilities)
	second := Aggregate(assets, liabilities)
	assert.True(t, first.TotalAssets.Equal(second.TotalAssets))
	assert.True(t, first.TotalLiabilities.Equal(second.TotalLiabilities))
	assert.True(t, first.NetWorth.Equal(second.NetWorth))

	reversedAssets := []*domain.Asset{assets[2], assets[1], assets[0]}
	reversedLiabilities := []*domain.Liability{liabilities[1], liabilities[0]}
	reversed := Aggregate(reversedAssets, reversedLiabilities)
	assert.True(t, first.NetWorth.Equal(reversed.NetWorth))
	assert.True(t, first.TotalAssets.Equal(reversed.TotalAssets))
}

func TestAggregate_DoesNotMutateInput(t *testing.T) {
	assets := []*domain.Asset{asset("1"), asset("2")}

	Aggregate(assets, nil)

	assert.Len(t, assets, 2)
	assert.Equal(t, "1", assets[0].ID)
}
