package memory

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/simaogato/networth-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssets_CreateListDelete(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	first, err := store.Assets().Create(ctx, domain.NewAsset{Category: domain.AssetCategoryCash, Description: "Checking", Value: decimal.NewFromInt(100)})
	require.NoError(t, err)
	second, err := store.Assets().Create(ctx, domain.NewAsset{Category: domain.AssetCategoryVehicles, Description: "Car", Value: decimal.NewFromInt(5000)})
	require.NoError(t, err)

	assert.NotEmpty(t, first.ID)
	assert.NotEqual(t, first.ID, second.ID)
	assert.False(t, first.CreatedAt.IsZero())

	assets, err := store.Assets().List(ctx)
	require.NoError(t, err)
	require.Len(t, assets, 2)
	assert.Equal(t, second.ID, assets[0].ID, "newest first")

	require.NoError(t, store.Assets().Delete(ctx, first.ID))
	assets, err = store.Assets().List(ctx)
	require.NoError(t, err)
	require.Len(t, assets, 1)
	assert.Equal(t, second.ID, assets[0].ID)

	assert.ErrorIs(t, store.Assets().Delete(ctx, first.ID), domain.ErrNotFound)
}

func TestLiabilities_CreateListDelete(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	created, err := store.Liabilities().Create(ctx, domain.NewLiability{Category: domain.LiabilityCategoryLoans, Description: "Student loan", Amount: decimal.NewFromInt(400)})
	require.NoError(t, err)

	liabilities, err := store.Liabilities().List(ctx)
	require.NoError(t, err)
	require.Len(t, liabilities, 1)
	assert.True(t, liabilities[0].Amount.Equal(decimal.NewFromInt(400)))

	require.NoError(t, store.Liabilities().Delete(ctx, created.ID))
	assert.ErrorIs(t, store.Liabilities().Delete(ctx, "missing"), domain.ErrNotFound)
}

func TestHistory_ListIsOrderedByDate(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	for _, day := range []string{"2024-03-02", "2024-03-01", "2024-03-02"} {
		_, err := store.History().Append(ctx, domain.NetWorthEntry{Date: day})
		require.NoError(t, err)
	}

	entries, err := store.History().List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "2024-03-01", entries[0].Date)
	assert.Equal(t, "2024-03-02", entries[1].Date)
	assert.Equal(t, "2024-03-02", entries[2].Date)
}

func TestList_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	_, err := store.Assets().Create(ctx, domain.NewAsset{Category: domain.AssetCategoryCash, Description: "Wallet", Value: decimal.NewFromInt(1)})
	require.NoError(t, err)

	assets, err := store.Assets().List(ctx)
	require.NoError(t, err)
	assets[0].Description = "changed"

	again, err := store.Assets().List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Wallet", again[0].Description)
}

func TestPing_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Error(t, NewStore().Ping(ctx))
	assert.NoError(t, NewStore().Ping(context.Background()))
}
