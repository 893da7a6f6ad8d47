package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// AssetCategory is the enumerated label of an asset
type AssetCategory string

const (
	AssetCategoryCash        AssetCategory = "Cash"
	AssetCategoryInvestments AssetCategory = "Investments"
	AssetCategoryRealEstate  AssetCategory = "Real Estate"
	AssetCategoryVehicles    AssetCategory = "Vehicles"
	AssetCategoryOther       AssetCategory = "Other"
)

// DefaultAssetCategories lists the asset categories offered when no catalog file is configured
var DefaultAssetCategories = []AssetCategory{
	AssetCategoryCash,
	AssetCategoryInvestments,
	AssetCategoryRealEstate,
	AssetCategoryVehicles,
	AssetCategoryOther,
}

// Asset represents something owned that contributes to net worth.
// ID and CreatedAt are assigned by the store.
type Asset struct {
	ID          string
	Category    AssetCategory
	Description string
	Value       decimal.Decimal // Non-negative
	CreatedAt   time.Time
}

// NewAsset carries the user-supplied fields of an asset before the store assigns an ID
type NewAsset struct {
	Category    AssetCategory
	Description string
	Value       decimal.Decimal
}

// Validate ensures the asset input adheres to domain rules
// The category must belong to the given catalog
func (a *NewAsset) Validate(catalog *Catalog) error {
	if a.Category == "" {
		return &ValidationError{Field: "category", Reason: "asset category cannot be empty"}
	}
	if catalog != nil && !catalog.HasAssetCategory(a.Category) {
		return &ValidationError{Field: "category", Reason: "unknown asset category " + string(a.Category)}
	}
	if a.Description == "" {
		return &ValidationError{Field: "description", Reason: "asset description cannot be empty"}
	}
	if a.Value.IsNegative() {
		return &ValidationError{Field: "value", Reason: "asset value must not be negative"}
	}
	return nil
}

// CheckRecord verifies the shape of an asset returned by a store
func (a *Asset) CheckRecord() error {
	if a == nil {
		return &MalformedRecordError{Kind: "asset", Err: errors.New("record is nil")}
	}
	if a.ID == "" {
		return &MalformedRecordError{Kind: "asset", Field: "id", Err: errors.New("missing identifier")}
	}
	if a.Category == "" {
		return &MalformedRecordError{Kind: "asset", Field: "category", Err: errors.New("missing category")}
	}
	if a.Value.IsNegative() {
		return &MalformedRecordError{Kind: "asset", Field: "value", Err: errors.New("negative value")}
	}
	return nil
}
