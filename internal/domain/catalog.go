package domain

// Catalog is the set of categories accepted for new assets and liabilities
type Catalog struct {
	AssetCategories     []AssetCategory
	LiabilityCategories []LiabilityCategory
}

// DefaultCatalog returns the built-in category catalog
func DefaultCatalog() *Catalog {
	return &Catalog{
		AssetCategories:     append([]AssetCategory(nil), DefaultAssetCategories...),
		LiabilityCategories: append([]LiabilityCategory(nil), DefaultLiabilityCategories...),
	}
}

// HasAssetCategory reports whether c is an accepted asset category
func (c *Catalog) HasAssetCategory(category AssetCategory) bool {
	for _, known := range c.AssetCategories {
		if known == category {
			return true
		}
	}
	return false
}

// HasLiabilityCategory reports whether c is an accepted liability category
func (c *Catalog) HasLiabilityCategory(category LiabilityCategory) bool {
	for _, known := range c.LiabilityCategories {
		if known == category {
			return true
		}
	}
	return false
}
