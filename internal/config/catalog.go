package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/simaogato/networth-backend/internal/domain"
)

// catalogFile is the on-disk shape of LEDGER_CATEGORIES_FILE:
//
//	assets: [Cash, Investments, Crypto]
//	liabilities: [Credit Cards, Loans]
type catalogFile struct {
	Assets      []string `yaml:"assets"`
	Liabilities []string `yaml:"liabilities"`
}

// LoadCatalog reads a YAML category catalog. Missing lists fall back to the defaults.
func LoadCatalog(path string) (*domain.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read categories file %s: %w", path, err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse categories file %s: %w", path, err)
	}

	catalog := domain.DefaultCatalog()

	if len(file.Assets) > 0 {
		catalog.AssetCategories = catalog.AssetCategories[:0]
		for _, name := range file.Assets {
			if name == "" {
				return nil, errors.New("asset category names cannot be empty")
			}
			catalog.AssetCategories = append(catalog.AssetCategories, domain.AssetCategory(name))
		}
	}

	if len(file.Liabilities) > 0 {
		catalog.LiabilityCategories = catalog.LiabilityCategories[:0]
		for _, name := range file.Liabilities {
			if name == "" {
				return nil, errors.New("liability category names cannot be empty")
			}
			catalog.LiabilityCategories = append(catalog.LiabilityCategories, domain.LiabilityCategory(name))
		}
	}

	return catalog, nil
}
