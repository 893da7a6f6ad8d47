package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/simaogato/networth-backend/internal/domain"
)

// assetRepository implements domain.AssetRepository
type assetRepository struct {
	db *DB
}

// NewAssetRepository creates a new asset repository
func NewAssetRepository(db *DB) domain.AssetRepository {
	return &assetRepository{db: db}
}

// List retrieves all assets, newest first
func (r *assetRepository) List(ctx context.Context) ([]*domain.Asset, error) {
	query := `
		SELECT id, created_at, category, description, value
		FROM assets
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}
	defer rows.Close()

	var assets []*domain.Asset
	for rows.Next() {
		var (
			id, category, description, valueStr string
			createdAt                           time.Time
		)
		if err := rows.Scan(&id, &createdAt, &category, &description, &valueStr); err != nil {
			return nil, fmt.Errorf("failed to scan asset: %w", err)
		}

		asset, err := assetFromRow(id, createdAt, category, description, valueStr)
		if err != nil {
			return nil, err
		}
		assets = append(assets, asset)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assets: %w", err)
	}

	return assets, nil
}

// Create inserts a new asset and returns the stored representation
func (r *assetRepository) Create(ctx context.Context, input domain.NewAsset) (*domain.Asset, error) {
	query := `
		INSERT INTO assets (id, category, description, value)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, category, description, value
	`

	var (
		id, category, description, valueStr string
		createdAt                           time.Time
	)
	err := r.db.QueryRowContext(ctx, query,
		uuid.New(),
		string(input.Category),
		input.Description,
		input.Value.String(),
	).Scan(&id, &createdAt, &category, &description, &valueStr)
	if err != nil {
		return nil, fmt.Errorf("failed to create asset: %w", err)
	}

	return assetFromRow(id, createdAt, category, description, valueStr)
}

// Delete removes the asset with the given ID
func (r *assetRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.db, "assets", id)
}

func assetFromRow(id string, createdAt time.Time, category, description, valueStr string) (*domain.Asset, error) {
	value, err := decimal.NewFromString(valueStr)
	if err != nil {
		return nil, &domain.MalformedRecordError{Kind: "asset", Field: "value", Err: err}
	}

	return &domain.Asset{
		ID:          id,
		Category:    domain.AssetCategory(category),
		Description: description,
		Value:       value,
		CreatedAt:   createdAt,
	}, nil
}
