package domain

import (
	"context"
)

// AssetRepository defines the interface for asset persistence operations
type AssetRepository interface {
	// List retrieves all assets, newest first
	List(ctx context.Context) ([]*Asset, error)

	// Create stores a new asset and returns it with its store-assigned ID
	Create(ctx context.Context, asset NewAsset) (*Asset, error)

	// Delete removes the asset with the given ID
	// Returns ErrNotFound if no such asset exists
	Delete(ctx context.Context, id string) error
}

// LiabilityRepository defines the interface for liability persistence operations
type LiabilityRepository interface {
	// List retrieves all liabilities, newest first
	List(ctx context.Context) ([]*Liability, error)

	// Create stores a new liability and returns it with its store-assigned ID
	Create(ctx context.Context, liability NewLiability) (*Liability, error)

	// Delete removes the liability with the given ID
	// Returns ErrNotFound if no such liability exists
	Delete(ctx context.Context, id string) error
}

// HistoryRepository defines the interface for net worth history persistence operations
// There is no update or delete: entries are immutable once appended
type HistoryRepository interface {
	// List retrieves all history entries, oldest date first
	List(ctx context.Context) ([]*NetWorthEntry, error)

	// Append stores a new entry and returns the store-confirmed version
	Append(ctx context.Context, entry NetWorthEntry) (*NetWorthEntry, error)
}

// LedgerStore groups the three record kinds behind one durable store
type LedgerStore interface {
	Assets() AssetRepository
	Liabilities() LiabilityRepository
	History() HistoryRepository

	// Ping checks that the store is reachable
	Ping(ctx context.Context) error

	// Close releases the store's resources
	Close() error
}
