package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/simaogato/networth-backend/internal/domain"
)

// Store implements domain.LedgerStore on PostgreSQL
type Store struct {
	db          *DB
	assets      domain.AssetRepository
	liabilities domain.LiabilityRepository
	history     domain.HistoryRepository
}

// NewStore creates a ledger store over the given database
func NewStore(db *DB) *Store {
	return &Store{
		db:          db,
		assets:      NewAssetRepository(db),
		liabilities: NewLiabilityRepository(db),
		history:     NewHistoryRepository(db),
	}
}

// Assets returns the asset repository
func (s *Store) Assets() domain.AssetRepository { return s.assets }

// Liabilities returns the liability repository
func (s *Store) Liabilities() domain.LiabilityRepository { return s.liabilities }

// History returns the net worth history repository
func (s *Store) History() domain.HistoryRepository { return s.history }

// Ping checks the database connection
func (s *Store) Ping(ctx context.Context) error { return s.db.Ping(ctx) }

// Close closes the connection pool
func (s *Store) Close() error { return s.db.Close() }

// deleteByID deletes one row by primary key. table is never user input.
func deleteByID(ctx context.Context, db *DB, table, id string) error {
	// IDs are UUIDs; anything else cannot exist
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%s %q: %w", table, id, domain.ErrNotFound)
	}

	result, err := db.ExecContext(ctx, "DELETE FROM "+table+" WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete from %s: %w", table, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s %q: %w", table, id, domain.ErrNotFound)
	}

	return nil
}
