package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/simaogato/networth-backend/internal/domain"
)

// historyRepository implements domain.HistoryRepository
type historyRepository struct {
	db *DB
}

// NewHistoryRepository creates a new net worth history repository
func NewHistoryRepository(db *DB) domain.HistoryRepository {
	return &historyRepository{db: db}
}

// List retrieves all history entries ordered by date ascending
func (r *historyRepository) List(ctx context.Context) ([]*domain.NetWorthEntry, error) {
	query := `
		SELECT to_char(date, 'YYYY-MM-DD'), created_at, total_assets, total_liabilities, net_worth
		FROM net_worth_history
		ORDER BY date ASC, id ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list net worth history: %w", err)
	}
	defer rows.Close()

	var entries []*domain.NetWorthEntry
	for rows.Next() {
		var (
			date, assetsStr, liabilitiesStr, netWorthStr string
			createdAt                                    time.Time
		)
		if err := rows.Scan(&date, &createdAt, &assetsStr, &liabilitiesStr, &netWorthStr); err != nil {
			return nil, fmt.Errorf("failed to scan net worth entry: %w", err)
		}

		entry, err := entryFromRow(date, createdAt, assetsStr, liabilitiesStr, netWorthStr)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating net worth history: %w", err)
	}

	return entries, nil
}

// Append inserts a history entry and returns the stored representation
func (r *historyRepository) Append(ctx context.Context, entry domain.NetWorthEntry) (*domain.NetWorthEntry, error) {
	query := `
		INSERT INTO net_worth_history (date, total_assets, total_liabilities, net_worth)
		VALUES ($1, $2, $3, $4)
		RETURNING to_char(date, 'YYYY-MM-DD'), created_at, total_assets, total_liabilities, net_worth
	`

	var (
		date, assetsStr, liabilitiesStr, netWorthStr string
		createdAt                                    time.Time
	)
	err := r.db.QueryRowContext(ctx, query,
		entry.Date,
		entry.TotalAssets.String(),
		entry.TotalLiabilities.String(),
		entry.NetWorth.String(),
	).Scan(&date, &createdAt, &assetsStr, &liabilitiesStr, &netWorthStr)
	if err != nil {
		return nil, fmt.Errorf("failed to append net worth entry: %w", err)
	}

	return entryFromRow(date, createdAt, assetsStr, liabilitiesStr, netWorthStr)
}

func entryFromRow(date string, createdAt time.Time, assetsStr, liabilitiesStr, netWorthStr string) (*domain.NetWorthEntry, error) {
	totalAssets, err := decimal.NewFromString(assetsStr)
	if err != nil {
		return nil, &domain.MalformedRecordError{Kind: "history", Field: "total_assets", Err: err}
	}
	totalLiabilities, err := decimal.NewFromString(liabilitiesStr)
	if err != nil {
		return nil, &domain.MalformedRecordError{Kind: "history", Field: "total_liabilities", Err: err}
	}
	netWorth, err := decimal.NewFromString(netWorthStr)
	if err != nil {
		return nil, &domain.MalformedRecordError{Kind: "history", Field: "net_worth", Err: err}
	}

	return &domain.NetWorthEntry{
		Date:             date,
		TotalAssets:      totalAssets,
		TotalLiabilities: totalLiabilities,
		NetWorth:         netWorth,
		CreatedAt:        createdAt,
	}, nil
}
