package history

import (
	"context"

	"github.com/simaogato/networth-backend/internal/domain"
)

// Recorder appends net worth snapshots to the history store
type Recorder struct {
	HistoryRepo domain.HistoryRepository
}

// NewRecorder creates a new Recorder instance
func NewRecorder(historyRepo domain.HistoryRepository) *Recorder {
	return &Recorder{
		HistoryRepo: historyRepo,
	}
}

// RecordSnapshot persists a snapshot of the given totals for the given day
// Logic:
//  1. Build the candidate entry, recomputing NetWorth as TotalAssets - TotalLiabilities
//  2. Append it through the history repository (exactly one write, no retry)
//  3. Return the store-confirmed entry, which is authoritative
//
// Any store failure is returned as a *domain.PersistenceError.
// No same-day deduplication happens: two calls on one day create two entries.
func (r *Recorder) RecordSnapshot(ctx context.Context, totals domain.Totals, today string) (*domain.NetWorthEntry, error) {
	candidate := domain.NetWorthEntry{
		Date:             today,
		TotalAssets:      totals.TotalAssets,
		TotalLiabilities: totals.TotalLiabilities,
		NetWorth:         totals.TotalAssets.Sub(totals.TotalLiabilities),
	}

	if err := candidate.Validate(); err != nil {
		return nil, err
	}

	saved, err := r.HistoryRepo.Append(ctx, candidate)
	if err != nil {
		return nil, &domain.PersistenceError{Err: err}
	}

	if err := saved.CheckRecord(); err != nil {
		return nil, &domain.PersistenceError{Err: err}
	}

	return saved, nil
}
