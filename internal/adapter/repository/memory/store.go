package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/simaogato/networth-backend/internal/domain"
)

// Store is an in-process LedgerStore. It backs tests and the "memory" backend.
type Store struct {
	mu          sync.RWMutex
	assets      []*domain.Asset // Newest first
	liabilities []*domain.Liability
	history     []*domain.NetWorthEntry // Insertion order
	now         func() time.Time
}

// NewStore creates an empty in-memory store
func NewStore() *Store {
	return &Store{now: time.Now}
}

// Assets returns the asset repository
func (s *Store) Assets() domain.AssetRepository { return assetRepo{s} }

// Liabilities returns the liability repository
func (s *Store) Liabilities() domain.LiabilityRepository { return liabilityRepo{s} }

// History returns the net worth history repository
func (s *Store) History() domain.HistoryRepository { return historyRepo{s} }

// Ping always succeeds unless the context is done
func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

// Close is a no-op
func (s *Store) Close() error { return nil }

type assetRepo struct{ s *Store }

func (r assetRepo) List(ctx context.Context) ([]*domain.Asset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*domain.Asset, 0, len(r.s.assets))
	for _, a := range r.s.assets {
		cp := *a
		out = append(out, &cp)
	}
	return out, nil
}

func (r assetRepo) Create(ctx context.Context, input domain.NewAsset) (*domain.Asset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	asset := &domain.Asset{
		ID:          uuid.New().String(),
		Category:    input.Category,
		Description: input.Description,
		Value:       input.Value,
		CreatedAt:   r.s.now(),
	}
	r.s.assets = append([]*domain.Asset{asset}, r.s.assets...)

	cp := *asset
	return &cp, nil
}

func (r assetRepo) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for i, a := range r.s.assets {
		if a.ID == id {
			r.s.assets = append(r.s.assets[:i:i], r.s.assets[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

type liabilityRepo struct{ s *Store }

func (r liabilityRepo) List(ctx context.Context) ([]*domain.Liability, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*domain.Liability, 0, len(r.s.liabilities))
	for _, l := range r.s.liabilities {
		cp := *l
		out = append(out, &cp)
	}
	return out, nil
}

func (r liabilityRepo) Create(ctx context.Context, input domain.NewLiability) (*domain.Liability, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	liability := &domain.Liability{
		ID:          uuid.New().String(),
		Category:    input.Category,
		Description: input.Description,
		Amount:      input.Amount,
		CreatedAt:   r.s.now(),
	}
	r.s.liabilities = append([]*domain.Liability{liability}, r.s.liabilities...)

	cp := *liability
	return &cp, nil
}

func (r liabilityRepo) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for i, l := range r.s.liabilities {
		if l.ID == id {
			r.s.liabilities = append(r.s.liabilities[:i:i], r.s.liabilities[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

type historyRepo struct{ s *Store }

// List returns history oldest first; same-day entries keep insertion order
func (r historyRepo) List(ctx context.Context) ([]*domain.NetWorthEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*domain.NetWorthEntry, 0, len(r.s.history))
	for _, e := range r.s.history {
		cp := *e
		out = append(out, &cp)
	}
	sortByDate(out)
	return out, nil
}

func (r historyRepo) Append(ctx context.Context, entry domain.NetWorthEntry) (*domain.NetWorthEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	entry.CreatedAt = r.s.now()
	r.s.history = append(r.s.history, &entry)

	cp := entry
	return &cp, nil
}

func sortByDate(entries []*domain.NetWorthEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date < entries[j].Date
	})
}
