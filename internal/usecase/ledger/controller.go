package ledger

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/simaogato/networth-backend/internal/domain"
	"github.com/simaogato/networth-backend/internal/usecase/aggregator"
	"github.com/simaogato/networth-backend/internal/usecase/history"
)

const (
	defaultReachabilityTimeout = 5 * time.Second
	defaultLoadTimeout         = 15 * time.Second
)

// SnapshotPublisher is notified after a history entry has been recorded
type SnapshotPublisher interface {
	PublishSnapshot(ctx context.Context, entry domain.NetWorthEntry) error
}

// Options configures a Controller. Zero values select defaults.
type Options struct {
	Catalog             *domain.Catalog
	ReachabilityTimeout time.Duration
	LoadTimeout         time.Duration
	Location            *time.Location   // Used to derive "today", defaults to UTC
	Now                 func() time.Time // Defaults to time.Now
	Publisher           SnapshotPublisher
	Logger              *zap.Logger
}

// Controller owns the in-memory mirrors of the ledger and keeps them consistent with the store.
// Mutations are serialized: one completes or fails before the next starts.
type Controller struct {
	store    domain.LedgerStore
	recorder *history.Recorder
	opts     Options
	logger   *zap.Logger

	mutationMu sync.Mutex

	stateMu sync.RWMutex
	state   State
}

// NewController creates a new Controller in the Loading phase
func NewController(store domain.LedgerStore, opts Options) *Controller {
	if opts.Catalog == nil {
		opts.Catalog = domain.DefaultCatalog()
	}
	if opts.ReachabilityTimeout <= 0 {
		opts.ReachabilityTimeout = defaultReachabilityTimeout
	}
	if opts.LoadTimeout <= 0 {
		opts.LoadTimeout = defaultLoadTimeout
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Controller{
		store:    store,
		recorder: history.NewRecorder(store.History()),
		opts:     opts,
		logger:   logger,
		state:    State{Phase: PhaseLoading},
	}
}

// Initialize verifies the store is reachable and loads the three collections
// Logic:
//  1. Ping the store, bounded by ReachabilityTimeout
//  2. If unreachable: move to Unreachable (terminal) and return a *domain.ConnectivityError
//  3. Otherwise fetch assets, liabilities and history concurrently, bounded by LoadTimeout
//  4. Move to Ready once all three resolve; failed collections stay empty and mark the state Degraded
func (c *Controller) Initialize(ctx context.Context) error {
	c.mutationMu.Lock()
	defer c.mutationMu.Unlock()

	if phase := c.Phase(); phase != PhaseLoading {
		return fmt.Errorf("controller already initialized (phase %s)", phase)
	}

	pingCtx, cancel := context.WithTimeout(ctx, c.opts.ReachabilityTimeout)
	err := c.store.Ping(pingCtx)
	cancel()
	if err != nil {
		c.setState(State{Phase: PhaseUnreachable})
		c.logger.Error("ledger store unreachable", zap.Error(err))
		return &domain.ConnectivityError{Err: err}
	}

	loadCtx, cancelLoad := context.WithTimeout(ctx, c.opts.LoadTimeout)
	defer cancelLoad()

	var (
		assets      []*domain.Asset
		liabilities []*domain.Liability
		entries     []*domain.NetWorthEntry
		assetsErr   error
		liabErr     error
		historyErr  error
	)

	// Siblings are not cancelled on failure so each collection loads independently
	g := new(errgroup.Group)
	g.Go(func() error {
		assets, assetsErr = c.loadAssets(loadCtx)
		return assetsErr
	})
	g.Go(func() error {
		liabilities, liabErr = c.loadLiabilities(loadCtx)
		return liabErr
	})
	g.Go(func() error {
		entries, historyErr = c.loadHistory(loadCtx)
		return historyErr
	})
	loadErr := g.Wait()

	next := State{
		Phase:       PhaseReady,
		Degraded:    loadErr != nil,
		LoadErr:     errors.Join(assetsErr, liabErr, historyErr),
		Assets:      assets,
		Liabilities: liabilities,
		History:     entries,
	}
	if next.Assets == nil {
		next.Assets = []*domain.Asset{}
	}
	if next.Liabilities == nil {
		next.Liabilities = []*domain.Liability{}
	}
	if next.History == nil {
		next.History = []*domain.NetWorthEntry{}
	}
	c.setState(next)

	if loadErr != nil {
		c.logger.Warn("ledger loaded with missing collections",
			zap.NamedError("assets_error", assetsErr),
			zap.NamedError("liabilities_error", liabErr),
			zap.NamedError("history_error", historyErr))
	} else {
		c.logger.Info("ledger loaded",
			zap.Int("assets", len(next.Assets)),
			zap.Int("liabilities", len(next.Liabilities)),
			zap.Int("history", len(next.History)))
	}

	return nil
}

func (c *Controller) loadAssets(ctx context.Context) ([]*domain.Asset, error) {
	assets, err := c.store.Assets().List(ctx)
	if err != nil {
		return nil, &domain.OperationError{Op: "listAssets", Err: err}
	}
	for _, a := range assets {
		if err := a.CheckRecord(); err != nil {
			return nil, &domain.OperationError{Op: "listAssets", Err: err}
		}
	}
	return assets, nil
}

func (c *Controller) loadLiabilities(ctx context.Context) ([]*domain.Liability, error) {
	liabilities, err := c.store.Liabilities().List(ctx)
	if err != nil {
		return nil, &domain.OperationError{Op: "listLiabilities", Err: err}
	}
	for _, l := range liabilities {
		if err := l.CheckRecord(); err != nil {
			return nil, &domain.OperationError{Op: "listLiabilities", Err: err}
		}
	}
	return liabilities, nil
}

func (c *Controller) loadHistory(ctx context.Context) ([]*domain.NetWorthEntry, error) {
	entries, err := c.store.History().List(ctx)
	if err != nil {
		return nil, &domain.OperationError{Op: "listHistory", Err: err}
	}
	for _, e := range entries {
		if err := e.CheckRecord(); err != nil {
			return nil, &domain.OperationError{Op: "listHistory", Err: err}
		}
	}
	sortHistory(entries)
	return entries, nil
}

// AddAsset submits a new asset, mirrors it and records a snapshot
// Logic:
//  1. Validate input and insert through the store
//  2. On success, prepend the store-returned asset to the mirror
//  3. Record a snapshot from the post-mutation totals and append it to history
//
// A failure at step 1 returns a *domain.OperationError and changes nothing.
// A failure at step 3 returns the asset together with a *domain.PersistenceError:
// the asset stays mirrored, the history does not change.
// On success the entry recorded by step 3 is returned alongside the asset.
func (c *Controller) AddAsset(ctx context.Context, input domain.NewAsset) (*domain.Asset, *domain.NetWorthEntry, error) {
	c.mutationMu.Lock()
	defer c.mutationMu.Unlock()

	if err := c.requireReady(); err != nil {
		return nil, nil, err
	}
	if err := input.Validate(c.opts.Catalog); err != nil {
		return nil, nil, err
	}

	created, err := c.store.Assets().Create(ctx, input)
	if err == nil {
		err = created.CheckRecord()
	}
	if err != nil {
		return nil, nil, c.operationFailed("insertAsset", err)
	}

	c.apply(func(s State) State { return withAssetAdded(s, created) })
	c.logger.Info("asset added", zap.String("id", created.ID), zap.String("category", string(created.Category)))

	entry, err := c.recordSnapshot(ctx)
	if err != nil {
		return created, nil, err
	}
	return created, entry, nil
}

// AddLiability submits a new liability, mirrors it and records a snapshot
// Failure semantics are the same as AddAsset.
func (c *Controller) AddLiability(ctx context.Context, input domain.NewLiability) (*domain.Liability, *domain.NetWorthEntry, error) {
	c.mutationMu.Lock()
	defer c.mutationMu.Unlock()

	if err := c.requireReady(); err != nil {
		return nil, nil, err
	}
	if err := input.Validate(c.opts.Catalog); err != nil {
		return nil, nil, err
	}

	created, err := c.store.Liabilities().Create(ctx, input)
	if err == nil {
		err = created.CheckRecord()
	}
	if err != nil {
		return nil, nil, c.operationFailed("insertLiability", err)
	}

	c.apply(func(s State) State { return withLiabilityAdded(s, created) })
	c.logger.Info("liability added", zap.String("id", created.ID), zap.String("category", string(created.Category)))

	entry, err := c.recordSnapshot(ctx)
	if err != nil {
		return created, nil, err
	}
	return created, entry, nil
}

// RemoveAsset deletes an asset from the store first, then from the mirror, then records a snapshot
// A store failure returns a *domain.OperationError and changes nothing.
// A snapshot failure returns a *domain.PersistenceError after the removal has been applied.
func (c *Controller) RemoveAsset(ctx context.Context, id string) (*domain.NetWorthEntry, error) {
	c.mutationMu.Lock()
	defer c.mutationMu.Unlock()

	if err := c.requireReady(); err != nil {
		return nil, err
	}
	if id == "" {
		return nil, &domain.ValidationError{Field: "id", Reason: "asset id cannot be empty"}
	}

	if err := c.store.Assets().Delete(ctx, id); err != nil {
		return nil, c.operationFailed("deleteAsset", err)
	}

	c.apply(func(s State) State { return withAssetRemoved(s, id) })
	c.logger.Info("asset removed", zap.String("id", id))

	return c.recordSnapshot(ctx)
}

// RemoveLiability deletes a liability from the store first, then from the mirror, then records a snapshot
func (c *Controller) RemoveLiability(ctx context.Context, id string) (*domain.NetWorthEntry, error) {
	c.mutationMu.Lock()
	defer c.mutationMu.Unlock()

	if err := c.requireReady(); err != nil {
		return nil, err
	}
	if id == "" {
		return nil, &domain.ValidationError{Field: "id", Reason: "liability id cannot be empty"}
	}

	if err := c.store.Liabilities().Delete(ctx, id); err != nil {
		return nil, c.operationFailed("deleteLiability", err)
	}

	c.apply(func(s State) State { return withLiabilityRemoved(s, id) })
	c.logger.Info("liability removed", zap.String("id", id))

	return c.recordSnapshot(ctx)
}

// RecordSnapshot records the current totals without mutating the ledger
func (c *Controller) RecordSnapshot(ctx context.Context) (*domain.NetWorthEntry, error) {
	c.mutationMu.Lock()
	defer c.mutationMu.Unlock()

	if err := c.requireReady(); err != nil {
		return nil, err
	}
	return c.recordSnapshot(ctx)
}

// recordSnapshot must be called with mutationMu held
func (c *Controller) recordSnapshot(ctx context.Context) (*domain.NetWorthEntry, error) {
	totals := c.Totals()
	today := domain.DayOf(c.opts.Now(), c.opts.Location)

	entry, err := c.recorder.RecordSnapshot(ctx, totals, today)
	if err != nil {
		c.logger.Error("failed to record net worth snapshot",
			zap.String("date", today),
			zap.String("net_worth", totals.NetWorth.String()),
			zap.Error(err))
		return nil, err
	}

	c.apply(func(s State) State { return withEntryRecorded(s, entry) })

	if c.opts.Publisher != nil {
		if err := c.opts.Publisher.PublishSnapshot(ctx, *entry); err != nil {
			c.logger.Warn("failed to publish net worth snapshot", zap.String("date", entry.Date), zap.Error(err))
		}
	}

	recorded := *entry
	return &recorded, nil
}

// State returns a copy of the current ledger state
func (c *Controller) State() State {
	c.stateMu.RLock()
	defer c.stateMu.RUnlock()
	return c.state.Clone()
}

// Phase returns the current lifecycle phase
func (c *Controller) Phase() Phase {
	c.stateMu.RLock()
	defer c.stateMu.RUnlock()
	return c.state.Phase
}

// Totals returns the aggregated totals of the current mirrors
func (c *Controller) Totals() domain.Totals {
	c.stateMu.RLock()
	defer c.stateMu.RUnlock()
	return aggregator.Aggregate(c.state.Assets, c.state.Liabilities)
}

func (c *Controller) requireReady() error {
	switch phase := c.Phase(); phase {
	case PhaseReady:
		return nil
	case PhaseUnreachable:
		return fmt.Errorf("%w: store was unreachable at startup", domain.ErrNotReady)
	default:
		return fmt.Errorf("%w: phase %s", domain.ErrNotReady, phase)
	}
}

func (c *Controller) operationFailed(op string, err error) error {
	c.logger.Error("ledger operation failed", zap.String("op", op), zap.Error(err))
	var opErr *domain.OperationError
	if errors.As(err, &opErr) {
		return err
	}
	return &domain.OperationError{Op: op, Err: err}
}

func (c *Controller) apply(reduce func(State) State) {
	c.stateMu.Lock()
	defer c.stateMu.Unlock()
	c.state = reduce(c.state)
}

func (c *Controller) setState(s State) {
	c.stateMu.Lock()
	defer c.stateMu.Unlock()
	c.state = s
}
