package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/simaogato/networth-backend/internal/domain"
)

// SnapshotRecorder records a net worth snapshot of the current ledger
type SnapshotRecorder interface {
	RecordSnapshot(ctx context.Context) (*domain.NetWorthEntry, error)
}

// Scheduler records snapshots on a cron schedule so that days without
// mutations still get a history entry.
type Scheduler struct {
	cron     *cron.Cron
	recorder SnapshotRecorder
	schedule string
	timeout  time.Duration
	logger   *zap.Logger
}

// NewScheduler creates a scheduler evaluating schedule in loc.
// The schedule uses the standard 5-field cron format.
func NewScheduler(schedule string, loc *time.Location, recorder SnapshotRecorder, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.UTC
	}

	return &Scheduler{
		cron:     cron.New(cron.WithLocation(loc)),
		recorder: recorder,
		schedule: schedule,
		timeout:  time.Minute,
		logger:   logger,
	}
}

// Start registers the snapshot job and starts the scheduler.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, s.recordSnapshot); err != nil {
		return fmt.Errorf("invalid snapshot schedule %q: %w", s.schedule, err)
	}

	s.logger.Info("starting scheduler", zap.String("schedule", s.schedule))
	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) recordSnapshot() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	entry, err := s.recorder.RecordSnapshot(ctx)
	if err != nil {
		s.logger.Error("scheduled snapshot failed", zap.Error(err))
		return
	}

	s.logger.Info("scheduled snapshot recorded",
		zap.String("date", entry.Date),
		zap.String("net_worth", entry.NetWorth.String()))
}
