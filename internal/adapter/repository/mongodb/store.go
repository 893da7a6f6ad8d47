package mongodb

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/simaogato/networth-backend/internal/config"
	"github.com/simaogato/networth-backend/internal/domain"
)

const (
	collAssets      = "assets"
	collLiabilities = "liabilities"
	collHistory     = "net_worth_history"
)

// Store implements domain.LedgerStore on MongoDB
type Store struct {
	client *mongo.Client
	db     *mongo.Database
	now    func() time.Time
}

// NewStore creates the client without waiting for a server; reachability is checked by Ping
func NewStore(ctx context.Context, cfg config.MongoDBConfig) (*Store, error) {
	clientOptions := options.Client().ApplyURI(cfg.URI)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to mongodb")
	}

	return &Store{
		client: client,
		db:     client.Database(cfg.DBName),
		now:    time.Now,
	}, nil
}

// Assets returns the asset repository
func (s *Store) Assets() domain.AssetRepository { return assetRepo{s} }

// Liabilities returns the liability repository
func (s *Store) Liabilities() domain.LiabilityRepository { return liabilityRepo{s} }

// History returns the net worth history repository
func (s *Store) History() domain.HistoryRepository { return historyRepo{s} }

// Ping checks the primary is reachable
func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
		return errors.Wrap(err, "failed to ping mongodb")
	}
	return nil
}

// Close disconnects the client
func (s *Store) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

func (s *Store) deleteByID(ctx context.Context, coll, id string) error {
	result, err := s.db.Collection(coll).DeleteOne(ctx, map[string]any{"_id": id})
	if err != nil {
		return errors.Wrapf(err, "failed to delete from %s", coll)
	}
	if result.DeletedCount == 0 {
		return errors.Wrapf(domain.ErrNotFound, "%s %q", coll, id)
	}
	return nil
}

// BSON datetimes have millisecond resolution
const timeResolution = time.Millisecond
