package mongodb

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/simaogato/networth-backend/internal/domain"
)

var newestFirst = options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})

type assetRepo struct{ s *Store }

func (r assetRepo) List(ctx context.Context) ([]*domain.Asset, error) {
	var docs []assetDoc
	if err := findAll(ctx, r.s.db.Collection(collAssets), newestFirst, &docs); err != nil {
		return nil, errors.Wrap(err, "failed to list assets")
	}

	assets := make([]*domain.Asset, 0, len(docs))
	for _, doc := range docs {
		asset, err := doc.toDomain()
		if err != nil {
			return nil, err
		}
		assets = append(assets, asset)
	}
	return assets, nil
}

func (r assetRepo) Create(ctx context.Context, input domain.NewAsset) (*domain.Asset, error) {
	value, err := toDecimal128(input.Value)
	if err != nil {
		return nil, err
	}

	doc := assetDoc{
		ID:          uuid.New().String(),
		CreatedAt:   r.s.now().UTC().Truncate(timeResolution),
		Category:    string(input.Category),
		Description: input.Description,
		Value:       value,
	}
	if _, err := r.s.db.Collection(collAssets).InsertOne(ctx, doc); err != nil {
		return nil, errors.Wrap(err, "failed to insert asset")
	}
	return doc.toDomain()
}

func (r assetRepo) Delete(ctx context.Context, id string) error {
	return r.s.deleteByID(ctx, collAssets, id)
}

type liabilityRepo struct{ s *Store }

func (r liabilityRepo) List(ctx context.Context) ([]*domain.Liability, error) {
	var docs []liabilityDoc
	if err := findAll(ctx, r.s.db.Collection(collLiabilities), newestFirst, &docs); err != nil {
		return nil, errors.Wrap(err, "failed to list liabilities")
	}

	liabilities := make([]*domain.Liability, 0, len(docs))
	for _, doc := range docs {
		liability, err := doc.toDomain()
		if err != nil {
			return nil, err
		}
		liabilities = append(liabilities, liability)
	}
	return liabilities, nil
}

func (r liabilityRepo) Create(ctx context.Context, input domain.NewLiability) (*domain.Liability, error) {
	amount, err := toDecimal128(input.Amount)
	if err != nil {
		return nil, err
	}

	doc := liabilityDoc{
		ID:          uuid.New().String(),
		CreatedAt:   r.s.now().UTC().Truncate(timeResolution),
		Category:    string(input.Category),
		Description: input.Description,
		Amount:      amount,
	}
	if _, err := r.s.db.Collection(collLiabilities).InsertOne(ctx, doc); err != nil {
		return nil, errors.Wrap(err, "failed to insert liability")
	}
	return doc.toDomain()
}

func (r liabilityRepo) Delete(ctx context.Context, id string) error {
	return r.s.deleteByID(ctx, collLiabilities, id)
}

type historyRepo struct{ s *Store }

func (r historyRepo) List(ctx context.Context) ([]*domain.NetWorthEntry, error) {
	byDate := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "_id", Value: 1}})

	var docs []historyDoc
	if err := findAll(ctx, r.s.db.Collection(collHistory), byDate, &docs); err != nil {
		return nil, errors.Wrap(err, "failed to list net worth history")
	}

	entries := make([]*domain.NetWorthEntry, 0, len(docs))
	for _, doc := range docs {
		entry, err := doc.toDomain()
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (r historyRepo) Append(ctx context.Context, entry domain.NetWorthEntry) (*domain.NetWorthEntry, error) {
	doc, err := newHistoryDoc(entry, r.s.now().UTC().Truncate(timeResolution))
	if err != nil {
		return nil, err
	}
	if _, err := r.s.db.Collection(collHistory).InsertOne(ctx, doc); err != nil {
		return nil, errors.Wrap(err, "failed to append net worth entry")
	}
	return doc.toDomain()
}

func findAll(ctx context.Context, coll *mongo.Collection, opts *options.FindOptions, out any) error {
	cursor, err := coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return err
	}
	return cursor.All(ctx, out)
}
