package mongodb

import (
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/simaogato/networth-backend/internal/domain"
)

// Amounts are stored as Decimal128 so the database keeps them exact.
// Pointer fields let a missing value be told apart from zero.

type assetDoc struct {
	ID          string                `bson:"_id"`
	CreatedAt   time.Time             `bson:"created_at"`
	Category    string                `bson:"category"`
	Description string                `bson:"description"`
	Value       *primitive.Decimal128 `bson:"value"`
}

type liabilityDoc struct {
	ID          string                `bson:"_id"`
	CreatedAt   time.Time             `bson:"created_at"`
	Category    string                `bson:"category"`
	Description string                `bson:"description"`
	Amount      *primitive.Decimal128 `bson:"amount"`
}

type historyDoc struct {
	ID               primitive.ObjectID    `bson:"_id,omitempty"`
	Date             string                `bson:"date"`
	CreatedAt        time.Time             `bson:"created_at"`
	TotalAssets      *primitive.Decimal128 `bson:"total_assets"`
	TotalLiabilities *primitive.Decimal128 `bson:"total_liabilities"`
	NetWorth         *primitive.Decimal128 `bson:"net_worth"`
}

func toDecimal128(d decimal.Decimal) (*primitive.Decimal128, error) {
	v, err := primitive.ParseDecimal128(d.String())
	if err != nil {
		return nil, errors.Wrapf(err, "failed to encode amount %s", d)
	}
	return &v, nil
}

func fromDecimal128(kind, field string, v *primitive.Decimal128) (decimal.Decimal, error) {
	if v == nil {
		return decimal.Zero, &domain.MalformedRecordError{Kind: kind, Field: field, Err: errors.New("missing field")}
	}
	d, err := decimal.NewFromString(v.String())
	if err != nil {
		return decimal.Zero, &domain.MalformedRecordError{Kind: kind, Field: field, Err: err}
	}
	return d, nil
}

func (d assetDoc) toDomain() (*domain.Asset, error) {
	value, err := fromDecimal128("asset", "value", d.Value)
	if err != nil {
		return nil, err
	}
	return &domain.Asset{
		ID:          d.ID,
		Category:    domain.AssetCategory(d.Category),
		Description: d.Description,
		Value:       value,
		CreatedAt:   d.CreatedAt,
	}, nil
}

func (d liabilityDoc) toDomain() (*domain.Liability, error) {
	amount, err := fromDecimal128("liability", "amount", d.Amount)
	if err != nil {
		return nil, err
	}
	return &domain.Liability{
		ID:          d.ID,
		Category:    domain.LiabilityCategory(d.Category),
		Description: d.Description,
		Amount:      amount,
		CreatedAt:   d.CreatedAt,
	}, nil
}

func (d historyDoc) toDomain() (*domain.NetWorthEntry, error) {
	totalAssets, err := fromDecimal128("history", "total_assets", d.TotalAssets)
	if err != nil {
		return nil, err
	}
	totalLiabilities, err := fromDecimal128("history", "total_liabilities", d.TotalLiabilities)
	if err != nil {
		return nil, err
	}
	netWorth, err := fromDecimal128("history", "net_worth", d.NetWorth)
	if err != nil {
		return nil, err
	}
	return &domain.NetWorthEntry{
		Date:             d.Date,
		TotalAssets:      totalAssets,
		TotalLiabilities: totalLiabilities,
		NetWorth:         netWorth,
		CreatedAt:        d.CreatedAt,
	}, nil
}

func newHistoryDoc(entry domain.NetWorthEntry, createdAt time.Time) (historyDoc, error) {
	totalAssets, err := toDecimal128(entry.TotalAssets)
	if err != nil {
		return historyDoc{}, err
	}
	totalLiabilities, err := toDecimal128(entry.TotalLiabilities)
	if err != nil {
		return historyDoc{}, err
	}
	netWorth, err := toDecimal128(entry.NetWorth)
	if err != nil {
		return historyDoc{}, err
	}
	return historyDoc{
		Date:             entry.Date,
		CreatedAt:        createdAt,
		TotalAssets:      totalAssets,
		TotalLiabilities: totalLiabilities,
		NetWorth:         netWorth,
	}, nil
}
