package supabase

import (
	"bytes"
	"encoding/json"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/simaogato/networth-backend/internal/domain"
)

// rowID accepts both uuid and bigint primary keys
type rowID string

func (id *rowID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = rowID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = rowID(n.String())
	return nil
}

// Row fields are pointers so that absent columns can be told apart from zero values.

type assetRow struct {
	ID          *rowID           `json:"id"`
	CreatedAt   *time.Time       `json:"created_at"`
	Category    *string          `json:"category"`
	Description *string          `json:"description"`
	Value       *decimal.Decimal `json:"value"`
}

type liabilityRow struct {
	ID          *rowID           `json:"id"`
	CreatedAt   *time.Time       `json:"created_at"`
	Category    *string          `json:"category"`
	Description *string          `json:"description"`
	Amount      *decimal.Decimal `json:"amount"`
}

type historyRow struct {
	Date             *string          `json:"date"`
	CreatedAt        *time.Time       `json:"created_at"`
	TotalAssets      *decimal.Decimal `json:"total_assets"`
	TotalLiabilities *decimal.Decimal `json:"total_liabilities"`
	NetWorth         *decimal.Decimal `json:"net_worth"`
}

var errMissing = errors.New("missing field")

func malformed(kind, field string) error {
	return &domain.MalformedRecordError{Kind: kind, Field: field, Err: errMissing}
}

func (r assetRow) toDomain() (*domain.Asset, error) {
	switch {
	case r.ID == nil || *r.ID == "":
		return nil, malformed("asset", "id")
	case r.Category == nil:
		return nil, malformed("asset", "category")
	case r.Value == nil:
		return nil, malformed("asset", "value")
	}

	asset := &domain.Asset{
		ID:       string(*r.ID),
		Category: domain.AssetCategory(*r.Category),
		Value:    *r.Value,
	}
	if r.Description != nil {
		asset.Description = *r.Description
	}
	if r.CreatedAt != nil {
		asset.CreatedAt = *r.CreatedAt
	}
	return asset, nil
}

func (r liabilityRow) toDomain() (*domain.Liability, error) {
	switch {
	case r.ID == nil || *r.ID == "":
		return nil, malformed("liability", "id")
	case r.Category == nil:
		return nil, malformed("liability", "category")
	case r.Amount == nil:
		return nil, malformed("liability", "amount")
	}

	liability := &domain.Liability{
		ID:       string(*r.ID),
		Category: domain.LiabilityCategory(*r.Category),
		Amount:   *r.Amount,
	}
	if r.Description != nil {
		liability.Description = *r.Description
	}
	if r.CreatedAt != nil {
		liability.CreatedAt = *r.CreatedAt
	}
	return liability, nil
}

func (r historyRow) toDomain() (*domain.NetWorthEntry, error) {
	switch {
	case r.Date == nil:
		return nil, malformed("history", "date")
	case r.TotalAssets == nil:
		return nil, malformed("history", "total_assets")
	case r.TotalLiabilities == nil:
		return nil, malformed("history", "total_liabilities")
	case r.NetWorth == nil:
		return nil, malformed("history", "net_worth")
	}

	entry := &domain.NetWorthEntry{
		Date:             *r.Date,
		TotalAssets:      *r.TotalAssets,
		TotalLiabilities: *r.TotalLiabilities,
		NetWorth:         *r.NetWorth,
	}
	if r.CreatedAt != nil {
		entry.CreatedAt = *r.CreatedAt
	}
	return entry, nil
}
