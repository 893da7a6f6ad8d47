package supabase

import (
	"context"
	"fmt"

	"github.com/simaogato/networth-backend/internal/domain"
)

type assetRepo struct{ s *Store }

func (r assetRepo) List(ctx context.Context) ([]*domain.Asset, error) {
	var rows []assetRow
	if err := r.s.list(ctx, tableAssets, "created_at.desc", &rows); err != nil {
		return nil, err
	}

	assets := make([]*domain.Asset, 0, len(rows))
	for _, row := range rows {
		asset, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		assets = append(assets, asset)
	}
	return assets, nil
}

func (r assetRepo) Create(ctx context.Context, input domain.NewAsset) (*domain.Asset, error) {
	payload := map[string]any{
		"category":    string(input.Category),
		"description": input.Description,
		"value":       input.Value,
	}

	var rows []assetRow
	if err := r.s.insert(ctx, tableAssets, payload, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("insert into %s: %w", tableAssets, &domain.MalformedRecordError{Kind: "asset", Err: errMissing})
	}
	return rows[0].toDomain()
}

func (r assetRepo) Delete(ctx context.Context, id string) error {
	return r.s.deleteByID(ctx, tableAssets, id)
}

type liabilityRepo struct{ s *Store }

func (r liabilityRepo) List(ctx context.Context) ([]*domain.Liability, error) {
	var rows []liabilityRow
	if err := r.s.list(ctx, tableLiabilities, "created_at.desc", &rows); err != nil {
		return nil, err
	}

	liabilities := make([]*domain.Liability, 0, len(rows))
	for _, row := range rows {
		liability, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		liabilities = append(liabilities, liability)
	}
	return liabilities, nil
}

func (r liabilityRepo) Create(ctx context.Context, input domain.NewLiability) (*domain.Liability, error) {
	payload := map[string]any{
		"category":    string(input.Category),
		"description": input.Description,
		"amount":      input.Amount,
	}

	var rows []liabilityRow
	if err := r.s.insert(ctx, tableLiabilities, payload, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("insert into %s: %w", tableLiabilities, &domain.MalformedRecordError{Kind: "liability", Err: errMissing})
	}
	return rows[0].toDomain()
}

func (r liabilityRepo) Delete(ctx context.Context, id string) error {
	return r.s.deleteByID(ctx, tableLiabilities, id)
}

type historyRepo struct{ s *Store }

func (r historyRepo) List(ctx context.Context) ([]*domain.NetWorthEntry, error) {
	var rows []historyRow
	if err := r.s.list(ctx, tableHistory, "date.asc", &rows); err != nil {
		return nil, err
	}

	entries := make([]*domain.NetWorthEntry, 0, len(rows))
	for _, row := range rows {
		entry, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (r historyRepo) Append(ctx context.Context, entry domain.NetWorthEntry) (*domain.NetWorthEntry, error) {
	payload := map[string]any{
		"date":              entry.Date,
		"total_assets":      entry.TotalAssets,
		"total_liabilities": entry.TotalLiabilities,
		"net_worth":         entry.NetWorth,
	}

	var rows []historyRow
	if err := r.s.insert(ctx, tableHistory, payload, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("insert into %s: %w", tableHistory, &domain.MalformedRecordError{Kind: "history", Err: errMissing})
	}
	return rows[0].toDomain()
}
