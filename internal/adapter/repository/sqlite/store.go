package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/simaogato/networth-backend/internal/domain"

	_ "modernc.org/sqlite"
)

// Store implements domain.LedgerStore on a local SQLite file
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// NewStore opens (creating if needed) the database at dbPath and applies migrations
func NewStore(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// SQLite allows one writer at a time
	db.SetMaxOpenConns(1)

	if err := runMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db, now: time.Now}, nil
}

// Assets returns the asset repository
func (s *Store) Assets() domain.AssetRepository { return assetRepo{s} }

// Liabilities returns the liability repository
func (s *Store) Liabilities() domain.LiabilityRepository { return liabilityRepo{s} }

// History returns the net worth history repository
func (s *Store) History() domain.HistoryRepository { return historyRepo{s} }

// Ping checks the database file is usable
func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}
	return nil
}

// Close closes the database
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// timestampLayout is fixed width so that created_at sorts as text in time order
const timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

func (s *Store) timestamp() string {
	return s.now().UTC().Format(timestampLayout)
}

func (s *Store) deleteByID(ctx context.Context, table, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM "+table+" WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete from %s: %w", table, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %q: %w", table, id, domain.ErrNotFound)
	}
	return nil
}

type assetRepo struct{ s *Store }

func (r assetRepo) List(ctx context.Context) ([]*domain.Asset, error) {
	rows, err := r.s.db.QueryContext(ctx, `
		SELECT id, created_at, category, description, value
		FROM assets
		ORDER BY created_at DESC, rowid DESC`)
	if err != nil {
		return nil, fmt.Errorf("list assets: %w", err)
	}
	defer rows.Close()

	var assets []*domain.Asset
	for rows.Next() {
		var id, createdAt, category, description, value string
		if err := rows.Scan(&id, &createdAt, &category, &description, &value); err != nil {
			return nil, fmt.Errorf("scan asset: %w", err)
		}
		asset, err := assetFromRow(id, createdAt, category, description, value)
		if err != nil {
			return nil, err
		}
		assets = append(assets, asset)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate assets: %w", err)
	}
	return assets, nil
}

func (r assetRepo) Create(ctx context.Context, input domain.NewAsset) (*domain.Asset, error) {
	id := uuid.New().String()
	createdAt := r.s.timestamp()

	_, err := r.s.db.ExecContext(ctx,
		`INSERT INTO assets (id, created_at, category, description, value) VALUES (?, ?, ?, ?, ?)`,
		id, createdAt, string(input.Category), input.Description, input.Value.String())
	if err != nil {
		return nil, fmt.Errorf("create asset: %w", err)
	}

	return assetFromRow(id, createdAt, string(input.Category), input.Description, input.Value.String())
}

func (r assetRepo) Delete(ctx context.Context, id string) error {
	return r.s.deleteByID(ctx, "assets", id)
}

type liabilityRepo struct{ s *Store }

func (r liabilityRepo) List(ctx context.Context) ([]*domain.Liability, error) {
	rows, err := r.s.db.QueryContext(ctx, `
		SELECT id, created_at, category, description, amount
		FROM liabilities
		ORDER BY created_at DESC, rowid DESC`)
	if err != nil {
		return nil, fmt.Errorf("list liabilities: %w", err)
	}
	defer rows.Close()

	var liabilities []*domain.Liability
	for rows.Next() {
		var id, createdAt, category, description, amount string
		if err := rows.Scan(&id, &createdAt, &category, &description, &amount); err != nil {
			return nil, fmt.Errorf("scan liability: %w", err)
		}
		liability, err := liabilityFromRow(id, createdAt, category, description, amount)
		if err != nil {
			return nil, err
		}
		liabilities = append(liabilities, liability)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate liabilities: %w", err)
	}
	return liabilities, nil
}

func (r liabilityRepo) Create(ctx context.Context, input domain.NewLiability) (*domain.Liability, error) {
	id := uuid.New().String()
	createdAt := r.s.timestamp()

	_, err := r.s.db.ExecContext(ctx,
		`INSERT INTO liabilities (id, created_at, category, description, amount) VALUES (?, ?, ?, ?, ?)`,
		id, createdAt, string(input.Category), input.Description, input.Amount.String())
	if err != nil {
		return nil, fmt.Errorf("create liability: %w", err)
	}

	return liabilityFromRow(id, createdAt, string(input.Category), input.Description, input.Amount.String())
}

func (r liabilityRepo) Delete(ctx context.Context, id string) error {
	return r.s.deleteByID(ctx, "liabilities", id)
}

type historyRepo struct{ s *Store }

func (r historyRepo) List(ctx context.Context) ([]*domain.NetWorthEntry, error) {
	rows, err := r.s.db.QueryContext(ctx, `
		SELECT date, created_at, total_assets, total_liabilities, net_worth
		FROM net_worth_history
		ORDER BY date ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list net worth history: %w", err)
	}
	defer rows.Close()

	var entries []*domain.NetWorthEntry
	for rows.Next() {
		var date, createdAt, totalAssets, totalLiabilities, netWorth string
		if err := rows.Scan(&date, &createdAt, &totalAssets, &totalLiabilities, &netWorth); err != nil {
			return nil, fmt.Errorf("scan net worth entry: %w", err)
		}
		entry, err := entryFromRow(date, createdAt, totalAssets, totalLiabilities, netWorth)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate net worth history: %w", err)
	}
	return entries, nil
}

func (r historyRepo) Append(ctx context.Context, entry domain.NetWorthEntry) (*domain.NetWorthEntry, error) {
	createdAt := r.s.timestamp()

	_, err := r.s.db.ExecContext(ctx,
		`INSERT INTO net_worth_history (date, created_at, total_assets, total_liabilities, net_worth) VALUES (?, ?, ?, ?, ?)`,
		entry.Date, createdAt, entry.TotalAssets.String(), entry.TotalLiabilities.String(), entry.NetWorth.String())
	if err != nil {
		return nil, fmt.Errorf("append net worth entry: %w", err)
	}

	return entryFromRow(entry.Date, createdAt, entry.TotalAssets.String(), entry.TotalLiabilities.String(), entry.NetWorth.String())
}

func parseTimestamp(kind, value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, &domain.MalformedRecordError{Kind: kind, Field: "created_at", Err: err}
	}
	return t, nil
}

func parseAmount(kind, field, value string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, &domain.MalformedRecordError{Kind: kind, Field: field, Err: err}
	}
	return d, nil
}

func assetFromRow(id, createdAt, category, description, value string) (*domain.Asset, error) {
	ts, err := parseTimestamp("asset", createdAt)
	if err != nil {
		return nil, err
	}
	v, err := parseAmount("asset", "value", value)
	if err != nil {
		return nil, err
	}
	return &domain.Asset{ID: id, Category: domain.AssetCategory(category), Description: description, Value: v, CreatedAt: ts}, nil
}

func liabilityFromRow(id, createdAt, category, description, amount string) (*domain.Liability, error) {
	ts, err := parseTimestamp("liability", createdAt)
	if err != nil {
		return nil, err
	}
	a, err := parseAmount("liability", "amount", amount)
	if err != nil {
		return nil, err
	}
	return &domain.Liability{ID: id, Category: domain.LiabilityCategory(category), Description: description, Amount: a, CreatedAt: ts}, nil
}

func entryFromRow(date, createdAt, totalAssets, totalLiabilities, netWorth string) (*domain.NetWorthEntry, error) {
	ts, err := parseTimestamp("history", createdAt)
	if err != nil {
		return nil, err
	}
	ta, err := parseAmount("history", "total_assets", totalAssets)
	if err != nil {
		return nil, err
	}
	tl, err := parseAmount("history", "total_liabilities", totalLiabilities)
	if err != nil {
		return nil, err
	}
	nw, err := parseAmount("history", "net_worth", netWorth)
	if err != nil {
		return nil, err
	}
	return &domain.NetWorthEntry{Date: date, TotalAssets: ta, TotalLiabilities: tl, NetWorth: nw, CreatedAt: ts}, nil
}
