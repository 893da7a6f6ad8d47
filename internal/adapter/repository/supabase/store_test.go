package supabase

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/simaogato/networth-backend/internal/config"
	"github.com/simaogato/networth-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePostgREST serves canned rows per table and records the last request
type fakePostgREST struct {
	mu       sync.Mutex
	rows     map[string][]map[string]any
	lastReq  *http.Request
	lastBody map[string]any
	failWith int
}

func newFake() *fakePostgREST {
	return &fakePostgREST{rows: map[string][]map[string]any{}}
}

func (f *fakePostgREST) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.lastReq = r
	w.Header().Set("Content-Type", "application/json")

	if r.Header.Get("apikey") != "anon-key" || r.Header.Get("Authorization") != "Bearer anon-key" {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Invalid API key"}`))
		return
	}
	if f.failWith != 0 {
		w.WriteHeader(f.failWith)
		_, _ = w.Write([]byte(`{"message":"relation does not exist","code":"42P01"}`))
		return
	}

	table := strings.TrimPrefix(r.URL.Path, "/rest/v1/")
	switch r.Method {
	case http.MethodGet:
		_ = json.NewEncoder(w).Encode(f.rows[table])
	case http.MethodPost:
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		f.lastBody = body
		body["id"] = "generated-id"
		body["created_at"] = "2024-03-01T10:00:00.123456+00:00"
		f.rows[table] = append(f.rows[table], body)
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode([]map[string]any{body})
	case http.MethodDelete:
		id := strings.TrimPrefix(r.URL.Query().Get("id"), "eq.")
		var kept, deleted []map[string]any
		for _, row := range f.rows[table] {
			if row["id"] == id {
				deleted = append(deleted, row)
			} else {
				kept = append(kept, row)
			}
		}
		f.rows[table] = kept
		if deleted == nil {
			deleted = []map[string]any{}
		}
		_ = json.NewEncoder(w).Encode(deleted)
	}
}

func newTestStore(t *testing.T, fake *fakePostgREST) *Store {
	t.Helper()
	server := httptest.NewServer(fake)
	t.Cleanup(server.Close)
	return NewStore(config.SupabaseConfig{URL: server.URL + "/", AnonKey: "anon-key"})
}

func TestPing(t *testing.T) {
	fake := newFake()
	store := newTestStore(t, fake)

	require.NoError(t, store.Ping(context.Background()))
	assert.Equal(t, "/rest/v1/assets", fake.lastReq.URL.Path)
	assert.Equal(t, "1", fake.lastReq.URL.Query().Get("limit"))
}

func TestPing_Unauthorized(t *testing.T) {
	server := httptest.NewServer(newFake())
	defer server.Close()
	store := NewStore(config.SupabaseConfig{URL: server.URL, AnonKey: "wrong"})

	err := store.Ping(context.Background())

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusUnauthorized, statusErr.StatusCode)
	assert.Equal(t, "Invalid API key", statusErr.Message)
}

func TestAssets_List(t *testing.T) {
	fake := newFake()
	fake.rows["assets"] = []map[string]any{
		{"id": "a2", "created_at": "2024-03-02T10:00:00+00:00", "category": "Cash", "description": "Checking", "value": 1000.5},
		{"id": 7, "created_at": "2024-03-01T10:00:00+00:00", "category": "Vehicles", "description": "Car", "value": "5000"},
	}
	store := newTestStore(t, fake)

	assets, err := store.Assets().List(context.Background())

	require.NoError(t, err)
	require.Len(t, assets, 2)
	assert.Equal(t, "created_at.desc", fake.lastReq.URL.Query().Get("order"))
	assert.Equal(t, "a2", assets[0].ID)
	assert.True(t, assets[0].Value.Equal(decimal.RequireFromString("1000.5")))
	assert.Equal(t, "7", assets[1].ID, "numeric ids are accepted")
	assert.Equal(t, domain.AssetCategoryVehicles, assets[1].Category)
}

func TestAssets_ListMalformedRow(t *testing.T) {
	fake := newFake()
	fake.rows["assets"] = []map[string]any{
		{"id": "a1", "category": "Cash", "description": "No value"},
	}
	store := newTestStore(t, fake)

	_, err := store.Assets().List(context.Background())

	var mErr *domain.MalformedRecordError
	require.True(t, errors.As(err, &mErr))
	assert.Equal(t, "asset", mErr.Kind)
	assert.Equal(t, "value", mErr.Field)
}

func TestAssets_CreateAndDelete(t *testing.T) {
	ctx := context.Background()
	fake := newFake()
	store := newTestStore(t, fake)

	asset, err := store.Assets().Create(ctx, domain.NewAsset{Category: domain.AssetCategoryCash, Description: "Checking", Value: decimal.RequireFromString("12.34")})
	require.NoError(t, err)

	assert.Equal(t, "return=representation", fake.lastReq.Header.Get("Prefer"))
	assert.Equal(t, "Cash", fake.lastBody["category"])
	assert.Equal(t, "generated-id", asset.ID)
	assert.True(t, asset.Value.Equal(decimal.RequireFromString("12.34")))
	assert.False(t, asset.CreatedAt.IsZero())

	require.NoError(t, store.Assets().Delete(ctx, asset.ID))
	assert.Equal(t, "eq.generated-id", fake.lastReq.URL.Query().Get("id"))

	err = store.Assets().Delete(ctx, asset.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLiabilities_Create(t *testing.T) {
	fake := newFake()
	store := newTestStore(t, fake)

	liability, err := store.Liabilities().Create(context.Background(), domain.NewLiability{Category: domain.LiabilityCategoryLoans, Description: "Loan", Amount: decimal.NewFromInt(400)})

	require.NoError(t, err)
	assert.True(t, liability.Amount.Equal(decimal.NewFromInt(400)))
	assert.Equal(t, "/rest/v1/liabilities", fake.lastReq.URL.Path)
}

func TestHistory_AppendAndList(t *testing.T) {
	ctx := context.Background()
	fake := newFake()
	store := newTestStore(t, fake)

	saved, err := store.History().Append(ctx, domain.NetWorthEntry{
		Date:             "2024-03-01",
		TotalAssets:      decimal.NewFromInt(1000),
		TotalLiabilities: decimal.NewFromInt(400),
		NetWorth:         decimal.NewFromInt(600),
	})
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01", saved.Date)
	assert.True(t, saved.NetWorth.Equal(decimal.NewFromInt(600)))

	entries, err := store.History().List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "date.asc", fake.lastReq.URL.Query().Get("order"))
}

func TestServerError(t *testing.T) {
	fake := newFake()
	fake.failWith = http.StatusNotFound
	store := newTestStore(t, fake)

	_, err := store.History().List(context.Background())

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, "42P01", statusErr.Code)
}
