package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/simaogato/networth-backend/internal/adapter/repository/memory"
	"github.com/simaogato/networth-backend/internal/adapter/repository/sqlite"
	"github.com/simaogato/networth-backend/internal/adapter/repository/supabase"
	"github.com/simaogato/networth-backend/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen(t *testing.T) {
	ctx := context.Background()

	store, err := Open(ctx, config.StoreConfig{Backend: config.BackendMemory}, nil)
	require.NoError(t, err)
	assert.IsType(t, &memory.Store{}, store)

	store, err = Open(ctx, config.StoreConfig{
		Backend: config.BackendSQLite,
		SQLite:  config.SQLiteConfig{Path: filepath.Join(t.TempDir(), "ledger.db")},
	}, nil)
	require.NoError(t, err)
	assert.IsType(t, &sqlite.Store{}, store)
	require.NoError(t, store.Close())

	store, err = Open(ctx, config.StoreConfig{
		Backend:  config.BackendSupabase,
		Supabase: config.SupabaseConfig{URL: "http://localhost:54321", AnonKey: "key"},
	}, nil)
	require.NoError(t, err)
	assert.IsType(t, &supabase.Store{}, store)
}

func TestOpen_UnknownBackend(t *testing.T) {
	_, err := Open(context.Background(), config.StoreConfig{Backend: "redis"}, nil)
	assert.ErrorContains(t, err, "unknown store backend")
}
