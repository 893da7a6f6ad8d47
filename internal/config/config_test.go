package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/simaogato/networth-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("STORE_BACKEND", "")
	t.Setenv("TIMEZONE", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.GRPCPort)
	assert.Equal(t, BackendMemory, cfg.Store.Backend)
	assert.Equal(t, 5*time.Second, cfg.Ledger.ReachabilityTimeout)
	assert.Equal(t, 15*time.Second, cfg.Ledger.LoadTimeout)
	assert.Equal(t, time.UTC, cfg.Ledger.Location)
	require.NotNil(t, cfg.Ledger.Catalog)
	assert.True(t, cfg.Ledger.Catalog.HasAssetCategory(domain.AssetCategoryRealEstate))
}

func TestLoad_FromEnvFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("STORE_BACKEND=sqlite\nSQLITE_DB_PATH="+filepath.Join(dir, "x.db")+"\nLOAD_TIMEOUT=3s\n"), 0o600))

	// godotenv does not override variables that are already set
	t.Setenv("STORE_BACKEND", "")
	os.Unsetenv("STORE_BACKEND")
	t.Setenv("SQLITE_DB_PATH", "")
	os.Unsetenv("SQLITE_DB_PATH")
	t.Setenv("LOAD_TIMEOUT", "")
	os.Unsetenv("LOAD_TIMEOUT")

	cfg, err := Load(envFile)
	require.NoError(t, err)

	assert.Equal(t, BackendSQLite, cfg.Store.Backend)
	assert.Equal(t, 3*time.Second, cfg.Ledger.LoadTimeout)
}

func TestLoad_InvalidDuration(t *testing.T) {
	t.Setenv("REACHABILITY_TIMEOUT", "soon")

	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REACHABILITY_TIMEOUT")
}

func TestLoadClient_IgnoresServerSettings(t *testing.T) {
	t.Setenv("STORE_BACKEND", "cassandra")
	t.Setenv("TIMEZONE", "Mars/Olympus_Mons")
	t.Setenv("NETWORTH_SERVER", "ledger.internal:9090")
	t.Setenv("NETWORTH_CURRENCY", "EUR")
	t.Setenv("API_TOKEN", "secret")
	envFile := filepath.Join(t.TempDir(), "missing.env")

	_, err := Load(envFile)
	require.Error(t, err, "the server configuration is invalid")

	cfg, err := LoadClient(envFile)
	require.NoError(t, err)
	assert.Equal(t, "ledger.internal:9090", cfg.CLI.ServerAddr)
	assert.Equal(t, "EUR", cfg.CLI.Currency)
	assert.Equal(t, "secret", cfg.APIToken)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server: ServerConfig{GRPCPort: "8080"},
			Store:  StoreConfig{Backend: BackendMemory},
			Ledger: LedgerConfig{ReachabilityTimeout: time.Second, LoadTimeout: time.Second, Timezone: "UTC"},
			AMQP:   AMQPConfig{Exchange: "networth"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
		errMsg  []string
	}{
		{
			name:   "Valid memory config",
			mutate: func(c *Config) {},
		},
		{
			name:    "Unknown backend",
			mutate:  func(c *Config) { c.Store.Backend = "redis" },
			wantErr: true,
			errMsg:  []string{"unknown STORE_BACKEND"},
		},
		{
			name:    "Supabase requires URL and key",
			mutate:  func(c *Config) { c.Store.Backend = BackendSupabase },
			wantErr: true,
			errMsg:  []string{"SUPABASE_URL", "SUPABASE_ANON_KEY"},
		},
		{
			name:    "Postgres requires connection string",
			mutate:  func(c *Config) { c.Store.Backend = BackendPostgres },
			wantErr: true,
			errMsg:  []string{"DB_CONN_STR"},
		},
		{
			name:    "Invalid timezone",
			mutate:  func(c *Config) { c.Ledger.Timezone = "Mars/Olympus" },
			wantErr: true,
			errMsg:  []string{"TIMEZONE"},
		},
		{
			name: "All problems are reported together",
			mutate: func(c *Config) {
				c.Server.GRPCPort = ""
				c.Ledger.LoadTimeout = 0
			},
			wantErr: true,
			errMsg:  []string{"GRPC_PORT", "LOAD_TIMEOUT"},
		},
		{
			name: "AMQP URL requires exchange",
			mutate: func(c *Config) {
				c.AMQP.URL = "amqp://localhost"
				c.AMQP.Exchange = ""
			},
			wantErr: true,
			errMsg:  []string{"AMQP_EXCHANGE"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				for _, msg := range tt.errMsg {
					assert.Contains(t, err.Error(), msg)
				}
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, cfg.Ledger.Location)
				assert.NotNil(t, cfg.Ledger.Catalog)
			}
		})
	}
}

func TestLoadCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "categories.yaml")
	require.NoError(t, os.WriteFile(path, []byte("assets:\n  - Cash\n  - Crypto\n"), 0o600))

	catalog, err := LoadCatalog(path)
	require.NoError(t, err)

	assert.True(t, catalog.HasAssetCategory("Crypto"))
	assert.False(t, catalog.HasAssetCategory(domain.AssetCategoryVehicles))
	// Liabilities fall back to the defaults
	assert.True(t, catalog.HasLiabilityCategory(domain.LiabilityCategoryMortgage))
}

func TestLoadCatalog_Errors(t *testing.T) {
	_, err := LoadCatalog(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("assets: [unterminated"), 0o600))
	_, err = LoadCatalog(path)
	assert.Error(t, err)
}
