package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/simaogato/networth-backend/internal/domain"
)

// Store backends
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
	BackendSupabase = "supabase"
	BackendMongo    = "mongo"
)

// Config represents the full application configuration surface.
type Config struct {
	LogLevel  string
	Server    ServerConfig
	Store     StoreConfig
	Ledger    LedgerConfig
	AMQP      AMQPConfig
	Scheduler SchedulerConfig
	CLI       CLIConfig
}

// ServerConfig holds the gRPC and HTTP listener options.
type ServerConfig struct {
	GRPCPort string
	HTTPPort string // Empty disables the REST surface
	APIToken string // Empty disables authentication
}

// StoreConfig selects and configures the ledger store backend.
type StoreConfig struct {
	Backend  string
	Postgres PostgresConfig
	SQLite   SQLiteConfig
	Supabase SupabaseConfig
	MongoDB  MongoDBConfig
}

// PostgresConfig holds the PostgreSQL connection settings.
type PostgresConfig struct {
	ConnString  string
	AutoMigrate bool
}

// SQLiteConfig holds the local SQLite file location.
type SQLiteConfig struct {
	Path string
}

// SupabaseConfig holds the hosted PostgREST endpoint and key.
type SupabaseConfig struct {
	URL     string
	AnonKey string
	Timeout time.Duration
}

// MongoDBConfig holds settings for MongoDB.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// LedgerConfig holds controller behaviour.
type LedgerConfig struct {
	ReachabilityTimeout time.Duration
	LoadTimeout         time.Duration
	Timezone            string
	Location            *time.Location
	CategoriesFile      string
	Catalog             *domain.Catalog
}

// AMQPConfig holds the snapshot event publisher settings. An empty URL disables publishing.
type AMQPConfig struct {
	URL      string
	Exchange string
}

// SchedulerConfig holds the periodic snapshot schedule. An empty schedule disables it.
type SchedulerConfig struct {
	SnapshotCron string
}

// CLIConfig holds the command line client settings.
type CLIConfig struct {
	ServerAddr string
	Currency   string
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if err := loadEnvFile(envFile); err != nil {
		return nil, err
	}

	var problems []error

	cfg := &Config{
		LogLevel: getenvWithDefault("LOG_LEVEL", "info"),
		Server: ServerConfig{
			GRPCPort: getenvWithDefault("GRPC_PORT", "8080"),
			HTTPPort: getenvWithDefault("HTTP_PORT", "8081"),
			APIToken: os.Getenv("API_TOKEN"),
		},
		Store: StoreConfig{
			Backend: strings.ToLower(getenvWithDefault("STORE_BACKEND", BackendMemory)),
			Postgres: PostgresConfig{
				ConnString:  postgresConnString(),
				AutoMigrate: getenvBool("DB_AUTO_MIGRATE", true, &problems),
			},
			SQLite: SQLiteConfig{
				Path: getenvWithDefault("SQLITE_DB_PATH", "data/networth.db"),
			},
			Supabase: SupabaseConfig{
				URL:     os.Getenv("SUPABASE_URL"),
				AnonKey: os.Getenv("SUPABASE_ANON_KEY"),
				Timeout: getenvDuration("SUPABASE_TIMEOUT", 15*time.Second, &problems),
			},
			MongoDB: MongoDBConfig{
				URI:    getenvWithDefault("MONGODB_URI", "mongodb://localhost:27017"),
				DBName: getenvWithDefault("MONGODB_DB_NAME", "networth"),
			},
		},
		Ledger: LedgerConfig{
			ReachabilityTimeout: getenvDuration("REACHABILITY_TIMEOUT", 5*time.Second, &problems),
			LoadTimeout:         getenvDuration("LOAD_TIMEOUT", 15*time.Second, &problems),
			Timezone:            getenvWithDefault("TIMEZONE", "UTC"),
			CategoriesFile:      os.Getenv("LEDGER_CATEGORIES_FILE"),
		},
		AMQP: AMQPConfig{
			URL:      os.Getenv("AMQP_URL"),
			Exchange: getenvWithDefault("AMQP_EXCHANGE", "networth"),
		},
		Scheduler: SchedulerConfig{
			SnapshotCron: os.Getenv("SNAPSHOT_CRON"),
		},
		CLI: CLIConfig{
			ServerAddr: getenvWithDefault("NETWORTH_SERVER", "localhost:8080"),
			Currency:   getenvWithDefault("NETWORTH_CURRENCY", "USD"),
		},
	}

	if err := errors.Join(problems...); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ClientConfig is the subset of settings read by the command line client.
type ClientConfig struct {
	CLI      CLIConfig
	APIToken string
}

// LoadClient reads only the client settings, so server-side problems such as an
// unknown store backend do not stop the CLI.
func LoadClient(envFile string) (*ClientConfig, error) {
	if err := loadEnvFile(envFile); err != nil {
		return nil, err
	}

	return &ClientConfig{
		CLI: CLIConfig{
			ServerAddr: getenvWithDefault("NETWORTH_SERVER", "localhost:8080"),
			Currency:   getenvWithDefault("NETWORTH_CURRENCY", "USD"),
		},
		APIToken: os.Getenv("API_TOKEN"),
	}, nil
}

func loadEnvFile(envFile string) error {
	if envFile == "" {
		// Missing .env files are fine when configuration comes from the environment directly
		_ = godotenv.Load()
		return nil
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed loading env file %s: %w", envFile, err)
	}
	return nil
}

// Validate ensures that required configuration fields are populated and resolves
// the timezone and category catalog. Every problem found is reported.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	var problems []error

	if c.Server.GRPCPort == "" {
		problems = append(problems, errors.New("GRPC_PORT must be provided"))
	}

	switch c.Store.Backend {
	case BackendMemory:
	case BackendPostgres:
		if c.Store.Postgres.ConnString == "" {
			problems = append(problems, errors.New("DB_CONN_STR must be provided for the postgres backend"))
		}
	case BackendSQLite:
		if c.Store.SQLite.Path == "" {
			problems = append(problems, errors.New("SQLITE_DB_PATH must be provided for the sqlite backend"))
		}
	case BackendSupabase:
		if c.Store.Supabase.URL == "" {
			problems = append(problems, errors.New("SUPABASE_URL must be provided for the supabase backend"))
		}
		if c.Store.Supabase.AnonKey == "" {
			problems = append(problems, errors.New("SUPABASE_ANON_KEY must be provided for the supabase backend"))
		}
	case BackendMongo:
		if c.Store.MongoDB.URI == "" {
			problems = append(problems, errors.New("MONGODB_URI must be provided for the mongo backend"))
		}
		if c.Store.MongoDB.DBName == "" {
			problems = append(problems, errors.New("MONGODB_DB_NAME must be provided for the mongo backend"))
		}
	default:
		problems = append(problems, fmt.Errorf("unknown STORE_BACKEND %q", c.Store.Backend))
	}

	if c.Ledger.ReachabilityTimeout <= 0 {
		problems = append(problems, errors.New("REACHABILITY_TIMEOUT must be positive"))
	}
	if c.Ledger.LoadTimeout <= 0 {
		problems = append(problems, errors.New("LOAD_TIMEOUT must be positive"))
	}

	loc, err := time.LoadLocation(c.Ledger.Timezone)
	if err != nil {
		problems = append(problems, fmt.Errorf("invalid TIMEZONE %q: %w", c.Ledger.Timezone, err))
	} else {
		c.Ledger.Location = loc
	}

	if c.Ledger.CategoriesFile != "" {
		catalog, err := LoadCatalog(c.Ledger.CategoriesFile)
		if err != nil {
			problems = append(problems, err)
		} else {
			c.Ledger.Catalog = catalog
		}
	} else {
		c.Ledger.Catalog = domain.DefaultCatalog()
	}

	if c.AMQP.URL != "" && c.AMQP.Exchange == "" {
		problems = append(problems, errors.New("AMQP_EXCHANGE must be provided when AMQP_URL is set"))
	}

	return errors.Join(problems...)
}

func postgresConnString() string {
	if connStr := os.Getenv("DB_CONN_STR"); connStr != "" {
		return connStr
	}

	// Build it from individual vars (Docker friendly)
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		getenvWithDefault("DB_HOST", "localhost"),
		getenvWithDefault("DB_PORT", "5432"),
		getenvWithDefault("DB_USER", "postgres"),
		getenvWithDefault("DB_PASSWORD", "postgres"),
		getenvWithDefault("DB_NAME", "networth"),
	)
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getenvDuration(key string, fallback time.Duration, problems *[]error) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		*problems = append(*problems, fmt.Errorf("invalid %s %q: %w", key, value, err))
		return fallback
	}
	return d
}

func getenvBool(key string, fallback bool, problems *[]error) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		*problems = append(*problems, fmt.Errorf("invalid %s %q: %w", key, value, err))
		return fallback
	}
	return b
}
