package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// DB wraps the database connection
type DB struct {
	*sql.DB

	autoMigrate bool
	migrateMu   sync.Mutex
	migrated    bool
}

// NewDB opens a database handle without connecting.
// connectionString should be in the format: "host=localhost port=5432 user=postgres password=postgres dbname=networth sslmode=disable"
// Connectivity is verified by Ping so an unreachable server surfaces through the ledger's startup check.
func NewDB(connectionString string, autoMigrate bool) (*DB, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	return &DB{DB: db, autoMigrate: autoMigrate}, nil
}

// Ping verifies the server is reachable. With auto-migration enabled the first
// successful ping also brings the schema up to date.
func (db *DB) Ping(ctx context.Context) error {
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	if !db.autoMigrate {
		return nil
	}

	db.migrateMu.Lock()
	defer db.migrateMu.Unlock()
	if db.migrated {
		return nil
	}
	if err := RunMigrations(db.DB); err != nil {
		return err
	}
	db.migrated = true
	return nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.DB.Close()
}
