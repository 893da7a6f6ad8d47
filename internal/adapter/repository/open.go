package repository

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/simaogato/networth-backend/internal/adapter/repository/memory"
	"github.com/simaogato/networth-backend/internal/adapter/repository/mongodb"
	"github.com/simaogato/networth-backend/internal/adapter/repository/postgres"
	"github.com/simaogato/networth-backend/internal/adapter/repository/sqlite"
	"github.com/simaogato/networth-backend/internal/adapter/repository/supabase"
	"github.com/simaogato/networth-backend/internal/config"
	"github.com/simaogato/networth-backend/internal/domain"
)

// Open builds the ledger store selected by cfg.Backend.
// No backend contacts its server here; reachability is left to the ledger's startup check.
func Open(ctx context.Context, cfg config.StoreConfig, logger *zap.Logger) (domain.LedgerStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	switch cfg.Backend {
	case config.BackendMemory, "":
		logger.Warn("using in-memory store; data is lost on restart")
		return memory.NewStore(), nil

	case config.BackendPostgres:
		db, err := postgres.NewDB(cfg.Postgres.ConnString, cfg.Postgres.AutoMigrate)
		if err != nil {
			return nil, err
		}
		logger.Info("using postgres store", zap.Bool("auto_migrate", cfg.Postgres.AutoMigrate))
		return postgres.NewStore(db), nil

	case config.BackendSQLite:
		store, err := sqlite.NewStore(cfg.SQLite.Path)
		if err != nil {
			return nil, err
		}
		logger.Info("using sqlite store", zap.String("path", cfg.SQLite.Path))
		return store, nil

	case config.BackendSupabase:
		logger.Info("using supabase store", zap.String("url", cfg.Supabase.URL))
		return supabase.NewStore(cfg.Supabase), nil

	case config.BackendMongo:
		store, err := mongodb.NewStore(ctx, cfg.MongoDB)
		if err != nil {
			return nil, err
		}
		logger.Info("using mongodb store", zap.String("database", cfg.MongoDB.DBName))
		return store, nil

	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}
