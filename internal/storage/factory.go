package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/storefront/internal/config"
	"github.com/smallbiznis/storefront/internal/migration"
	"github.com/smallbiznis/storefront/internal/observability/logger"
	"github.com/smallbiznis/storefront/internal/seed"
	storagedomain "github.com/smallbiznis/storefront/internal/storage/domain"
	"github.com/smallbiznis/storefront/internal/storage/gormstore"
	"github.com/smallbiznis/storefront/internal/storage/memory"
	"github.com/smallbiznis/storefront/internal/storage/pgstore"
	"github.com/smallbiznis/storefront/pkg/db"
	"go.uber.org/zap"
)

const defaultConnectTimeout = 3 * time.Second

// Open picks the storage backend for this process:
//
//   - STORAGE_BACKEND pins a backend explicitly.
//   - mysql and sqlite always go through gorm.
//   - A reachable postgres DSN uses the pgx pool.
//   - A configured but unreachable database gets a degraded gorm store.
//   - Nothing configured falls back to the seeded in-memory store.
func Open(ctx context.Context, cfg config.Config, log *zap.Logger, node *snowflake.Node) (storagedomain.Storage, error) {
	if log == nil {
		log = zap.NewNop()
	}
	dbCfg := db.FromAppConfig(cfg)

	switch cfg.Storage.Backend {
	case config.BackendMemory:
		return memory.New(node), nil
	case config.BackendPgx:
		return openPgx(ctx, cfg, dbCfg, log, node)
	case config.BackendGorm:
		return openGorm(ctx, cfg, dbCfg, log, node)
	}

	if !dbCfg.Configured() {
		log.Info("no database configured, using in-memory storage")
		return memory.New(node), nil
	}

	if dbCfg.Type == "mysql" || dbCfg.Type == "sqlite" {
		return openGorm(ctx, cfg, dbCfg, log, node)
	}

	store, err := openPgx(ctx, cfg, dbCfg, log, node)
	if err == nil {
		return store, nil
	}
	log.Warn("direct postgres connection failed, falling back to gorm", zap.Error(err))
	return openGorm(ctx, cfg, dbCfg, log, node)
}

func openPgx(ctx context.Context, cfg config.Config, dbCfg db.Config, log *zap.Logger, node *snowflake.Node) (storagedomain.Storage, error) {
	dsn := dbCfg.PostgresDSN()
	if dsn == "" {
		return nil, errors.New("pgx storage requires a postgres connection")
	}

	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout(cfg))
	defer cancel()

	pool, err := db.OpenPool(connectCtx, dsn, dbCfg)
	if err != nil {
		return nil, err
	}
	if err := migration.MigratePool(pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	store := pgstore.New(pool, node)
	if err := prepare(ctx, cfg, store, log); err != nil {
		pool.Close()
		return nil, err
	}
	log.Info("storage ready", zap.String("backend", store.Backend()))
	return store, nil
}

func openGorm(ctx context.Context, cfg config.Config, dbCfg db.Config, log *zap.Logger, node *snowflake.Node) (storagedomain.Storage, error) {
	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout(cfg))
	defer cancel()

	gormLog := logger.NewGormLogger(logger.DefaultGormLoggerConfig(!cfg.IsProduction()))
	conn, err := db.OpenGorm(connectCtx, dbCfg, gormLog)
	if err != nil {
		log.Error("database unavailable, storage is degraded", zap.Error(err))
		return gormstore.New(nil, node), nil
	}

	if err := migration.MigrateGorm(ctx, conn); err != nil {
		if sqlDB, dbErr := conn.DB(); dbErr == nil {
			_ = sqlDB.Close()
		}
		return nil, fmt.Errorf("migrate: %w", err)
	}

	store := gormstore.New(conn, node)
	if err := prepare(ctx, cfg, store, log); err != nil {
		_ = store.Close()
		return nil, err
	}
	log.Info("storage ready",
		zap.String("backend", store.Backend()),
		zap.String("dialect", db.DialectName(dbCfg)),
	)
	return store, nil
}

// prepare seeds an empty relational store and bootstraps the admin user.
func prepare(ctx context.Context, cfg config.Config, store storagedomain.Storage, log *zap.Logger) error {
	if cfg.Storage.SeedCatalog {
		seeded, err := seed.EnsureCatalog(ctx, store)
		if err != nil {
			return fmt.Errorf("seed catalog: %w", err)
		}
		if seeded {
			log.Info("seeded product catalog", zap.Int("products", len(seed.Products())))
		}
	}
	return ensureAdmin(ctx, cfg, store, log)
}

func ensureAdmin(ctx context.Context, cfg config.Config, store storagedomain.Storage, log *zap.Logger) error {
	if cfg.AdminUsername == "" || cfg.AdminPassword == "" {
		return nil
	}
	created, err := seed.EnsureAdmin(ctx, store, cfg.AdminUsername, cfg.AdminPassword)
	if err != nil {
		return fmt.Errorf("bootstrap admin: %w", err)
	}
	if created {
		log.Info("created admin user", zap.String("username", cfg.AdminUsername))
	}
	return nil
}

func connectTimeout(cfg config.Config) time.Duration {
	if cfg.Storage.ConnectTimeoutMS <= 0 {
		return defaultConnectTimeout
	}
	return time.Duration(cfg.Storage.ConnectTimeoutMS) * time.Millisecond
}
