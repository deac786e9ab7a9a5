package db

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Dialect picks the gorm dialector for the configured database. A
// DATABASE_URL always means postgres.
func Dialect(cfg Config) (gorm.Dialector, error) {
	if cfg.URL != "" {
		return postgres.Open(cfg.URL), nil
	}

	switch cfg.Type {
	case "mysql":
		return mysql.Open(fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			cfg.User,
			cfg.Password,
			cfg.Host,
			cfg.Port,
			cfg.Name,
		)), nil
	case "postgres":
		dsn := cfg.PostgresDSN()
		if dsn == "" {
			return nil, fmt.Errorf("postgres host is not configured")
		}
		return postgres.Open(dsn), nil
	case "sqlite":
		name := cfg.Name
		if name == "" {
			name = "storefront.db"
		}
		return sqlite.Open(name), nil
	default:
		return nil, fmt.Errorf("unsupported %s type", cfg.Type)
	}
}

// DialectName returns the dialect name used to pick a migration strategy.
func DialectName(cfg Config) string {
	if cfg.URL != "" {
		return "postgres"
	}
	return cfg.Type
}
