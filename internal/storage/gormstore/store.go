// Package gormstore implements the store on top of gorm. A store opened
// without a database handle is degraded: reads come back empty and writes
// fail with db.ErrUnavailable.
package gormstore

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	catalogdomain "github.com/smallbiznis/storefront/internal/catalog/domain"
	inquirydomain "github.com/smallbiznis/storefront/internal/inquiry/domain"
	orderdomain "github.com/smallbiznis/storefront/internal/order/domain"
	storagedomain "github.com/smallbiznis/storefront/internal/storage/domain"
	userdomain "github.com/smallbiznis/storefront/internal/user/domain"
	"github.com/smallbiznis/storefront/pkg/db"
	"gorm.io/gorm"
)

type Store struct {
	db    *gorm.DB
	genID *snowflake.Node
	now   func() time.Time
}

func New(conn *gorm.DB, genID *snowflake.Node) *Store {
	return &Store{
		db:    conn,
		genID: genID,
		now:   func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) },
	}
}

// Models lists every table this store owns, in dependency order.
func Models() []any {
	return []any{
		&catalogdomain.Product{},
		&orderdomain.Order{},
		&orderdomain.OrderItem{},
		&inquirydomain.CorporateInquiry{},
		&inquirydomain.ContactForm{},
		&inquirydomain.Newsletter{},
		&userdomain.User{},
	}
}

// AutoMigrate creates or updates the tables through gorm.
func AutoMigrate(ctx context.Context, conn *gorm.DB) error {
	return conn.WithContext(ctx).AutoMigrate(Models()...)
}

func (s *Store) Backend() string { return storagedomain.BackendGorm }

// Degraded reports whether the store runs without a database.
func (s *Store) Degraded() bool { return s.db == nil }

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// DB exposes the handle for migrations.
func (s *Store) DB() *gorm.DB { return s.db }

func (s *Store) conn(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

func (s *Store) writable() error {
	if s.db == nil {
		return db.ErrUnavailable
	}
	return nil
}

func (s *Store) nextID() int64 {
	return s.genID.Generate().Int64()
}

var _ storagedomain.Storage = (*Store)(nil)
