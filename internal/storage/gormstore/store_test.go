package gormstore

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	catalogdomain "github.com/smallbiznis/storefront/internal/catalog/domain"
	inquirydomain "github.com/smallbiznis/storefront/internal/inquiry/domain"
	orderdomain "github.com/smallbiznis/storefront/internal/order/domain"
	storagedomain "github.com/smallbiznis/storefront/internal/storage/domain"
	"github.com/smallbiznis/storefront/internal/storage/storagetest"
	"github.com/smallbiznis/storefront/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newNode(t *testing.T) *snowflake.Node {
	t.Helper()
	node, err := snowflake.NewNode(2)
	require.NoError(t, err)
	return node
}

func openSQLite(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: gormlogger.Discard})
	require.NoError(t, err)

	sqlDB, err := conn.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, AutoMigrate(context.Background(), conn))
	return conn
}

func TestConformance(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) storagedomain.Storage {
		return New(openSQLite(t), newNode(t))
	})
}

func TestDegradedStore(t *testing.T) {
	ctx := context.Background()
	s := New(nil, newNode(t))
	assert.True(t, s.Degraded())
	assert.Equal(t, storagedomain.BackendGorm, s.Backend())

	all, err := s.GetAllProducts(ctx)
	require.NoError(t, err)
	assert.NotNil(t, all)
	assert.Empty(t, all)

	featured, err := s.GetFeaturedProducts(ctx)
	require.NoError(t, err)
	assert.Empty(t, featured)

	p, err := s.GetProductBySlug(ctx, "loaf")
	require.NoError(t, err)
	assert.Nil(t, p)

	subscribed, err := s.IsEmailSubscribed(ctx, "a@b.co")
	require.NoError(t, err)
	assert.False(t, subscribed)

	_, err = s.CreateProduct(ctx, catalogdomain.NewProduct{Slug: "loaf"})
	assert.ErrorIs(t, err, db.ErrUnavailable)

	_, err = s.CreateOrder(ctx, orderdomain.NewOrder{}, nil)
	assert.ErrorIs(t, err, db.ErrUnavailable)

	_, err = s.CreateNewsletter(ctx, inquirydomain.NewsletterInput{Email: "a@b.co"})
	assert.ErrorIs(t, err, db.ErrUnavailable)

	ok, err := s.DeleteProduct(ctx, 1)
	assert.ErrorIs(t, err, db.ErrUnavailable)
	assert.False(t, ok)

	assert.NoError(t, s.Close())
}

func TestCreateOrderRollsBackOnItemFailure(t *testing.T) {
	ctx := context.Background()
	conn := openSQLite(t)
	s := New(conn, newNode(t))

	// Break the items table so the second insert of the transaction fails.
	require.NoError(t, conn.Migrator().DropTable(&orderdomain.OrderItem{}))

	_, err := s.CreateOrder(ctx, orderdomain.NewOrder{CustomerEmail: "a@b.co"}, []orderdomain.NewOrderItem{
		{ProductID: 1, Quantity: 1, Price: 100},
	})
	require.Error(t, err)

	var count int64
	require.NoError(t, conn.Model(&orderdomain.Order{}).Count(&count).Error)
	assert.Zero(t, count)
}
