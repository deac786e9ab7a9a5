package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/bwmarrin/snowflake"
	catalogdomain "github.com/smallbiznis/storefront/internal/catalog/domain"
	orderdomain "github.com/smallbiznis/storefront/internal/order/domain"
	"github.com/smallbiznis/storefront/internal/seed"
	storagedomain "github.com/smallbiznis/storefront/internal/storage/domain"
	"github.com/smallbiznis/storefront/internal/storage/storagetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newNode(t *testing.T) *snowflake.Node {
	t.Helper()
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	return node
}

func TestConformance(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) storagedomain.Storage {
		return New(newNode(t), WithoutSeed())
	})
}

func TestNewSeedsCatalog(t *testing.T) {
	ctx := context.Background()
	s := New(newNode(t))

	all, err := s.GetAllProducts(ctx)
	require.NoError(t, err)
	require.Len(t, all, len(seed.Products()))
	assert.Equal(t, "hokkaido-milk-shokupan", all[0].Slug)
	assert.Equal(t, "premium-strawberry-jam-gift-set", all[len(all)-1].Slug)

	matcha, err := s.GetProductBySlug(ctx, "matcha-white-chocolate-shokupan")
	require.NoError(t, err)
	require.NotNil(t, matcha)
	assert.Equal(t, int64(59000), matcha.Price)
	assert.True(t, matcha.Featured && matcha.BestSeller && matcha.Seasonal)

	featured, err := s.GetFeaturedProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, featured, 6)

	spreads, err := s.GetProductsByCategory(ctx, "spreads")
	require.NoError(t, err)
	assert.Len(t, spreads, 3)
}

func TestReturnedProductsAreCopies(t *testing.T) {
	ctx := context.Background()
	s := New(newNode(t), WithoutSeed())

	created, err := s.CreateProduct(ctx, catalogdomain.NewProduct{Name: "Loaf", Slug: "loaf", Price: 1})
	require.NoError(t, err)
	created.Price = 999

	again, err := s.GetProductByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), again.Price)
}

func TestCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(newNode(t)).GetAllProducts(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestConcurrentOrders(t *testing.T) {
	ctx := context.Background()
	s := New(newNode(t), WithoutSeed())

	var wg sync.WaitGroup
	ids := make(chan int64, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			order, err := s.CreateOrder(ctx, orderdomain.NewOrder{CustomerEmail: "a@b.co"}, []orderdomain.NewOrderItem{
				{ProductID: 1, Quantity: 1, Price: 100},
				{ProductID: 2, Quantity: 3, Price: 200},
			})
			if assert.NoError(t, err) {
				ids <- order.ID
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := map[int64]bool{}
	for id := range ids {
		assert.False(t, seen[id])
		seen[id] = true
		items, err := s.GetOrderItems(ctx, id)
		require.NoError(t, err)
		assert.Len(t, items, 2)
	}
	assert.Len(t, seen, 20)
}
