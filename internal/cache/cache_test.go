package cache

import (
	"context"
	"testing"
	"time"

	catalogdomain "github.com/smallbiznis/storefront/internal/catalog/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTTLCacheExpires(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := newTTLCache[string, int](func() time.Time { return now })

	c.Set("a", 1, time.Minute)
	c.Set("b", 2, 0)

	v, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	now = now.Add(time.Minute)
	_, ok = c.Get("a")
	assert.False(t, ok)

	v, ok = c.Get("b")
	require.True(t, ok)
	assert.Equal(t, 2, v)

	c.Delete("b")
	_, ok = c.Get("b")
	assert.False(t, ok)
}

func TestMemoryProductListCache(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryProductListCache(time.Minute)

	_, ok := c.Get(ctx, "all")
	assert.False(t, ok)

	c.Set(ctx, c.Generation(ctx), "all", []catalogdomain.Product{{ID: 1, Slug: "loaf"}})
	got, ok := c.Get(ctx, "all")
	require.True(t, ok)
	require.Len(t, got, 1)

	got[0].Slug = "changed"
	again, _ := c.Get(ctx, "all")
	assert.Equal(t, "loaf", again[0].Slug)

	c.Invalidate(ctx)
	_, ok = c.Get(ctx, "all")
	assert.False(t, ok)
}

func TestMemoryProductListCacheDropsStaleGeneration(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryProductListCache(time.Minute)

	gen := c.Generation(ctx)
	c.Invalidate(ctx)
	c.Set(ctx, gen, "all", []catalogdomain.Product{{ID: 1, Slug: "loaf"}})
	_, ok := c.Get(ctx, "all")
	assert.False(t, ok)

	c.Set(ctx, c.Generation(ctx), "all", []catalogdomain.Product{{ID: 2, Slug: "bun"}})
	got, ok := c.Get(ctx, "all")
	require.True(t, ok)
	assert.Equal(t, "bun", got[0].Slug)
}

func TestProductListKeyIsPerGeneration(t *testing.T) {
	assert.Equal(t, "storefront:products:lists:0", productListKey(0))
	assert.NotEqual(t, productListKey(1), productListKey(2))
}

func TestProductCompression(t *testing.T) {
	raw, err := encodeProducts([]catalogdomain.Product{{ID: 7, Name: "Matcha Loaf", Price: 59000}})
	require.NoError(t, err)

	decoded, err := decodeProducts(raw)
	require.NoError(t, err)
	require.Len(t, decoded, 1)
	assert.Equal(t, int64(7), decoded[0].ID)

	_, err = decodeProducts([]byte("not snappy"))
	assert.Error(t, err)
}
