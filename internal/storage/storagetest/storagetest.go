// Package storagetest holds the behavior every storage backend must share.
// Backend packages call Run from their own tests.
package storagetest

import (
	"context"
	"testing"

	catalogdomain "github.com/smallbiznis/storefront/internal/catalog/domain"
	inquirydomain "github.com/smallbiznis/storefront/internal/inquiry/domain"
	orderdomain "github.com/smallbiznis/storefront/internal/order/domain"
	storagedomain "github.com/smallbiznis/storefront/internal/storage/domain"
	userdomain "github.com/smallbiznis/storefront/internal/user/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Factory returns an empty store. It is called once per subtest.
type Factory func(t *testing.T) storagedomain.Storage

func Run(t *testing.T, newStore Factory) {
	cases := []struct {
		name string
		fn   func(t *testing.T, s storagedomain.Storage)
	}{
		{"CreateAndLookup", testCreateAndLookup},
		{"DuplicateSlug", testDuplicateSlug},
		{"UpdateRepointsSlug", testUpdateRepointsSlug},
		{"UpdateMergesProvidedFields", testUpdateMergesProvidedFields},
		{"UpdateMissing", testUpdateMissing},
		{"Delete", testDelete},
		{"DeleteAll", testDeleteAll},
		{"FlagListsAreSubsets", testFlagListsAreSubsets},
		{"CategoryAndOrdering", testCategoryAndOrdering},
		{"OrderKeepsSnapshotPrices", testOrderKeepsSnapshotPrices},
		{"OrderMissing", testOrderMissing},
		{"Newsletter", testNewsletter},
		{"Forms", testForms},
		{"Users", testUsers},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := newStore(t)
			t.Cleanup(func() { _ = s.Close() })
			tc.fn(t, s)
		})
	}
}

func loaf(slug string) catalogdomain.NewProduct {
	return catalogdomain.NewProduct{
		Name:        "Loaf " + slug,
		Slug:        slug,
		Description: "Soft milk bread",
		Price:       10000,
		ImageURL:    "loaf.jpg",
		Category:    "signature",
		Stock:       5,
	}
}

func ptr[T any](v T) *T { return &v }

func testCreateAndLookup(t *testing.T, s storagedomain.Storage) {
	ctx := context.Background()

	created, err := s.CreateProduct(ctx, loaf("loaf"))
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	bySlug, err := s.GetProductBySlug(ctx, "loaf")
	require.NoError(t, err)
	require.NotNil(t, bySlug)
	assert.Equal(t, created.ID, bySlug.ID)

	byID, err := s.GetProductByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, *bySlug, *byID)
	assert.Equal(t, "Loaf loaf", byID.Name)
	assert.Equal(t, int64(10000), byID.Price)
	assert.Equal(t, int64(5), byID.Stock)
	assert.True(t, created.CreatedAt.Equal(byID.CreatedAt))

	missing, err := s.GetProductBySlug(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)

	missing, err = s.GetProductByID(ctx, created.ID+1)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func testDuplicateSlug(t *testing.T, s storagedomain.Storage) {
	ctx := context.Background()

	first, err := s.CreateProduct(ctx, loaf("loaf"))
	require.NoError(t, err)

	_, err = s.CreateProduct(ctx, loaf("loaf"))
	assert.ErrorIs(t, err, catalogdomain.ErrDuplicateSlug)

	second, err := s.CreateProduct(ctx, loaf("bun"))
	require.NoError(t, err)

	_, err = s.UpdateProduct(ctx, second.ID, catalogdomain.ProductPatch{Slug: ptr("loaf")})
	assert.ErrorIs(t, err, catalogdomain.ErrDuplicateSlug)

	owner, err := s.GetProductBySlug(ctx, "loaf")
	require.NoError(t, err)
	require.NotNil(t, owner)
	assert.Equal(t, first.ID, owner.ID)

	still, err := s.GetProductBySlug(ctx, "bun")
	require.NoError(t, err)
	require.NotNil(t, still)
	assert.Equal(t, second.ID, still.ID)

	all, err := s.GetAllProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func testUpdateRepointsSlug(t *testing.T, s storagedomain.Storage) {
	ctx := context.Background()

	p, err := s.CreateProduct(ctx, loaf("loaf"))
	require.NoError(t, err)

	updated, err := s.UpdateProduct(ctx, p.ID, catalogdomain.ProductPatch{Slug: ptr("shokupan")})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "shokupan", updated.Slug)

	old, err := s.GetProductBySlug(ctx, "loaf")
	require.NoError(t, err)
	assert.Nil(t, old)

	current, err := s.GetProductBySlug(ctx, "shokupan")
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, p.ID, current.ID)

	// Reusing the released slug is allowed.
	_, err = s.CreateProduct(ctx, loaf("loaf"))
	assert.NoError(t, err)
}

func testUpdateMergesProvidedFields(t *testing.T, s storagedomain.Storage) {
	ctx := context.Background()

	p, err := s.CreateProduct(ctx, loaf("loaf"))
	require.NoError(t, err)

	updated, err := s.UpdateProduct(ctx, p.ID, catalogdomain.ProductPatch{
		Price:    ptr(int64(12000)),
		Featured: ptr(true),
	})
	require.NoError(t, err)
	require.NotNil(t, updated)

	assert.Equal(t, int64(12000), updated.Price)
	assert.True(t, updated.Featured)
	assert.Equal(t, p.Name, updated.Name)
	assert.Equal(t, p.Slug, updated.Slug)
	assert.Equal(t, p.Stock, updated.Stock)
	assert.True(t, p.CreatedAt.Equal(updated.CreatedAt))

	reloaded, err := s.GetProductByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, *updated, *reloaded)

	unchanged, err := s.UpdateProduct(ctx, p.ID, catalogdomain.ProductPatch{})
	require.NoError(t, err)
	assert.Equal(t, *reloaded, *unchanged)

	cleared, err := s.UpdateProduct(ctx, p.ID, catalogdomain.ProductPatch{Featured: ptr(false), Stock: ptr(int64(0))})
	require.NoError(t, err)
	assert.False(t, cleared.Featured)
	assert.Zero(t, cleared.Stock)
}

func testUpdateMissing(t *testing.T, s storagedomain.Storage) {
	updated, err := s.UpdateProduct(context.Background(), 42, catalogdomain.ProductPatch{Name: ptr("Ghost")})
	require.NoError(t, err)
	assert.Nil(t, updated)
}

func testDelete(t *testing.T, s storagedomain.Storage) {
	ctx := context.Background()

	p, err := s.CreateProduct(ctx, loaf("loaf"))
	require.NoError(t, err)

	ok, err := s.DeleteProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	byID, err := s.GetProductByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Nil(t, byID)

	bySlug, err := s.GetProductBySlug(ctx, "loaf")
	require.NoError(t, err)
	assert.Nil(t, bySlug)

	ok, err = s.DeleteProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func testDeleteAll(t *testing.T, s storagedomain.Storage) {
	ctx := context.Background()

	for _, slug := range []string{"a", "b", "c"} {
		_, err := s.CreateProduct(ctx, loaf(slug))
		require.NoError(t, err)
	}

	ok, err := s.DeleteAllProducts(ctx)
	require.NoError(t, err)
	assert.True(t, ok)

	all, err := s.GetAllProducts(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	bySlug, err := s.GetProductBySlug(ctx, "b")
	require.NoError(t, err)
	assert.Nil(t, bySlug)
}

func testFlagListsAreSubsets(t *testing.T, s storagedomain.Storage) {
	ctx := context.Background()

	inputs := []catalogdomain.NewProduct{loaf("plain"), loaf("featured"), loaf("best"), loaf("season"), loaf("all")}
	inputs[1].Featured = true
	inputs[2].BestSeller = true
	inputs[3].Seasonal = true
	inputs[4].Featured, inputs[4].BestSeller, inputs[4].Seasonal = true, true, true
	for _, in := range inputs {
		_, err := s.CreateProduct(ctx, in)
		require.NoError(t, err)
	}

	all, err := s.GetAllProducts(ctx)
	require.NoError(t, err)
	ids := map[int64]bool{}
	for _, p := range all {
		ids[p.ID] = true
	}

	check := func(name string, list []catalogdomain.Product, err error, flag func(catalogdomain.Product) bool, want []string) {
		t.Helper()
		require.NoError(t, err, name)
		slugs := make([]string, 0, len(list))
		for _, p := range list {
			assert.True(t, ids[p.ID], "%s returned a product outside the catalog", name)
			assert.True(t, flag(p), "%s returned %s without its flag", name, p.Slug)
			slugs = append(slugs, p.Slug)
		}
		assert.Equal(t, want, slugs, name)
	}

	featured, err := s.GetFeaturedProducts(ctx)
	check("featured", featured, err, func(p catalogdomain.Product) bool { return p.Featured }, []string{"featured", "all"})
	best, err := s.GetBestSellerProducts(ctx)
	check("bestsellers", best, err, func(p catalogdomain.Product) bool { return p.BestSeller }, []string{"best", "all"})
	seasonal, err := s.GetSeasonalProducts(ctx)
	check("seasonal", seasonal, err, func(p catalogdomain.Product) bool { return p.Seasonal }, []string{"season", "all"})
}

func testCategoryAndOrdering(t *testing.T, s storagedomain.Storage) {
	ctx := context.Background()

	inputs := []catalogdomain.NewProduct{loaf("one"), loaf("two"), loaf("three")}
	inputs[1].Category = "spreads"
	for _, in := range inputs {
		_, err := s.CreateProduct(ctx, in)
		require.NoError(t, err)
	}

	all, err := s.GetAllProducts(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"one", "two", "three"}, []string{all[0].Slug, all[1].Slug, all[2].Slug})

	signature, err := s.GetProductsByCategory(ctx, "signature")
	require.NoError(t, err)
	require.Len(t, signature, 2)
	assert.Equal(t, "one", signature[0].Slug)
	assert.Equal(t, "three", signature[1].Slug)

	none, err := s.GetProductsByCategory(ctx, "Signature")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func testOrderKeepsSnapshotPrices(t *testing.T, s storagedomain.Storage) {
	ctx := context.Background()

	p, err := s.CreateProduct(ctx, loaf("loaf"))
	require.NoError(t, err)

	order, err := s.CreateOrder(ctx, orderdomain.NewOrder{
		CustomerName:    "Ayu",
		CustomerEmail:   "ayu@example.com",
		CustomerPhone:   "0812",
		ShippingAddress: "Jl. Braga 1",
		City:            "Bandung",
		PostalCode:      "40111",
		Total:           29000,
	}, []orderdomain.NewOrderItem{
		{ProductID: p.ID, Quantity: 2, Price: 10000},
		{ProductID: 777, Quantity: 1, Price: 9000},
	})
	require.NoError(t, err)
	require.NotZero(t, order.ID)
	assert.Equal(t, orderdomain.StatusPending, order.Status)
	assert.False(t, order.CreatedAt.IsZero())

	_, err = s.UpdateProduct(ctx, p.ID, catalogdomain.ProductPatch{Price: ptr(int64(12000))})
	require.NoError(t, err)

	fetched, err := s.GetOrderByID(ctx, order.ID)
	require.NoError(t, err)
	require.NotNil(t, fetched)
	assert.Equal(t, order.ID, fetched.ID)
	assert.Equal(t, "ayu@example.com", fetched.CustomerEmail)
	assert.Equal(t, "40111", fetched.PostalCode)
	assert.Equal(t, int64(29000), fetched.Total)
	assert.Equal(t, orderdomain.StatusPending, fetched.Status)
	assert.True(t, order.CreatedAt.Equal(fetched.CreatedAt))

	items, err := s.GetOrderItems(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	for _, item := range items {
		assert.Equal(t, order.ID, item.OrderID)
		assert.NotZero(t, item.ID)
	}
	assert.Equal(t, p.ID, items[0].ProductID)
	assert.Equal(t, int64(2), items[0].Quantity)
	assert.Equal(t, int64(10000), items[0].Price)
	assert.Equal(t, int64(9000), items[1].Price)
}

func testOrderMissing(t *testing.T, s storagedomain.Storage) {
	ctx := context.Background()

	order, err := s.GetOrderByID(ctx, 99)
	require.NoError(t, err)
	assert.Nil(t, order)

	items, err := s.GetOrderItems(ctx, 99)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func testNewsletter(t *testing.T, s storagedomain.Storage) {
	ctx := context.Background()

	subscribed, err := s.IsEmailSubscribed(ctx, "ayu@example.com")
	require.NoError(t, err)
	assert.False(t, subscribed)

	entry, err := s.CreateNewsletter(ctx, inquirydomain.NewsletterInput{Email: " Ayu@Example.com "})
	require.NoError(t, err)
	assert.Equal(t, "ayu@example.com", entry.Email)
	assert.NotZero(t, entry.ID)

	subscribed, err = s.IsEmailSubscribed(ctx, "AYU@example.com")
	require.NoError(t, err)
	assert.True(t, subscribed)

	_, err = s.CreateNewsletter(ctx, inquirydomain.NewsletterInput{Email: "ayu@example.com"})
	assert.ErrorIs(t, err, inquirydomain.ErrAlreadySubscribed)
}

func testForms(t *testing.T, s storagedomain.Storage) {
	ctx := context.Background()

	inquiry, err := s.CreateCorporateInquiry(ctx, inquirydomain.CorporateInquiryInput{
		Name:     "Budi",
		Email:    "budi@corp.example",
		Company:  "Corp",
		Phone:    "021",
		Message:  "Hampers for 50 staff",
		Quantity: ptr(int64(50)),
	})
	require.NoError(t, err)
	assert.NotZero(t, inquiry.ID)
	require.NotNil(t, inquiry.Quantity)
	assert.Equal(t, int64(50), *inquiry.Quantity)
	assert.False(t, inquiry.CreatedAt.IsZero())

	noQty, err := s.CreateCorporateInquiry(ctx, inquirydomain.CorporateInquiryInput{
		Name: "Sari", Email: "sari@corp.example", Company: "Corp", Phone: "021", Message: "Hi",
	})
	require.NoError(t, err)
	assert.Nil(t, noQty.Quantity)
	assert.NotEqual(t, inquiry.ID, noQty.ID)

	contact, err := s.CreateContactForm(ctx, inquirydomain.ContactFormInput{
		Name: "Rina", Email: "rina@example.com", Subject: "Allergens", Message: "Nut free?",
	})
	require.NoError(t, err)
	assert.NotZero(t, contact.ID)
	assert.Equal(t, "Allergens", contact.Subject)
}

func testUsers(t *testing.T, s storagedomain.Storage) {
	ctx := context.Background()

	missing, err := s.GetUserByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Nil(t, missing)

	u, err := s.CreateUser(ctx, userdomain.NewUser{Username: "admin", PasswordHash: "hash"})
	require.NoError(t, err)

	byName, err := s.GetUserByUsername(ctx, "admin")
	require.NoError(t, err)
	require.NotNil(t, byName)
	assert.Equal(t, u.ID, byName.ID)
	assert.Equal(t, "hash", byName.Password)

	byID, err := s.GetUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, *byName, *byID)

	_, err = s.CreateUser(ctx, userdomain.NewUser{Username: "admin", PasswordHash: "other"})
	assert.ErrorIs(t, err, userdomain.ErrUsernameTaken)
}
