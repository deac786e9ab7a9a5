package server

import (
	"context"
	"net/http"
	"testing"

	"github.com/golang/mock/gomock"
	catalogdomain "github.com/smallbiznis/storefront/internal/catalog/domain"
	"github.com/smallbiznis/storefront/internal/catalog/domain/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type productBody struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	Price    int64  `json:"price"`
	ImageURL string `json:"imageUrl"`
	ImageSrc string `json:"imageSrc"`
	Featured bool   `json:"featured"`
}

func loafRequest() map[string]any {
	return map[string]any{
		"name":        "Loaf",
		"slug":        "loaf",
		"description": "Soft white loaf",
		"price":       10000,
		"imageUrl":    "1700000000000-loaf.png",
		"category":    "bread",
		"featured":    true,
	}
}

func TestCreateAndGetProduct(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodPost, "/api/products", loafRequest())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[struct {
		Product productBody `json:"product"`
	}](t, w).Product
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "/attached_assets/1700000000000-loaf.png", created.ImageSrc)
	assert.True(t, created.Featured)

	for _, key := range []string{created.ID, "loaf"} {
		w = ts.do(t, http.MethodGet, "/api/products/"+key, nil)
		require.Equal(t, http.StatusOK, w.Code, key)
		got := decode[struct {
			Product productBody `json:"product"`
		}](t, w).Product
		assert.Equal(t, created.ID, got.ID)
		assert.Equal(t, "Loaf", got.Name)
	}

	w = ts.do(t, http.MethodGet, "/api/products/featured", nil)
	require.Equal(t, http.StatusOK, w.Code)
	featured := decode[struct {
		Products []productBody `json:"products"`
	}](t, w).Products
	require.Len(t, featured, 1)
	assert.Equal(t, "loaf", featured[0].Slug)

	w = ts.do(t, http.MethodGet, "/api/products/bestsellers", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"products":[]}`, w.Body.String())
}

func TestListProductsByCategory(t *testing.T) {
	ts := newTestServer(t)
	require.Equal(t, http.StatusCreated, ts.do(t, http.MethodPost, "/api/products", loafRequest()).Code)

	w := ts.do(t, http.MethodGet, "/api/products/category/bread", nil)
	require.Equal(t, http.StatusOK, w.Code)
	items := decode[struct {
		Products []productBody `json:"products"`
	}](t, w).Products
	require.Len(t, items, 1)

	w = ts.do(t, http.MethodGet, "/api/products/category/cake", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"products":[]}`, w.Body.String())
}

func TestCreateProductRejectsInvalidBody(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name  string
		body  any
		field string
	}{
		{name: "missing name", body: map[string]any{"description": "d", "price": 1, "category": "bread"}, field: "name"},
		{name: "negative price", body: map[string]any{"name": "n", "description": "d", "price": -1, "category": "bread"}, field: "price"},
		{name: "bad slug", body: map[string]any{"name": "n", "slug": "Not A Slug", "description": "d", "price": 1, "category": "bread"}, field: "slug"},
		{name: "malformed json", body: `{"name":`, field: "request"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ts.do(t, http.MethodPost, "/api/products", tt.body)
			require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
			body := decode[errorBody](t, w)
			assert.Equal(t, "validation_error", body.Error.Type)
			require.NotEmpty(t, body.Error.Errors)
			assert.Equal(t, tt.field, body.Error.Errors[0].Field)
		})
	}
}

func TestCreateProductDuplicateSlug(t *testing.T) {
	ts := newTestServer(t)
	require.Equal(t, http.StatusCreated, ts.do(t, http.MethodPost, "/api/products", loafRequest()).Code)

	w := ts.do(t, http.MethodPost, "/api/products", loafRequest())
	require.Equal(t, http.StatusConflict, w.Code)
	body := decode[errorBody](t, w)
	assert.Equal(t, "conflict", body.Error.Type)
	require.Len(t, body.Error.Errors, 1)
	assert.Equal(t, "slug", body.Error.Errors[0].Field)
}

func TestUpdateAndDeleteProduct(t *testing.T) {
	ts := newTestServer(t)
	w := ts.do(t, http.MethodPost, "/api/products", loafRequest())
	require.Equal(t, http.StatusCreated, w.Code)
	id := decode[struct {
		Product productBody `json:"product"`
	}](t, w).Product.ID

	w = ts.do(t, http.MethodPut, "/api/products/"+id, map[string]any{"price": 12000, "slug": "white-loaf"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decode[struct {
		Product productBody `json:"product"`
	}](t, w).Product
	assert.Equal(t, int64(12000), updated.Price)
	assert.Equal(t, "white-loaf", updated.Slug)

	assert.Equal(t, http.StatusNotFound, ts.do(t, http.MethodGet, "/api/products/loaf", nil).Code)
	assert.Equal(t, http.StatusOK, ts.do(t, http.MethodGet, "/api/products/white-loaf", nil).Code)

	w = ts.do(t, http.MethodDelete, "/api/products/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Product deleted successfully"}`, w.Body.String())

	w = ts.do(t, http.MethodDelete, "/api/products/"+id, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = ts.do(t, http.MethodPut, "/api/products/"+id, map[string]any{"price": 1})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProductNotFoundAndInvalidID(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodGet, "/api/products/no-such-bread", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Product not found", decode[errorBody](t, w).Error.Message)

	w = ts.do(t, http.MethodPut, "/api/products/abc", map[string]any{"price": 1})
	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decode[errorBody](t, w)
	require.Len(t, body.Error.Errors, 1)
	assert.Equal(t, "id", body.Error.Errors[0].Field)

	w = ts.do(t, http.MethodDelete, "/api/products/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCatalogErrorsHideInternalDetail(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockService(ctrl)
	svc.EXPECT().
		List(gomock.Any(), catalogdomain.ListRequest{Filter: catalogdomain.FilterAll}).
		Return(nil, context.DeadlineExceeded)
	svc.EXPECT().
		Lookup(gomock.Any(), "croissant").
		Return(nil, catalogdomain.ErrNotFound)

	ts := newTestServerWithCatalog(t, svc)

	w := ts.do(t, http.MethodGet, "/api/products", nil)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	body := decode[errorBody](t, w)
	assert.Equal(t, "internal_error", body.Error.Type)
	assert.Equal(t, "internal server error", body.Error.Message)
	assert.NotContains(t, w.Body.String(), "deadline")

	w = ts.do(t, http.MethodGet, "/api/products/croissant", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMigrateProducts(t *testing.T) {
	ts := newTestServer(t)
	require.Equal(t, http.StatusCreated, ts.do(t, http.MethodPost, "/api/products", loafRequest()).Code)

	w := ts.do(t, http.MethodPost, "/api/migrate-products", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	items := decode[struct {
		Products []productBody `json:"products"`
	}](t, w).Products
	assert.Len(t, items, 11)
	assert.Equal(t, http.StatusNotFound, ts.do(t, http.MethodGet, "/api/products/loaf", nil).Code)

	prod := newTestServer(t, withEnvironment("production"))
	assert.Equal(t, http.StatusNotFound, prod.do(t, http.MethodPost, "/api/migrate-products", nil).Code)
}
