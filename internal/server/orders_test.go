package server

import (
	"bytes"
	"context"
	"net/http"
	"strconv"
	"testing"

	catalogdomain "github.com/smallbiznis/storefront/internal/catalog/domain"
	orderdomain "github.com/smallbiznis/storefront/internal/order/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type orderBody struct {
	ID     string `json:"id"`
	Total  int64  `json:"total"`
	Status string `json:"status"`
}

type orderItemBody struct {
	OrderID   string `json:"orderId"`
	ProductID string `json:"productId"`
	Quantity  int64  `json:"quantity"`
	Price     int64  `json:"price"`
}

func placeOrderRequest(productID string, price int64) map[string]any {
	return map[string]any{
		"order": map[string]any{
			"customerName":    "Sari",
			"customerEmail":   "sari@example.com",
			"customerPhone":   "0812345678",
			"shippingAddress": "Jl. Melati 1",
			"city":            "Bandung",
			"postalCode":      "40111",
			"total":           price * 2,
		},
		"items": []map[string]any{
			{"productId": productID, "quantity": 2, "price": price},
		},
	}
}

func createLoaf(t *testing.T, ts *testServer) string {
	t.Helper()
	w := ts.do(t, http.MethodPost, "/api/products", loafRequest())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[struct {
		Product productBody `json:"product"`
	}](t, w).Product.ID
}

func TestPlaceAndGetOrder(t *testing.T) {
	ts := newTestServer(t)
	productID := createLoaf(t, ts)

	w := ts.do(t, http.MethodPost, "/api/orders", placeOrderRequest(productID, 10000))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	placed := decode[struct {
		Order   orderBody `json:"order"`
		Message string    `json:"message"`
	}](t, w)
	assert.Equal(t, "Order placed successfully", placed.Message)
	assert.Equal(t, int64(20000), placed.Order.Total)
	assert.Equal(t, "pending", placed.Order.Status)

	w = ts.do(t, http.MethodGet, "/api/orders/"+placed.Order.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[struct {
		Order orderBody       `json:"order"`
		Items []orderItemBody `json:"items"`
	}](t, w)
	assert.Equal(t, placed.Order.ID, got.Order.ID)
	require.Len(t, got.Items, 1)
	assert.Equal(t, productID, got.Items[0].ProductID)
	assert.Equal(t, int64(2), got.Items[0].Quantity)
	assert.Equal(t, int64(10000), got.Items[0].Price)
}

func TestPlaceOrderValidation(t *testing.T) {
	ts := newTestServer(t)

	req := placeOrderRequest("1", 10000)
	req["items"] = []map[string]any{}
	w := ts.do(t, http.MethodPost, "/api/orders", req)
	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decode[errorBody](t, w)
	require.NotEmpty(t, body.Error.Errors)
	assert.Equal(t, "items", body.Error.Errors[0].Field)

	req = placeOrderRequest("1", 10000)
	req["order"].(map[string]any)["customerEmail"] = "not-an-email"
	w = ts.do(t, http.MethodPost, "/api/orders", req)
	require.Equal(t, http.StatusBadRequest, w.Code)
	body = decode[errorBody](t, w)
	require.NotEmpty(t, body.Error.Errors)
	assert.Equal(t, "order.customerEmail", body.Error.Errors[0].Field)
}

func TestGetOrderErrors(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodGet, "/api/orders/42", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Order not found", decode[errorBody](t, w).Error.Message)

	w = ts.do(t, http.MethodGet, "/api/orders/nope", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(t, http.MethodGet, "/api/orders/42/receipt", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOrderReceipt(t *testing.T) {
	ts := newTestServer(t)
	productID := createLoaf(t, ts)

	w := ts.do(t, http.MethodPost, "/api/orders", placeOrderRequest(productID, 10000))
	require.Equal(t, http.StatusCreated, w.Code)
	orderID := decode[struct {
		Order orderBody `json:"order"`
	}](t, w).Order.ID

	w = ts.do(t, http.MethodGet, "/api/orders/"+orderID+"/receipt", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "receipt-"+orderID+".pdf")
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")))
}

func TestReceiptNamesIgnoreSlugThatMatchesDeletedID(t *testing.T) {
	ts := newTestServer(t)
	ctx := context.Background()
	productID := createLoaf(t, ts)

	w := ts.do(t, http.MethodPost, "/api/orders", placeOrderRequest(productID, 10000))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	id, err := strconv.ParseInt(productID, 10, 64)
	require.NoError(t, err)
	items := []orderdomain.OrderItem{{ProductID: id, Quantity: 2, Price: 10000}}
	assert.Equal(t, map[int64]string{id: "Loaf"}, ts.srv.receiptProductNames(ctx, items))

	w = ts.do(t, http.MethodDelete, "/api/products/"+productID, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// A later product whose slug is the deleted product's id.
	_, err = ts.store.CreateProduct(ctx, catalogdomain.NewProduct{
		Name:     "Impostor",
		Slug:     productID,
		Price:    1,
		Category: "bread",
	})
	require.NoError(t, err)

	assert.Empty(t, ts.srv.receiptProductNames(ctx, items))
}
