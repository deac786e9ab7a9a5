package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	orderdomain "github.com/smallbiznis/storefront/internal/order/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatPrice(t *testing.T) {
	tests := map[int64]string{
		0:       "Rp 0",
		950:     "Rp 950",
		42000:   "Rp 42.000",
		1250000: "Rp 1.250.000",
		-5000:   "-Rp 5.000",
	}
	for in, want := range tests {
		assert.Equal(t, want, FormatPrice(in))
	}
}

func TestNewReceiptData(t *testing.T) {
	items := []orderdomain.OrderItem{
		{ProductID: 1, Quantity: 2, Price: 42000},
		{ProductID: 9, Quantity: 1, Price: 10000},
	}
	data := NewReceiptData("Shokupan Bakery", orderdomain.Order{ID: 5}, items, map[int64]string{1: "Milk Loaf"})

	require.Len(t, data.Lines, 2)
	assert.Equal(t, "Milk Loaf", data.Lines[0].Description)
	assert.Equal(t, int64(84000), data.Lines[0].Amount())
	assert.Equal(t, "Product #9", data.Lines[1].Description)
}

func TestGenerateReceipt(t *testing.T) {
	order := orderdomain.Order{
		ID:           1234,
		CustomerName: "Sari",
		City:         "Jakarta",
		Total:        84000,
		Status:       orderdomain.StatusPending,
		CreatedAt:    time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC),
	}
	data := NewReceiptData("Shokupan Bakery", order, []orderdomain.OrderItem{{ProductID: 1, Quantity: 2, Price: 42000}}, nil)

	doc, err := New().GenerateReceipt(context.Background(), data)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(doc, []byte("%PDF")))
}
