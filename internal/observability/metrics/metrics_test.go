package metrics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestFilterAttributesDropsForbiddenLabels(t *testing.T) {
	attrs := FilterAttributes(
		attribute.String("form", "contact"),
		attribute.String("customer_email", "someone@example.com"),
		attribute.String("result", "ok"),
	)
	require.Len(t, attrs, 2)
	assert.Equal(t, attribute.Key("form"), attrs[0].Key)
	assert.Equal(t, attribute.Key("result"), attrs[1].Key)
}

func TestRecordOrderPlaced(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	m, err := New(Config{ServiceName: "storefront"}, provider)
	require.NoError(t, err)

	m.RecordOrderPlaced(context.Background(), "memory", 3)
	m.RecordOrderPlaced(context.Background(), "memory", 2)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	totals := map[string]int64{}
	for _, scope := range rm.ScopeMetrics {
		for _, metric := range scope.Metrics {
			sum, ok := metric.Data.(metricdata.Sum[int64])
			if !ok {
				continue
			}
			for _, dp := range sum.DataPoints {
				totals[metric.Name] += dp.Value
			}
		}
	}
	assert.Equal(t, int64(2), totals["storefront_orders_placed_total"])
	assert.Equal(t, int64(5), totals["storefront_order_items_total"])
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordFormSubmission(context.Background(), "newsletter", "ok")
		m.RecordUpload(context.Background(), "rejected")
	})
}
