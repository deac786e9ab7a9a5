package correlation

import (
	"context"
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureCorrelationIDGeneratesULID(t *testing.T) {
	ctx, cid := EnsureCorrelationID(context.Background())

	require.NotEmpty(t, cid)
	_, err := ulid.ParseStrict(cid)
	assert.NoError(t, err)
	assert.Equal(t, cid, ExtractCorrelationID(ctx))
}

func TestEnsureCorrelationIDKeepsExisting(t *testing.T) {
	ctx := ContextWithCorrelationID(context.Background(), "order-42")

	_, cid := EnsureCorrelationID(ctx)
	assert.Equal(t, "order-42", cid)
}

func TestExtractCorrelationIDNilContext(t *testing.T) {
	assert.Equal(t, "", ExtractCorrelationID(nil))
}
