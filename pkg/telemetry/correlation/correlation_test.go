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

	_, err := ulid.Parse(cid)
	require.NoError(t, err)
	assert.Equal(t, cid, ExtractCorrelationID(ctx))
}

func TestEnsureCorrelationIDKeepsExisting(t *testing.T) {
	ctx, first := EnsureCorrelationID(context.Background())
	_, second := EnsureCorrelationID(ctx)

	assert.Equal(t, first, second)
}
