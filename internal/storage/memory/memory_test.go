package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := New()

	_, ok, err := s.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, "categories", []byte(`["Food"]`)))
	v, ok, err := s.Get(ctx, "categories")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `["Food"]`, string(v))

	// Overwrite replaces the previous value.
	require.NoError(t, s.Set(ctx, "categories", []byte(`[]`)))
	v, _, _ = s.Get(ctx, "categories")
	assert.Equal(t, `[]`, string(v))

	require.NoError(t, s.Delete(ctx, "categories"))
	_, ok, _ = s.Get(ctx, "categories")
	assert.False(t, ok)

	// Deleting an absent key is not an error.
	assert.NoError(t, s.Delete(ctx, "categories"))
}

func TestStoreKeysSorted(t *testing.T) {
	ctx := context.Background()
	s := New()
	require.NoError(t, s.Set(ctx, "entries:2025-02", nil))
	require.NoError(t, s.Set(ctx, "budgets:2025-01", nil))
	require.NoError(t, s.Set(ctx, "categories", nil))

	keys, err := s.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"budgets:2025-01", "categories", "entries:2025-02"}, keys)
}
