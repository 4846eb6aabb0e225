package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type quote struct {
	Sell float64 `json:"sell"`
}

func TestMemoryStore_SetGet(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	var got quote
	found, err := store.Get(ctx, "rates:blue", &got)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.Set(ctx, "rates:blue", quote{Sell: 1230}, time.Minute))

	found, err = store.Get(ctx, "rates:blue", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 1230.0, got.Sell)
}

func TestMemoryStore_Expiry(t *testing.T) {
	store := NewMemoryStore()
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", quote{Sell: 1}, time.Minute))

	now = now.Add(2 * time.Minute)
	var got quote
	found, err := store.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.False(t, found)
}
