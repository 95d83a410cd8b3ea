package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewResetToken(t *testing.T) {
	a, err := NewResetToken()
	require.NoError(t, err)
	b, err := NewResetToken()
	require.NoError(t, err)

	assert.Len(t, a, 64) // 32 bytes hex encoded
	assert.NotEqual(t, a, b)
}

func TestMemoryTokenStore_SingleUse(t *testing.T) {
	store := NewMemoryTokenStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "tok", 7, time.Minute))

	userID, ok, err := store.Consume(ctx, "tok")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 7, userID)

	// A consumed token is gone
	_, ok, err = store.Consume(ctx, "tok")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryTokenStore_UnknownToken(t *testing.T) {
	store := NewMemoryTokenStore()

	_, ok, err := store.Consume(context.Background(), "missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryTokenStore_Expired(t *testing.T) {
	store := NewMemoryTokenStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "tok", 7, -time.Second))

	_, ok, err := store.Consume(ctx, "tok")
	require.NoError(t, err)
	assert.False(t, ok)
}
