package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettlementCache_SetAndGet(t *testing.T) {
	mr, client := newMiniredisClient(t)
	cache := NewSettlementCache(client)
	ctx := context.Background()
	key := "place_bet:u1:req-7"

	got, err := cache.Get(ctx, key)
	assert.NoError(t, err)
	assert.Nil(t, got)

	value := []byte(`{"success":true,"transaction_hash":"bet_01"}`)
	require.NoError(t, cache.Set(ctx, key, value, time.Hour))

	got, err = cache.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, value, got)
	assert.True(t, mr.Exists("settlement:place_bet:u1:req-7"))
}

func TestSettlementCache_FirstWriteWins(t *testing.T) {
	_, client := newMiniredisClient(t)
	cache := NewSettlementCache(client)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "k", []byte("first"), time.Hour))
	require.NoError(t, cache.Set(ctx, "k", []byte("second"), time.Hour))

	got, err := cache.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("first"), got)
}

func TestSettlementCache_TTLExpiry(t *testing.T) {
	mr, client := newMiniredisClient(t)
	cache := NewSettlementCache(client)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "k", []byte("v"), time.Second))
	mr.FastForward(2 * time.Second)

	got, err := cache.Get(ctx, "k")
	assert.NoError(t, err)
	assert.Nil(t, got, "expired key should return nil")
}

func TestSettlementCache_ServerDown(t *testing.T) {
	mr, client := newMiniredisClient(t)
	cache := NewSettlementCache(client)
	mr.Close()

	_, err := cache.Get(context.Background(), "k")
	assert.Error(t, err)
	assert.Error(t, cache.Set(context.Background(), "k", []byte("v"), time.Second))
}
