package redisstore

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ArowuTest/nebula-luck-backend/internal/repositories"
)

// Runs against a live server named by REDIS_TEST_ADDR
func TestSlotStore_Live(t *testing.T) {
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}
	ctx := context.Background()
	store, err := NewSlotStore(ctx, Options{Addr: addr, Prefix: "test:" + uuid.NewString() + ":"})
	require.NoError(t, err)
	defer store.Close(ctx)

	_, err = store.Get(ctx, repositories.SlotLedger)
	assert.ErrorIs(t, err, repositories.ErrSlotNotFound)

	require.NoError(t, store.Put(ctx, repositories.SlotLedger, []byte(`[]`)))
	got, err := store.Get(ctx, repositories.SlotLedger)
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(got))

	require.NoError(t, store.client.Del(ctx, store.prefix+repositories.SlotLedger).Err())
}

func TestNewSlotStore_Unreachable(t *testing.T) {
	_, err := NewSlotStore(context.Background(), Options{Addr: "127.0.0.1:1"})
	assert.Error(t, err)
}
