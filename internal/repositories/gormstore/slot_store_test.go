package gormstore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ArowuTest/nebula-luck-backend/internal/repositories"
)

func TestSlotStore_PutGet(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "lottery.db"))
	require.NoError(t, err)
	ctx := context.Background()
	defer store.Close(ctx)

	_, err = store.Get(ctx, repositories.SlotRoster)
	assert.ErrorIs(t, err, repositories.ErrSlotNotFound)

	require.NoError(t, store.Put(ctx, repositories.SlotRoster, []byte(`[]`)))
	require.NoError(t, store.Put(ctx, repositories.SlotRoster, []byte(`[{"id":"a"}]`)))

	got, err := store.Get(ctx, repositories.SlotRoster)
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"a"}]`, string(got))
}
