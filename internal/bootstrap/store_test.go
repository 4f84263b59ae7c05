package bootstrap

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ArowuTest/nebula-luck-backend/internal/config"
	"github.com/ArowuTest/nebula-luck-backend/internal/repositories"
)

func TestOpenSlotStore_LocalDrivers(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	for _, cfg := range []*config.Config{
		{Store: config.StoreConfig{Driver: config.StoreFile, Path: filepath.Join(dir, "files")}},
		{Store: config.StoreConfig{Driver: config.StoreSQLite}, SQLite: config.SQLiteConfig{Path: filepath.Join(dir, "lottery.db")}},
	} {
		t.Run(cfg.Store.Driver, func(t *testing.T) {
			store, err := OpenSlotStore(ctx, cfg)
			require.NoError(t, err)
			defer store.Close(ctx)

			require.NoError(t, store.Put(ctx, repositories.SlotTitle, []byte("hello")))
			got, err := store.Get(ctx, repositories.SlotTitle)
			require.NoError(t, err)
			assert.Equal(t, "hello", string(got))
		})
	}
}

func TestOpenSlotStore_UnknownDriver(t *testing.T) {
	_, err := OpenSlotStore(context.Background(), &config.Config{Store: config.StoreConfig{Driver: "etcd"}})
	assert.Error(t, err)
}
