// Package bootstrap wires configuration to concrete infrastructure.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/spf13/afero"
	"golang.org/x/exp/slog"

	"github.com/ArowuTest/nebula-luck-backend/internal/config"
	"github.com/ArowuTest/nebula-luck-backend/internal/repositories"
	"github.com/ArowuTest/nebula-luck-backend/internal/repositories/filestore"
	"github.com/ArowuTest/nebula-luck-backend/internal/repositories/gormstore"
	mongorepo "github.com/ArowuTest/nebula-luck-backend/internal/repositories/mongodb"
	"github.com/ArowuTest/nebula-luck-backend/internal/repositories/redisstore"
	"github.com/ArowuTest/nebula-luck-backend/pkg/mongodb"
)

// OpenSlotStore opens the slot store selected by cfg.Store.Driver
func OpenSlotStore(ctx context.Context, cfg *config.Config) (repositories.SlotStore, error) {
	switch cfg.Store.Driver {
	case config.StoreFile:
		slog.Info("Using file store", "path", cfg.Store.Path)
		return filestore.NewSlotStore(afero.NewOsFs(), cfg.Store.Path)
	case config.StoreMongoDB:
		client, err := mongodb.NewClient(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout)
		if err != nil {
			return nil, err
		}
		slog.Info("Using MongoDB store", "database", cfg.MongoDB.Database, "collection", cfg.MongoDB.Collection)
		return mongorepo.NewSlotStore(client, client.Database(cfg.MongoDB.Database), cfg.MongoDB.Collection), nil
	case config.StoreRedis:
		slog.Info("Using Redis store", "addr", cfg.Redis.Addr, "prefix", cfg.Redis.Prefix)
		return redisstore.NewSlotStore(ctx, redisstore.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Prefix:   cfg.Redis.Prefix,
		})
	case config.StoreSQLite:
		slog.Info("Using SQLite store", "path", cfg.SQLite.Path)
		return gormstore.Open(cfg.SQLite.Path)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}
