// Package redisstore keeps each snapshot slot under its own Redis key.
package redisstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"

	"github.com/ArowuTest/nebula-luck-backend/internal/repositories"
)

// SlotStore implements repositories.SlotStore with plain GET/SET
type SlotStore struct {
	client *redis.Client
	prefix string
}

var _ repositories.SlotStore = (*SlotStore)(nil)

// Options configures the Redis connection
type Options struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

// NewSlotStore connects to Redis and pings it
func NewSlotStore(ctx context.Context, opts Options) (*SlotStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", opts.Addr, err)
	}
	return &SlotStore{client: client, prefix: opts.Prefix}, nil
}

// Get reads a slot key
func (s *SlotStore) Get(ctx context.Context, slot string) ([]byte, error) {
	data, err := s.client.Get(ctx, s.prefix+slot).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, repositories.ErrSlotNotFound
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Put overwrites a slot key. SET is atomic for a single key.
func (s *SlotStore) Put(ctx context.Context, slot string, data []byte) error {
	return s.client.Set(ctx, s.prefix+slot, data, 0).Err()
}

// Close closes the client
func (s *SlotStore) Close(context.Context) error {
	return s.client.Close()
}
