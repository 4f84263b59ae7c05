// Package gormstore keeps each snapshot slot as a row of a SQLite table.
package gormstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ArowuTest/nebula-luck-backend/internal/repositories"
)

// SlotRecord is the GORM model for the slots table
type SlotRecord struct {
	Slot      string    `gorm:"primaryKey;type:varchar(64)"`
	Data      []byte    `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName pins the table name
func (SlotRecord) TableName() string { return "lottery_slots" }

// SlotStore implements repositories.SlotStore with GORM
type SlotStore struct {
	db *gorm.DB
}

var _ repositories.SlotStore = (*SlotStore)(nil)

// Open opens the SQLite database at path and migrates the slots table
func Open(path string) (*SlotStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database %s: %w", path, err)
	}
	return New(db)
}

// New wraps an existing GORM connection
func New(db *gorm.DB) (*SlotStore, error) {
	if err := db.AutoMigrate(&SlotRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate slots table: %w", err)
	}
	return &SlotStore{db: db}, nil
}

// Get reads a slot row
func (s *SlotStore) Get(ctx context.Context, slot string) ([]byte, error) {
	var rec SlotRecord
	err := s.db.WithContext(ctx).First(&rec, "slot = ?", slot).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repositories.ErrSlotNotFound
	}
	if err != nil {
		return nil, err
	}
	return rec.Data, nil
}

// Put upserts a slot row in a transaction
func (s *SlotStore) Put(ctx context.Context, slot string, data []byte) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Save(&SlotRecord{Slot: slot, Data: data, UpdatedAt: time.Now()}).Error
	})
}

// Close closes the underlying connection
func (s *SlotStore) Close(context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
