// Package filestore keeps each snapshot slot in its own file.
package filestore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/spf13/afero"

	"github.com/ArowuTest/nebula-luck-backend/internal/repositories"
)

var slotName = regexp.MustCompile(`^[A-Za-z0-9_\-]+$`)

// SlotStore implements repositories.SlotStore on a directory of an afero.Fs
type SlotStore struct {
	fs  afero.Fs
	dir string
}

var _ repositories.SlotStore = (*SlotStore)(nil)

// NewSlotStore creates the directory if needed and returns the store
func NewSlotStore(fs afero.Fs, dir string) (*SlotStore, error) {
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create store directory %s: %w", dir, err)
	}
	return &SlotStore{fs: fs, dir: dir}, nil
}

// Get reads a slot file
func (s *SlotStore) Get(_ context.Context, slot string) ([]byte, error) {
	path, err := s.path(slot)
	if err != nil {
		return nil, err
	}
	data, err := afero.ReadFile(s.fs, path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, repositories.ErrSlotNotFound
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Put writes a slot by renaming a fully written temp file over the old one
func (s *SlotStore) Put(_ context.Context, slot string, data []byte) error {
	path, err := s.path(slot)
	if err != nil {
		return err
	}
	tmp, err := afero.TempFile(s.fs, s.dir, slot+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", slot, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		s.fs.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", slot, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		s.fs.Remove(tmpName)
		return fmt.Errorf("failed to sync %s: %w", slot, err)
	}
	if err := tmp.Close(); err != nil {
		s.fs.Remove(tmpName)
		return fmt.Errorf("failed to close %s: %w", slot, err)
	}
	if err := s.fs.Rename(tmpName, path); err != nil {
		s.fs.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", slot, err)
	}
	return nil
}

// Close is a no-op for files
func (s *SlotStore) Close(context.Context) error { return nil }

func (s *SlotStore) path(slot string) (string, error) {
	if !slotName.MatchString(slot) {
		return "", fmt.Errorf("invalid slot name %q", slot)
	}
	return filepath.Join(s.dir, slot+".json"), nil
}
