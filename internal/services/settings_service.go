package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"

	"github.com/ArowuTest/nebula-luck-backend/internal/lottery"
	"github.com/ArowuTest/nebula-luck-backend/internal/models"
	"github.com/ArowuTest/nebula-luck-backend/internal/repositories"
	"github.com/ArowuTest/nebula-luck-backend/internal/utils"
)

// ErrPrizeNotFound is returned by prize updates and deletes for an unknown id
var ErrPrizeNotFound = errors.New("prize not found")

// ErrImportFailed wraps every roster import failure
var ErrImportFailed = errors.New("roster import failed")

// SettingsServiceImpl implements SettingsService
type SettingsServiceImpl struct {
	mu       sync.RWMutex
	settings models.Settings
	repo     repositories.SnapshotRepository
	draws    DrawService
	newID    func() string
}

var _ SettingsService = (*SettingsServiceImpl)(nil)

// NewSettingsService creates a new SettingsService. Roster and catalog edits go
// through draws so they are refused mid-round.
func NewSettingsService(repo repositories.SnapshotRepository, draws DrawService, settings models.Settings) *SettingsServiceImpl {
	return &SettingsServiceImpl{
		settings: settings,
		repo:     repo,
		draws:    draws,
		newID:    uuid.NewString,
	}
}

// GetSettings retrieves the current presentation settings
func (s *SettingsServiceImpl) GetSettings(ctx context.Context) models.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// UpdateSettings stores the title and sound flag, writing only the slots that
// changed. They can change in any phase.
func (s *SettingsServiceImpl) UpdateSettings(ctx context.Context, update models.SettingsUpdate) (models.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := update.Apply(s.settings)
	if next.Title != s.settings.Title {
		if err := s.repo.SaveTitle(ctx, next.Title); err != nil {
			slog.Error("Failed to save title", "error", err)
			return s.settings, err
		}
		s.settings.Title = next.Title
	}
	// settings always mirrors what is on disk, even when only the title landed
	if next.SoundEnabled != s.settings.SoundEnabled {
		if err := s.repo.SaveSound(ctx, next.SoundEnabled); err != nil {
			slog.Error("Failed to save sound setting", "error", err)
			return s.settings, err
		}
		s.settings.SoundEnabled = next.SoundEnabled
	}
	return s.settings, nil
}

// ListPrizes returns the catalog with derived stock, ordered by level
func (s *SettingsServiceImpl) ListPrizes(ctx context.Context) []models.PrizeInventory {
	snap := s.draws.Snapshot(ctx)
	return lottery.Inventory(snap.Catalog, snap.Ledger)
}

// CreatePrize appends a tier with a generated id
func (s *SettingsServiceImpl) CreatePrize(ctx context.Context, input models.PrizeInput) (models.PrizeTier, error) {
	var created models.PrizeTier
	_, err := s.draws.UpdateCatalog(ctx, func(catalog []models.PrizeTier) ([]models.PrizeTier, error) {
		created = input.Apply(models.NewPrizeTier(s.newID(), len(catalog)))
		if created.Name == "" {
			created.Name = models.DefaultPrizeName
		}
		return append(catalog, created), nil
	})
	if err != nil {
		return models.PrizeTier{}, err
	}
	slog.Info("Prize created", "prizeId", created.ID, "name", created.Name)
	return created, nil
}

// UpdatePrize edits one tier. Past ledger entries are left as they are.
func (s *SettingsServiceImpl) UpdatePrize(ctx context.Context, id string, input models.PrizeInput) (models.PrizeTier, error) {
	var updated models.PrizeTier
	_, err := s.draws.UpdateCatalog(ctx, func(catalog []models.PrizeTier) ([]models.PrizeTier, error) {
		for i := range catalog {
			if catalog[i].ID == id {
				catalog[i] = input.Apply(catalog[i])
				updated = catalog[i]
				return catalog, nil
			}
		}
		return nil, fmt.Errorf("%w: %s", ErrPrizeNotFound, id)
	})
	if err != nil {
		return models.PrizeTier{}, err
	}
	return updated, nil
}

// DeletePrize removes one tier
func (s *SettingsServiceImpl) DeletePrize(ctx context.Context, id string) error {
	_, err := s.draws.UpdateCatalog(ctx, func(catalog []models.PrizeTier) ([]models.PrizeTier, error) {
		for i := range catalog {
			if catalog[i].ID == id {
				return append(catalog[:i], catalog[i+1:]...), nil
			}
		}
		return nil, fmt.Errorf("%w: %s", ErrPrizeNotFound, id)
	})
	if err != nil {
		return err
	}
	slog.Info("Prize deleted", "prizeId", id)
	return nil
}

// GetRoster returns the roster
func (s *SettingsServiceImpl) GetRoster(ctx context.Context) []models.Participant {
	return s.draws.Snapshot(ctx).Roster
}

// ReplaceRoster validates and stores a whole roster
func (s *SettingsServiceImpl) ReplaceRoster(ctx context.Context, roster []models.Participant) ([]models.Participant, error) {
	normalized, err := models.NormalizeRoster(roster, s.newID)
	if err != nil {
		return nil, err
	}
	if err := s.draws.ReplaceRoster(ctx, normalized); err != nil {
		return nil, err
	}
	return normalized, nil
}

// ClearRoster empties the roster
func (s *SettingsServiceImpl) ClearRoster(ctx context.Context) error {
	return s.draws.ReplaceRoster(ctx, []models.Participant{})
}

// ImportRoster replaces the roster with the contents of an uploaded CSV or
// XLSX file. The roster is unchanged when the file cannot be used.
func (s *SettingsServiceImpl) ImportRoster(ctx context.Context, filename string, r io.Reader) ([]models.Participant, error) {
	format, err := utils.DetectRosterFormat(filename)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrImportFailed, err)
	}
	roster, err := utils.ImportRoster(r, format)
	if err != nil {
		slog.Warn("Roster import rejected", "file", filename, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrImportFailed, err)
	}
	if err := s.draws.ReplaceRoster(ctx, roster); err != nil {
		return nil, err
	}
	slog.Info("Roster imported", "file", filename, "participants", len(roster))
	return roster, nil
}
