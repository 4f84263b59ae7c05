package repositories

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
	"golang.org/x/exp/slog"

	"github.com/ArowuTest/nebula-luck-backend/internal/models"
)

// slotSnapshotRepository implements SnapshotRepository on top of a SlotStore
type slotSnapshotRepository struct {
	store SlotStore
}

// NewSnapshotRepository creates a SnapshotRepository writing through to store
func NewSnapshotRepository(store SlotStore) SnapshotRepository {
	return &slotSnapshotRepository{store: store}
}

// Load reads the five slots independently. A missing, null or unparsable slot
// falls back to its default and never fails the load.
func (r *slotSnapshotRepository) Load(ctx context.Context) *models.Snapshot {
	snap := models.DefaultSnapshot()

	if raw, ok := r.read(ctx, SlotTitle); ok {
		snap.Settings.Title = string(raw)
	}
	if raw, ok := r.read(ctx, SlotSound); ok {
		enabled, err := strconv.ParseBool(strings.TrimSpace(string(raw)))
		if err != nil {
			slog.Warn("Unparsable slot, using default", "slot", SlotSound, "error", err)
		} else {
			snap.Settings.SoundEnabled = enabled
		}
	}

	var roster []models.Participant
	if r.decode(ctx, SlotRoster, &roster) && roster != nil {
		snap.Roster = roster
	}
	var catalog []models.PrizeTier
	if r.decode(ctx, SlotCatalog, &catalog) && catalog != nil {
		if err := models.ValidateCatalog(catalog); err != nil {
			slog.Warn("Invalid prize catalog in storage, using default", "slot", SlotCatalog, "error", err)
		} else {
			snap.Catalog = catalog
		}
	}
	var ledger []models.WinRecord
	if r.decode(ctx, SlotLedger, &ledger) && ledger != nil {
		snap.Ledger = ledger
	}

	if snap.Roster == nil {
		snap.Roster = []models.Participant{}
	}
	if snap.Catalog == nil {
		snap.Catalog = []models.PrizeTier{}
	}
	if snap.Ledger == nil {
		snap.Ledger = []models.WinRecord{}
	}
	return snap
}

// SaveTitle writes the title slot
func (r *slotSnapshotRepository) SaveTitle(ctx context.Context, title string) error {
	if err := r.store.Put(ctx, SlotTitle, []byte(title)); err != nil {
		return fmt.Errorf("failed to save %s: %w", SlotTitle, err)
	}
	return nil
}

// SaveSound writes the sound slot
func (r *slotSnapshotRepository) SaveSound(ctx context.Context, enabled bool) error {
	if err := r.store.Put(ctx, SlotSound, []byte(strconv.FormatBool(enabled))); err != nil {
		return fmt.Errorf("failed to save %s: %w", SlotSound, err)
	}
	return nil
}

// SaveRoster writes the roster slot
func (r *slotSnapshotRepository) SaveRoster(ctx context.Context, roster []models.Participant) error {
	if roster == nil {
		roster = []models.Participant{}
	}
	return r.encode(ctx, SlotRoster, roster)
}

// SaveCatalog writes the prize catalog slot
func (r *slotSnapshotRepository) SaveCatalog(ctx context.Context, catalog []models.PrizeTier) error {
	if catalog == nil {
		catalog = []models.PrizeTier{}
	}
	return r.encode(ctx, SlotCatalog, catalog)
}

// SaveLedger writes the winner ledger slot
func (r *slotSnapshotRepository) SaveLedger(ctx context.Context, ledger []models.WinRecord) error {
	if ledger == nil {
		ledger = []models.WinRecord{}
	}
	return r.encode(ctx, SlotLedger, ledger)
}

func (r *slotSnapshotRepository) read(ctx context.Context, slot string) ([]byte, bool) {
	raw, err := r.store.Get(ctx, slot)
	if err != nil {
		if !errors.Is(err, ErrSlotNotFound) {
			slog.Warn("Failed to read slot, using default", "slot", slot, "error", err)
		}
		return nil, false
	}
	return raw, true
}

func (r *slotSnapshotRepository) decode(ctx context.Context, slot string, v interface{}) bool {
	raw, ok := r.read(ctx, slot)
	if !ok {
		return false
	}
	if err := json.Unmarshal(raw, v); err != nil {
		slog.Warn("Unparsable slot, using default", "slot", slot, "error", err)
		return false
	}
	return true
}

func (r *slotSnapshotRepository) encode(ctx context.Context, slot string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", slot, err)
	}
	if err := r.store.Put(ctx, slot, data); err != nil {
		return fmt.Errorf("failed to save %s: %w", slot, err)
	}
	return nil
}
