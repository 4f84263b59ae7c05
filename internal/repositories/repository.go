package repositories

import (
	"context"
	"errors"

	"github.com/ArowuTest/nebula-luck-backend/internal/models"
)

// ErrSlotNotFound is returned by a SlotStore when a slot was never written
var ErrSlotNotFound = errors.New("slot not found")

// Slot keys of the persisted snapshot
const (
	SlotTitle   = "lottery_title"
	SlotSound   = "lottery_sound"
	SlotRoster  = "lottery_users"
	SlotCatalog = "lottery_prizes"
	SlotLedger  = "lottery_winners"
)

// AllSlots lists every slot in load order
var AllSlots = []string{SlotTitle, SlotSound, SlotRoster, SlotCatalog, SlotLedger}

// SlotStore is a durable key-value store of raw slot payloads.
// Put must replace a slot atomically: readers see the old or the new payload, never a mix.
type SlotStore interface {
	Get(ctx context.Context, slot string) ([]byte, error)
	Put(ctx context.Context, slot string, data []byte) error
	Close(ctx context.Context) error
}

// SnapshotRepository defines typed access to the persisted draw state
type SnapshotRepository interface {
	// Load reads every slot, substituting the default for missing or corrupt ones
	Load(ctx context.Context) *models.Snapshot
	SaveTitle(ctx context.Context, title string) error
	SaveSound(ctx context.Context, enabled bool) error
	SaveRoster(ctx context.Context, roster []models.Participant) error
	SaveCatalog(ctx context.Context, catalog []models.PrizeTier) error
	SaveLedger(ctx context.Context, ledger []models.WinRecord) error
}
