package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/ArowuTest/nebula-luck-backend/internal/lottery"
	"github.com/ArowuTest/nebula-luck-backend/internal/models"
	"github.com/ArowuTest/nebula-luck-backend/internal/repositories"
	"github.com/ArowuTest/nebula-luck-backend/internal/repositories/filestore"
	"github.com/ArowuTest/nebula-luck-backend/internal/rng"
)

var errDiskFull = errors.New("disk full")

// manualTimer is a Timer fired explicitly by the test
type manualTimer struct {
	mu      sync.Mutex
	delay   time.Duration
	f       func()
	stopped bool
	fired   bool
}

func (t *manualTimer) Stop() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.fired || t.stopped {
		return false
	}
	t.stopped = true
	return true
}

// Fire runs the callback even if the timer was stopped, like a timer that
// fired just before Stop was called
func (t *manualTimer) Fire() {
	t.mu.Lock()
	t.fired = true
	t.mu.Unlock()
	t.f()
}

type manualScheduler struct {
	mu     sync.Mutex
	timers []*manualTimer
}

func (s *manualScheduler) AfterFunc(d time.Duration, f func()) Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &manualTimer{delay: d, f: f}
	s.timers = append(s.timers, t)
	return t
}

func (s *manualScheduler) last(t *testing.T) *manualTimer {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	require.NotEmpty(t, s.timers, "no reveal scheduled")
	return s.timers[len(s.timers)-1]
}

// flakyStore wraps a SlotStore and fails writes to the listed slots
type flakyStore struct {
	repositories.SlotStore
	mu   sync.Mutex
	fail map[string]bool
}

func (f *flakyStore) Put(ctx context.Context, slot string, data []byte) error {
	f.mu.Lock()
	failing := f.fail[slot]
	f.mu.Unlock()
	if failing {
		return errDiskFull
	}
	return f.SlotStore.Put(ctx, slot, data)
}

func (f *flakyStore) failWrites(slot string, on bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fail[slot] = on
}

type testEnv struct {
	draws     *DrawServiceImpl
	repo      repositories.SnapshotRepository
	store     *flakyStore
	scheduler *manualScheduler
}

func numberedRoster(n int) []models.Participant {
	roster := make([]models.Participant, n)
	for i := range roster {
		roster[i] = models.Participant{ID: fmt.Sprintf("u%d", i+1), Name: fmt.Sprintf("Person %d", i+1), Department: "QA"}
	}
	return roster
}

func newTestEnv(t *testing.T, rosterSize int, catalog ...models.PrizeTier) *testEnv {
	t.Helper()
	base, err := filestore.NewSlotStore(afero.NewMemMapFs(), "/state")
	require.NoError(t, err)
	store := &flakyStore{SlotStore: base, fail: map[string]bool{}}
	repo := repositories.NewSnapshotRepository(store)

	snap := models.DefaultSnapshot()
	snap.Roster = numberedRoster(rosterSize)
	if len(catalog) > 0 {
		snap.Catalog = catalog
	}

	scheduler := &manualScheduler{}
	machine := lottery.NewMachine(rng.NewSampler(42))
	draws := NewDrawService(machine, repo, snap, WithScheduler(scheduler), WithSuspenseDelay(time.Second))
	return &testEnv{draws: draws, repo: repo, store: store, scheduler: scheduler}
}
