package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/exp/slog"

	"github.com/ArowuTest/nebula-luck-backend/internal/lottery"
	"github.com/ArowuTest/nebula-luck-backend/internal/models"
	"github.com/ArowuTest/nebula-luck-backend/internal/repositories"
)

// Compile-time check to ensure DrawServiceImpl implements DrawService
var _ DrawService = (*DrawServiceImpl)(nil)

// DefaultSuspenseDelay is the pause between stop and the reveal of the winners
const DefaultSuspenseDelay = 3 * time.Second

// revealWriteTimeout bounds the ledger write done from the reveal timer
const revealWriteTimeout = 10 * time.Second

// DrawServiceImpl owns the single draw state. Every transition runs under mu.
type DrawServiceImpl struct {
	mu        sync.Mutex
	machine   *lottery.Machine
	state     lottery.State
	repo      repositories.SnapshotRepository
	scheduler Scheduler
	delay     time.Duration
	timer     Timer
	lastError string
}

// DrawServiceOption customizes a DrawServiceImpl
type DrawServiceOption func(*DrawServiceImpl)

// WithScheduler replaces the timer used for the reveal
func WithScheduler(s Scheduler) DrawServiceOption {
	return func(d *DrawServiceImpl) { d.scheduler = s }
}

// WithSuspenseDelay sets the pause between stop and reveal
func WithSuspenseDelay(delay time.Duration) DrawServiceOption {
	return func(d *DrawServiceImpl) { d.delay = delay }
}

// NewDrawService creates a DrawServiceImpl starting idle on snap
func NewDrawService(machine *lottery.Machine, repo repositories.SnapshotRepository, snap *models.Snapshot, opts ...DrawServiceOption) *DrawServiceImpl {
	s := &DrawServiceImpl{
		machine:   machine,
		state:     lottery.NewState(snap),
		repo:      repo,
		scheduler: ClockScheduler{},
		delay:     DefaultSuspenseDelay,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Status returns the current read model
func (s *DrawServiceImpl) Status(ctx context.Context) models.DrawStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.statusLocked()
}

// Start begins a round for the selected prize
func (s *DrawServiceImpl) Start(ctx context.Context) (models.DrawStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.applyLocked(ctx, lottery.Start{}); err != nil {
		slog.Debug("Start rejected", "phase", s.state.Phase, "error", err)
		return s.statusLocked(), err
	}
	s.lastError = ""
	slog.Info("Draw round started", "round", s.state.Round, "prizeId", s.state.SelectedPrizeID)
	return s.statusLocked(), nil
}

// Stop draws the winners of the running round. A zero-sized batch returns to
// idle without drawing.
func (s *DrawServiceImpl) Stop(ctx context.Context) (models.RoundResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.applyLocked(ctx, lottery.Stop{}); err != nil {
		slog.Debug("Stop rejected", "phase", s.state.Phase, "error", err)
		return models.RoundResult{}, err
	}
	result := models.RoundResult{
		Phase:   s.state.Phase,
		Round:   s.state.Round,
		PrizeID: s.state.SelectedPrizeID,
		Drawn:   len(s.state.Pending),
	}
	slog.Info("Draw round stopped", "round", result.Round, "prizeId", result.PrizeID, "drawn", result.Drawn)
	return result, nil
}

// Acknowledge dismisses the winners on display
func (s *DrawServiceImpl) Acknowledge(ctx context.Context) (models.DrawStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.applyLocked(ctx, lottery.Acknowledge{}); err != nil {
		return s.statusLocked(), err
	}
	return s.statusLocked(), nil
}

// Reset clears the ledger from any phase and cancels a pending reveal
func (s *DrawServiceImpl) Reset(ctx context.Context) (models.DrawStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.applyLocked(ctx, lottery.Reset{}); err != nil {
		slog.Error("Failed to reset draw", "error", err)
		return s.statusLocked(), err
	}
	s.lastError = ""
	slog.Info("Draw reset", "round", s.state.Round)
	return s.statusLocked(), nil
}

// SelectPrize changes the tier of the next round
func (s *DrawServiceImpl) SelectPrize(ctx context.Context, prizeID string) (models.DrawStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.applyLocked(ctx, lottery.SelectPrize{PrizeID: prizeID}); err != nil {
		return s.statusLocked(), err
	}
	return s.statusLocked(), nil
}

// ClearHistory empties the ledger outside of a round
func (s *DrawServiceImpl) ClearHistory(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cleared := len(s.state.Ledger)
	if err := s.applyLocked(ctx, lottery.ClearHistory{}); err != nil {
		return err
	}
	slog.Info("Winner history cleared", "records", cleared)
	return nil
}

// ReplaceRoster swaps the roster outside of a round
func (s *DrawServiceImpl) ReplaceRoster(ctx context.Context, roster []models.Participant) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.applyLocked(ctx, lottery.ReplaceRoster{Roster: roster}); err != nil {
		return err
	}
	slog.Info("Roster replaced", "participants", len(roster))
	return nil
}

// UpdateCatalog runs fn on a copy of the catalog and stores its result.
// fn runs under the service lock and must not call back into the service.
func (s *DrawServiceImpl) UpdateCatalog(ctx context.Context, fn func(catalog []models.PrizeTier) ([]models.PrizeTier, error)) ([]models.PrizeTier, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Phase.MidRound() {
		return nil, lottery.ErrRoundInProgress
	}
	current := make([]models.PrizeTier, len(s.state.Catalog))
	copy(current, s.state.Catalog)

	next, err := fn(current)
	if err != nil {
		return nil, err
	}
	if err := s.applyLocked(ctx, lottery.ReplaceCatalog{Catalog: next}); err != nil {
		return nil, err
	}
	out := make([]models.PrizeTier, len(s.state.Catalog))
	copy(out, s.state.Catalog)
	return out, nil
}

// Snapshot returns copies of the roster, catalog and ledger
func (s *DrawServiceImpl) Snapshot(ctx context.Context) models.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := models.Snapshot{
		Roster:  make([]models.Participant, len(s.state.Roster)),
		Catalog: make([]models.PrizeTier, len(s.state.Catalog)),
		Ledger:  make([]models.WinRecord, len(s.state.Ledger)),
	}
	copy(snap.Roster, s.state.Roster)
	copy(snap.Catalog, s.state.Catalog)
	copy(snap.Ledger, s.state.Ledger)
	return snap
}

// applyLocked runs one transition. Persistence effects run before the new
// state is installed so a failed write leaves the prior state in place.
func (s *DrawServiceImpl) applyLocked(ctx context.Context, ev lottery.Event) error {
	next, effects, err := s.machine.Apply(s.state, ev)
	if err != nil {
		return err
	}
	for _, eff := range effects {
		if err := s.persist(ctx, eff, next); err != nil {
			slog.Error("Failed to persist draw state", "event", ev.Name(), "effect", eff.Kind.String(), "error", err)
			return err
		}
	}
	s.state = next
	for _, eff := range effects {
		switch eff.Kind {
		case lottery.EffectScheduleReveal:
			s.scheduleRevealLocked(eff.Round)
		case lottery.EffectCancelReveal:
			s.cancelRevealLocked(eff.Round)
		}
	}
	return nil
}

func (s *DrawServiceImpl) persist(ctx context.Context, eff lottery.Effect, next lottery.State) error {
	switch eff.Kind {
	case lottery.EffectPersistLedger:
		return s.repo.SaveLedger(ctx, next.Ledger)
	case lottery.EffectPersistRoster:
		return s.repo.SaveRoster(ctx, next.Roster)
	case lottery.EffectPersistCatalog:
		return s.repo.SaveCatalog(ctx, next.Catalog)
	}
	return nil
}

func (s *DrawServiceImpl) scheduleRevealLocked(round int) {
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = s.scheduler.AfterFunc(s.delay, func() { s.reveal(round) })
}

func (s *DrawServiceImpl) cancelRevealLocked(round int) {
	if s.timer == nil {
		return
	}
	if s.timer.Stop() {
		slog.Info("Pending reveal cancelled", "round", round)
	}
	s.timer = nil
}

// reveal is the timer callback. A callback for a round that was reset or
// superseded is dropped by the machine's round check.
func (s *DrawServiceImpl) reveal(round int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Round == round {
		s.timer = nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), revealWriteTimeout)
	defer cancel()

	err := s.applyLocked(ctx, lottery.Reveal{Round: round})
	if err == nil {
		slog.Info("Winners revealed", "round", round, "prizeId", s.state.SelectedPrizeID, "winners", len(s.state.RoundWinners))
		return
	}
	if errors.Is(err, lottery.ErrRejected) {
		slog.Debug("Stale reveal dropped", "round", round, "currentRound", s.state.Round)
		return
	}

	s.lastError = fmt.Sprintf("failed to save winners of round %d: %v", round, err)
	if abandonErr := s.applyLocked(ctx, lottery.Abandon{Round: round}); abandonErr != nil {
		slog.Error("Failed to abandon round", "round", round, "error", abandonErr)
		return
	}
	slog.Warn("Draw round abandoned", "round", round, "error", err)
}

func (s *DrawServiceImpl) statusLocked() models.DrawStatus {
	st := s.state
	status := models.DrawStatus{
		Phase:          st.Phase,
		Round:          st.Round,
		CurrentPrizeID: st.SelectedPrizeID,
		EligibleCount:  lottery.EligibleCount(st.Roster, st.Ledger),
		RosterSize:     len(st.Roster),
		RoundWinners:   append([]models.Participant{}, st.RoundWinners...),
		DisplayPool:    lottery.DisplayPool(st.Roster, st.Ledger, st.RoundWinners),
		Inventory:      lottery.Inventory(st.Catalog, st.Ledger),
		LastError:      s.lastError,
	}
	if tier, ok := st.SelectedPrize(); ok {
		status.CurrentPrize = &tier
		status.Remaining = lottery.Remaining(tier, st.Ledger)
	}
	return status
}
