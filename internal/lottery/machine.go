package lottery

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ArowuTest/nebula-luck-backend/internal/models"
)

// Sampler selects k distinct participants from a pool, in draw order
type Sampler interface {
	Sample(k int, pool []models.Participant) []models.Participant
}

// State is the whole draw state. Apply never mutates a State it is given;
// every transition returns a fresh value.
type State struct {
	Roster          []models.Participant
	Catalog         []models.PrizeTier
	Ledger          []models.WinRecord
	Phase           models.DrawPhase
	SelectedPrizeID string
	Round           int
	Pending         []models.Participant // drawn, waiting for the reveal
	RoundWinners    []models.Participant // revealed, on display
}

// NewState builds the idle state for a loaded snapshot
func NewState(snap *models.Snapshot) State {
	s := State{
		Roster:  cloneRoster(snap.Roster),
		Catalog: cloneCatalog(snap.Catalog),
		Ledger:  cloneLedger(snap.Ledger),
		Phase:   models.DrawPhaseIdle,
	}
	if len(s.Catalog) > 0 {
		s.SelectedPrizeID = s.Catalog[0].ID
	}
	return s
}

// SelectedPrize returns the currently selected tier
func (s State) SelectedPrize() (models.PrizeTier, bool) {
	if s.SelectedPrizeID == "" {
		return models.PrizeTier{}, false
	}
	return models.FindPrize(s.Catalog, s.SelectedPrizeID)
}

// Event is an input to the state machine
type Event interface {
	Name() string
}

type (
	// Start moves IDLE to RUNNING
	Start struct{}
	// Stop draws the round winners and moves RUNNING to DRAWING
	Stop struct{}
	// Reveal commits the pending winners once the suspense delay elapsed
	Reveal struct{ Round int }
	// Abandon drops the pending winners of a round whose commit could not be stored
	Abandon struct{ Round int }
	// Acknowledge dismisses the displayed winners
	Acknowledge struct{}
	// Reset clears the ledger and returns to IDLE from any phase
	Reset struct{}
	// SelectPrize changes the tier the next round draws for
	SelectPrize struct{ PrizeID string }
	// ClearHistory empties the ledger
	ClearHistory struct{}
	// ReplaceRoster swaps the whole roster
	ReplaceRoster struct{ Roster []models.Participant }
	// ReplaceCatalog swaps the whole prize catalog
	ReplaceCatalog struct{ Catalog []models.PrizeTier }
)

func (Start) Name() string          { return "start" }
func (Stop) Name() string           { return "stop" }
func (Reveal) Name() string         { return "reveal" }
func (Abandon) Name() string        { return "abandon" }
func (Acknowledge) Name() string    { return "acknowledge" }
func (Reset) Name() string          { return "reset" }
func (SelectPrize) Name() string    { return "select_prize" }
func (ClearHistory) Name() string   { return "clear_history" }
func (ReplaceRoster) Name() string  { return "replace_roster" }
func (ReplaceCatalog) Name() string { return "replace_catalog" }

// EffectKind names a side effect requested by a transition
type EffectKind int

const (
	EffectScheduleReveal EffectKind = iota + 1
	EffectCancelReveal
	EffectPersistLedger
	EffectPersistRoster
	EffectPersistCatalog
)

func (k EffectKind) String() string {
	switch k {
	case EffectScheduleReveal:
		return "schedule_reveal"
	case EffectCancelReveal:
		return "cancel_reveal"
	case EffectPersistLedger:
		return "persist_ledger"
	case EffectPersistRoster:
		return "persist_roster"
	case EffectPersistCatalog:
		return "persist_catalog"
	default:
		return fmt.Sprintf("effect(%d)", int(k))
	}
}

// Effect is a side effect the owner of the state must carry out
type Effect struct {
	Kind  EffectKind
	Round int
}

// Machine applies events to states
type Machine struct {
	sampler Sampler
	now     func() time.Time
	newID   func() string
}

// MachineOption customizes a Machine
type MachineOption func(*Machine)

// WithClock overrides the clock used to stamp win records
func WithClock(now func() time.Time) MachineOption {
	return func(m *Machine) { m.now = now }
}

// WithIDGenerator overrides the win record id generator
func WithIDGenerator(newID func() string) MachineOption {
	return func(m *Machine) { m.newID = newID }
}

// NewMachine creates a Machine drawing winners with sampler
func NewMachine(sampler Sampler, opts ...MachineOption) *Machine {
	m := &Machine{
		sampler: sampler,
		now:     time.Now,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Apply returns the state after ev together with the effects to run.
// On error the returned state is s unchanged and no effects are produced.
func (m *Machine) Apply(s State, ev Event) (State, []Effect, error) {
	switch e := ev.(type) {
	case Start:
		return m.start(s)
	case Stop:
		return m.stop(s)
	case Reveal:
		return m.reveal(s, e.Round)
	case Abandon:
		if s.Phase != models.DrawPhaseDrawing || e.Round != s.Round {
			return s, nil, ErrNotDrawing
		}
		s.Phase = models.DrawPhaseIdle
		s.Pending = nil
		return s, nil, nil
	case Acknowledge:
		if s.Phase != models.DrawPhaseShowWinner {
			return s, nil, ErrNotShowingWinner
		}
		s.Phase = models.DrawPhaseIdle
		s.RoundWinners = nil
		return s, nil, nil
	case Reset:
		s.Phase = models.DrawPhaseIdle
		s.Ledger = []models.WinRecord{}
		s.Pending = nil
		s.RoundWinners = nil
		// bumping the round invalidates a reveal that is already in flight
		s.Round++
		return s, []Effect{{Kind: EffectCancelReveal, Round: s.Round - 1}, {Kind: EffectPersistLedger}}, nil
	case SelectPrize:
		if s.Phase.MidRound() {
			return s, nil, ErrRoundInProgress
		}
		if _, ok := models.FindPrize(s.Catalog, e.PrizeID); !ok {
			return s, nil, ErrUnknownPrize
		}
		s.SelectedPrizeID = e.PrizeID
		return s, nil, nil
	case ClearHistory:
		if s.Phase.MidRound() {
			return s, nil, ErrRoundInProgress
		}
		s.Ledger = []models.WinRecord{}
		return s, []Effect{{Kind: EffectPersistLedger}}, nil
	case ReplaceRoster:
		if s.Phase.MidRound() {
			return s, nil, ErrRoundInProgress
		}
		s.Roster = cloneRoster(e.Roster)
		return s, []Effect{{Kind: EffectPersistRoster}}, nil
	case ReplaceCatalog:
		if s.Phase.MidRound() {
			return s, nil, ErrRoundInProgress
		}
		if err := models.ValidateCatalog(e.Catalog); err != nil {
			return s, nil, err
		}
		s.Catalog = cloneCatalog(e.Catalog)
		if _, ok := models.FindPrize(s.Catalog, s.SelectedPrizeID); !ok {
			s.SelectedPrizeID = ""
			if len(s.Catalog) > 0 {
				s.SelectedPrizeID = s.Catalog[0].ID
			}
		}
		return s, []Effect{{Kind: EffectPersistCatalog}}, nil
	default:
		return s, nil, fmt.Errorf("%w: unknown event %T", ErrRejected, ev)
	}
}

func (m *Machine) start(s State) (State, []Effect, error) {
	if s.Phase != models.DrawPhaseIdle {
		return s, nil, ErrNotIdle
	}
	tier, ok := s.SelectedPrize()
	if !ok {
		return s, nil, ErrNoPrizeSelected
	}
	if Remaining(tier, s.Ledger) <= 0 {
		return s, nil, ErrPrizeExhausted
	}
	if EligibleCount(s.Roster, s.Ledger) == 0 {
		return s, nil, ErrNoEligibleParticipants
	}
	s.Phase = models.DrawPhaseRunning
	s.RoundWinners = nil
	s.Round++
	return s, nil, nil
}

func (m *Machine) stop(s State) (State, []Effect, error) {
	if s.Phase != models.DrawPhaseRunning {
		return s, nil, ErrNotRunning
	}
	tier, ok := s.SelectedPrize()
	eligible := Eligible(s.Roster, s.Ledger)
	k := 0
	if ok {
		k = BatchSize(tier, s.Ledger, len(eligible))
	}
	if k == 0 {
		s.Phase = models.DrawPhaseIdle
		s.Pending = nil
		return s, nil, nil
	}
	s.Pending = m.sampler.Sample(k, eligible)
	s.Phase = models.DrawPhaseDrawing
	return s, []Effect{{Kind: EffectScheduleReveal, Round: s.Round}}, nil
}

func (m *Machine) reveal(s State, round int) (State, []Effect, error) {
	if s.Phase != models.DrawPhaseDrawing || round != s.Round {
		return s, nil, ErrNotDrawing
	}
	tier, ok := s.SelectedPrize()
	if !ok {
		s.Phase = models.DrawPhaseIdle
		s.Pending = nil
		return s, nil, nil
	}

	won := WinnerIDs(s.Ledger)
	left := Remaining(tier, s.Ledger)
	now := m.now()

	ledger := make([]models.WinRecord, len(s.Ledger), len(s.Ledger)+len(s.Pending))
	copy(ledger, s.Ledger)
	winners := make([]models.Participant, 0, len(s.Pending))
	for _, p := range s.Pending {
		if left == 0 {
			break
		}
		if _, dup := won[p.ID]; dup {
			continue
		}
		ledger = append(ledger, models.WinRecord{
			ID:            m.newID(),
			ParticipantID: p.ID,
			PrizeTierID:   tier.ID,
			Timestamp:     now,
		})
		won[p.ID] = struct{}{}
		winners = append(winners, p)
		left--
	}

	s.Ledger = ledger
	s.RoundWinners = winners
	s.Pending = nil
	s.Phase = models.DrawPhaseShowWinner
	return s, []Effect{{Kind: EffectPersistLedger}}, nil
}

func cloneRoster(in []models.Participant) []models.Participant {
	out := make([]models.Participant, len(in))
	copy(out, in)
	return out
}

func cloneCatalog(in []models.PrizeTier) []models.PrizeTier {
	out := make([]models.PrizeTier, len(in))
	copy(out, in)
	return out
}

func cloneLedger(in []models.WinRecord) []models.WinRecord {
	out := make([]models.WinRecord, len(in))
	copy(out, in)
	return out
}
