package models

// DrawPhase represents the phase of the draw state machine
type DrawPhase string

const (
	DrawPhaseIdle       DrawPhase = "IDLE"
	DrawPhaseRunning    DrawPhase = "RUNNING"
	DrawPhaseDrawing    DrawPhase = "DRAWING"
	DrawPhaseShowWinner DrawPhase = "SHOW_WINNER"
)

// MidRound reports whether configuration edits must be refused in this phase
func (p DrawPhase) MidRound() bool {
	return p == DrawPhaseRunning || p == DrawPhaseDrawing
}

// PrizeInventory is the derived stock of one tier
type PrizeInventory struct {
	Prize     PrizeTier `json:"prize"`
	Awarded   int       `json:"awarded"`
	Remaining int       `json:"remaining"`
}

// DrawStatus is the read model handed to presentation clients
type DrawStatus struct {
	Phase          DrawPhase        `json:"phase"`
	Round          int              `json:"round"`
	CurrentPrizeID string           `json:"currentPrizeId,omitempty"`
	CurrentPrize   *PrizeTier       `json:"currentPrize,omitempty"`
	Remaining      int              `json:"remaining"`
	EligibleCount  int              `json:"eligibleCount"`
	RosterSize     int              `json:"rosterSize"`
	RoundWinners   []Participant    `json:"roundWinners"`
	DisplayPool    []Participant    `json:"displayPool"` // eligible participants plus the round winners on display
	Inventory      []PrizeInventory `json:"inventory"`
	LastError      string           `json:"lastError,omitempty"`
}

// RoundResult is returned by the stop operation
type RoundResult struct {
	Phase   DrawPhase `json:"phase"`
	Round   int       `json:"round"`
	PrizeID string    `json:"prizeId"`
	Drawn   int       `json:"drawn"`
}
