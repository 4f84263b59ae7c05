// Package lottery holds the draw engine: eligibility and inventory derived from
// the winner ledger, and the round state machine.
package lottery

import "github.com/ArowuTest/nebula-luck-backend/internal/models"

// WinnerIDs returns the set of participant ids present in the ledger
func WinnerIDs(ledger []models.WinRecord) map[string]struct{} {
	ids := make(map[string]struct{}, len(ledger))
	for _, r := range ledger {
		ids[r.ParticipantID] = struct{}{}
	}
	return ids
}

// Eligible returns the roster members, in roster order, that have never won
func Eligible(roster []models.Participant, ledger []models.WinRecord) []models.Participant {
	won := WinnerIDs(ledger)
	eligible := make([]models.Participant, 0, len(roster))
	for _, p := range roster {
		if _, ok := won[p.ID]; !ok {
			eligible = append(eligible, p)
		}
	}
	return eligible
}

// EligibleCount is len(Eligible(roster, ledger)) without building the slice
func EligibleCount(roster []models.Participant, ledger []models.WinRecord) int {
	won := WinnerIDs(ledger)
	n := 0
	for _, p := range roster {
		if _, ok := won[p.ID]; !ok {
			n++
		}
	}
	return n
}

// DisplayPool is the eligible pool plus the winners of the round on screen.
// Presentation clients render it so fresh winners stay visible until dismissed.
func DisplayPool(roster []models.Participant, ledger []models.WinRecord, roundWinners []models.Participant) []models.Participant {
	won := WinnerIDs(ledger)
	current := make(map[string]struct{}, len(roundWinners))
	for _, w := range roundWinners {
		current[w.ID] = struct{}{}
	}
	pool := make([]models.Participant, 0, len(roster))
	for _, p := range roster {
		if _, ok := current[p.ID]; ok {
			pool = append(pool, p)
			continue
		}
		if _, ok := won[p.ID]; !ok {
			pool = append(pool, p)
		}
	}
	return pool
}
