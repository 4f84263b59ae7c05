package lottery

import (
	"sort"

	"github.com/ArowuTest/nebula-luck-backend/internal/models"
)

// Awarded counts the ledger entries for a tier
func Awarded(tierID string, ledger []models.WinRecord) int {
	n := 0
	for _, r := range ledger {
		if r.PrizeTierID == tierID {
			n++
		}
	}
	return n
}

// Remaining is the tier capacity not yet awarded, never negative.
// It is always derived so capacity edits apply immediately.
func Remaining(tier models.PrizeTier, ledger []models.WinRecord) int {
	left := tier.TotalCount - Awarded(tier.ID, ledger)
	if left < 0 {
		return 0
	}
	return left
}

// Inventory returns the stock of every tier ordered by level
func Inventory(catalog []models.PrizeTier, ledger []models.WinRecord) []models.PrizeInventory {
	awarded := make(map[string]int, len(catalog))
	for _, r := range ledger {
		awarded[r.PrizeTierID]++
	}

	rows := make([]models.PrizeInventory, 0, len(catalog))
	for _, tier := range catalog {
		left := tier.TotalCount - awarded[tier.ID]
		if left < 0 {
			left = 0
		}
		rows = append(rows, models.PrizeInventory{
			Prize:     tier,
			Awarded:   awarded[tier.ID],
			Remaining: left,
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Prize.Level < rows[j].Prize.Level
	})
	return rows
}

// BatchSize is the number of winners the next round of tier would draw:
// min(tier.BatchSize, Remaining(tier), eligible)
func BatchSize(tier models.PrizeTier, ledger []models.WinRecord, eligible int) int {
	k := tier.BatchSize
	if r := Remaining(tier, ledger); r < k {
		k = r
	}
	if eligible < k {
		k = eligible
	}
	if k < 0 {
		return 0
	}
	return k
}
