package lottery

import (
	"sort"

	"github.com/ArowuTest/nebula-luck-backend/internal/models"
)

// Fallback labels for ledger entries whose participant or tier no longer exists
const (
	UnknownName       = "Unknown"
	UnknownDepartment = "Unknown"
	UnknownPrize      = "Unknown Prize"
)

// History joins the ledger with the roster and catalog, newest first.
// Records with equal timestamps keep the reverse of their ledger order.
func History(roster []models.Participant, catalog []models.PrizeTier, ledger []models.WinRecord) []models.HistoryRow {
	people := make(map[string]models.Participant, len(roster))
	for _, p := range roster {
		people[p.ID] = p
	}
	prizes := make(map[string]string, len(catalog))
	for _, p := range catalog {
		prizes[p.ID] = p.Name
	}

	rows := make([]models.HistoryRow, 0, len(ledger))
	for i := len(ledger) - 1; i >= 0; i-- {
		rec := ledger[i]
		row := models.HistoryRow{
			RecordID:   rec.ID,
			Timestamp:  rec.Timestamp,
			Name:       UnknownName,
			Department: UnknownDepartment,
			PrizeName:  UnknownPrize,
		}
		if p, ok := people[rec.ParticipantID]; ok {
			row.Name = p.Name
			row.Department = p.Department
		}
		if name, ok := prizes[rec.PrizeTierID]; ok {
			row.PrizeName = name
		}
		rows = append(rows, row)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Timestamp.After(rows[j].Timestamp)
	})
	return rows
}
