package lottery

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ArowuTest/nebula-luck-backend/internal/models"
)

func roster(ids ...string) []models.Participant {
	out := make([]models.Participant, 0, len(ids))
	for _, id := range ids {
		out = append(out, models.Participant{ID: id, Name: "name-" + id})
	}
	return out
}

func record(participantID, prizeID string) models.WinRecord {
	return models.WinRecord{ID: "r-" + participantID, ParticipantID: participantID, PrizeTierID: prizeID}
}

func TestEligible(t *testing.T) {
	tests := []struct {
		name   string
		roster []models.Participant
		ledger []models.WinRecord
		want   []string
	}{
		{"empty roster", nil, []models.WinRecord{record("a", "p")}, []string{}},
		{"empty ledger", roster("a", "b"), nil, []string{"a", "b"}},
		{"winners removed in roster order", roster("a", "b", "c", "d"),
			[]models.WinRecord{record("c", "p1"), record("a", "p2")}, []string{"b", "d"}},
		{"ledger entry for unknown participant", roster("a"), []models.WinRecord{record("ghost", "p")}, []string{"a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Eligible(tt.roster, tt.ledger)
			ids := make([]string, 0, len(got))
			for _, p := range got {
				ids = append(ids, p.ID)
			}
			assert.Equal(t, tt.want, ids)
			assert.Equal(t, len(tt.want), EligibleCount(tt.roster, tt.ledger))
		})
	}
}

func TestDisplayPool_KeepsCurrentRoundWinners(t *testing.T) {
	r := roster("a", "b", "c")
	ledger := []models.WinRecord{record("a", "p"), record("b", "p")}

	pool := DisplayPool(r, ledger, roster("b"))

	assert.Equal(t, roster("b", "c"), pool)
}
