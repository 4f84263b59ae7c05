package models

import (
	"fmt"
	"testing"
	"time"

	json "github.com/goccy/go-json"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCatalog(t *testing.T) {
	assert.NoError(t, ValidateCatalog(DefaultCatalog()))
	assert.NoError(t, ValidateCatalog(nil))

	tests := []struct {
		name    string
		catalog []PrizeTier
	}{
		{"missing id", []PrizeTier{{TotalCount: 1, BatchSize: 1}}},
		{"zero count", []PrizeTier{{ID: "a", TotalCount: 0, BatchSize: 1}}},
		{"zero batch", []PrizeTier{{ID: "a", TotalCount: 1, BatchSize: 0}}},
		{"duplicate id", []PrizeTier{{ID: "a", TotalCount: 1, BatchSize: 1}, {ID: "a", TotalCount: 2, BatchSize: 1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, ValidateCatalog(tt.catalog), ErrInvalidPrize)
		})
	}
}

func TestPrizeInput_Apply(t *testing.T) {
	name, count := "  Bonus ", 7
	p := PrizeInput{Name: &name, TotalCount: &count}.Apply(NewPrizeTier("x", 4))

	assert.Equal(t, PrizeTier{ID: "x", Name: "Bonus", TotalCount: 7, Level: 5, BatchSize: 1}, p)
}

func TestNormalizeRoster(t *testing.T) {
	n := 0
	newID := func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}

	out, err := NormalizeRoster([]Participant{{Name: " A "}, {ID: "b", Name: "B", Department: " D "}}, newID)
	require.NoError(t, err)
	assert.Equal(t, []Participant{{ID: "id-1", Name: "A"}, {ID: "b", Name: "B", Department: "D"}}, out)

	_, err = NormalizeRoster([]Participant{{ID: "b", Name: "B"}, {ID: "b", Name: "C"}}, newID)
	assert.ErrorIs(t, err, ErrInvalidParticipant)

	_, err = NormalizeRoster([]Participant{{ID: "c", Name: "   "}}, newID)
	assert.ErrorIs(t, err, ErrInvalidParticipant)
}

func TestSampleRosterAndDefaults(t *testing.T) {
	roster := SampleRoster()
	require.Len(t, roster, SampleRosterSize)
	assert.Equal(t, Participant{ID: "u-1", Name: "人员-1", Department: "科技部"}, roster[0])

	snap := DefaultSnapshot()
	assert.Equal(t, DefaultTitle, snap.Settings.Title)
	assert.True(t, snap.Settings.SoundEnabled)
	assert.Len(t, snap.Catalog, 4)
	assert.Empty(t, snap.Ledger)

	assert.True(t, DrawPhaseRunning.MidRound())
	assert.True(t, DrawPhaseDrawing.MidRound())
	assert.False(t, DrawPhaseShowWinner.MidRound())
	assert.False(t, DrawPhaseIdle.MidRound())
}

func TestWinRecord_UnmarshalTimestampForms(t *testing.T) {
	want := time.Date(2024, 2, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		ts   string
	}{
		{"unix millis", `1707566400000`},
		{"rfc3339", `"2024-02-10T12:00:00.000Z"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rec WinRecord
			raw := `{"id":"w1","userId":"u-1","prizeId":"p-1","timestamp":` + tt.ts + `}`
			require.NoError(t, json.Unmarshal([]byte(raw), &rec))
			assert.Equal(t, "w1", rec.ID)
			assert.Equal(t, "u-1", rec.ParticipantID)
			assert.Equal(t, "p-1", rec.PrizeTierID)
			assert.True(t, want.Equal(rec.Timestamp), "got %s", rec.Timestamp)
		})
	}

	var rec WinRecord
	assert.Error(t, json.Unmarshal([]byte(`{"id":"w1","timestamp":true}`), &rec))
}
