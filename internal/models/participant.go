package models

import (
	"errors"
	"fmt"
	"strings"
)

// Participant represents a person on the draw roster
type Participant struct {
	ID         string `bson:"id" json:"id"`
	Name       string `bson:"name" json:"name"`
	Department string `bson:"department" json:"department"`
}

// SampleRosterSize is the number of participants in the built-in sample roster
const SampleRosterSize = 100

// SampleRoster returns the roster used when nothing has been configured yet
func SampleRoster() []Participant {
	roster := make([]Participant, 0, SampleRosterSize)
	for i := 1; i <= SampleRosterSize; i++ {
		roster = append(roster, Participant{
			ID:         fmt.Sprintf("u-%d", i),
			Name:       fmt.Sprintf("人员-%d", i),
			Department: "科技部",
		})
	}
	return roster
}

// ErrInvalidParticipant is returned when a roster entry fails validation
var ErrInvalidParticipant = errors.New("invalid participant")

// NormalizeRoster trims names, assigns ids from newID where missing and
// rejects blank names and duplicate ids
func NormalizeRoster(roster []Participant, newID func() string) ([]Participant, error) {
	out := make([]Participant, 0, len(roster))
	seen := make(map[string]struct{}, len(roster))
	for i, p := range roster {
		p.Name = strings.TrimSpace(p.Name)
		p.Department = strings.TrimSpace(p.Department)
		p.ID = strings.TrimSpace(p.ID)
		if p.Name == "" {
			return nil, fmt.Errorf("%w: entry %d has no name", ErrInvalidParticipant, i+1)
		}
		if p.ID == "" {
			p.ID = newID()
		}
		if _, dup := seen[p.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %s", ErrInvalidParticipant, p.ID)
		}
		seen[p.ID] = struct{}{}
		out = append(out, p)
	}
	return out, nil
}
