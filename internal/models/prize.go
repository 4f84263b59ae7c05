package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidPrize is returned when a prize tier fails validation
var ErrInvalidPrize = errors.New("invalid prize tier")

// DefaultPrizeName is the name given to a newly created prize tier
const DefaultPrizeName = "新奖品"

// PrizeTier defines one prize category of the draw.
// TotalCount is serialized as "count" to stay compatible with stored catalogs.
type PrizeTier struct {
	ID         string `bson:"id" json:"id"`
	Name       string `bson:"name" json:"name"`
	TotalCount int    `bson:"count" json:"count"`         // Capacity of the tier across all rounds
	Level      int    `bson:"level" json:"level"`         // Display order, lower first
	BatchSize  int    `bson:"batchSize" json:"batchSize"` // Winners drawn per round
}

// Validate checks the tier fields
func (p PrizeTier) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidPrize)
	}
	if p.TotalCount < 1 {
		return fmt.Errorf("%w: count must be at least 1 (prize %s)", ErrInvalidPrize, p.ID)
	}
	if p.BatchSize < 1 {
		return fmt.Errorf("%w: batchSize must be at least 1 (prize %s)", ErrInvalidPrize, p.ID)
	}
	return nil
}

// ValidateCatalog validates every tier and checks that ids are unique
func ValidateCatalog(catalog []PrizeTier) error {
	seen := make(map[string]struct{}, len(catalog))
	for _, p := range catalog {
		if err := p.Validate(); err != nil {
			return err
		}
		if _, dup := seen[p.ID]; dup {
			return fmt.Errorf("%w: duplicate id %s", ErrInvalidPrize, p.ID)
		}
		seen[p.ID] = struct{}{}
	}
	return nil
}

// FindPrize returns the tier with the given id
func FindPrize(catalog []PrizeTier, id string) (PrizeTier, bool) {
	for _, p := range catalog {
		if p.ID == id {
			return p, true
		}
	}
	return PrizeTier{}, false
}

// DefaultCatalog returns the catalog used when nothing has been configured yet
func DefaultCatalog() []PrizeTier {
	return []PrizeTier{
		{ID: "p-1", Name: "特等奖：星际旅行券", TotalCount: 1, Level: 0, BatchSize: 1},
		{ID: "p-2", Name: "一等奖：量子计算机", TotalCount: 3, Level: 1, BatchSize: 1},
		{ID: "p-3", Name: "二等奖：全息投影仪", TotalCount: 10, Level: 2, BatchSize: 5},
		{ID: "p-4", Name: "三等奖：赛博机械键盘", TotalCount: 20, Level: 3, BatchSize: 10},
	}
}

// PrizeInput is a create or update request for a tier; nil fields keep their current value
type PrizeInput struct {
	Name       *string `json:"name"`
	TotalCount *int    `json:"count"`
	Level      *int    `json:"level"`
	BatchSize  *int    `json:"batchSize"`
}

// Apply returns p with the non-nil fields of in
func (in PrizeInput) Apply(p PrizeTier) PrizeTier {
	if in.Name != nil {
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.TotalCount != nil {
		p.TotalCount = *in.TotalCount
	}
	if in.Level != nil {
		p.Level = *in.Level
	}
	if in.BatchSize != nil {
		p.BatchSize = *in.BatchSize
	}
	return p
}

// NewPrizeTier returns the tier created by an empty create request
func NewPrizeTier(id string, existing int) PrizeTier {
	return PrizeTier{
		ID:         id,
		Name:       DefaultPrizeName,
		TotalCount: 1,
		Level:      existing + 1,
		BatchSize:  1,
	}
}
