package services

import (
	"context"
	"io"
	"time"

	"github.com/ArowuTest/nebula-luck-backend/internal/lottery"
	"github.com/ArowuTest/nebula-luck-backend/internal/models"
	"github.com/ArowuTest/nebula-luck-backend/internal/utils"
)

// HistoryServiceImpl implements HistoryService
type HistoryServiceImpl struct {
	draws    DrawService
	location *time.Location
}

var _ HistoryService = (*HistoryServiceImpl)(nil)

// NewHistoryService creates a new HistoryService. Exported timestamps are
// rendered in loc; nil means the local zone.
func NewHistoryService(draws DrawService, loc *time.Location) *HistoryServiceImpl {
	if loc == nil {
		loc = time.Local
	}
	return &HistoryServiceImpl{draws: draws, location: loc}
}

// History returns the enriched ledger, newest first
func (s *HistoryServiceImpl) History(ctx context.Context) []models.HistoryRow {
	snap := s.draws.Snapshot(ctx)
	return lottery.History(snap.Roster, snap.Catalog, snap.Ledger)
}

// Export writes the history in the given format
func (s *HistoryServiceImpl) Export(ctx context.Context, w io.Writer, format utils.ExportFormat) error {
	return utils.WriteHistory(w, format, s.History(ctx), s.location)
}

// ClearHistory empties the ledger
func (s *HistoryServiceImpl) ClearHistory(ctx context.Context) error {
	return s.draws.ClearHistory(ctx)
}
