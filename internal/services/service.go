package services

import (
	"context"
	"io"

	"github.com/ArowuTest/nebula-luck-backend/internal/models"
	"github.com/ArowuTest/nebula-luck-backend/internal/utils"
)

// DrawService defines the draw lifecycle and the guarded edits of the draw state
type DrawService interface {
	// Status returns the current read model
	Status(ctx context.Context) models.DrawStatus

	// Start begins the suspense animation for the selected prize
	Start(ctx context.Context) (models.DrawStatus, error)

	// Stop draws the round winners and schedules their reveal
	Stop(ctx context.Context) (models.RoundResult, error)

	// Acknowledge dismisses the revealed winners
	Acknowledge(ctx context.Context) (models.DrawStatus, error)

	// Reset clears the ledger and returns to idle from any phase
	Reset(ctx context.Context) (models.DrawStatus, error)

	// SelectPrize changes the tier drawn for in the next round
	SelectPrize(ctx context.Context, prizeID string) (models.DrawStatus, error)

	// ClearHistory empties the ledger
	ClearHistory(ctx context.Context) error

	// ReplaceRoster swaps the whole roster
	ReplaceRoster(ctx context.Context, roster []models.Participant) error

	// UpdateCatalog applies fn to the current catalog and stores the result
	UpdateCatalog(ctx context.Context, fn func(catalog []models.PrizeTier) ([]models.PrizeTier, error)) ([]models.PrizeTier, error)

	// Snapshot returns a copy of the roster, catalog and ledger
	Snapshot(ctx context.Context) models.Snapshot
}

// SettingsService defines the configuration surface of the draw
type SettingsService interface {
	GetSettings(ctx context.Context) models.Settings
	UpdateSettings(ctx context.Context, update models.SettingsUpdate) (models.Settings, error)

	ListPrizes(ctx context.Context) []models.PrizeInventory
	CreatePrize(ctx context.Context, input models.PrizeInput) (models.PrizeTier, error)
	UpdatePrize(ctx context.Context, id string, input models.PrizeInput) (models.PrizeTier, error)
	DeletePrize(ctx context.Context, id string) error

	GetRoster(ctx context.Context) []models.Participant
	ReplaceRoster(ctx context.Context, roster []models.Participant) ([]models.Participant, error)
	ClearRoster(ctx context.Context) error
	ImportRoster(ctx context.Context, filename string, r io.Reader) ([]models.Participant, error)
}

// HistoryService defines read and export access to the winner ledger
type HistoryService interface {
	History(ctx context.Context) []models.HistoryRow
	Export(ctx context.Context, w io.Writer, format utils.ExportFormat) error
	ClearHistory(ctx context.Context) error
}

// AuthService defines admin authentication
type AuthService interface {
	Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error)
	ValidateToken(tokenString string) (*models.AdminClaims, error)
}
