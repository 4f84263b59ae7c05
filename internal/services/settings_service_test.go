package services

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ArowuTest/nebula-luck-backend/internal/lottery"
	"github.com/ArowuTest/nebula-luck-backend/internal/models"
	"github.com/ArowuTest/nebula-luck-backend/internal/repositories"
	"github.com/ArowuTest/nebula-luck-backend/internal/utils"
)

func newTestSettings(env *testEnv) *SettingsServiceImpl {
	svc := NewSettingsService(env.repo, env.draws, models.DefaultSettings())
	n := 0
	svc.newID = func() string {
		n++
		return fmt.Sprintf("gen-%d", n)
	}
	return svc
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
func boolPtr(b bool) *bool    { return &b }

func TestSettingsService_UpdateSettings(t *testing.T) {
	env := newTestEnv(t, 3)
	svc := newTestSettings(env)
	ctx := context.Background()

	got, err := svc.UpdateSettings(ctx, models.SettingsUpdate{Title: strPtr("Gala 2024")})
	require.NoError(t, err)
	assert.Equal(t, models.Settings{Title: "Gala 2024", SoundEnabled: true}, got)

	got, err = svc.UpdateSettings(ctx, models.SettingsUpdate{SoundEnabled: boolPtr(false)})
	require.NoError(t, err)
	assert.Equal(t, "Gala 2024", got.Title)
	assert.False(t, got.SoundEnabled)

	assert.Equal(t, got, env.repo.Load(ctx).Settings)
}

func TestSettingsService_UpdateSettingsWritesOnlyChangedSlots(t *testing.T) {
	env := newTestEnv(t, 3)
	svc := newTestSettings(env)
	ctx := context.Background()

	env.store.failWrites(repositories.SlotSound, true)
	got, err := svc.UpdateSettings(ctx, models.SettingsUpdate{Title: strPtr("Gala"), SoundEnabled: boolPtr(true)})
	require.NoError(t, err)
	assert.Equal(t, "Gala", got.Title)

	_, err = svc.UpdateSettings(ctx, models.SettingsUpdate{Title: strPtr("Gala 2025"), SoundEnabled: boolPtr(false)})
	require.ErrorIs(t, err, errDiskFull)

	current := svc.GetSettings(ctx)
	assert.Equal(t, "Gala 2025", current.Title)
	assert.True(t, current.SoundEnabled)
	assert.Equal(t, current, env.repo.Load(ctx).Settings)
}

func TestSettingsService_PrizeCRUD(t *testing.T) {
	env := newTestEnv(t, 3)
	svc := newTestSettings(env)
	ctx := context.Background()

	created, err := svc.CreatePrize(ctx, models.PrizeInput{})
	require.NoError(t, err)
	assert.Equal(t, models.PrizeTier{ID: "gen-1", Name: models.DefaultPrizeName, TotalCount: 1, Level: 5, BatchSize: 1}, created)

	updated, err := svc.UpdatePrize(ctx, "gen-1", models.PrizeInput{Name: strPtr("Bonus"), TotalCount: intPtr(4), BatchSize: intPtr(2)})
	require.NoError(t, err)
	assert.Equal(t, "Bonus", updated.Name)
	assert.Equal(t, 4, updated.TotalCount)
	assert.Equal(t, 5, updated.Level)

	_, err = svc.UpdatePrize(ctx, "gen-1", models.PrizeInput{TotalCount: intPtr(0)})
	assert.ErrorIs(t, err, models.ErrInvalidPrize)

	_, err = svc.UpdatePrize(ctx, "nope", models.PrizeInput{})
	assert.ErrorIs(t, err, ErrPrizeNotFound)

	require.NoError(t, svc.DeletePrize(ctx, "p-1"))
	assert.ErrorIs(t, svc.DeletePrize(ctx, "p-1"), ErrPrizeNotFound)

	prizes := svc.ListPrizes(ctx)
	require.Len(t, prizes, 4)
	assert.Equal(t, "p-2", prizes[0].Prize.ID)
	assert.Equal(t, "gen-1", prizes[3].Prize.ID)

	stored := env.repo.Load(ctx)
	assert.Len(t, stored.Catalog, 4)

	// the selection moves off the deleted tier
	assert.Equal(t, "p-2", env.draws.Status(ctx).CurrentPrizeID)
}

func TestSettingsService_Roster(t *testing.T) {
	env := newTestEnv(t, 3)
	svc := newTestSettings(env)
	ctx := context.Background()

	roster, err := svc.ReplaceRoster(ctx, []models.Participant{{Name: " Alice ", Department: "Ops"}, {ID: "b", Name: "Bob"}})
	require.NoError(t, err)
	assert.Equal(t, []models.Participant{{ID: "gen-1", Name: "Alice", Department: "Ops"}, {ID: "b", Name: "Bob"}}, roster)
	assert.Equal(t, roster, svc.GetRoster(ctx))

	_, err = svc.ReplaceRoster(ctx, []models.Participant{{ID: "x", Name: ""}})
	assert.ErrorIs(t, err, models.ErrInvalidParticipant)
	assert.Len(t, svc.GetRoster(ctx), 2)

	require.NoError(t, svc.ClearRoster(ctx))
	assert.Empty(t, svc.GetRoster(ctx))
	assert.Empty(t, env.repo.Load(ctx).Roster)
}

func TestSettingsService_ImportRoster(t *testing.T) {
	env := newTestEnv(t, 3)
	svc := newTestSettings(env)
	ctx := context.Background()

	imported, err := svc.ImportRoster(ctx, "staff.csv", strings.NewReader("姓名,部门\n甲,A\n乙,B\n"))
	require.NoError(t, err)
	assert.Len(t, imported, 2)
	assert.Equal(t, 2, env.draws.Status(ctx).RosterSize)

	_, err = svc.ImportRoster(ctx, "staff.csv", strings.NewReader("部门\nA\n"))
	assert.ErrorIs(t, err, ErrImportFailed)
	assert.ErrorIs(t, err, utils.ErrNameColumnMissing)
	assert.Equal(t, 2, env.draws.Status(ctx).RosterSize)

	_, err = svc.ImportRoster(ctx, "staff.doc", strings.NewReader(""))
	assert.ErrorIs(t, err, utils.ErrUnsupportedFormat)
}

func TestSettingsService_EditsRefusedMidRound(t *testing.T) {
	env := newTestEnv(t, 3)
	svc := newTestSettings(env)
	ctx := context.Background()

	_, err := env.draws.Start(ctx)
	require.NoError(t, err)

	_, err = svc.CreatePrize(ctx, models.PrizeInput{})
	assert.ErrorIs(t, err, lottery.ErrRoundInProgress)
	_, err = svc.ImportRoster(ctx, "staff.csv", strings.NewReader("姓名\n甲\n"))
	assert.ErrorIs(t, err, lottery.ErrRoundInProgress)

	// presentation settings stay editable
	_, err = svc.UpdateSettings(ctx, models.SettingsUpdate{Title: strPtr("Live")})
	assert.NoError(t, err)
}
