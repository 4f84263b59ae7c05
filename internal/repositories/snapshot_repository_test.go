package repositories_test

import (
	"context"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ArowuTest/nebula-luck-backend/internal/models"
	"github.com/ArowuTest/nebula-luck-backend/internal/repositories"
	"github.com/ArowuTest/nebula-luck-backend/internal/repositories/filestore"
)

func newTestRepository(t *testing.T) (repositories.SnapshotRepository, repositories.SlotStore) {
	t.Helper()
	store, err := filestore.NewSlotStore(afero.NewMemMapFs(), "/state")
	require.NoError(t, err)
	return repositories.NewSnapshotRepository(store), store
}

func TestLoad_EmptyStoreYieldsDefaults(t *testing.T) {
	repo, _ := newTestRepository(t)

	snap := repo.Load(context.Background())

	assert.Equal(t, models.DefaultSnapshot(), snap)
	assert.Len(t, snap.Roster, models.SampleRosterSize)
}

func TestSaveThenLoad(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	settings := models.Settings{Title: "Annual Party", SoundEnabled: false}
	roster := []models.Participant{{ID: "a", Name: "Alice", Department: "Ops"}}
	catalog := []models.PrizeTier{{ID: "g", Name: "Grand", TotalCount: 2, Level: 0, BatchSize: 1}}
	ledger := []models.WinRecord{{
		ID:            "r1",
		ParticipantID: "a",
		PrizeTierID:   "g",
		Timestamp:     time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}}

	require.NoError(t, repo.SaveTitle(ctx, settings.Title))
	require.NoError(t, repo.SaveSound(ctx, settings.SoundEnabled))
	require.NoError(t, repo.SaveRoster(ctx, roster))
	require.NoError(t, repo.SaveCatalog(ctx, catalog))
	require.NoError(t, repo.SaveLedger(ctx, ledger))

	snap := repo.Load(ctx)

	assert.Equal(t, settings, snap.Settings)
	assert.Equal(t, roster, snap.Roster)
	assert.Equal(t, catalog, snap.Catalog)
	require.Len(t, snap.Ledger, 1)
	assert.True(t, ledger[0].Timestamp.Equal(snap.Ledger[0].Timestamp))
	assert.Equal(t, "r1", snap.Ledger[0].ID)
}

func TestSaveRoster_EmptyRosterStaysEmpty(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.SaveRoster(ctx, nil))

	snap := repo.Load(ctx)
	assert.NotNil(t, snap.Roster)
	assert.Empty(t, snap.Roster)
}

func TestLoad_CorruptSlotsFallBackIndependently(t *testing.T) {
	repo, store := newTestRepository(t)
	ctx := context.Background()

	roster := []models.Participant{{ID: "a", Name: "Alice"}}
	require.NoError(t, repo.SaveRoster(ctx, roster))
	require.NoError(t, store.Put(ctx, repositories.SlotLedger, []byte("{not json")))
	require.NoError(t, store.Put(ctx, repositories.SlotSound, []byte("maybe")))
	require.NoError(t, store.Put(ctx, repositories.SlotCatalog, []byte(`[{"id":"x","name":"X","count":0,"level":0,"batchSize":1}]`)))

	snap := repo.Load(ctx)

	assert.Equal(t, roster, snap.Roster)
	assert.Empty(t, snap.Ledger)
	assert.True(t, snap.Settings.SoundEnabled)
	assert.Equal(t, models.DefaultCatalog(), snap.Catalog)
}

func TestLoad_ReadsLegacySlotFormats(t *testing.T) {
	repo, store := newTestRepository(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, repositories.SlotTitle, []byte("年会抽奖")))
	require.NoError(t, store.Put(ctx, repositories.SlotSound, []byte("false")))
	require.NoError(t, store.Put(ctx, repositories.SlotLedger,
		[]byte(`[{"id":"w1","userId":"u-1","prizeId":"p-1","timestamp":1707566400000}]`)))

	snap := repo.Load(ctx)

	assert.Equal(t, "年会抽奖", snap.Settings.Title)
	assert.False(t, snap.Settings.SoundEnabled)
	require.Len(t, snap.Ledger, 1)
	assert.Equal(t, "u-1", snap.Ledger[0].ParticipantID)
	assert.Equal(t, "p-1", snap.Ledger[0].PrizeTierID)
	assert.True(t, time.Date(2024, 2, 10, 12, 0, 0, 0, time.UTC).Equal(snap.Ledger[0].Timestamp))
}

func TestLoad_NullSlotsFallBackToDefaults(t *testing.T) {
	repo, store := newTestRepository(t)
	ctx := context.Background()

	for _, slot := range []string{repositories.SlotRoster, repositories.SlotCatalog, repositories.SlotLedger} {
		require.NoError(t, store.Put(ctx, slot, []byte("null")))
	}

	snap := repo.Load(ctx)

	assert.Equal(t, models.SampleRoster(), snap.Roster)
	assert.Equal(t, models.DefaultCatalog(), snap.Catalog)
	assert.NotNil(t, snap.Ledger)
	assert.Empty(t, snap.Ledger)
}
