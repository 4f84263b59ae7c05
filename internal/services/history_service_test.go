package services

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ArowuTest/nebula-luck-backend/internal/models"
	"github.com/ArowuTest/nebula-luck-backend/internal/utils"
)

func TestHistoryService(t *testing.T) {
	env := newTestEnv(t, 4, models.PrizeTier{ID: "p", Name: "Grand", TotalCount: 2, BatchSize: 2})
	svc := NewHistoryService(env.draws, time.UTC)
	ctx := context.Background()

	assert.Empty(t, svc.History(ctx))

	_, err := env.draws.Start(ctx)
	require.NoError(t, err)
	_, err = env.draws.Stop(ctx)
	require.NoError(t, err)
	env.scheduler.last(t).Fire()

	rows := svc.History(ctx)
	require.Len(t, rows, 2)
	assert.Equal(t, "Grand", rows[0].PrizeName)
	assert.Equal(t, "QA", rows[0].Department)

	var buf bytes.Buffer
	require.NoError(t, svc.Export(ctx, &buf, utils.ExportFormatCSV))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 3)

	_, err = env.draws.Acknowledge(ctx)
	require.NoError(t, err)
	require.NoError(t, svc.ClearHistory(ctx))
	assert.Empty(t, svc.History(ctx))
}
