package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	readingdomain "github.com/copystack/printledger/internal/reading/domain"
	readingrepo "github.com/copystack/printledger/internal/reading/repository"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (readingdomain.Service, *snowflake.Node) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&readingdomain.Reading{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:   db,
		Log:  zap.NewNop(),
		Repo: readingrepo.Provide(),
	})
	return svc, node
}

func TestRecord_LastWriteWins(t *testing.T) {
	svc, node := newTestService(t)
	ctx := context.Background()
	deviceID := node.Generate().String()

	_, err := svc.Record(ctx, readingdomain.RecordRequest{
		DeviceID: deviceID,
		Date:     "2024-01-10",
		Counter:  1000,
	})
	require.NoError(t, err)

	// A later fetch on the same day replaces the earlier fact.
	_, err = svc.Record(ctx, readingdomain.RecordRequest{
		DeviceID: deviceID,
		Date:     "2024-01-10",
		Counter:  1025,
	})
	require.NoError(t, err)

	history, err := svc.History(ctx, deviceID, "2024-01-10", "2024-01-10")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, int64(1025), history[0].Counter)
}

func TestRecord_Validation(t *testing.T) {
	svc, node := newTestService(t)
	ctx := context.Background()

	_, err := svc.Record(ctx, readingdomain.RecordRequest{
		DeviceID: "not-a-snowflake!",
		Date:     "2024-01-10",
		Counter:  1,
	})
	assert.ErrorIs(t, err, readingdomain.ErrInvalidDevice)

	_, err = svc.Record(ctx, readingdomain.RecordRequest{
		DeviceID: node.Generate().String(),
		Date:     "2024-01-10",
		Counter:  -5,
	})
	assert.ErrorIs(t, err, readingdomain.ErrInvalidCounter)

	_, err = svc.Record(ctx, readingdomain.RecordRequest{
		DeviceID: node.Generate().String(),
		Date:     "January 10",
		Counter:  5,
	})
	assert.ErrorIs(t, err, readingdomain.ErrInvalidDate)
}

func TestDeltas_ThroughStore(t *testing.T) {
	svc, node := newTestService(t)
	ctx := context.Background()
	deviceID := node.Generate().String()

	for _, fact := range []struct {
		date    string
		counter int64
	}{
		{"2024-01-01", 1000},
		{"2024-01-02", 1050},
		{"2024-01-04", 1120}, // day 3 missing
	} {
		_, err := svc.Record(ctx, readingdomain.RecordRequest{
			DeviceID: deviceID,
			Date:     fact.date,
			Counter:  fact.counter,
		})
		require.NoError(t, err)
	}

	deltas, err := svc.Deltas(ctx, deviceID, "2024-01-01", "2024-01-07")
	require.NoError(t, err)

	// Day 1 is baseline only; day 3 has no row at all.
	require.Len(t, deltas, 2)
	assert.Equal(t, "2024-01-02", deltas[0].Date)
	assert.Equal(t, int64(50), deltas[0].Delta)
	assert.Equal(t, "2024-01-04", deltas[1].Date)
	assert.Equal(t, int64(70), deltas[1].Delta)
}
