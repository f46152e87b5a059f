package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/copystack/printledger/internal/clock"
	"github.com/copystack/printledger/internal/collector"
	"github.com/copystack/printledger/internal/config"
	devicedomain "github.com/copystack/printledger/internal/device/domain"
	devicerepo "github.com/copystack/printledger/internal/device/repository"
	deviceservice "github.com/copystack/printledger/internal/device/service"
	readingdomain "github.com/copystack/printledger/internal/reading/domain"
	readingrepo "github.com/copystack/printledger/internal/reading/repository"
	readingservice "github.com/copystack/printledger/internal/reading/service"
	wasterepo "github.com/copystack/printledger/internal/waste/repository"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newScheduler(t *testing.T, intervalMinutes int) (*Scheduler, readingdomain.Service, *devicedomain.Device) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&devicedomain.Device{}, &readingdomain.Reading{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	log := zap.NewNop()
	cfg := config.Config{FetchTimeoutSeconds: 2, RefreshParallelism: 1, RefreshIntervalMinutes: intervalMinutes}
	fake := clock.NewFakeClock(time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC))

	devices := deviceservice.New(deviceservice.Params{DB: db, Log: log, GenID: node, Repo: devicerepo.Provide(), ReadingRepo: readingrepo.Provide(), WasteRepo: wasterepo.Provide()})
	readings := readingservice.New(readingservice.Params{DB: db, Log: log, Repo: readingrepo.Provide()})

	dev := &devicedomain.Device{
		ID:           node.Generate(),
		Name:         "hall-mono",
		Class:        devicedomain.ClassMono,
		Endpoint:     "http://printers.local/hall",
		PricePerPage: decimal.RequireFromString("0.5"),
		CostPerPage:  decimal.RequireFromString("0.05"),
		Status:       devicedomain.StatusOffline,
	}
	require.NoError(t, db.Create(dev).Error)

	coll := collector.New(collector.Params{
		DB:         db,
		Log:        log,
		Cfg:        cfg,
		Clock:      fake,
		DeviceRepo: devicerepo.Provide(),
		Devices:    devices,
		Readings:   readings,
	})
	collector.StubFetcherForTest(coll, 4242)

	sched := New(Params{Log: log, Cfg: cfg, Clock: fake, Collector: coll})
	return sched, readings, dev
}

func TestRunOnce_RecordsReadings(t *testing.T) {
	sched, readings, dev := newScheduler(t, 15)
	ctx := context.Background()

	require.NoError(t, sched.RunOnce(ctx))

	history, err := readings.History(ctx, dev.ID.String(), "2024-01-10", "2024-01-10")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, int64(4242), history[0].Counter)
}

func TestEnabled(t *testing.T) {
	on, _, _ := newScheduler(t, 15)
	assert.True(t, on.Enabled())

	off, _, _ := newScheduler(t, 0)
	assert.False(t, off.Enabled())
}
