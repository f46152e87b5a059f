package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	devicedomain "github.com/copystack/printledger/internal/device/domain"
	devicerepo "github.com/copystack/printledger/internal/device/repository"
	readingdomain "github.com/copystack/printledger/internal/reading/domain"
	readingrepo "github.com/copystack/printledger/internal/reading/repository"
	wastedomain "github.com/copystack/printledger/internal/waste/domain"
	wasterepo "github.com/copystack/printledger/internal/waste/repository"
)

type harness struct {
	svc  devicedomain.Service
	db   *gorm.DB
	node *snowflake.Node
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&devicedomain.Device{},
		&readingdomain.Reading{},
		&wastedomain.WasteEntry{},
		&wastedomain.WasteSummary{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:          db,
		Log:         zap.NewNop(),
		GenID:       node,
		Repo:        devicerepo.Provide(),
		ReadingRepo: readingrepo.Provide(),
		WasteRepo:   wasterepo.Provide(),
	})

	return &harness{svc: svc, db: db, node: node}
}

func (h *harness) createDevice(t *testing.T) *devicedomain.Response {
	t.Helper()

	dev, err := h.svc.Create(context.Background(), devicedomain.CreateRequest{
		Name:         "hall-mono",
		Class:        "mono",
		Endpoint:     "http://printers.local/hall",
		PricePerPage: "0.50",
		CostPerPage:  "0.05",
	})
	require.NoError(t, err)
	return dev
}

func (h *harness) countRows(t *testing.T, table string, deviceID snowflake.ID) int64 {
	t.Helper()

	var count int64
	require.NoError(t, h.db.Raw(
		"SELECT COUNT(*) FROM "+table+" WHERE device_id = ?", deviceID,
	).Scan(&count).Error)
	return count
}

func TestDelete_RemovesReadingsAndWaste(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	dev := h.createDevice(t)
	devID, err := devicedomain.ParseID(dev.ID)
	require.NoError(t, err)

	require.NoError(t, h.db.Create(&readingdomain.Reading{
		DeviceID:   devID,
		Date:       "2024-01-10",
		Counter:    1000,
		CapturedAt: time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC),
	}).Error)
	require.NoError(t, h.db.Create(&wastedomain.WasteEntry{
		ID:        h.node.Generate(),
		DeviceID:  devID,
		Date:      "2024-01-10",
		Count:     5,
		CreatedAt: time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC),
	}).Error)
	require.NoError(t, h.db.Create(&wastedomain.WasteSummary{
		DeviceID: devID,
		Date:     "2024-01-10",
		Total:    5,
	}).Error)

	require.NoError(t, h.svc.Delete(ctx, dev.ID))

	_, err = h.svc.GetByID(ctx, dev.ID)
	assert.ErrorIs(t, err, devicedomain.ErrNotFound)
	assert.Zero(t, h.countRows(t, "readings", devID))
	assert.Zero(t, h.countRows(t, "waste_entries", devID))
	assert.Zero(t, h.countRows(t, "waste_summaries", devID))
}

func TestDelete_LeavesOtherDevicesAlone(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	doomed := h.createDevice(t)
	kept, err := h.svc.Create(ctx, devicedomain.CreateRequest{
		Name:         "lobby-color",
		Class:        "color",
		Endpoint:     "http://printers.local/lobby",
		PricePerPage: "0.80",
		CostPerPage:  "0.10",
	})
	require.NoError(t, err)
	keptID, err := devicedomain.ParseID(kept.ID)
	require.NoError(t, err)

	require.NoError(t, h.db.Create(&readingdomain.Reading{
		DeviceID:   keptID,
		Date:       "2024-01-10",
		Counter:    500,
		CapturedAt: time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC),
	}).Error)

	require.NoError(t, h.svc.Delete(ctx, doomed.ID))

	assert.Equal(t, int64(1), h.countRows(t, "readings", keptID))
	_, err = h.svc.GetByID(ctx, kept.ID)
	assert.NoError(t, err)
}

func TestDelete_UnknownAndInvalidID(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	assert.ErrorIs(t, h.svc.Delete(ctx, "123456789"), devicedomain.ErrNotFound)
	assert.ErrorIs(t, h.svc.Delete(ctx, "not-a-number"), devicedomain.ErrInvalidID)
}
