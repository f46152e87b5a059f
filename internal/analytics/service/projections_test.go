package service

import (
	"context"
	"testing"

	analyticsdomain "github.com/copystack/printledger/internal/analytics/domain"
	"github.com/copystack/printledger/internal/day"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeSeries_DayAndMonthSpecs(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	dev := h.seedDevice(t, "hall-mono", "0.5", "0.05")

	h.seedReading(t, dev, "2024-01-09", 1000)
	h.seedReading(t, dev, "2024-01-10", 1040)
	h.seedReading(t, dev, "2024-01-20", 1100)
	h.seedReading(t, dev, "2024-02-05", 1150)

	points, err := h.svc.TimeSeries(ctx, []analyticsdomain.DateSpec{
		"2024-01-10", // single day
		"2024-01",    // whole month collapsed to one point
		"2024-02",
	})
	require.NoError(t, err)
	require.Len(t, points, 3)

	assert.Equal(t, "2024-01-10", points[0].Label)
	assert.Equal(t, int64(40), points[0].Total)

	assert.Equal(t, "2024-01", points[1].Label)
	assert.Equal(t, int64(100), points[1].Total)

	assert.Equal(t, "2024-02", points[2].Label)
	assert.Equal(t, int64(50), points[2].Total)
	require.Len(t, points[2].Devices, 1)
	assert.Equal(t, dev.String(), points[2].Devices[0].DeviceID)
}

func TestTimeSeries_BadSpec(t *testing.T) {
	h := newHarness(t)

	_, err := h.svc.TimeSeries(context.Background(), []analyticsdomain.DateSpec{"not-a-date"})
	assert.ErrorIs(t, err, day.ErrInvalidDate)
}

func TestShareBreakdown(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	busy := h.seedDevice(t, "busy", "0.5", "0.05")
	quiet := h.seedDevice(t, "quiet", "0.5", "0.05")
	h.seedDevice(t, "idle", "0.5", "0.05")

	h.seedReading(t, busy, "2024-01-09", 0)
	h.seedReading(t, busy, "2024-01-10", 75)
	h.seedReading(t, quiet, "2024-01-09", 0)
	h.seedReading(t, quiet, "2024-01-10", 25)

	shares, err := h.svc.ShareBreakdown(ctx, analyticsdomain.Period{From: "2024-01-10", To: "2024-01-10"})
	require.NoError(t, err)
	require.Len(t, shares, 2)

	byID := map[string]analyticsdomain.Share{}
	for _, s := range shares {
		byID[s.DeviceID] = s
	}
	assert.Equal(t, 75.0, byID[busy.String()].Percent)
	assert.Equal(t, 25.0, byID[quiet.String()].Percent)
}

func TestShareBreakdown_NoActivity(t *testing.T) {
	h := newHarness(t)
	h.seedDevice(t, "idle", "0.5", "0.05")

	shares, err := h.svc.ShareBreakdown(context.Background(), analyticsdomain.Period{From: "2024-01-10", To: "2024-01-10"})
	require.NoError(t, err)
	assert.Empty(t, shares)
}
