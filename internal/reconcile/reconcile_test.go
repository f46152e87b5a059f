package reconcile

import (
	"testing"

	"github.com/copystack/printledger/internal/day"
	readingdomain "github.com/copystack/printledger/internal/reading/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func r(date string, counter int64) readingdomain.Reading {
	return readingdomain.Reading{Date: day.Date(date), Counter: counter}
}

func TestDeltas_GapSkipping(t *testing.T) {
	readings := []readingdomain.Reading{
		r("2024-01-01", 100),
		r("2024-01-04", 130),
	}

	deltas, err := Deltas(readings, "2024-01-01", "2024-01-07")
	require.NoError(t, err)

	// Days 2-3 are absent, not zero-filled; the full delta lands on day 4.
	require.Len(t, deltas, 1)
	assert.Equal(t, day.Date("2024-01-04"), deltas[0].Date)
	assert.Equal(t, int64(30), deltas[0].Pages)
	assert.False(t, deltas[0].Reset)
}

func TestDeltas_FirstReadingSeedsBaselineOnly(t *testing.T) {
	readings := []readingdomain.Reading{
		r("2024-01-01", 1000),
		r("2024-01-02", 1050),
	}

	deltas, err := Deltas(readings, "2024-01-01", "2024-01-02")
	require.NoError(t, err)

	require.Len(t, deltas, 1)
	assert.Equal(t, day.Date("2024-01-02"), deltas[0].Date)
	assert.Equal(t, int64(50), deltas[0].Pages)
}

func TestDeltas_BaselineBeforeRange(t *testing.T) {
	readings := []readingdomain.Reading{
		r("2023-12-28", 900),
		r("2024-01-02", 950),
	}

	deltas, err := Deltas(readings, "2024-01-01", "2024-01-31")
	require.NoError(t, err)

	require.Len(t, deltas, 1)
	assert.Equal(t, day.Date("2024-01-02"), deltas[0].Date)
	assert.Equal(t, int64(50), deltas[0].Pages)
}

func TestDeltas_ResetClampsToZero(t *testing.T) {
	readings := []readingdomain.Reading{
		r("2024-01-01", 5000),
		r("2024-01-02", 120), // hardware reset
		r("2024-01-03", 180),
	}

	deltas, err := Deltas(readings, "2024-01-01", "2024-01-03")
	require.NoError(t, err)

	require.Len(t, deltas, 2)
	assert.Equal(t, int64(0), deltas[0].Pages)
	assert.True(t, deltas[0].Reset)
	// Counting resumes from the post-reset baseline.
	assert.Equal(t, int64(60), deltas[1].Pages)
	assert.False(t, deltas[1].Reset)
}

func TestDeltas_NonNegativity(t *testing.T) {
	sequences := [][]int64{
		{0, 10, 5, 5, 20, 3},
		{100, 100, 100},
		{50, 0, 50, 0},
		{1 << 40, 10, 1 << 41},
	}

	for _, counters := range sequences {
		readings := make([]readingdomain.Reading, 0, len(counters))
		date := day.Date("2024-03-01")
		for _, c := range counters {
			readings = append(readings, readingdomain.Reading{Date: date, Counter: c})
			date = date.AddDays(1)
		}

		deltas, err := Deltas(readings, "2024-03-01", "2024-03-31")
		require.NoError(t, err)
		for _, d := range deltas {
			assert.GreaterOrEqual(t, d.Pages, int64(0))
		}
	}
}

func TestDeltas_UnsortedInput(t *testing.T) {
	// Out-of-order backfills must not corrupt the walk.
	readings := []readingdomain.Reading{
		r("2024-01-03", 130),
		r("2024-01-01", 100),
		r("2024-01-02", 110),
	}

	deltas, err := Deltas(readings, "2024-01-01", "2024-01-03")
	require.NoError(t, err)

	require.Len(t, deltas, 2)
	assert.Equal(t, int64(10), deltas[0].Pages)
	assert.Equal(t, int64(20), deltas[1].Pages)
}

func TestDeltas_ReadingsAfterRangeIgnored(t *testing.T) {
	readings := []readingdomain.Reading{
		r("2024-01-01", 100),
		r("2024-01-02", 150),
		r("2024-02-01", 900),
	}

	deltas, err := Deltas(readings, "2024-01-01", "2024-01-31")
	require.NoError(t, err)

	require.Len(t, deltas, 1)
	assert.Equal(t, int64(50), deltas[0].Pages)
	assert.Equal(t, int64(50), Sum(deltas))
}

func TestDeltas_InvalidRange(t *testing.T) {
	_, err := Deltas(nil, "2024-01-02", "2024-01-01")
	assert.ErrorIs(t, err, day.ErrInvalidRange)
}

func TestDeltas_Empty(t *testing.T) {
	deltas, err := Deltas(nil, "2024-01-01", "2024-01-31")
	require.NoError(t, err)
	assert.Empty(t, deltas)
}
