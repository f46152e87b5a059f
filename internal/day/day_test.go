package day

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	d, err := Parse("2024-01-10")
	require.NoError(t, err)
	assert.Equal(t, Date("2024-01-10"), d)

	_, err = Parse("2024-13-01")
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = Parse("10/01/2024")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestOrderingAndArithmetic(t *testing.T) {
	a := Date("2024-01-31")
	b := a.AddDays(1)
	assert.Equal(t, Date("2024-02-01"), b)
	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.Equal(t, 2, DaysBetween(a, b))
	assert.Equal(t, 1, DaysBetween(a, a))
}

func TestValidateRange(t *testing.T) {
	assert.NoError(t, ValidateRange("2024-01-01", "2024-01-31"))
	assert.NoError(t, ValidateRange("2024-01-01", "2024-01-01"))
	assert.ErrorIs(t, ValidateRange("2024-01-02", "2024-01-01"), ErrInvalidRange)
	assert.ErrorIs(t, ValidateRange("", "2024-01-01"), ErrInvalidRange)
}

func TestMonthBounds(t *testing.T) {
	first, last := Date("2024-02-15").MonthBounds()
	assert.Equal(t, Date("2024-02-01"), first)
	assert.Equal(t, Date("2024-02-29"), last) // leap year
	assert.Equal(t, 29, Date("2024-02-15").DaysInMonth())

	first, last, err := ParseMonth("2023-02")
	require.NoError(t, err)
	assert.Equal(t, Date("2023-02-01"), first)
	assert.Equal(t, Date("2023-02-28"), last)

	_, _, err = ParseMonth("2023-02-01")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestFromTime(t *testing.T) {
	loc := time.FixedZone("UTC+7", 7*3600)
	// 02:00 on Jan 2 in UTC+7 is still Jan 1 in UTC.
	instant := time.Date(2024, 1, 2, 2, 0, 0, 0, loc)
	assert.Equal(t, Date("2024-01-01"), FromTime(instant))
}
