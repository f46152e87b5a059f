// Package day defines the calendar-day key used by readings, waste entries
// and aggregation. Dates are ISO "YYYY-MM-DD" strings so that lexical order
// equals chronological order in both Go and SQL.
package day

import (
	"errors"
	"fmt"
	"time"
)

const layout = "2006-01-02"

// Date is a device-local calendar day in ISO format.
type Date string

var (
	ErrInvalidDate  = errors.New("invalid_date")
	ErrInvalidRange = errors.New("invalid_date_range")
)

// Parse validates an ISO calendar day.
func Parse(value string) (Date, error) {
	t, err := time.Parse(layout, value)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidDate, value)
	}
	return FromTime(t), nil
}

// FromTime truncates an instant to its calendar day in UTC.
func FromTime(t time.Time) Date {
	return Date(t.UTC().Format(layout))
}

// Time returns midnight UTC of the day. Zero time for malformed dates.
func (d Date) Time() time.Time {
	t, err := time.Parse(layout, string(d))
	if err != nil {
		return time.Time{}
	}
	return t
}

func (d Date) String() string { return string(d) }

// AddDays returns the day shifted by n calendar days.
func (d Date) AddDays(n int) Date {
	return FromTime(d.Time().AddDate(0, 0, n))
}

// Before reports whether d is strictly earlier than other.
func (d Date) Before(other Date) bool { return d < other }

// After reports whether d is strictly later than other.
func (d Date) After(other Date) bool { return d > other }

// DaysBetween returns the inclusive day count of [from, to].
func DaysBetween(from, to Date) int {
	return int(to.Time().Sub(from.Time())/(24*time.Hour)) + 1
}

// ValidateRange rejects ranges with to earlier than from.
func ValidateRange(from, to Date) error {
	if from == "" || to == "" {
		return ErrInvalidRange
	}
	if to.Before(from) {
		return ErrInvalidRange
	}
	return nil
}

// MonthBounds returns the first and last day of the month containing d.
func (d Date) MonthBounds() (Date, Date) {
	t := d.Time()
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return FromTime(first), FromTime(last)
}

// DaysInMonth returns the number of days in the month containing d.
func (d Date) DaysInMonth() int {
	first, last := d.MonthBounds()
	return DaysBetween(first, last)
}

// ParseMonth parses a whole-month token ("2024-01") into its day bounds.
func ParseMonth(value string) (Date, Date, error) {
	t, err := time.Parse("2006-01", value)
	if err != nil {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidDate, value)
	}
	first, last := FromTime(t).MonthBounds()
	return first, last, nil
}
