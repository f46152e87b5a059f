package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/copystack/printledger/internal/day"
	"gorm.io/gorm"
)

type Repository interface {
	// Upsert stores the fact for (device, date), last write wins.
	Upsert(ctx context.Context, db *gorm.DB, r *Reading) error
	// ListUpTo returns all readings for a device with date <= to, ascending.
	// Readings before a range start are the baseline for its first delta.
	ListUpTo(ctx context.Context, db *gorm.DB, deviceID snowflake.ID, to day.Date) ([]Reading, error)
	// ListRange returns readings within [from, to], ascending.
	ListRange(ctx context.Context, db *gorm.DB, deviceID snowflake.ID, from, to day.Date) ([]Reading, error)
	// NearestDateBefore returns the most recent date strictly before the
	// given one that has a reading for any device, looking back at most
	// lookbackDays. Empty when none exists.
	NearestDateBefore(ctx context.Context, db *gorm.DB, date day.Date, lookbackDays int) (day.Date, error)
	// DeleteByDevice removes all readings of a device.
	DeleteByDevice(ctx context.Context, db *gorm.DB, deviceID snowflake.ID) error
}
