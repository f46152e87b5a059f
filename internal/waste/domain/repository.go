package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/copystack/printledger/internal/day"
	"gorm.io/gorm"
)

type Repository interface {
	InsertEntry(ctx context.Context, db *gorm.DB, entry *WasteEntry) error
	DeleteEntry(ctx context.Context, db *gorm.DB, id snowflake.ID) error
	FindEntry(ctx context.Context, db *gorm.DB, id snowflake.ID) (*WasteEntry, error)
	ListEntries(ctx context.Context, db *gorm.DB, deviceID snowflake.ID, date day.Date) ([]WasteEntry, error)
	// RecomputeSummary rebuilds the (device, date) summary row from the
	// remaining entries; callers run it in the same transaction as the
	// entry mutation. A zero sum deletes the row.
	RecomputeSummary(ctx context.Context, db *gorm.DB, deviceID snowflake.ID, date day.Date) error
	FindSummary(ctx context.Context, db *gorm.DB, deviceID snowflake.ID, date day.Date) (*WasteSummary, error)
	ListSummariesRange(ctx context.Context, db *gorm.DB, deviceID snowflake.ID, from, to day.Date) ([]WasteSummary, error)
	// DeleteByDevice removes all entries and summaries of a device.
	DeleteByDevice(ctx context.Context, db *gorm.DB, deviceID snowflake.ID) error
}
