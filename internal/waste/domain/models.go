package domain

import (
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/copystack/printledger/internal/day"
)

// WasteEntry is one itemized record of pages produced but not billable
// (misprints, jams, test pages). Entries are the source of truth.
type WasteEntry struct {
	ID        snowflake.ID `json:"id" gorm:"primaryKey"`
	DeviceID  snowflake.ID `json:"device_id" gorm:"not null;index:ix_waste_entries_device_date,priority:1"`
	Date      day.Date     `json:"date" gorm:"type:text;not null;index:ix_waste_entries_device_date,priority:2"`
	Count     int64        `json:"count" gorm:"not null"`
	Note      string       `json:"note" gorm:"type:text"`
	Operator  string       `json:"operator" gorm:"type:text"`
	CreatedAt time.Time    `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (WasteEntry) TableName() string { return "waste_entries" }

// WasteSummary is the derived per-day total, denormalized as a fast lookup
// for aggregation. A row exists iff the day's waste is positive.
type WasteSummary struct {
	DeviceID snowflake.ID `json:"device_id" gorm:"primaryKey;autoIncrement:false"`
	Date     day.Date     `json:"date" gorm:"primaryKey;type:text"`
	Total    int64        `json:"total" gorm:"not null"`
}

// TableName sets the database table name.
func (WasteSummary) TableName() string { return "waste_summaries" }

var (
	ErrInvalidDevice = errors.New("invalid_device")
	ErrInvalidDate   = errors.New("invalid_date")
	ErrInvalidCount  = errors.New("invalid_count")
	ErrInvalidID     = errors.New("invalid_id")
	ErrNotFound      = errors.New("not_found")
)

func ParseID(value string) (snowflake.ID, error) {
	return snowflake.ParseString(value)
}
