package domain

import (
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/copystack/printledger/internal/day"
)

// Reading is one cumulative counter fact per (device, day). A later fetch on
// the same day overwrites the earlier one; everything else derives from these.
type Reading struct {
	DeviceID   snowflake.ID `json:"device_id" gorm:"primaryKey;autoIncrement:false"`
	Date       day.Date     `json:"date" gorm:"primaryKey;type:text"`
	Counter    int64        `json:"counter" gorm:"not null"`
	CapturedAt time.Time    `json:"captured_at" gorm:"not null"`
}

// TableName sets the database table name.
func (Reading) TableName() string { return "readings" }

var (
	ErrInvalidDevice  = errors.New("invalid_device")
	ErrInvalidCounter = errors.New("invalid_counter")
	ErrInvalidDate    = errors.New("invalid_date")
)

func ParseID(value string) (snowflake.ID, error) {
	return snowflake.ParseString(value)
}
