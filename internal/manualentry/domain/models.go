package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/copystack/printledger/internal/day"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ManualEntry is revenue or cost recorded by hand, independent of any
// device: lamination jobs, supply purchases, one-off services.
type ManualEntry struct {
	ID          snowflake.ID    `json:"id" gorm:"primaryKey"`
	Date        day.Date        `json:"date" gorm:"type:text;not null;index"`
	Amount      decimal.Decimal `json:"amount" gorm:"type:numeric;not null"`
	Cost        decimal.Decimal `json:"cost" gorm:"type:numeric;not null"`
	Description string          `json:"description" gorm:"type:text"`
	Category    string          `json:"category" gorm:"type:text"`
	Operator    string          `json:"operator" gorm:"type:text"`
	CreatedAt   time.Time       `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (ManualEntry) TableName() string { return "manual_entries" }

var (
	ErrInvalidDate   = errors.New("invalid_date")
	ErrInvalidAmount = errors.New("invalid_amount")
	ErrInvalidID     = errors.New("invalid_id")
	ErrNotFound      = errors.New("not_found")
)

func ParseID(value string) (snowflake.ID, error) {
	return snowflake.ParseString(value)
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, entry *ManualEntry) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*ManualEntry, error)
	ListRange(ctx context.Context, db *gorm.DB, from, to day.Date) ([]ManualEntry, error)
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Response, error)
	Delete(ctx context.Context, id string) error
	ListRange(ctx context.Context, from, to day.Date) ([]Response, error)
}

type CreateRequest struct {
	Date        string `json:"date"`
	Amount      string `json:"amount"`
	Cost        string `json:"cost"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Operator    string `json:"operator"`
}

type Response struct {
	ID          string    `json:"id"`
	Date        string    `json:"date"`
	Amount      string    `json:"amount"`
	Cost        string    `json:"cost"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category,omitempty"`
	Operator    string    `json:"operator,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
