package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// Class distinguishes mono and color engines; pricing rules usually differ.
type Class string

const (
	ClassMono  Class = "mono"
	ClassColor Class = "color"
)

// Status is the last observed reachability of a device. It is a side effect
// of refresh outcomes, never set directly by users.
type Status string

const (
	StatusOnline  Status = "online"
	StatusOffline Status = "offline"
	StatusError   Status = "error"
)

// AttributeMap carries the open-ended detail fields reported by printer
// firmware (serial, toner levels, tray names). The field set is unbounded
// across vendors, so it stays a string map rather than a struct.
type AttributeMap map[string]string

func (m AttributeMap) Value() (driver.Value, error) {
	if len(m) == 0 {
		return "{}", nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (m *AttributeMap) Scan(value any) error {
	if value == nil {
		*m = nil
		return nil
	}
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported attribute column type %T", value)
	}
	if len(raw) == 0 {
		*m = nil
		return nil
	}
	return json.Unmarshal(raw, m)
}

// Device is a polled printer plus its pricing rule.
type Device struct {
	ID             snowflake.ID    `json:"id" gorm:"primaryKey"`
	Name           string          `json:"name" gorm:"type:text;not null"`
	Class          Class           `json:"class" gorm:"type:text;not null"`
	Endpoint       string          `json:"endpoint" gorm:"type:text;not null;uniqueIndex"`
	PricePerPage   decimal.Decimal `json:"price_per_page" gorm:"type:numeric;not null"`
	CostPerPage    decimal.Decimal `json:"cost_per_page" gorm:"type:numeric;not null"`
	RevenueFormula string          `json:"revenue_formula" gorm:"type:text"`
	CostFormula    string          `json:"cost_formula" gorm:"type:text"`
	Status         Status          `json:"status" gorm:"type:text;not null;default:offline"`
	LastSeenAt     *time.Time      `json:"last_seen_at"`
	Attributes     AttributeMap    `json:"attributes" gorm:"type:text"`
	CreatedAt      time.Time       `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt      time.Time       `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Device) TableName() string { return "devices" }

var (
	ErrInvalidName     = errors.New("invalid_name")
	ErrInvalidClass    = errors.New("invalid_class")
	ErrInvalidEndpoint = errors.New("invalid_endpoint")
	ErrInvalidRate     = errors.New("invalid_rate")
	ErrInvalidStatus   = errors.New("invalid_status")
	ErrInvalidID       = errors.New("invalid_id")
	ErrNotFound        = errors.New("not_found")
	ErrEndpointInUse   = errors.New("endpoint_in_use")
)

func ParseID(value string) (snowflake.ID, error) {
	return snowflake.ParseString(value)
}

// ValidClass reports whether c is a known printer class.
func ValidClass(c Class) bool {
	return c == ClassMono || c == ClassColor
}

// ValidStatus reports whether s is a known lifecycle status.
func ValidStatus(s Status) bool {
	return s == StatusOnline || s == StatusOffline || s == StatusError
}
