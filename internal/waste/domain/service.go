package domain

import (
	"context"
	"time"
)

type Service interface {
	AddEntry(ctx context.Context, req AddEntryRequest) (*EntryResponse, error)
	RemoveEntry(ctx context.Context, id string) error
	EntriesFor(ctx context.Context, deviceID, date string) ([]EntryResponse, error)
	// SummaryFor returns the day's waste total, 0 when no entries exist.
	SummaryFor(ctx context.Context, deviceID, date string) (int64, error)
}

type AddEntryRequest struct {
	DeviceID string `json:"device_id"`
	Date     string `json:"date"`
	Count    int64  `json:"count"`
	Note     string `json:"note"`
	Operator string `json:"operator"`
}

type EntryResponse struct {
	ID        string    `json:"id"`
	DeviceID  string    `json:"device_id"`
	Date      string    `json:"date"`
	Count     int64     `json:"count"`
	Note      string    `json:"note,omitempty"`
	Operator  string    `json:"operator,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
