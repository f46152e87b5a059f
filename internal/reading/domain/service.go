package domain

import (
	"context"
	"time"

	"github.com/copystack/printledger/internal/day"
)

type Service interface {
	// Record upserts the cumulative counter for (device, date).
	Record(ctx context.Context, req RecordRequest) (*Response, error)
	// History lists the stored facts in [from, to].
	History(ctx context.Context, deviceID string, from, to day.Date) ([]Response, error)
	// Deltas reconciles the counter history into daily increments over
	// [from, to]. Days without a reading produce no entry.
	Deltas(ctx context.Context, deviceID string, from, to day.Date) ([]DeltaResponse, error)
}

type RecordRequest struct {
	DeviceID   string    `json:"device_id"`
	Date       string    `json:"date"`
	Counter    int64     `json:"counter"`
	CapturedAt time.Time `json:"captured_at"`
}

type Response struct {
	DeviceID   string    `json:"device_id"`
	Date       string    `json:"date"`
	Counter    int64     `json:"counter"`
	CapturedAt time.Time `json:"captured_at"`
}

type DeltaResponse struct {
	Date  string `json:"date"`
	Delta int64  `json:"delta"`
	Reset bool   `json:"reset,omitempty"`
}
