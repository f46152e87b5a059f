package domain

import (
	"context"

	"github.com/copystack/printledger/internal/day"
)

// Period bounds an aggregation request. IncludeFixedCosts opts monthly rent
// into the totals: the full amount when the period is an exact calendar
// month, a per-day proration otherwise. It is a caller choice, never an
// engine default.
type Period struct {
	From              day.Date
	To                day.Date
	IncludeFixedCosts bool
}

// ExactMonth reports whether the period covers one whole calendar month.
func (p Period) ExactMonth() bool {
	first, last := p.From.MonthBounds()
	return p.From == first && p.To == last
}

// DeviceBreakdown is one device's slice of a period.
type DeviceBreakdown struct {
	DeviceID       string  `json:"device_id"`
	Name           string  `json:"name"`
	Class          string  `json:"class"`
	Pages          int64   `json:"pages"`
	EffectivePages int64   `json:"effective_pages"`
	WastePages     int64   `json:"waste_pages"`
	Resets         int     `json:"resets,omitempty"`
	Revenue        float64 `json:"revenue"`
	Cost           float64 `json:"cost"`
	Profit         float64 `json:"profit"`
}

// PeriodSummary is the aggregation output. It is never persisted; every call
// recomputes it from readings, waste, pricing, manual entries and rent.
type PeriodSummary struct {
	From           string            `json:"from"`
	To             string            `json:"to"`
	Pages          int64             `json:"pages"`
	EffectivePages int64             `json:"effective_pages"`
	WastePages     int64             `json:"waste_pages"`
	Revenue        float64           `json:"revenue"`
	Cost           float64           `json:"cost"`
	ManualRevenue  float64           `json:"manual_revenue"`
	ManualCost     float64           `json:"manual_cost"`
	FixedCost      float64           `json:"fixed_cost"`
	Profit         float64           `json:"profit"`
	Devices        []DeviceBreakdown `json:"devices"`
}

// Comparison reports a period against a baseline. Revenue is the compared
// total; a missing or zero baseline yields a zero change percent rather
// than a division by zero.
type Comparison struct {
	Current       *PeriodSummary `json:"current"`
	Previous      *PeriodSummary `json:"previous,omitempty"`
	HasBaseline   bool           `json:"has_baseline"`
	Change        float64        `json:"change"`
	ChangePercent float64        `json:"change_percent"`
}

// BreakEvenReport relates effective page volume to fixed costs and waste
// losses. Manual entries are excluded: break-even is about page economics.
type BreakEvenReport struct {
	From              string  `json:"from"`
	To                string  `json:"to"`
	EffectivePages    int64   `json:"effective_pages"`
	AvgProfitPerPage  float64 `json:"avg_profit_per_page"`
	FixedCost         float64 `json:"fixed_cost"`
	WasteLoss         float64 `json:"waste_loss"`
	BreakEvenPages    int64   `json:"break_even_pages"`
	ProgressPercent   float64 `json:"progress_percent"`
	ReachedBreakEven  bool    `json:"reached_break_even"`
}

// DateSpec is one requested chart point: a single day ("2024-01-15") or a
// whole-month token ("2024-01") collapsed to one data point.
type DateSpec string

// SeriesDevice is one device's contribution to a chart point.
type SeriesDevice struct {
	DeviceID string `json:"device_id"`
	Name     string `json:"name"`
	Pages    int64  `json:"pages"`
}

// SeriesPoint is one labeled point of a per-device time series.
type SeriesPoint struct {
	Label   string         `json:"label"`
	Total   int64          `json:"total"`
	Devices []SeriesDevice `json:"devices"`
}

// Share is one device's slice of the pie view. Zero-value devices are
// excluded before shares are computed.
type Share struct {
	DeviceID string  `json:"device_id"`
	Name     string  `json:"name"`
	Pages    int64   `json:"pages"`
	Percent  float64 `json:"percent"`
}

type Service interface {
	Summarize(ctx context.Context, period Period) (*PeriodSummary, error)
	Compare(ctx context.Context, current, baseline Period) (*Comparison, error)
	// CompareDay compares a day against the nearest earlier day that has a
	// reading, searching back at most 30 calendar days.
	CompareDay(ctx context.Context, date day.Date) (*Comparison, error)
	BreakEven(ctx context.Context, period Period) (*BreakEvenReport, error)
	TimeSeries(ctx context.Context, specs []DateSpec) ([]SeriesPoint, error)
	ShareBreakdown(ctx context.Context, period Period) ([]Share, error)
}

// BaselineLookbackDays bounds the backward search for a comparison baseline.
// Anything older would be a stale baseline silently presented as recent.
const BaselineLookbackDays = 30
