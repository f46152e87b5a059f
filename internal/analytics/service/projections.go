package service

import (
	"context"

	analyticsdomain "github.com/copystack/printledger/internal/analytics/domain"
	"github.com/copystack/printledger/internal/day"
	"github.com/shopspring/decimal"
)

// TimeSeries builds one chart point per spec. A spec is either a single day
// or a month token; a month collapses to one point covering the whole month.
func (s *Service) TimeSeries(ctx context.Context, specs []analyticsdomain.DateSpec) ([]analyticsdomain.SeriesPoint, error) {
	points := make([]analyticsdomain.SeriesPoint, 0, len(specs))
	for _, spec := range specs {
		from, to, err := resolveSpec(spec)
		if err != nil {
			return nil, err
		}

		figures, err := s.foldDevices(ctx, from, to)
		if err != nil {
			return nil, err
		}

		point := analyticsdomain.SeriesPoint{
			Label:   string(spec),
			Devices: make([]analyticsdomain.SeriesDevice, 0, len(figures)),
		}
		for _, f := range figures {
			point.Total += f.pages
			point.Devices = append(point.Devices, analyticsdomain.SeriesDevice{
				DeviceID: f.dev.ID.String(),
				Name:     f.dev.Name,
				Pages:    f.pages,
			})
		}
		points = append(points, point)
	}
	return points, nil
}

// ShareBreakdown splits a period's physical pages across devices. Devices
// that printed nothing are dropped before percentages are computed.
func (s *Service) ShareBreakdown(ctx context.Context, period analyticsdomain.Period) ([]analyticsdomain.Share, error) {
	if err := day.ValidateRange(period.From, period.To); err != nil {
		return nil, err
	}

	figures, err := s.foldDevices(ctx, period.From, period.To)
	if err != nil {
		return nil, err
	}

	var total int64
	for _, f := range figures {
		total += f.pages
	}

	shares := make([]analyticsdomain.Share, 0, len(figures))
	for _, f := range figures {
		if f.pages == 0 {
			continue
		}
		percent := decimal.NewFromInt(f.pages).
			Div(decimal.NewFromInt(total)).
			Mul(decimal.NewFromInt(100))
		shares = append(shares, analyticsdomain.Share{
			DeviceID: f.dev.ID.String(),
			Name:     f.dev.Name,
			Pages:    f.pages,
			Percent:  roundPercent(percent),
		})
	}
	return shares, nil
}

func resolveSpec(spec analyticsdomain.DateSpec) (day.Date, day.Date, error) {
	if d, err := day.Parse(string(spec)); err == nil {
		return d, d, nil
	}
	return day.ParseMonth(string(spec))
}
