package service

import (
	"context"

	analyticsdomain "github.com/copystack/printledger/internal/analytics/domain"
	"github.com/copystack/printledger/internal/day"
	devicedomain "github.com/copystack/printledger/internal/device/domain"
	manualdomain "github.com/copystack/printledger/internal/manualentry/domain"
	"github.com/copystack/printledger/internal/pricing"
	readingdomain "github.com/copystack/printledger/internal/reading/domain"
	"github.com/copystack/printledger/internal/reconcile"
	"github.com/copystack/printledger/internal/settings"
	wastedomain "github.com/copystack/printledger/internal/waste/domain"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	DeviceRepo  devicedomain.Repository
	ReadingRepo readingdomain.Repository
	WasteRepo   wastedomain.Repository
	ManualRepo  manualdomain.Repository
	Settings    settings.Service
	Pricing     *pricing.Resolver
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	deviceRepo  devicedomain.Repository
	readingRepo readingdomain.Repository
	wasteRepo   wastedomain.Repository
	manualRepo  manualdomain.Repository
	settings    settings.Service
	pricing     *pricing.Resolver
}

func New(p Params) analyticsdomain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("analytics.service"),
		deviceRepo:  p.DeviceRepo,
		readingRepo: p.ReadingRepo,
		wasteRepo:   p.WasteRepo,
		manualRepo:  p.ManualRepo,
		settings:    p.Settings,
		pricing:     p.Pricing,
	}
}

// deviceFigures keeps a device's fold unrounded until presentation.
type deviceFigures struct {
	dev            *devicedomain.Device
	pages          int64
	effectivePages int64
	wastePages     int64
	resets         int
	revenue        decimal.Decimal
	cost           decimal.Decimal
}

func (s *Service) Summarize(ctx context.Context, period analyticsdomain.Period) (*analyticsdomain.PeriodSummary, error) {
	if err := day.ValidateRange(period.From, period.To); err != nil {
		return nil, err
	}

	figures, err := s.foldDevices(ctx, period.From, period.To)
	if err != nil {
		return nil, err
	}

	summary := &analyticsdomain.PeriodSummary{
		From:    period.From.String(),
		To:      period.To.String(),
		Devices: make([]analyticsdomain.DeviceBreakdown, 0, len(figures)),
	}

	revenue := decimal.Zero
	cost := decimal.Zero
	for _, f := range figures {
		summary.Pages += f.pages
		summary.EffectivePages += f.effectivePages
		summary.WastePages += f.wastePages
		revenue = revenue.Add(f.revenue)
		cost = cost.Add(f.cost)

		summary.Devices = append(summary.Devices, analyticsdomain.DeviceBreakdown{
			DeviceID:       f.dev.ID.String(),
			Name:           f.dev.Name,
			Class:          string(f.dev.Class),
			Pages:          f.pages,
			EffectivePages: f.effectivePages,
			WastePages:     f.wastePages,
			Resets:         f.resets,
			Revenue:        roundMoney(f.revenue),
			Cost:           roundMoney(f.cost),
			Profit:         roundMoney(f.revenue.Sub(f.cost)),
		})
	}

	manualRevenue, manualCost, err := s.manualSums(ctx, period.From, period.To)
	if err != nil {
		return nil, err
	}

	fixedCost := decimal.Zero
	if period.IncludeFixedCosts {
		fixedCost, err = s.fixedCost(ctx, period)
		if err != nil {
			return nil, err
		}
	}

	totalRevenue := revenue.Add(manualRevenue)
	totalCost := cost.Add(manualCost)
	profit := totalRevenue.Sub(totalCost).Sub(fixedCost)

	// One rounding pass, applied to the folded sums at the edge.
	summary.Revenue = roundMoney(totalRevenue)
	summary.Cost = roundMoney(totalCost)
	summary.ManualRevenue = roundMoney(manualRevenue)
	summary.ManualCost = roundMoney(manualCost)
	summary.FixedCost = roundMoney(fixedCost)
	summary.Profit = roundMoney(profit)
	return summary, nil
}

func (s *Service) Compare(ctx context.Context, current, baseline analyticsdomain.Period) (*analyticsdomain.Comparison, error) {
	cur, err := s.Summarize(ctx, current)
	if err != nil {
		return nil, err
	}
	prev, err := s.Summarize(ctx, baseline)
	if err != nil {
		return nil, err
	}
	return buildComparison(cur, prev), nil
}

func (s *Service) CompareDay(ctx context.Context, date day.Date) (*analyticsdomain.Comparison, error) {
	if _, err := day.Parse(date.String()); err != nil {
		return nil, err
	}

	cur, err := s.Summarize(ctx, analyticsdomain.Period{From: date, To: date})
	if err != nil {
		return nil, err
	}

	baselineDate, err := s.readingRepo.NearestDateBefore(ctx, s.db, date, analyticsdomain.BaselineLookbackDays)
	if err != nil {
		return nil, err
	}
	if baselineDate == "" {
		// No reading within the lookback window: report "no comparable
		// baseline" instead of silently using a far-distant one.
		return &analyticsdomain.Comparison{
			Current:       cur,
			HasBaseline:   false,
			Change:        0,
			ChangePercent: 0,
		}, nil
	}

	prev, err := s.Summarize(ctx, analyticsdomain.Period{From: baselineDate, To: baselineDate})
	if err != nil {
		return nil, err
	}
	return buildComparison(cur, prev), nil
}

func (s *Service) BreakEven(ctx context.Context, period analyticsdomain.Period) (*analyticsdomain.BreakEvenReport, error) {
	if err := day.ValidateRange(period.From, period.To); err != nil {
		return nil, err
	}

	figures, err := s.foldDevices(ctx, period.From, period.To)
	if err != nil {
		return nil, err
	}

	var (
		effective int64
		revenue   = decimal.Zero
		cost      = decimal.Zero
		wasteLoss = decimal.Zero
	)
	for _, f := range figures {
		effective += f.effectivePages
		revenue = revenue.Add(f.revenue)
		cost = cost.Add(f.cost)
		// Wasted pages consumed consumables without earning; their cost
		// is the loss break-even volume has to absorb.
		wasteLoss = wasteLoss.Add(s.pricing.Cost(f.dev, f.wastePages))
	}

	fixedCost, err := s.fixedCost(ctx, period)
	if err != nil {
		return nil, err
	}

	report := &analyticsdomain.BreakEvenReport{
		From:           period.From.String(),
		To:             period.To.String(),
		EffectivePages: effective,
		FixedCost:      roundMoney(fixedCost),
		WasteLoss:      roundMoney(wasteLoss),
	}

	if effective == 0 {
		return report, nil
	}

	avgProfit := revenue.Sub(cost).Div(decimal.NewFromInt(effective))
	report.AvgProfitPerPage = roundMoney(avgProfit)
	if avgProfit.LessThanOrEqual(decimal.Zero) {
		return report, nil
	}

	breakEvenPages := fixedCost.Add(wasteLoss).Div(avgProfit).Ceil().IntPart()
	report.BreakEvenPages = breakEvenPages
	if breakEvenPages <= 0 {
		report.ProgressPercent = 100
		report.ReachedBreakEven = true
		return report, nil
	}

	progress := decimal.NewFromInt(effective).
		Div(decimal.NewFromInt(breakEvenPages)).
		Mul(decimal.NewFromInt(100))
	if progress.GreaterThanOrEqual(decimal.NewFromInt(100)) {
		progress = decimal.NewFromInt(100)
		report.ReachedBreakEven = true
	}
	report.ProgressPercent = roundPercent(progress)
	return report, nil
}

// foldDevices runs the reconciliation fold for every registered device.
// Readings or waste rows referencing a removed device are skipped by
// construction: only registered devices are walked.
func (s *Service) foldDevices(ctx context.Context, from, to day.Date) ([]deviceFigures, error) {
	devices, err := s.deviceRepo.List(ctx, s.db)
	if err != nil {
		return nil, err
	}

	out := make([]deviceFigures, 0, len(devices))
	for i := range devices {
		dev := &devices[i]

		history, err := s.readingRepo.ListUpTo(ctx, s.db, dev.ID, to)
		if err != nil {
			return nil, err
		}
		deltas, err := reconcile.Deltas(history, from, to)
		if err != nil {
			return nil, err
		}

		summaries, err := s.wasteRepo.ListSummariesRange(ctx, s.db, dev.ID, from, to)
		if err != nil {
			return nil, err
		}
		wasteByDate := make(map[day.Date]int64, len(summaries))
		var wastePages int64
		for _, w := range summaries {
			wasteByDate[w.Date] = w.Total
			wastePages += w.Total
		}

		f := deviceFigures{
			dev:        dev,
			wastePages: wastePages,
			revenue:    decimal.Zero,
			cost:       decimal.Zero,
		}
		for _, d := range deltas {
			f.pages += d.Pages
			if d.Reset {
				f.resets++
			}

			// Cost is charged on physical pages; revenue only on the
			// billable remainder. Waste beyond the day's delta clamps
			// effective to zero rather than going negative.
			effective := d.Pages - wasteByDate[d.Date]
			if effective < 0 {
				effective = 0
			}
			f.effectivePages += effective
			f.revenue = f.revenue.Add(s.pricing.Revenue(dev, effective))
			f.cost = f.cost.Add(s.pricing.Cost(dev, d.Pages))
		}
		out = append(out, f)
	}
	return out, nil
}

func (s *Service) manualSums(ctx context.Context, from, to day.Date) (decimal.Decimal, decimal.Decimal, error) {
	entries, err := s.manualRepo.ListRange(ctx, s.db, from, to)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	amount := decimal.Zero
	cost := decimal.Zero
	for _, e := range entries {
		amount = amount.Add(e.Amount)
		cost = cost.Add(e.Cost)
	}
	return amount, cost, nil
}

// fixedCost resolves the rent share of a period: the full amount for an
// exact calendar month, a per-day proration otherwise.
func (s *Service) fixedCost(ctx context.Context, period analyticsdomain.Period) (decimal.Decimal, error) {
	rent, err := s.settings.MonthlyRent(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	if rent.IsZero() {
		return decimal.Zero, nil
	}
	if period.ExactMonth() {
		return rent, nil
	}

	daysInMonth := decimal.NewFromInt(int64(period.From.DaysInMonth()))
	days := decimal.NewFromInt(int64(day.DaysBetween(period.From, period.To)))
	return rent.Div(daysInMonth).Mul(days), nil
}

func buildComparison(cur, prev *analyticsdomain.PeriodSummary) *analyticsdomain.Comparison {
	change := cur.Revenue - prev.Revenue

	changePercent := 0.0
	if prev.Revenue != 0 {
		changePercent = roundPercentFloat(change / prev.Revenue * 100)
	}

	return &analyticsdomain.Comparison{
		Current:       cur,
		Previous:      prev,
		HasBaseline:   true,
		Change:        roundMoneyFloat(change),
		ChangePercent: changePercent,
	}
}

func roundMoney(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

func roundPercent(d decimal.Decimal) float64 {
	return d.Round(1).InexactFloat64()
}

func roundMoneyFloat(f float64) float64 {
	return decimal.NewFromFloat(f).Round(2).InexactFloat64()
}

func roundPercentFloat(f float64) float64 {
	return decimal.NewFromFloat(f).Round(1).InexactFloat64()
}
