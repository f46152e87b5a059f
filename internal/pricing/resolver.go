// Package pricing maps a device and a page count to money. Devices default
// to a linear per-page rate; an optional formula overrides it for tiered or
// non-linear pricing, falling back to the linear rate whenever the formula
// is rejected or fails to produce a finite number.
package pricing

import (
	devicedomain "github.com/copystack/printledger/internal/device/domain"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Quote is the priced outcome for a page count.
type Quote struct {
	Revenue decimal.Decimal
	Cost    decimal.Decimal
}

type Resolver struct {
	log *zap.Logger
}

type Params struct {
	fx.In

	Log *zap.Logger
}

func NewResolver(p Params) *Resolver {
	return &Resolver{log: p.Log.Named("pricing.resolver")}
}

// Price quotes revenue and cost for the given page count. Callers pass
// effective pages for revenue and physical pages for cost; the resolver
// itself is oblivious to the split.
func (r *Resolver) Price(dev *devicedomain.Device, pages int64) Quote {
	return Quote{
		Revenue: r.Revenue(dev, pages),
		Cost:    r.Cost(dev, pages),
	}
}

// Revenue quotes only the revenue side.
func (r *Resolver) Revenue(dev *devicedomain.Device, pages int64) decimal.Decimal {
	return r.amount(dev, dev.RevenueFormula, dev.PricePerPage, pages, "revenue")
}

// Cost quotes only the cost side.
func (r *Resolver) Cost(dev *devicedomain.Device, pages int64) decimal.Decimal {
	return r.amount(dev, dev.CostFormula, dev.CostPerPage, pages, "cost")
}

func (r *Resolver) amount(dev *devicedomain.Device, formula string, rate decimal.Decimal, pages int64, kind string) decimal.Decimal {
	if formula == "" {
		return linear(rate, pages)
	}

	value, err := evalFormula(formula, pages)
	if err != nil {
		r.log.Warn("formula rejected, falling back to linear rate",
			zap.String("device_id", dev.ID.String()),
			zap.String("kind", kind),
			zap.Error(err),
		)
		return linear(rate, pages)
	}
	return decimal.NewFromFloat(value)
}

func linear(rate decimal.Decimal, pages int64) decimal.Decimal {
	return rate.Mul(decimal.NewFromInt(pages))
}

// Module wires the pricing resolver.
var Module = fx.Module("pricing",
	fx.Provide(NewResolver),
)
