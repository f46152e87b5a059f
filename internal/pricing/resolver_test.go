package pricing

import (
	"testing"

	devicedomain "github.com/copystack/printledger/internal/device/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func newResolver() *Resolver {
	return NewResolver(Params{Log: zap.NewNop()})
}

func TestPrice_LinearDefault(t *testing.T) {
	dev := &devicedomain.Device{
		PricePerPage: dec("0.5"),
		CostPerPage:  dec("0.05"),
	}

	q := newResolver().Price(dev, 100)
	assert.True(t, q.Revenue.Equal(dec("50")), "revenue %s", q.Revenue)
	assert.True(t, q.Cost.Equal(dec("5")), "cost %s", q.Cost)
}

func TestPrice_FormulaOverride(t *testing.T) {
	dev := &devicedomain.Device{
		PricePerPage:   dec("0.5"),
		CostPerPage:    dec("0.05"),
		RevenueFormula: "10 + count * 0.25",
	}

	q := newResolver().Price(dev, 40)
	// Formula drives revenue; cost keeps the linear rate.
	assert.True(t, q.Revenue.Equal(dec("20")), "revenue %s", q.Revenue)
	assert.True(t, q.Cost.Equal(dec("2")), "cost %s", q.Cost)
}

func TestPrice_FormulaFallback(t *testing.T) {
	dev := &devicedomain.Device{
		PricePerPage:   dec("0.5"),
		RevenueFormula: "count * 0.5 + garbage()",
	}

	// Disallowed characters reject the formula; the linear rate applies.
	rev := newResolver().Revenue(dev, 100)
	assert.True(t, rev.Equal(dec("50")), "revenue %s", rev)
}

func TestPrice_FormulaDivisionByZeroFallsBack(t *testing.T) {
	dev := &devicedomain.Device{
		CostPerPage: dec("0.1"),
		CostFormula: "count / 0",
	}

	cost := newResolver().Cost(dev, 50)
	assert.True(t, cost.Equal(dec("5")), "cost %s", cost)
}

func TestPrice_ZeroPages(t *testing.T) {
	dev := &devicedomain.Device{
		PricePerPage: dec("0.5"),
		CostPerPage:  dec("0.05"),
	}

	q := newResolver().Price(dev, 0)
	assert.True(t, q.Revenue.IsZero())
	assert.True(t, q.Cost.IsZero())
}
