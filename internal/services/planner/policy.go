package planner

import (
	"github.com/pattyplanner/pattyplanner/internal/models"
	"github.com/shopspring/decimal"
)

// converter turns a revenue target into the number of patties to sell.
// Counts saturate at models.MaxPattiesPerType.
type converter func(target decimal.Decimal, packSize int, packRevenue float64) int

func converterFor(p models.ConversionPolicy) converter {
	if p == models.PolicyPackMultiple {
		return packMultiple
	}
	return perPatty
}

// perPatty is ceil(target / (packRevenue / packSize)), computed as
// ceil(target * packSize / packRevenue) so a repeating per-patty revenue
// such as 2000/6 cannot push an exact count up by one.
func perPatty(target decimal.Decimal, packSize int, packRevenue float64) int {
	revenue := amount(packRevenue)
	if packSize <= 0 || !revenue.IsPositive() || !target.IsPositive() {
		return 0
	}

	return saturate(ceilQuo(target.Mul(decimal.NewFromInt(int64(packSize))), revenue))
}

// packMultiple rounds the target up to whole packs before counting patties.
func packMultiple(target decimal.Decimal, packSize int, packRevenue float64) int {
	revenue := amount(packRevenue)
	if packSize <= 0 || !revenue.IsPositive() || !target.IsPositive() {
		return 0
	}

	packs := ceilQuo(target, revenue)
	return saturate(packs.Mul(decimal.NewFromInt(int64(packSize))))
}

// ceilQuo is ceil(a / b) for positive a and b, exact for any decimal inputs.
func ceilQuo(a, b decimal.Decimal) decimal.Decimal {
	q, r := a.QuoRem(b, 0)
	if r.IsPositive() {
		q = q.Add(decimal.NewFromInt(1))
	}
	return q
}

var maxPatties = decimal.NewFromInt(models.MaxPattiesPerType)

// saturate converts a whole, non-negative count to int, capped at
// models.MaxPattiesPerType.
func saturate(n decimal.Decimal) int {
	if n.GreaterThanOrEqual(maxPatties) {
		return models.MaxPattiesPerType
	}
	if !n.IsPositive() {
		return 0
	}
	return int(n.IntPart())
}
