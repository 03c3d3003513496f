package planner

import (
	"math"

	"github.com/pattyplanner/pattyplanner/internal/models"
	"github.com/shopspring/decimal"
)

// kgStepsPerKg is the number of rounding steps in a kilogram (0.1 kg each).
const kgStepsPerKg = 10

// Plan converts a sales request into patty counts and raw beef mass.
//
// Plan assumes both inputs passed validation. It never fails: a non-positive
// pack revenue or pack size means no patties are required for that type, and
// stock larger than the requirement means nothing is made. Required counts
// saturate at models.MaxPattiesPerType; PlanResult.Validate reports that.
func Plan(settings models.BranchSettings, req models.SalesRequest) models.PlanResult {
	total := amount(req.TodayRevenueTarget).Add(amount(req.TomorrowRevenueTarget))

	regularTarget, miniTarget := splitTarget(total, req)

	convert := converterFor(settings.EffectivePolicy())
	regularRequired := convert(regularTarget, settings.RegularPackSize, settings.RegularPackRevenue)
	miniRequired := convert(miniTarget, settings.MiniPackSize, settings.MiniPackRevenue)

	regularToMake := max(0, regularRequired-req.RegularInStock)
	miniToMake := max(0, miniRequired-req.MiniInStock)

	regularPerKg := settings.RegularPerKg()
	miniPerKg := settings.MiniPerKg()

	regularKg := beefKg(regularToMake, regularPerKg)
	miniKg := beefKg(miniToMake, miniPerKg)

	return models.PlanResult{
		RegularPattiesToMake: regularToMake,
		MiniPattiesToMake:    miniToMake,
		RegularBeefKg:        regularKg,
		MiniBeefKg:           miniKg,
		TotalBeefKg:          regularKg.Add(miniKg),
		TotalTargetRevenue:   total,
		RegularTargetRevenue: regularTarget,
		MiniTargetRevenue:    miniTarget,
		RegularRequired:      regularRequired,
		MiniRequired:         miniRequired,
		RegularPerKg:         regularPerKg,
		MiniPerKg:            miniPerKg,
		UsableGramsPerKg:     settings.UsableGramsPerKg(),
		Policy:               settings.EffectivePolicy(),
	}
}

// splitTarget divides the combined target between regular and mini patties.
// In share mode the mini target is the remainder, so the two always sum to
// total exactly.
func splitTarget(total decimal.Decimal, req models.SalesRequest) (regular, mini decimal.Decimal) {
	if req.SplitMode == models.SplitExplicit {
		return amount(req.RegularTargetRevenue), amount(req.MiniTargetRevenue)
	}

	regular = total.Mul(amount(req.RegularRevenueShare))
	return regular, total.Sub(regular)
}

// beefKg returns toMake/perKg kilograms rounded up to the next 0.1 kg.
// The rounding is done on whole tenths in integer arithmetic.
func beefKg(toMake, perKg int) decimal.Decimal {
	if toMake <= 0 || perKg <= 0 {
		return decimal.New(0, -1)
	}

	tenths := ceilDiv(toMake*kgStepsPerKg, perKg)
	return decimal.New(int64(tenths), -1)
}

// amount converts a float input to a decimal. NaN and infinities, which a
// decimal cannot represent, become zero.
func amount(v float64) decimal.Decimal {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(v)
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
