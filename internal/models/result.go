package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// MaxPattiesPerType bounds the patty count of one type. The planner caps
// counts at this value and a plan that reaches it is rejected.
const MaxPattiesPerType = 1_000_000_000

// PlanResult is the output of one planner run. It is never persisted.
type PlanResult struct {
	RegularPattiesToMake int
	MiniPattiesToMake    int

	// Raw beef before trimming, rounded up to 0.1 kg.
	RegularBeefKg decimal.Decimal
	MiniBeefKg    decimal.Decimal
	TotalBeefKg   decimal.Decimal

	// Intermediate values kept for display.
	TotalTargetRevenue   decimal.Decimal
	RegularTargetRevenue decimal.Decimal
	MiniTargetRevenue    decimal.Decimal
	RegularRequired      int
	MiniRequired         int
	RegularPerKg         int
	MiniPerKg            int
	UsableGramsPerKg     int
	Policy               ConversionPolicy
}

// IsZero reports whether nothing needs to be produced.
func (r PlanResult) IsZero() bool {
	return r.RegularPattiesToMake == 0 && r.MiniPattiesToMake == 0 && r.TotalBeefKg.IsZero()
}

// Validate rejects a plan whose required count of either type reached
// MaxPattiesPerType. The errors wrap ErrInvalidRequest.
func (r PlanResult) Validate() error {
	var errs []error

	reason := fmt.Sprintf("would need %s or more patties; check the target and pack revenue", FormatCount(MaxPattiesPerType))
	if r.RegularRequired >= MaxPattiesPerType {
		errs = append(errs, fieldError("regular patties", reason))
	}
	if r.MiniRequired >= MaxPattiesPerType {
		errs = append(errs, fieldError("mini patties", reason))
	}

	return wrapInvalid(ErrInvalidRequest, errs)
}
