package models

import (
	"fmt"
	"math"
)

const (
	// MinCutoffHour and MaxCutoffHour bound tomorrow's sales cutoff.
	MinCutoffHour = 12
	MaxCutoffHour = 22

	// ShareStepPercent is the granularity of the share selector.
	ShareStepPercent = 5
)

// SplitMode selects how the combined target is divided between patty types.
type SplitMode string

const (
	// SplitByShare derives both targets from a single regular share.
	SplitByShare SplitMode = "share"
	// SplitExplicit takes both targets from the caller.
	SplitExplicit SplitMode = "explicit"
)

func (m SplitMode) String() string {
	return string(m)
}

// IsValid reports whether m is a known split mode.
func (m SplitMode) IsValid() bool {
	return m == SplitByShare || m == SplitExplicit
}

// SalesRequest is one submission of the sales form.
type SalesRequest struct {
	TodayRevenueTarget    float64
	TomorrowRevenueTarget float64

	// CutoffHour is shown to the operator only; it never changes the plan.
	CutoffHour int

	SplitMode           SplitMode
	RegularRevenueShare float64

	// Used when SplitMode is SplitExplicit. They need not add up to the
	// combined target.
	RegularTargetRevenue float64
	MiniTargetRevenue    float64

	RegularInStock int
	MiniInStock    int
}

// Validate checks every constraint and returns all violations at once.
func (r SalesRequest) Validate() error {
	var errs []error

	if !nonNegative(r.TodayRevenueTarget) {
		errs = append(errs, fieldError("today_target", "must be zero or more"))
	}
	if !nonNegative(r.TomorrowRevenueTarget) {
		errs = append(errs, fieldError("tomorrow_target", "must be zero or more"))
	}
	if r.CutoffHour < MinCutoffHour || r.CutoffHour > MaxCutoffHour {
		errs = append(errs, fieldError("cutoff_hour", fmt.Sprintf("must be between %d and %d", MinCutoffHour, MaxCutoffHour)))
	}

	switch r.SplitMode {
	case SplitByShare:
		if math.IsNaN(r.RegularRevenueShare) || r.RegularRevenueShare < 0 || r.RegularRevenueShare > 1 {
			errs = append(errs, fieldError("regular_share", "must be between 0 and 1"))
		}
	case SplitExplicit:
		if !nonNegative(r.RegularTargetRevenue) {
			errs = append(errs, fieldError("regular_target", "must be zero or more"))
		}
		if !nonNegative(r.MiniTargetRevenue) {
			errs = append(errs, fieldError("mini_target", "must be zero or more"))
		}
	default:
		errs = append(errs, fieldError("split_mode", fmt.Sprintf("unknown mode %q", r.SplitMode)))
	}

	if r.RegularInStock < 0 {
		errs = append(errs, fieldError("regular_in_stock", "must be zero or more"))
	}
	if r.MiniInStock < 0 {
		errs = append(errs, fieldError("mini_in_stock", "must be zero or more"))
	}

	return wrapInvalid(ErrInvalidRequest, errs)
}

func nonNegative(v float64) bool {
	return v >= 0 && !math.IsInf(v, 1)
}

// ShareFromPercent converts a whole percentage from the share selector.
func ShareFromPercent(percent int) float64 {
	return float64(percent) / 100.0
}
