package models

import (
	"fmt"
	"math"
)

// GramsPerKg is the raw mass of one kilogram of beef before trimming.
const GramsPerKg = 1000

// ConversionPolicy selects how a revenue target becomes a patty count.
// PolicyPerPatty is the canonical rule and the default for every branch.
// PolicyPackMultiple is opt-in per branch and applies to both patty types.
type ConversionPolicy string

const (
	// PolicyPerPatty divides the target by the revenue of a single patty.
	PolicyPerPatty ConversionPolicy = "per_patty"
	// PolicyPackMultiple rounds the target up to whole packs first.
	PolicyPackMultiple ConversionPolicy = "pack_multiple"
)

func (p ConversionPolicy) String() string {
	return string(p)
}

// IsValid reports whether p is a known policy. The empty policy is valid and
// means PolicyPerPatty.
func (p ConversionPolicy) IsValid() bool {
	switch p {
	case "", PolicyPerPatty, PolicyPackMultiple:
		return true
	}
	return false
}

// PattyType distinguishes the two products a branch sells.
type PattyType string

const (
	PattyRegular PattyType = "regular"
	PattyMini    PattyType = "mini"
)

// Label is the display name of the patty type.
func (t PattyType) Label() string {
	switch t {
	case PattyRegular:
		return "Regular"
	case PattyMini:
		return "Mini"
	}
	return string(t)
}

// BranchSettings holds the operator-configured parameters of one branch.
type BranchSettings struct {
	RegularPackSize         int
	RegularPackRevenue      float64
	MiniPackSize            int
	MiniPackRevenue         float64
	RegularPieceWeightGrams int
	MiniPieceWeightGrams    int
	WastePerKgGrams         int
	Policy                  ConversionPolicy
}

// DefaultBranchSettings returns the stock settings of a new branch.
func DefaultBranchSettings() BranchSettings {
	return BranchSettings{
		RegularPackSize:         6,
		RegularPackRevenue:      2000,
		MiniPackSize:            10,
		MiniPackRevenue:         8000,
		RegularPieceWeightGrams: 150,
		MiniPieceWeightGrams:    90,
		WastePerKgGrams:         100,
		Policy:                  PolicyPerPatty,
	}
}

// UsableGramsPerKg is the mass left from one kilogram after trim waste.
func (s BranchSettings) UsableGramsPerKg() int {
	return GramsPerKg - s.WastePerKgGrams
}

// RegularPerKg is the number of regular patties one kilogram yields.
func (s BranchSettings) RegularPerKg() int {
	return yieldPerKg(s.UsableGramsPerKg(), s.RegularPieceWeightGrams)
}

// MiniPerKg is the number of mini patties one kilogram yields.
func (s BranchSettings) MiniPerKg() int {
	return yieldPerKg(s.UsableGramsPerKg(), s.MiniPieceWeightGrams)
}

// yieldPerKg never returns less than one patty per kilogram.
func yieldPerKg(usableGrams, pieceGrams int) int {
	if pieceGrams <= 0 || usableGrams <= 0 {
		return 1
	}
	return max(1, usableGrams/pieceGrams)
}

// EffectivePolicy returns the policy with the default applied.
func (s BranchSettings) EffectivePolicy() ConversionPolicy {
	if s.Policy == "" {
		return PolicyPerPatty
	}
	return s.Policy
}

// Validate checks every constraint and returns all violations at once.
func (s BranchSettings) Validate() error {
	var errs []error

	if s.RegularPackSize < 1 {
		errs = append(errs, fieldError("regular pack_size", "must be at least 1"))
	}
	if !positive(s.RegularPackRevenue) {
		errs = append(errs, fieldError("regular pack_revenue", "must be positive"))
	}
	if s.MiniPackSize < 1 {
		errs = append(errs, fieldError("mini pack_size", "must be at least 1"))
	}
	if !positive(s.MiniPackRevenue) {
		errs = append(errs, fieldError("mini pack_revenue", "must be positive"))
	}
	if s.RegularPieceWeightGrams < 1 {
		errs = append(errs, fieldError("regular piece_weight_grams", "must be at least 1"))
	}
	if s.MiniPieceWeightGrams < 1 {
		errs = append(errs, fieldError("mini piece_weight_grams", "must be at least 1"))
	}
	if s.WastePerKgGrams < 0 || s.WastePerKgGrams >= GramsPerKg {
		errs = append(errs, fieldError("waste_per_kg_grams", fmt.Sprintf("must be between 0 and %d", GramsPerKg-1)))
	}
	if !s.Policy.IsValid() {
		errs = append(errs, fieldError("conversion_policy", fmt.Sprintf("unknown policy %q", s.Policy)))
	}

	return wrapInvalid(ErrInvalidSettings, errs)
}

// positive reports whether v is a finite number above zero.
func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

// YieldCaption describes the derived yields the way the settings panel shows them.
func (s BranchSettings) YieldCaption() string {
	return fmt.Sprintf("Derived yield: %d regular/kg, %d mini/kg (from %d g usable per kg).",
		s.RegularPerKg(), s.MiniPerKg(), s.UsableGramsPerKg())
}
