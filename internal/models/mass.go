package models

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// SplitKilograms breaks a mass into whole kilograms and remaining grams.
// Grams are rounded to the nearest gram and always fall in [0, 999]; a value
// that would round up to 1000 g is carried into the kilograms.
func SplitKilograms(kg float64) (kilograms, grams int) {
	if math.IsNaN(kg) || math.IsInf(kg, 0) || kg <= 0 {
		return 0, 0
	}

	whole := math.Floor(kg)
	g := int(math.Round((kg - whole) * GramsPerKg))
	if g >= GramsPerKg {
		whole++
		g -= GramsPerKg
	}

	return int(whole), g
}

// SplitKilogramsDecimal is SplitKilograms without binary floating point.
func SplitKilogramsDecimal(kg decimal.Decimal) (kilograms, grams int) {
	if !kg.IsPositive() {
		return 0, 0
	}

	whole := kg.Floor()
	g := kg.Sub(whole).Shift(3).Round(0).IntPart()
	if g >= GramsPerKg {
		whole = whole.Add(decimal.NewFromInt(1))
		g -= GramsPerKg
	}

	return int(whole.IntPart()), int(g)
}

// FormatMass renders a mass as "X kg Y g".
func FormatMass(kg decimal.Decimal) string {
	kilograms, grams := SplitKilogramsDecimal(kg)
	return fmt.Sprintf("%d kg %d g", kilograms, grams)
}

// FormatCount renders a patty count with thousands separators.
func FormatCount(n int) string {
	return humanize.Comma(int64(n))
}

// FormatRevenue renders a revenue amount with thousands separators and no
// fractional part.
func FormatRevenue(v decimal.Decimal) string {
	return humanize.Comma(v.Round(0).IntPart())
}
