// Package decimalx centralizes the fixed-precision decimal arithmetic the
// engine depends on: rounding, and the fractional-exponent interest-factor
// function used throughout the spread/correction factor computations.
package decimalx

import (
	"math"

	"github.com/shopspring/decimal"
)

var (
	// Zero, One and Hundred are the constants the engine reaches for most.
	Zero     = decimal.Zero
	One      = decimal.NewFromInt(1)
	Hundred  = decimal.NewFromInt(100)
	Centi    = decimal.NewFromFloat(0.01)
	Tolerance = decimal.NewFromFloat(1e-9)
)

// RoundMoney rounds a decimal to 2 places, half-away-from-zero. It is the
// only rounding rule applied to fields that land in a Payment or
// DailyReturn — factors and intermediate registers stay at full precision.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// CloseToOne reports whether d is within the schedule-ratio tolerance
// (1e-9) of 1, the check spec.md uses for "Σ ratio == 1".
func CloseToOne(d decimal.Decimal) bool {
	return d.Sub(One).Abs().LessThanOrEqual(Tolerance)
}

// InterestFactor computes (1+rate)^t for a (possibly fractional) period
// count t. rate is already expressed as a pure decimal rate (e.g. 0.12 for
// 12%); callers that hold a percentage divide by 100 first via AsRate.
//
// Decimal has no native fractional power operator with the precision
// guarantees this package wants across every shopspring/decimal release
// it might be built against, so the (1+rate)^t = exp(t * ln(1+rate))
// identity is evaluated through float64's math.Pow, which carries ~15-17
// significant digits — comfortably inside the 8-decimal-place accuracy
// spec.md requires in factor space. Every other arithmetic operation in
// the engine (addition, subtraction, multiplication of money) stays in
// decimal.Decimal and never touches float64.
func InterestFactor(rate, t decimal.Decimal) decimal.Decimal {
	base := One.Add(rate)
	if base.Sign() <= 0 {
		// A rate driving the base non-positive has no real fractional
		// power; callers are expected to keep rate > -1.
		return Zero
	}
	baseF, _ := base.Float64()
	tF, _ := t.Float64()
	result := math.Pow(baseF, tF)
	return decimal.NewFromFloat(result)
}

// AsRate converts an annual percentage figure (e.g. 12 for 12%) into a pure
// rate (0.12). APY values in this engine already arrive as pure rates
// (spec.md's examples use apy=0.10 for 10%), so this helper exists for
// completeness where a caller's upstream system hands over a percentage.
func AsRate(percent decimal.Decimal) decimal.Decimal {
	return percent.Div(Hundred)
}

// Min returns the smaller of two decimals.
func Min(a, b decimal.Decimal) decimal.Decimal {
	if a.LessThan(b) {
		return a
	}
	return b
}

// Max returns the larger of two decimals.
func Max(a, b decimal.Decimal) decimal.Decimal {
	if a.GreaterThan(b) {
		return a
	}
	return b
}
