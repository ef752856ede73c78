// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/shopspring/decimal"
	"github.com/suhas-sunder/allsavingscalc-sub000/pkg/constants"
)

// Round rounds a value to cents, half away from zero. The value is converted
// through its shortest decimal representation first, so 1.005 rounds to 1.01.
func Round(val float64) float64 {
	return RoundTo(val, constants.DecimalPlaces)
}

// RoundTo rounds a value to the given number of decimal places, half away
// from zero.
func RoundTo(val float64, places int32) float64 {
	if math.IsNaN(val) || math.IsInf(val, 0) {
		return val
	}
	rounded := decimal.NewFromFloat(val).Round(places).InexactFloat64()
	if rounded == 0 {
		// avoid reporting -0
		return 0
	}
	return rounded
}

// IsZero checks if a value is effectively zero (within tolerance)
func IsZero(val float64) bool {
	return math.Abs(val) <= constants.CurrencyTolerance
}

// IsPositive checks if a value is positive (greater than tolerance)
func IsPositive(val float64) bool {
	return val > constants.CurrencyTolerance
}

// IsNegative checks if a value is negative (less than negative tolerance)
func IsNegative(val float64) bool {
	return val < -constants.CurrencyTolerance
}

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}

// PercentToDecimal converts a percentage such as 7.5 into 0.075.
func PercentToDecimal(percent float64) float64 {
	return percent / constants.PercentageMultiplier
}

// ApplyPercentage applies a percentage to a value
func ApplyPercentage(value, percentage float64) float64 {
	return value * PercentToDecimal(percentage)
}
