// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/textbook/go-wlc/pkg/constants"
)

// RoundCurrency rounds a value to two decimals, i.e. to represent real
// currency. Used for making logical comparisons.
func RoundCurrency(val float64) float64 {
	return math.Round(val*constants.CurrencyPrecision) / constants.CurrencyPrecision
}

// RoundFactor rounds a value to four decimals, the precision factors are
// reported at.
func RoundFactor(val float64) float64 {
	return math.Round(val*constants.FactorPrecision) / constants.FactorPrecision
}

// IsZero checks if a value is effectively zero (within currency tolerance)
func IsZero(val float64) bool {
	return math.Abs(val) <= constants.CurrencyTolerance
}

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}
