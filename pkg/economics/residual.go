package economics

import (
	"fmt"
	"sort"
)

// Depreciation methods accepted by NewResidualValueCalculator.
const (
	MethodLinear          = "linear"
	MethodDoubleDeclining = "double-declining"
	MethodSumOfYears      = "sum of years' digits"
)

// ResidualValueCalculator generates residual values of depreciating
// assets. Residual value is assumed to be the scrap value after the life
// expires (buildYear + life) and is never allowed to fall below it.
type ResidualValueCalculator struct {
	method   string
	sydCache map[int]int
}

// NewResidualValueCalculator creates a calculator for the named
// depreciation method.
func NewResidualValueCalculator(method string) (*ResidualValueCalculator, error) {
	switch method {
	case MethodLinear, MethodDoubleDeclining, MethodSumOfYears:
	default:
		return nil, fmt.Errorf("not a valid depreciation method: %q", method)
	}
	return &ResidualValueCalculator{
		method:   method,
		sydCache: make(map[int]int),
	}, nil
}

// AvailableMethods lists the supported depreciation methods.
func AvailableMethods() []string {
	methods := []string{MethodLinear, MethodDoubleDeclining, MethodSumOfYears}
	sort.Strings(methods)
	return methods
}

// Method returns the calculator's depreciation method.
func (c *ResidualValueCalculator) Method() string {
	return c.method
}

// Calculate returns the residual value of an asset of the given initial
// value and life (in years) built in buildYear, as at targetYear. Querying
// a year before the build year fails with ErrDomainRange.
func (c *ResidualValueCalculator) Calculate(value float64, life, buildYear, targetYear int, scrapValue float64) (float64, error) {
	if targetYear < buildYear {
		return 0, fmt.Errorf("%w: cannot calculate residual value prior to build", ErrDomainRange)
	}
	if targetYear == buildYear {
		return value, nil
	}
	if targetYear > buildYear+life {
		return scrapValue, nil
	}

	var residual float64
	switch c.method {
	case MethodLinear:
		residual = linear(value, life, buildYear, targetYear, scrapValue)
	case MethodDoubleDeclining:
		residual = doubleDeclining(value, life, buildYear, targetYear)
	case MethodSumOfYears:
		residual = c.sumOfYears(value, life, buildYear, targetYear, scrapValue)
	}
	if residual < scrapValue {
		return scrapValue, nil
	}
	return residual, nil
}

// linear assumes the same amount of the asset's value is lost in every
// year of its life (straight-line depreciation).
func linear(value float64, life, buildYear, targetYear int, scrapValue float64) float64 {
	fact := 1.0 - float64(targetYear-buildYear)/float64(life)
	return (value-scrapValue)*fact + scrapValue
}

// doubleDeclining assumes the same proportion of the remaining value is
// lost in each year; the proportion is double the linear method's.
func doubleDeclining(value float64, life, buildYear, targetYear int) float64 {
	fact := 1.0 - 2.0/float64(life)
	out := value
	for year := 0; year < targetYear-buildYear; year++ {
		out *= fact
	}
	return out
}

// sumOfYears depreciates through a schedule of fractions whose denominator
// is the sum of the digits of all years in the life.
func (c *ResidualValueCalculator) sumOfYears(value float64, life, buildYear, targetYear int, scrapValue float64) float64 {
	remainingLife := life - (targetYear - buildYear)
	total := c.sumOfYearsDigits(life)
	fact := float64(total-c.sumOfYearsDigits(remainingLife)) / float64(total)
	return scrapValue + (value-scrapValue)*(1.0-fact)
}

// sumOfYearsDigits memoizes per calculator rather than in package state,
// so caches do not accumulate across unrelated appraisals.
func (c *ResidualValueCalculator) sumOfYearsDigits(year int) int {
	if year <= 0 {
		return 0
	}
	if total, ok := c.sydCache[year]; ok {
		return total
	}
	total := year + c.sumOfYearsDigits(year-1)
	c.sydCache[year] = total
	return total
}
