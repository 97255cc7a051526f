// Package economics provides the whole-life costing factor calculators:
// discounting to Present Value, GDP deflation between price bases, cost
// basis conversion, and asset residual values.
package economics

import "errors"

var (
	// ErrInvalidBasis indicates a contradictory combination of cost basis
	// flags.
	ErrInvalidBasis = errors.New("invalid cost basis")

	// ErrComparison indicates an ordering was requested between costs whose
	// discount, deflation or adjustment factors differ; their relative
	// magnitude depends on incompatible bases.
	ErrComparison = errors.New("costs with differing factors are not comparable")

	// ErrDomainRange indicates a calculation was requested for a year
	// before the start of its causal range.
	ErrDomainRange = errors.New("year precedes calculation range")
)
