// Package series implements the lazily-extended growth-series engine that
// underpins discounting and deflation. A Series owns an immutable RateTable
// of piecewise annual rates and a memoized value cache which is extended on
// demand by a pluggable Extender strategy.
package series

import (
	"errors"
	"fmt"
)

// ErrEmptyRateTable indicates a rate table was constructed from an empty
// mapping with no fallback supplied.
var ErrEmptyRateTable = errors.New("rate table requires at least one rate")

// RateTable maps relative years to annual rates. Gaps between explicit keys
// are forward-filled at construction, so every year within [Min, Max]
// resolves without further computation. The table is immutable once built.
type RateTable struct {
	rates       map[int]float64
	minYear     int
	maxYear     int
	initialRate float64
	finalRate   float64
	extend      bool
}

// RateTableOption customises RateTable construction.
type RateTableOption func(*RateTable)

// WithInitialRate overrides the rate reported for years before the table's
// first explicit year. The default is the rate at the first explicit year.
func WithInitialRate(rate float64) RateTableOption {
	return func(t *RateTable) {
		t.initialRate = rate
	}
}

// WithoutExtension disables boundary extrapolation: years outside
// [Min, Max] report a rate of 0.0 rather than the initial/final rate.
func WithoutExtension() RateTableOption {
	return func(t *RateTable) {
		t.extend = false
	}
}

// NewRateTable builds a dense table from a sparse mapping of relative year
// to rate. Years between explicit keys inherit the most recent preceding
// explicit rate.
func NewRateTable(rates map[int]float64, opts ...RateTableOption) (*RateTable, error) {
	if len(rates) == 0 {
		return nil, fmt.Errorf("cannot build rate table: %w", ErrEmptyRateTable)
	}

	minYear, maxYear := keyRange(rates)
	table := &RateTable{
		rates:       make(map[int]float64, maxYear-minYear+1),
		minYear:     minYear,
		maxYear:     maxYear,
		initialRate: rates[minYear],
		finalRate:   rates[maxYear],
		extend:      true,
	}
	for _, opt := range opts {
		opt(table)
	}

	rate := table.initialRate
	for year := minYear; year <= maxYear; year++ {
		if explicit, ok := rates[year]; ok {
			rate = explicit
		}
		table.rates[year] = rate
	}

	return table, nil
}

// Rate returns the rate applicable in the given relative year. Years below
// the table's range resolve to the initial rate and years above it to the
// final rate, unless the table was built WithoutExtension, in which case
// out-of-range years resolve to 0.0.
func (t *RateTable) Rate(year int) float64 {
	if rate, ok := t.rates[year]; ok {
		return rate
	}
	if !t.extend {
		return 0.0
	}
	if year < t.minYear {
		return t.initialRate
	}
	return t.finalRate
}

// Min returns the first relative year with an explicit rate.
func (t *RateTable) Min() int {
	return t.minYear
}

// Max returns the last relative year with an explicit rate.
func (t *RateTable) Max() int {
	return t.maxYear
}

// Rates returns a copy of the dense rate mapping.
func (t *RateTable) Rates() map[int]float64 {
	out := make(map[int]float64, len(t.rates))
	for year, rate := range t.rates {
		out[year] = rate
	}
	return out
}

func keyRange(m map[int]float64) (min, max int) {
	first := true
	for key := range m {
		if first {
			min, max = key, key
			first = false
			continue
		}
		if key < min {
			min = key
		}
		if key > max {
			max = key
		}
	}
	return min, max
}
