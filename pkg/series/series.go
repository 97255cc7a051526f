package series

import (
	"sync"
)

// RateFunc resolves the growth rate for a relative year during extension.
type RateFunc func(year int) float64

// Extender grows a value cache to cover a requested relative year. The
// cache covers the contiguous range [minCached, maxCached]; implementations
// return the updated bounds. An extender must never overwrite an existing
// entry, so every cached value is computed exactly once.
type Extender interface {
	Extend(values map[int]float64, rate RateFunc, minCached, maxCached, target int) (int, int)
}

// ForwardDiscounting extends forward only, one year at a time, using the
// discounting recurrence value[y+1] = value[y] / (1 + rate(y+1)). Requests
// below the cached range are left unresolved.
type ForwardDiscounting struct{}

// Extend implements Extender.
func (ForwardDiscounting) Extend(values map[int]float64, rate RateFunc, minCached, maxCached, target int) (int, int) {
	for year := maxCached; year < target; year++ {
		values[year+1] = values[year] / (1.0 + rate(year+1))
	}
	if target > maxCached {
		maxCached = target
	}
	return minCached, maxCached
}

// BidirectionalCompounding extends in either direction: forward with the
// compounding recurrence value[y+1] = value[y] * (1 + rate(y)), backward
// with value[y-1] = value[y] / (1 + rate(y-1)).
type BidirectionalCompounding struct{}

// Extend implements Extender.
func (BidirectionalCompounding) Extend(values map[int]float64, rate RateFunc, minCached, maxCached, target int) (int, int) {
	for year := maxCached; year < target; year++ {
		values[year+1] = values[year] * (1.0 + rate(year))
	}
	for year := minCached; year > target; year-- {
		values[year-1] = values[year] / (1.0 + rate(year-1))
	}
	if target > maxCached {
		maxCached = target
	}
	if target < minCached {
		minCached = target
	}
	return minCached, maxCached
}

// Series is a lazily-extended growth series. Values are memoized as they
// are computed and never recomputed, so repeated lookups return identical
// results regardless of request order. The cache is guarded so a shared
// Series is safe for concurrent callers.
//
// The term "relative year" refers to the year relative to yearZero, e.g.
// 3; "calendar year" refers to an absolute year, e.g. 2013. Relative years
// are used internally and for rate lookup, calendar years for value lookup.
type Series struct {
	baseYear int
	yearZero int
	rates    *RateTable
	rateFn   RateFunc
	extender Extender

	mu        sync.Mutex
	values    map[int]float64
	minCached int
	maxCached int
}

// Option customises Series construction.
type Option func(*Series)

// WithYearZero sets the calendar year corresponding to relative year 0.
// Defaults to the base year.
func WithYearZero(yearZero int) Option {
	return func(s *Series) {
		s.yearZero = yearZero
	}
}

// WithRatePolicy overrides the rate function used for lookups and cache
// extension. The function receives a relative year. Defaults to the rate
// table's boundary policy.
func WithRatePolicy(fn RateFunc) Option {
	return func(s *Series) {
		s.rateFn = fn
	}
}

// New creates a Series whose value in the base year is initialValue, with
// the given rate table and extension strategy.
func New(baseYear int, rates *RateTable, initialValue float64, extender Extender, opts ...Option) *Series {
	s := &Series{
		baseYear: baseYear,
		yearZero: baseYear,
		rates:    rates,
		rateFn:   rates.Rate,
		extender: extender,
	}
	for _, opt := range opts {
		opt(s)
	}

	seed := s.baseYear - s.yearZero
	s.values = map[int]float64{seed: initialValue}
	s.minCached = seed
	s.maxCached = seed

	return s
}

// ValueAt returns the series value for a calendar year, extending the
// cache if required. The second return value is false when the extension
// strategy cannot reach the requested year (e.g. a forward-only series
// asked for a year before its cached range).
func (s *Series) ValueAt(year int) (float64, bool) {
	relative := year - s.yearZero

	s.mu.Lock()
	defer s.mu.Unlock()

	if value, ok := s.values[relative]; ok {
		return value, true
	}
	s.minCached, s.maxCached = s.extender.Extend(s.values, s.rateFn, s.minCached, s.maxCached, relative)
	value, ok := s.values[relative]
	return value, ok
}

// RateAt returns the growth rate applicable in a relative year, through
// the series' rate policy.
func (s *Series) RateAt(year int) float64 {
	return s.rateFn(year)
}

// BaseYear returns the calendar year in which the series value equals its
// initial value.
func (s *Series) BaseYear() int {
	return s.baseYear
}

// YearZero returns the calendar year corresponding to relative year 0.
func (s *Series) YearZero() int {
	return s.yearZero
}

// Rates returns the series' rate table.
func (s *Series) Rates() *RateTable {
	return s.rates
}
