package economics

import (
	"fmt"

	"github.com/textbook/go-wlc/pkg/constants"
	"github.com/textbook/go-wlc/pkg/series"
)

// GreenBookRates is the HM Treasury Green Book declining discount rate
// schedule, keyed by relative year.
var GreenBookRates = map[int]float64{
	0:   0.035,
	31:  0.03,
	76:  0.025,
	126: 0.02,
	201: 0.015,
	301: 0.01,
}

// Discount produces Present Value factors for a rate profile.
//
// The discount rate is assumed to be zero prior to year zero, and to remain
// at the rate of the last year in the schedule indefinitely. The factor is
// assumed to be 1.0 prior to the base year.
type Discount struct {
	baseYear int
	yearZero int
	table    *series.RateTable
	series   *series.Series
}

type discountConfig struct {
	rates    map[int]float64
	yearZero int
	haveZero bool
}

// DiscountOption customises Discount construction.
type DiscountOption func(*discountConfig)

// WithRates overrides the default Green Book schedule. Rates are keyed by
// relative year.
func WithRates(rates map[int]float64) DiscountOption {
	return func(cfg *discountConfig) {
		cfg.rates = rates
	}
}

// WithYearZero sets the calendar year from which the applicable rate is
// incremented. Defaults to the base year.
func WithYearZero(yearZero int) DiscountOption {
	return func(cfg *discountConfig) {
		cfg.yearZero = yearZero
		cfg.haveZero = true
	}
}

// NewDiscount creates a Discount whose factor is 1.0 in the base year,
// using the Green Book schedule unless an explicit rate mapping is
// supplied.
func NewDiscount(baseYear int, opts ...DiscountOption) (*Discount, error) {
	cfg := discountConfig{rates: GreenBookRates, yearZero: baseYear}
	for _, opt := range opts {
		opt(&cfg)
	}

	table, err := series.NewRateTable(cfg.rates)
	if err != nil {
		return nil, fmt.Errorf("discount rates: %w", err)
	}

	return newDiscount(baseYear, cfg.yearZero, table), nil
}

func newDiscount(baseYear, yearZero int, table *series.RateTable) *Discount {
	// No discounting before the base year's relative position.
	zeroBefore := baseYear - yearZero
	policy := func(year int) float64 {
		if year < zeroBefore {
			return 0.0
		}
		return table.Rate(year)
	}

	return &Discount{
		baseYear: baseYear,
		yearZero: yearZero,
		table:    table,
		series: series.New(baseYear, table, constants.DiscountBaseFactor, series.ForwardDiscounting{},
			series.WithYearZero(yearZero), series.WithRatePolicy(policy)),
	}
}

// ValueAt returns the Present Value factor for a calendar year. Years the
// forward extension cannot reach, i.e. years before the base year, are
// undiscounted and yield 1.0.
func (d *Discount) ValueAt(year int) float64 {
	value, ok := d.series.ValueAt(year)
	if !ok {
		return constants.DiscountBaseFactor
	}
	return value
}

// RateAt returns the discount rate used in a relative year: zero before
// the base year's relative position, the schedule's boundary policy
// otherwise.
func (d *Discount) RateAt(year int) float64 {
	return d.series.RateAt(year)
}

// Rebase creates a Discount with a new year zero, sharing the same base
// year and rate table. The receiver is not modified.
func (d *Discount) Rebase(yearZero int) *Discount {
	return newDiscount(d.baseYear, yearZero, d.table)
}

// BaseYear returns the year in which the factor is 1.0.
func (d *Discount) BaseYear() int {
	return d.baseYear
}

// YearZero returns the year from which the applicable rate is incremented.
func (d *Discount) YearZero() int {
	return d.yearZero
}
