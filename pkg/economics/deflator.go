package economics

import (
	"fmt"

	"github.com/textbook/go-wlc/pkg/constants"
	"github.com/textbook/go-wlc/pkg/series"
)

// GdpDeflator converts between nominal and real prices through a price
// index. The index follows the base-100 convention: its value is 100.0 in
// the price base year.
//
// If extension beyond the supplied rates is enabled, the first and last
// rates are continued indefinitely; otherwise there is no growth outside
// the predefined data (an assumed rate of 0.0, flat index).
type GdpDeflator struct {
	baseYear int
	series   *series.Series
}

// NewGdpDeflator creates a deflator for the given price base year. Rates
// are keyed by calendar year and are normalized to relative years
// internally. An empty mapping falls back to a flat index.
func NewGdpDeflator(baseYear int, rates map[int]float64, extend bool) (*GdpDeflator, error) {
	if len(rates) == 0 {
		rates = map[int]float64{baseYear: 0.0}
	}
	relative := make(map[int]float64, len(rates))
	for year, rate := range rates {
		relative[year-baseYear] = rate
	}

	var opts []series.RateTableOption
	if !extend {
		opts = append(opts, series.WithoutExtension())
	}
	table, err := series.NewRateTable(relative, opts...)
	if err != nil {
		return nil, fmt.Errorf("deflator rates: %w", err)
	}

	return &GdpDeflator{
		baseYear: baseYear,
		series:   series.New(baseYear, table, constants.DeflatorBaseIndex, series.BidirectionalCompounding{}),
	}, nil
}

// ValueAt returns the index value for a calendar year, extending the
// series in either direction as required.
func (g *GdpDeflator) ValueAt(year int) float64 {
	value, _ := g.series.ValueAt(year)
	return value
}

// RateAt returns the growth rate applicable in a relative year.
func (g *GdpDeflator) RateAt(year int) float64 {
	return g.series.RateAt(year)
}

// ConversionFactor calculates the factor to rescale a cost expressed in
// yearFrom prices into yearTo prices.
func (g *GdpDeflator) ConversionFactor(yearFrom, yearTo int) float64 {
	return g.ValueAt(yearTo) / g.ValueAt(yearFrom)
}

// ConversionToBase calculates the factor to rescale a cost expressed in
// yearFrom prices into base year prices.
func (g *GdpDeflator) ConversionToBase(yearFrom int) float64 {
	return g.ConversionFactor(yearFrom, g.baseYear)
}

// BaseYear returns the price base year, in which the index is 100.0.
func (g *GdpDeflator) BaseYear() int {
	return g.baseYear
}
