package economics

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"math"
	"strings"

	"github.com/textbook/go-wlc/pkg/constants"
)

// Basis is a bitset describing the terms a cost value is expressed in.
// Costs can be provided in real or nominal terms and as a factor (or
// "resource") cost or a market price; additionally a cost can be a Present
// Value (discounted real market price). The default assumptions for unset
// bits are Nominal and FactorCost.
type Basis int

const (
	// FactorCost is a cost excluding taxation.
	FactorCost Basis = 1
	// ResourceCost is a synonym of FactorCost.
	ResourceCost Basis = FactorCost
	// MarketPrice is a cost including taxation.
	MarketPrice Basis = 2
	// Nominal is a price as paid in the year incurred.
	Nominal Basis = 4
	// Real is a price in a constant price base year.
	Real Basis = 8
	// PresentValue is a discounted real market price.
	PresentValue Basis = 16
)

// Validate checks the basis for contradictory flags. Costs cannot be both
// market price and factor cost, or both nominal and real; present values
// are necessarily discounted real market prices.
func (b Basis) Validate() error {
	if b&MarketPrice != 0 && b&FactorCost != 0 {
		return fmt.Errorf("%w: cost cannot be market price and factor cost", ErrInvalidBasis)
	}
	if b&Nominal != 0 && b&Real != 0 {
		return fmt.Errorf("%w: cost cannot be real and nominal", ErrInvalidBasis)
	}
	if b&Nominal != 0 && b&PresentValue != 0 {
		return fmt.Errorf("%w: nominal costs cannot be present values", ErrInvalidBasis)
	}
	if b&FactorCost != 0 && b&PresentValue != 0 {
		return fmt.Errorf("%w: factor costs cannot be present values", ErrInvalidBasis)
	}
	return nil
}

// String renders the set flags, e.g. "REAL|MARKET_PRICE".
func (b Basis) String() string {
	if b == 0 {
		return "NOMINAL|FACTOR_COST"
	}
	var parts []string
	for _, flag := range []struct {
		bit  Basis
		name string
	}{
		{FactorCost, "FACTOR_COST"},
		{MarketPrice, "MARKET_PRICE"},
		{Nominal, "NOMINAL"},
		{Real, "REAL"},
		{PresentValue, "PRESENT_VALUE"},
	} {
		if b&flag.bit != 0 {
			parts = append(parts, flag.name)
		}
	}
	return strings.Join(parts, "|")
}

// Cost represents a monetary amount and holds the factors for conversion
// between bases. The stored value is always normalized to nominal factor
// cost at construction; conversions are pure projections from that
// canonical value.
type Cost struct {
	value            float64
	year             int
	discountFactor   float64
	deflationFactor  float64
	adjustmentFactor float64
}

// NewCost creates a Cost from a value expressed in the given basis,
// incurred in the given year. The discount and deflation factors for that
// year are captured at construction; the adjustment factor (market to
// factor cost ratio) is taken as supplied.
func NewCost(value float64, basis Basis, year int, discount *Discount, deflator *GdpDeflator, adjustmentFactor float64) (*Cost, error) {
	if err := basis.Validate(); err != nil {
		return nil, err
	}

	c := &Cost{
		year:             year,
		discountFactor:   discount.ValueAt(year),
		deflationFactor:  constants.DeflatorBaseIndex / deflator.ValueAt(year),
		adjustmentFactor: adjustmentFactor,
	}

	// Normalize toward nominal factor cost by unwinding each conversion.
	if basis&PresentValue != 0 {
		value /= c.discountFactor
		basis = MarketPrice | Real
	}
	if basis&Real != 0 {
		value /= c.deflationFactor
	}
	if basis&MarketPrice != 0 {
		value /= c.adjustmentFactor
	}
	c.value = value

	return c, nil
}

// Value returns the nominal factor cost.
func (c *Cost) Value() float64 {
	return c.value
}

// Year returns the year in which the cost is incurred.
func (c *Cost) Year() int {
	return c.year
}

// DiscountFactor returns the factor for conversion to Present Value (from
// real market prices).
func (c *Cost) DiscountFactor() float64 {
	return c.discountFactor
}

// DeflationFactor returns the factor for conversion to real prices (from
// nominal prices).
func (c *Cost) DeflationFactor() float64 {
	return c.deflationFactor
}

// AdjustmentFactor returns the factor for conversion to market prices
// (from factor costs).
func (c *Cost) AdjustmentFactor() float64 {
	return c.adjustmentFactor
}

// PresentValue returns the discounted real market price, regardless of the
// basis the cost was constructed in.
func (c *Cost) PresentValue() float64 {
	return c.value * c.adjustmentFactor * c.deflationFactor * c.discountFactor
}

// AsBasis converts the nominal factor cost to the specified basis.
func (c *Cost) AsBasis(basis Basis) (float64, error) {
	if err := basis.Validate(); err != nil {
		return 0, err
	}
	if basis&PresentValue != 0 {
		return c.PresentValue(), nil
	}
	value := c.value
	if basis&Real != 0 {
		value *= c.deflationFactor
	}
	if basis&MarketPrice != 0 {
		value *= c.adjustmentFactor
	}
	return value, nil
}

// Equal reports whether two costs have identical canonical values, years
// and conversion factors. Costs constructed in different bases compare
// equal iff their normalized representations match.
func (c *Cost) Equal(other *Cost) bool {
	return c.value == other.value &&
		c.year == other.year &&
		c.discountFactor == other.discountFactor &&
		c.deflationFactor == other.deflationFactor &&
		c.adjustmentFactor == other.adjustmentFactor
}

// Compare orders two costs by canonical value, returning -1, 0 or 1.
// Ordering is only defined between costs incurred in the same year with
// identical conversion factors; otherwise ErrComparison is returned.
func (c *Cost) Compare(other *Cost) (int, error) {
	if c.year != other.year ||
		c.discountFactor != other.discountFactor ||
		c.deflationFactor != other.deflationFactor ||
		c.adjustmentFactor != other.adjustmentFactor {
		return 0, fmt.Errorf("%w: year and factors must match", ErrComparison)
	}
	switch {
	case c.value < other.value:
		return -1, nil
	case c.value > other.value:
		return 1, nil
	default:
		return 0, nil
	}
}

// Hash returns a digest of the cost's identity fields, consistent with
// Equal.
func (c *Cost) Hash() uint64 {
	h := fnv.New64a()
	var buf [8]byte
	for _, f := range []float64{c.value, c.discountFactor, c.deflationFactor, c.adjustmentFactor} {
		binary.BigEndian.PutUint64(buf[:], math.Float64bits(f))
		_, _ = h.Write(buf[:])
	}
	binary.BigEndian.PutUint64(buf[:], uint64(c.year))
	_, _ = h.Write(buf[:])
	return h.Sum64()
}
