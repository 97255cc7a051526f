// Package appraisal ties a parsed rate dataset and the configured cost
// items together into the factor tables and basis conversions reported to
// the user.
package appraisal

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/textbook/go-wlc/internal/config"
	"github.com/textbook/go-wlc/pkg/economics"
	"github.com/textbook/go-wlc/pkg/webtag"
)

// DefaultHorizonYears is the appraisal window length applied when no end
// year is configured.
const DefaultHorizonYears = 60

// FactorRow holds the factors reported for one calendar year.
type FactorRow struct {
	Year             int
	DiscountFactor   float64
	DeflatorIndex    float64
	ConversionToBase float64
}

// CostResult holds the basis conversions for one configured cost item.
type CostResult struct {
	Name              string
	Year              int
	Basis             economics.Basis
	Supplied          float64
	NominalFactorCost float64
	RealMarketPrice   float64
	PresentValue      float64
}

// Result holds everything computed for one appraisal run.
type Result struct {
	Version  string
	BaseYear int
	Factors  []FactorRow
	Costs    []CostResult
}

// Run computes the factor table and cost conversions for the configured
// appraisal window.
func Run(logger *zap.Logger, conf config.Configuration, data *webtag.Data) (*Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	discount, deflator, err := buildSeries(logger, conf, data)
	if err != nil {
		return nil, err
	}

	start := conf.Appraisal.StartYear
	if start == 0 {
		start = data.BaseYear
	}
	end := conf.Appraisal.EndYear
	if end == 0 {
		end = start + DefaultHorizonYears
	}
	if end < start {
		return nil, fmt.Errorf("appraisal window is inverted: %d > %d", start, end)
	}

	result := &Result{
		Version:  data.Version,
		BaseYear: data.BaseYear,
		Factors:  make([]FactorRow, 0, end-start+1),
	}
	for year := start; year <= end; year++ {
		result.Factors = append(result.Factors, FactorRow{
			Year:             year,
			DiscountFactor:   discount.ValueAt(year),
			DeflatorIndex:    deflator.ValueAt(year),
			ConversionToBase: deflator.ConversionToBase(year),
		})
	}
	logger.Debug(fmt.Sprintf("computed factors for %d years", len(result.Factors)),
		zap.String("op", "appraisal.Run"),
	)

	for _, item := range conf.Costs {
		converted, err := convertCost(item, discount, deflator)
		if err != nil {
			return nil, fmt.Errorf("cost '%s': %w", item.Name, err)
		}
		result.Costs = append(result.Costs, converted)
	}

	return result, nil
}

// buildSeries constructs the discount and deflator series from the
// dataset, honouring the configured year zero and extension policy.
func buildSeries(logger *zap.Logger, conf config.Configuration, data *webtag.Data) (*economics.Discount, *economics.GdpDeflator, error) {
	discount, err := data.Discount(logger)
	if err != nil {
		return nil, nil, fmt.Errorf("building discount series: %w", err)
	}
	if zero := conf.Appraisal.YearZero; zero != 0 && zero != discount.YearZero() {
		logger.Debug(fmt.Sprintf("rebasing discount to year zero %d", zero),
			zap.String("op", "appraisal.buildSeries"),
		)
		discount = discount.Rebase(zero)
	}

	deflator, err := data.Deflator(conf.Appraisal.ExtendDeflator, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("building deflator series: %w", err)
	}

	return discount, deflator, nil
}

// convertCost evaluates one configured cost item in every reported basis.
func convertCost(item config.CostItem, discount *economics.Discount, deflator *economics.GdpDeflator) (CostResult, error) {
	basis, err := item.ParseBasis()
	if err != nil {
		return CostResult{}, err
	}

	cost, err := economics.NewCost(item.Amount, basis, item.Year, discount, deflator, item.AdjustmentFactor)
	if err != nil {
		return CostResult{}, err
	}
	realMarket, err := cost.AsBasis(economics.Real | economics.MarketPrice)
	if err != nil {
		return CostResult{}, err
	}

	return CostResult{
		Name:              item.Name,
		Year:              item.Year,
		Basis:             basis,
		Supplied:          item.Amount,
		NominalFactorCost: cost.Value(),
		RealMarketPrice:   realMarket,
		PresentValue:      cost.PresentValue(),
	}, nil
}
