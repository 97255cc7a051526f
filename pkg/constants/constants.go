// Package constants provides shared constants for the go-wlc application.
package constants

// DateLayout is the format expected for dataset release dates and is also
// the output date format.
const DateLayout = "2006-01-02"

// Financial constants
const (
	// DeflatorBaseIndex is the deflator index value in the price base year
	// (base-100 convention).
	DeflatorBaseIndex = 100.0

	// DiscountBaseFactor is the discount factor in the base year.
	DiscountBaseFactor = 1.0

	// FactorPrecision is the precision for factor rounding (4 decimal places)
	FactorPrecision = 10000

	// CurrencyPrecision is the precision for currency rounding (2 decimal places)
	CurrencyPrecision = 100
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"
)

// Validation constants
const (
	// FactorTolerance is the tolerance for factor comparisons
	FactorTolerance = 1e-4

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01

	// StaleDataDays is the dataset age, in days, beyond which a warning is
	// logged when loading
	StaleDataDays = 365
)
