// Package output provides utilities for formatting and displaying
// appraisal results.
package output

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/textbook/go-wlc/internal/appraisal"
	"github.com/textbook/go-wlc/pkg/constants"
)

// ValidateFormat checks that the requested output format is supported.
func ValidateFormat(format string) error {
	switch format {
	case constants.OutputFormatPretty, constants.OutputFormatCSV:
		return nil
	default:
		return fmt.Errorf("invalid output format %q; expected %s or %s",
			format, constants.OutputFormatPretty, constants.OutputFormatCSV)
	}
}

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(result *appraisal.Result) {
	p := message.NewPrinter(language.English)
	fmt.Printf("--- Factors from %s (base year %d) ---\n", result.Version, result.BaseYear)
	fmt.Printf("Year | Discount | Index    | To base\n")
	fmt.Printf("____ | ________ | ________ | _______\n")
	for _, row := range result.Factors {
		_, _ = p.Printf("%d | %.4f   | %.4f | %.4f\n",
			row.Year, row.DiscountFactor, row.DeflatorIndex, row.ConversionToBase)
	}

	if len(result.Costs) == 0 {
		return
	}
	fmt.Printf("\n--- Costs ---\n")
	fmt.Printf("Name | Year | Supplied basis | Nominal factor cost | Real market price | Present value\n")
	for _, cost := range result.Costs {
		_, _ = p.Printf("%s | %d | %v | $%.2f | $%.2f | $%.2f\n",
			cost.Name, cost.Year, cost.Basis, cost.NominalFactorCost, cost.RealMarketPrice, cost.PresentValue)
	}
}

// CsvFormat outputs in comma-separated value format.
func CsvFormat(result *appraisal.Result) {
	fmt.Printf("\"year\",\"discount factor\",\"deflator index\",\"conversion to base\"\n")
	for _, row := range result.Factors {
		fmt.Printf("\"%d\",\"%.6f\",\"%.6f\",\"%.6f\"\n",
			row.Year, row.DiscountFactor, row.DeflatorIndex, row.ConversionToBase)
	}

	if len(result.Costs) == 0 {
		return
	}
	fmt.Printf("\n\"name\",\"year\",\"basis\",\"nominal factor cost\",\"real market price\",\"present value\"\n")
	for _, cost := range result.Costs {
		fmt.Printf("\"%s\",\"%d\",\"%v\",\"%.2f\",\"%.2f\",\"%.2f\"\n",
			cost.Name, cost.Year, cost.Basis, cost.NominalFactorCost, cost.RealMarketPrice, cost.PresentValue)
	}
}
