// Package config defines the data structures related to configuration and
// includes functions for loading and validating the config.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/textbook/go-wlc/pkg/economics"
)

// Configuration holds all configuration for go-wlc.
type Configuration struct {
	Appraisal AppraisalConfig
	Costs     []CostItem
	Logging   LoggingConfig `yaml:"logging,omitempty"`
	Output    OutputConfig  `yaml:"output,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv
}

// AppraisalConfig holds the parameters of the appraisal window and the
// dataset it draws rates from.
type AppraisalConfig struct {
	DataPath       string // JSON dataset file, or directory to pick the latest from
	StartYear      int    // first year of the factor table; defaults to the base year
	EndYear        int    // last year of the factor table; defaults to a 60-year horizon
	YearZero       int    // discounting year zero; defaults to the base year
	ExtendDeflator bool   // continue boundary growth rates outside the dataset
}

// CostItem is a monetary line item to be converted between bases.
type CostItem struct {
	Name             string
	Amount           float64
	Basis            []string // e.g. ["REAL", "MARKET_PRICE"]; empty means nominal factor cost
	Year             int
	AdjustmentFactor float64
}

// basisFlags maps configuration strings to basis flags.
var basisFlags = map[string]economics.Basis{
	"FACTOR_COST":   economics.FactorCost,
	"RESOURCE_COST": economics.ResourceCost,
	"MARKET_PRICE":  economics.MarketPrice,
	"NOMINAL":       economics.Nominal,
	"REAL":          economics.Real,
	"PRESENT_VALUE": economics.PresentValue,
}

// ParseBasis resolves the item's basis strings into a validated basis.
func (item CostItem) ParseBasis() (economics.Basis, error) {
	var basis economics.Basis
	for _, name := range item.Basis {
		flag, ok := basisFlags[strings.ToUpper(strings.TrimSpace(name))]
		if !ok {
			return 0, fmt.Errorf("unknown cost basis %q", name)
		}
		basis |= flag
	}
	if err := basis.Validate(); err != nil {
		return 0, err
	}
	return basis, nil
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	viper.SetConfigFile(configPath)
	viper.AutomaticEnv()

	viper.SetConfigType("yml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	var configuration Configuration
	err := viper.Unmarshal(&configuration)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return &configuration, nil
}

// ValidateConfiguration performs general validation of the configuration
// and returns warnings
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	if c.Appraisal.DataPath == "" {
		warnings = append(warnings, "no dataPath configured - the default discount schedule and a flat deflator will be used")
	}
	if c.Appraisal.StartYear != 0 && c.Appraisal.EndYear != 0 && c.Appraisal.EndYear < c.Appraisal.StartYear {
		warnings = append(warnings, fmt.Sprintf("appraisal window is inverted (%d > %d)",
			c.Appraisal.StartYear, c.Appraisal.EndYear))
	}

	for _, item := range c.Costs {
		if item.AdjustmentFactor <= 0 {
			warnings = append(warnings, fmt.Sprintf("cost '%s' has non-positive adjustment factor %v",
				item.Name, item.AdjustmentFactor))
		}
		if _, err := item.ParseBasis(); err != nil {
			warnings = append(warnings, fmt.Sprintf("cost '%s' has invalid basis: %v", item.Name, err))
		}
		if c.Appraisal.StartYear != 0 && item.Year < c.Appraisal.StartYear {
			warnings = append(warnings, fmt.Sprintf("cost '%s' is incurred before the appraisal window (%d < %d)",
				item.Name, item.Year, c.Appraisal.StartYear))
		}
		if c.Appraisal.EndYear != 0 && item.Year > c.Appraisal.EndYear {
			warnings = append(warnings, fmt.Sprintf("cost '%s' is incurred after the appraisal window (%d > %d)",
				item.Name, item.Year, c.Appraisal.EndYear))
		}
	}

	return warnings
}
