// Package webtag provides access to appraisal rate data extracted from a
// WebTAG Databook: parsing the workbook itself and loading the parsed JSON
// snapshots it produces.
package webtag

import (
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/textbook/go-wlc/pkg/constants"
	"github.com/textbook/go-wlc/pkg/economics"
)

var validate = validator.New()

// Data holds the rate series and metadata extracted from a WebTAG
// Databook. Series are keyed by the year labels that appear in the source
// workbook; the accessor methods resolve them to integer years.
type Data struct {
	BaseYear             int                `json:"base_year" validate:"required"`
	Released             string             `json:"released" validate:"required,datetime=2006-01-02"`
	Version              string             `json:"version" validate:"required"`
	Source               string             `json:"source" validate:"required"`
	DiscountRate         map[string]float64 `json:"discount_rate,omitempty"`
	GdpGrowth            map[string]float64 `json:"gdp_growth,omitempty"`
	RailDieselPrice      map[string]float64 `json:"rail_diesel_price,omitempty"`
	RailElectricityPrice map[string]float64 `json:"rail_electricity_price,omitempty"`
	RailFuelDuty         map[string]float64 `json:"rail_fuel_duty,omitempty"`
}

// FromJSON loads a parsed dataset from the specified JSON file.
func FromJSON(path string, logger *zap.Logger) (*Data, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading dataset %s: %w", path, err)
	}
	var data Data
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("decoding dataset %s: %w", path, err)
	}
	if err := data.Validate(); err != nil {
		return nil, fmt.Errorf("invalid dataset %s: %w", path, err)
	}

	if age := time.Since(data.ReleasedDate()); age > constants.StaleDataDays*24*time.Hour {
		logger.Warn("WebTAG data is more than one year old",
			zap.String("op", "webtag.FromJSON"),
			zap.String("released", data.Released),
			zap.String("version", data.Version),
		)
	}

	return &data, nil
}

// FromLatestJSON walks a directory and loads the most recently released
// dataset found in it. Returns an error if no valid dataset is present.
func FromLatestJSON(dir string, logger *zap.Logger) (*Data, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var latestPath string
	var latestDate string
	err := filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			return nil
		}
		raw, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		var partial struct {
			Released string `json:"released"`
		}
		if err := json.Unmarshal(raw, &partial); err != nil {
			logger.Debug("skipping unparseable JSON file",
				zap.String("op", "webtag.FromLatestJSON"),
				zap.String("path", path),
				zap.Error(err),
			)
			return nil
		}
		if latestPath == "" || partial.Released > latestDate {
			latestPath = path
			latestDate = partial.Released
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", dir, err)
	}
	if latestPath == "" {
		return nil, fmt.Errorf("no datasets found in %s", dir)
	}

	return FromJSON(latestPath, logger)
}

// Validate checks the dataset's metadata.
func (d *Data) Validate() error {
	return validate.Struct(d)
}

// ReleasedDate returns the dataset's release date. The zero time is
// returned if the dataset has not been validated and carries a malformed
// date.
func (d *Data) ReleasedDate() time.Time {
	released, err := time.Parse(constants.DateLayout, d.Released)
	if err != nil {
		return time.Time{}
	}
	return released
}

// WriteJSON stores the dataset as indented JSON at the given path.
func (d *Data) WriteJSON(path string) error {
	raw, err := json.MarshalIndent(d, "", "    ")
	if err != nil {
		return fmt.Errorf("encoding dataset: %w", err)
	}
	if err := os.WriteFile(path, raw, 0644); err != nil {
		return fmt.Errorf("writing dataset %s: %w", path, err)
	}
	return nil
}

// DumpJSON writes the dataset as indented JSON to the given writer.
func (d *Data) DumpJSON(w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "    ")
	return encoder.Encode(d)
}

// Discount builds a Discount from the dataset's discount rate series.
// Labels resolve to their start year; unparseable labels are discarded.
// A dataset without the series yields the default-schedule Discount.
func (d *Data) Discount(logger *zap.Logger) (*economics.Discount, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if d.DiscountRate == nil {
		return economics.NewDiscount(d.BaseYear)
	}

	rates := make(map[int]float64, len(d.DiscountRate))
	for label, rate := range d.DiscountRate {
		year, ok := parseYearLabel(label)
		if !ok {
			logger.Debug("discarding unparseable discount rate label",
				zap.String("op", "webtag.Discount"),
				zap.String("label", label),
			)
			continue
		}
		rates[year] = rate
	}
	if len(rates) == 0 {
		return economics.NewDiscount(d.BaseYear)
	}
	return economics.NewDiscount(d.BaseYear, economics.WithRates(rates))
}

// Deflator builds a GdpDeflator from the dataset's GDP growth series.
// Labels must be plain calendar years; others are discarded.
func (d *Data) Deflator(extend bool, logger *zap.Logger) (*economics.GdpDeflator, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	rates := make(map[int]float64, len(d.GdpGrowth))
	for label, rate := range d.GdpGrowth {
		year, err := strconv.Atoi(strings.TrimSpace(label))
		if err != nil {
			logger.Debug("discarding unparseable growth rate label",
				zap.String("op", "webtag.Deflator"),
				zap.String("label", label),
			)
			continue
		}
		rates[year] = rate
	}
	return economics.NewGdpDeflator(d.BaseYear, rates, extend)
}

// parseYearLabel resolves a databook year label to its start year. Labels
// may be dash-separated ranges ("2015-2020") or space-separated ("2031
// onwards"); anything whose leading component is not numeric is rejected.
func parseYearLabel(label string) (int, bool) {
	if strings.Contains(label, "-") {
		label = strings.SplitN(label, "-", 2)[0]
	} else {
		label = strings.SplitN(label, " ", 2)[0]
	}
	year, err := strconv.Atoi(strings.TrimSpace(label))
	if err != nil {
		return 0, false
	}
	return year, true
}
