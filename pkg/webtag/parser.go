package webtag

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/textbook/go-wlc/pkg/constants"
)

// ErrNotDatabook indicates the opened workbook is not a WebTAG Databook.
var ErrNotDatabook = errors.New("not a WebTAG databook")

// seriesLocation identifies where a named data series lives in the
// workbook. Rows and columns are zero-based, matching the layout tables
// published with the databook.
type seriesLocation struct {
	sheet    string
	startRow int
	keyCol   int
	valueCol int
}

// seriesLocations lists the data series extracted from the databook.
var seriesLocations = map[string]seriesLocation{
	"discount_rate":          {"A1.1.1", 24, 1, 3},
	"rail_diesel_price":      {"A1.3.7", 27, 1, 5},
	"rail_electricity_price": {"A1.3.7", 27, 1, 7},
	"rail_fuel_duty":         {"A1.3.7", 27, 1, 10},
	"gdp_growth":             {"Annual Parameters", 30, 1, 5},
}

const (
	coverSheet     = "Cover"
	coverCheckCell = "A3"
	coverCheckText = "WebTAG Databook"
	versionCell    = "A4"

	auditSheet      = "Audit"
	auditVersionCol = 0
	auditDateCol    = 2

	parametersSheet = "User Parameters"
	baseYearLabel   = "Price year"
	baseYearCol     = 11
)

// Parser handles access to a WebTAG Databook workbook. Close must be
// called to release the workbook's resources.
type Parser struct {
	book     *excelize.File
	filename string
	logger   *zap.Logger

	// Version is the databook version, e.g. "v1.3".
	Version string
	// Released is the release date of the databook.
	Released time.Time
	// BaseYear is the price base year declared by the databook.
	BaseYear int
}

// OpenDatabook opens a workbook and verifies it is a WebTAG Databook,
// extracting the version, release date and base year metadata.
func OpenDatabook(filename string, logger *zap.Logger) (*Parser, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	book, err := excelize.OpenFile(filename)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", filename, err)
	}
	p := &Parser{book: book, filename: filename, logger: logger}

	check, err := book.GetCellValue(coverSheet, coverCheckCell)
	if err != nil || check != coverCheckText {
		_ = book.Close()
		return nil, fmt.Errorf("%s: %w", filename, ErrNotDatabook)
	}

	if p.Version, err = book.GetCellValue(coverSheet, versionCell); err != nil {
		_ = book.Close()
		return nil, fmt.Errorf("extracting version: %w", err)
	}
	if p.Released, err = p.extractDate(); err != nil {
		_ = book.Close()
		return nil, err
	}
	if p.BaseYear, err = p.extractBaseYear(); err != nil {
		_ = book.Close()
		return nil, err
	}

	return p, nil
}

// Close releases the workbook resources.
func (p *Parser) Close() error {
	return p.book.Close()
}

// ExtractAll extracts every known data series plus the databook metadata
// into a Data snapshot ready for persistence.
func (p *Parser) ExtractAll() (*Data, error) {
	data := &Data{
		BaseYear: p.BaseYear,
		Released: p.Released.Format(constants.DateLayout),
		Version:  p.Version,
		Source:   filepath.Base(p.filename),
	}

	for name := range seriesLocations {
		p.logger.Debug("extracting data series",
			zap.String("op", "webtag.ExtractAll"),
			zap.String("series", name),
		)
		series, err := p.ExtractNamedSeries(name)
		if err != nil {
			return nil, err
		}
		switch name {
		case "discount_rate":
			data.DiscountRate = series
		case "gdp_growth":
			data.GdpGrowth = series
		case "rail_diesel_price":
			data.RailDieselPrice = series
		case "rail_electricity_price":
			data.RailElectricityPrice = series
		case "rail_fuel_duty":
			data.RailFuelDuty = series
		}
	}

	return data, nil
}

// ExtractNamedSeries extracts one of the series named in seriesLocations.
func (p *Parser) ExtractNamedSeries(name string) (map[string]float64, error) {
	loc, ok := seriesLocations[name]
	if !ok {
		return nil, fmt.Errorf("unknown data series %q", name)
	}
	return p.extractSeries(loc)
}

// extractSeries reads label/value pairs from the location's columns,
// skipping blank labels and non-numeric values.
func (p *Parser) extractSeries(loc seriesLocation) (map[string]float64, error) {
	rows, err := p.book.GetRows(loc.sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %s: %w", loc.sheet, err)
	}

	series := make(map[string]float64)
	for i := loc.startRow; i < len(rows); i++ {
		row := rows[i]
		if loc.keyCol >= len(row) || loc.valueCol >= len(row) {
			continue
		}
		label := strings.TrimSpace(row[loc.keyCol])
		if label == "" {
			continue
		}
		value, err := strconv.ParseFloat(strings.TrimSpace(row[loc.valueCol]), 64)
		if err != nil {
			continue
		}
		series[label] = value
	}
	return series, nil
}

// extractDate locates the release date on the audit sheet: the date cell
// shares a row with the databook version.
func (p *Parser) extractDate() (time.Time, error) {
	rows, err := p.book.GetRows(auditSheet)
	if err != nil {
		return time.Time{}, fmt.Errorf("reading sheet %s: %w", auditSheet, err)
	}

	for i, row := range rows {
		if auditVersionCol >= len(row) || row[auditVersionCol] != p.Version {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(auditDateCol+1, i+1)
		if err != nil {
			return time.Time{}, err
		}
		raw, err := p.book.GetCellValue(auditSheet, cell, excelize.Options{RawCellValue: true})
		if err != nil {
			return time.Time{}, fmt.Errorf("reading release date: %w", err)
		}
		serial, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			// Some revisions store the date as text rather than a serial.
			return time.Parse(constants.DateLayout, raw)
		}
		return excelize.ExcelDateToTime(serial, false)
	}

	return time.Time{}, fmt.Errorf("version %q not found on sheet %s", p.Version, auditSheet)
}

// extractBaseYear locates the price base year on the parameters sheet.
func (p *Parser) extractBaseYear() (int, error) {
	rows, err := p.book.GetRows(parametersSheet)
	if err != nil {
		return 0, fmt.Errorf("reading sheet %s: %w", parametersSheet, err)
	}

	for _, row := range rows {
		if len(row) == 0 || row[0] != baseYearLabel {
			continue
		}
		if baseYearCol >= len(row) {
			break
		}
		base, err := strconv.ParseFloat(strings.TrimSpace(row[baseYearCol]), 64)
		if err != nil {
			return 0, fmt.Errorf("parsing base year %q: %w", row[baseYearCol], err)
		}
		return int(base), nil
	}

	return 0, fmt.Errorf("label %q not found on sheet %s", baseYearLabel, parametersSheet)
}
