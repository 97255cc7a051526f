package series

import (
	"errors"
	"testing"
)

func TestNewRateTableForwardFill(t *testing.T) {
	table, err := NewRateTable(map[int]float64{0: 0.035, 31: 0.03, 76: 0.025})
	if err != nil {
		t.Fatalf("NewRateTable() returned error: %v", err)
	}

	tests := []struct {
		name     string
		year     int
		expected float64
	}{
		{"Explicit first year", 0, 0.035},
		{"Forward-filled gap", 15, 0.035},
		{"Last year of first band", 30, 0.035},
		{"Explicit band boundary", 31, 0.03},
		{"Forward-filled second band", 50, 0.03},
		{"Explicit last year", 76, 0.025},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if rate := table.Rate(tt.year); rate != tt.expected {
				t.Errorf("Rate(%d) = %v, expected %v", tt.year, rate, tt.expected)
			}
		})
	}
}

func TestNewRateTableEmpty(t *testing.T) {
	_, err := NewRateTable(map[int]float64{})
	if err == nil {
		t.Fatal("NewRateTable() with empty mapping should return error")
	}
	if !errors.Is(err, ErrEmptyRateTable) {
		t.Errorf("expected ErrEmptyRateTable, got %v", err)
	}
}

func TestRateTableBoundaryPolicy(t *testing.T) {
	tests := []struct {
		name     string
		opts     []RateTableOption
		year     int
		expected float64
	}{
		{"Below range extends initial rate", nil, -10, 0.02},
		{"Above range extends final rate", nil, 100, 0.04},
		{"Initial rate override", []RateTableOption{WithInitialRate(0.0)}, -10, 0.0},
		{"Initial rate override only applies below range", []RateTableOption{WithInitialRate(0.0)}, 100, 0.04},
		{"Without extension below range", []RateTableOption{WithoutExtension()}, -10, 0.0},
		{"Without extension above range", []RateTableOption{WithoutExtension()}, 100, 0.0},
		{"Without extension inside range", []RateTableOption{WithoutExtension()}, 5, 0.02},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := NewRateTable(map[int]float64{0: 0.02, 10: 0.04}, tt.opts...)
			if err != nil {
				t.Fatalf("NewRateTable() returned error: %v", err)
			}
			if rate := table.Rate(tt.year); rate != tt.expected {
				t.Errorf("Rate(%d) = %v, expected %v", tt.year, rate, tt.expected)
			}
		})
	}
}

func TestRateTableRange(t *testing.T) {
	table, err := NewRateTable(map[int]float64{-3: 0.01, 7: 0.02})
	if err != nil {
		t.Fatalf("NewRateTable() returned error: %v", err)
	}
	if table.Min() != -3 {
		t.Errorf("Min() = %d, expected -3", table.Min())
	}
	if table.Max() != 7 {
		t.Errorf("Max() = %d, expected 7", table.Max())
	}
}

func TestRateTableRatesCopy(t *testing.T) {
	table, err := NewRateTable(map[int]float64{0: 0.05})
	if err != nil {
		t.Fatalf("NewRateTable() returned error: %v", err)
	}
	rates := table.Rates()
	rates[0] = 0.99
	if table.Rate(0) != 0.05 {
		t.Error("mutating the returned mapping should not affect the table")
	}
}
