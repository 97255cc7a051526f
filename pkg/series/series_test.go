package series

import (
	"math"
	"sync"
	"testing"
)

func mustTable(t *testing.T, rates map[int]float64, opts ...RateTableOption) *RateTable {
	t.Helper()
	table, err := NewRateTable(rates, opts...)
	if err != nil {
		t.Fatalf("NewRateTable() returned error: %v", err)
	}
	return table
}

func TestForwardDiscountingExtension(t *testing.T) {
	table := mustTable(t, map[int]float64{0: 0.035})
	s := New(2010, table, 1.0, ForwardDiscounting{})

	tests := []struct {
		name     string
		year     int
		expected float64
	}{
		{"Base year", 2010, 1.0},
		{"One year out", 2011, 1.0 / 1.035},
		{"Ten years out", 2020, math.Pow(1.035, -10)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, ok := s.ValueAt(tt.year)
			if !ok {
				t.Fatalf("ValueAt(%d) unresolved", tt.year)
			}
			if math.Abs(value-tt.expected) > 1e-12 {
				t.Errorf("ValueAt(%d) = %v, expected %v", tt.year, value, tt.expected)
			}
		})
	}
}

func TestForwardDiscountingBelowRangeUnresolved(t *testing.T) {
	table := mustTable(t, map[int]float64{0: 0.035})
	s := New(2010, table, 1.0, ForwardDiscounting{})

	if _, ok := s.ValueAt(2005); ok {
		t.Error("ValueAt() before the cached range should be unresolved for a forward-only series")
	}
}

func TestBidirectionalCompoundingExtension(t *testing.T) {
	table := mustTable(t, map[int]float64{-1: 0.03, 0: 0.03, 1: 0.03}, WithoutExtension())
	s := New(2010, table, 100.0, BidirectionalCompounding{})

	tests := []struct {
		name     string
		year     int
		expected float64
	}{
		{"Base year", 2010, 100.0},
		{"Forward one year", 2011, 103.0},
		{"Forward two years", 2012, 106.09},
		{"Flat beyond explicit rates", 2013, 106.09},
		{"Backward one year", 2009, 100.0 / 1.03},
		{"Flat before explicit rates", 2008, 100.0 / 1.03},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, ok := s.ValueAt(tt.year)
			if !ok {
				t.Fatalf("ValueAt(%d) unresolved", tt.year)
			}
			if math.Abs(value-tt.expected) > 1e-9 {
				t.Errorf("ValueAt(%d) = %v, expected %v", tt.year, value, tt.expected)
			}
		})
	}
}

func TestValueAtIdempotent(t *testing.T) {
	table := mustTable(t, map[int]float64{0: 0.035, 31: 0.03})
	s := New(2010, table, 1.0, ForwardDiscounting{})

	first, ok := s.ValueAt(2060)
	if !ok {
		t.Fatal("ValueAt(2060) unresolved")
	}
	second, _ := s.ValueAt(2060)
	if first != second {
		t.Errorf("repeated ValueAt() returned %v then %v; results must be bit-identical", first, second)
	}
}

func TestValueAtCacheOrderIndependence(t *testing.T) {
	table := mustTable(t, map[int]float64{0: 0.035, 31: 0.03})

	// Jump to a distant year first, then read an intermediate one.
	cold := New(2010, table, 1.0, ForwardDiscounting{})
	if _, ok := cold.ValueAt(2100); !ok {
		t.Fatal("ValueAt(2100) unresolved")
	}
	intermediate, _ := cold.ValueAt(2040)

	// Walk up to the intermediate year directly on a fresh series.
	warm := New(2010, table, 1.0, ForwardDiscounting{})
	direct, _ := warm.ValueAt(2040)

	if intermediate != direct {
		t.Errorf("cache-order dependent result: %v != %v", intermediate, direct)
	}
}

func TestRateAtUsesPolicy(t *testing.T) {
	table := mustTable(t, map[int]float64{0: 0.035})
	s := New(2010, table, 1.0, ForwardDiscounting{}, WithRatePolicy(func(year int) float64 {
		if year < 0 {
			return 0.0
		}
		return table.Rate(year)
	}))

	if rate := s.RateAt(-5); rate != 0.0 {
		t.Errorf("RateAt(-5) = %v, expected policy override 0.0", rate)
	}
	if rate := s.RateAt(5); rate != 0.035 {
		t.Errorf("RateAt(5) = %v, expected 0.035", rate)
	}
}

func TestWithYearZeroShiftsRelativeYears(t *testing.T) {
	table := mustTable(t, map[int]float64{0: 0.035})
	s := New(2010, table, 1.0, ForwardDiscounting{}, WithYearZero(2000))

	if s.YearZero() != 2000 {
		t.Errorf("YearZero() = %d, expected 2000", s.YearZero())
	}
	if s.BaseYear() != 2010 {
		t.Errorf("BaseYear() = %d, expected 2010", s.BaseYear())
	}

	// The base year still holds the initial value.
	value, ok := s.ValueAt(2010)
	if !ok || value != 1.0 {
		t.Errorf("ValueAt(base year) = %v, %v; expected 1.0, true", value, ok)
	}
}

func TestConcurrentValueAt(t *testing.T) {
	table := mustTable(t, map[int]float64{0: 0.035})
	s := New(2010, table, 1.0, ForwardDiscounting{})

	var wg sync.WaitGroup
	results := make([]float64, 16)
	for i := range results {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			value, _ := s.ValueAt(2010 + 5*n)
			results[n] = value
		}(i)
	}
	wg.Wait()

	for i, got := range results {
		expected := math.Pow(1.035, float64(-5*i))
		if math.Abs(got-expected) > 1e-9 {
			t.Errorf("concurrent ValueAt(%d) = %v, expected %v", 2010+5*i, got, expected)
		}
	}
}
