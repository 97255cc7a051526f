package economics

import (
	"errors"
	"testing"

	"github.com/textbook/go-wlc/pkg/mathutil"
)

func TestNewResidualValueCalculator(t *testing.T) {
	tests := []struct {
		name    string
		method  string
		wantErr bool
	}{
		{"Linear", MethodLinear, false},
		{"Double declining", MethodDoubleDeclining, false},
		{"Sum of years", MethodSumOfYears, false},
		{"Unknown method", "exponential", true},
		{"Empty method", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calc, err := NewResidualValueCalculator(tt.method)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error for invalid method")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewResidualValueCalculator() returned error: %v", err)
			}
			if calc.Method() != tt.method {
				t.Errorf("Method() = %q, expected %q", calc.Method(), tt.method)
			}
		})
	}
}

func TestAvailableMethods(t *testing.T) {
	methods := AvailableMethods()
	if len(methods) != 3 {
		t.Fatalf("AvailableMethods() returned %d methods, expected 3", len(methods))
	}
}

func TestResidualValueCalculate(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		value      float64
		life       int
		buildYear  int
		targetYear int
		scrapValue float64
		expected   float64
	}{
		{"Linear midlife", MethodLinear, 1000, 10, 2000, 2005, 0, 500},
		{"Linear with scrap", MethodLinear, 1000, 10, 2000, 2005, 100, 550},
		{"Linear one year in", MethodLinear, 1000, 10, 2000, 2001, 0, 900},
		{"Double declining midlife", MethodDoubleDeclining, 1000, 10, 2000, 2005, 0, 327.68},
		{"Double declining floors at scrap", MethodDoubleDeclining, 1000, 10, 2000, 2009, 300, 300},
		{"Sum of years midlife", MethodSumOfYears, 1000, 10, 2000, 2005, 0, 1000.0 * 15.0 / 55.0},
		{"Sum of years one year in", MethodSumOfYears, 1000, 10, 2000, 2001, 0, 1000.0 * 45.0 / 55.0},
		{"Build year returns value", MethodLinear, 1000, 10, 2000, 2000, 0, 1000},
		{"Beyond life returns scrap", MethodLinear, 1000, 10, 2000, 2020, 50, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calc, err := NewResidualValueCalculator(tt.method)
			if err != nil {
				t.Fatalf("NewResidualValueCalculator() returned error: %v", err)
			}
			residual, err := calc.Calculate(tt.value, tt.life, tt.buildYear, tt.targetYear, tt.scrapValue)
			if err != nil {
				t.Fatalf("Calculate() returned error: %v", err)
			}
			if !mathutil.WithinTolerance(residual, tt.expected, 1e-9) {
				t.Errorf("Calculate() = %v, expected %v", residual, tt.expected)
			}
		})
	}
}

func TestResidualValueBeforeBuild(t *testing.T) {
	calc, err := NewResidualValueCalculator(MethodLinear)
	if err != nil {
		t.Fatalf("NewResidualValueCalculator() returned error: %v", err)
	}

	_, err = calc.Calculate(1000, 10, 2000, 1999, 0)
	if !errors.Is(err, ErrDomainRange) {
		t.Errorf("Calculate() before build year = %v, expected ErrDomainRange", err)
	}
}

func TestSumOfYearsDigitsMemo(t *testing.T) {
	calc, err := NewResidualValueCalculator(MethodSumOfYears)
	if err != nil {
		t.Fatalf("NewResidualValueCalculator() returned error: %v", err)
	}

	// Repeated calculations reuse the memoized digit sums and stay stable.
	first, err := calc.Calculate(1000, 60, 2000, 2030, 0)
	if err != nil {
		t.Fatalf("Calculate() returned error: %v", err)
	}
	second, err := calc.Calculate(1000, 60, 2000, 2030, 0)
	if err != nil {
		t.Fatalf("Calculate() returned error: %v", err)
	}
	if first != second {
		t.Errorf("repeated Calculate() returned %v then %v", first, second)
	}
}
