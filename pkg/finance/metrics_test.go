package finance

import (
	"math"
	"testing"
)

func TestNPV(t *testing.T) {
	tests := []struct {
		name      string
		cashFlows []float64
		rate      float64
		expected  float64
	}{
		{"Zero rate sums flows", []float64{100, 100, 100}, 0, 300},
		{"First year discounted one period", []float64{100, 100, 100}, 100, 87.5},
		{"Empty series", nil, 8, 0},
		{"Single negative flow", []float64{-110}, 10, -100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NPV(tt.cashFlows, tt.rate)
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("NPV() = %f, expected %f", got, tt.expected)
			}
		})
	}
}

func TestIRRDegenerate(t *testing.T) {
	tests := []struct {
		name      string
		cashFlows []float64
	}{
		{"Empty", nil},
		{"Single entry", []float64{-1000}},
		{"All positive", []float64{100, 200, 300}},
		{"All negative", []float64{-100, -200, -300}},
		{"All zero", []float64{0, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IRR(tt.cashFlows); got != nil {
				t.Errorf("IRR() = %f, expected nil", *got)
			}
		})
	}
}

func TestIRRConventionalSeries(t *testing.T) {
	// -1000 then 1100 returns exactly 10%, the initial guess.
	result, ok := SolveIRR([]float64{-1000, 1100})
	if !ok {
		t.Fatal("SolveIRR() reported a degenerate series")
	}
	if !result.Converged || result.Iterations != 1 {
		t.Errorf("expected convergence on the first guess, got %+v", result)
	}
	if math.Abs(result.Rate-10) > 1e-9 {
		t.Errorf("Rate = %f, expected 10", result.Rate)
	}

	flows := []float64{-5000, 1500, 1500, 1500, 1500, 1500}
	irr := IRR(flows)
	if irr == nil {
		t.Fatal("IRR() = nil, expected a rate")
	}
	if math.Abs(NPV(flows, *irr)) >= 0.001 {
		t.Errorf("NPV at IRR %f = %f, expected ~0", *irr, NPV(flows, *irr))
	}
	if *irr < 15 || *irr > 16 {
		t.Errorf("IRR() = %f, expected about 15.24", *irr)
	}
}

func TestIRRNonConvergenceReturnsLastGuess(t *testing.T) {
	// A loss that is never recovered has no root in range; the bisection
	// walks to the lower bound and hands back its last guess.
	result, ok := SolveIRR([]float64{-1000, 1})
	if !ok {
		t.Fatal("SolveIRR() reported a degenerate series")
	}
	if result.Converged {
		t.Errorf("expected no convergence, got %+v", result)
	}
	if result.Iterations != 100 {
		t.Errorf("Iterations = %d, expected 100", result.Iterations)
	}
	if IRR([]float64{-1000, 1}) == nil {
		t.Error("IRR() must return the unconverged guess, not nil")
	}
}

func TestROI(t *testing.T) {
	if got := ROI(500, 1000); got != 50 {
		t.Errorf("ROI() = %f, expected 50", got)
	}
	if got := ROI(500, 0); got != 0 {
		t.Errorf("ROI() with zero cost = %f, expected 0", got)
	}
}

func TestBreakEvenYear(t *testing.T) {
	years := []int{1, 2, 3, 4}

	got := BreakEvenYear(years, []float64{-1000, -500, 200, 900})
	if got == nil || *got != 3 {
		t.Errorf("BreakEvenYear() = %v, expected 3", got)
	}

	got = BreakEvenYear(years, []float64{0, 10, 20, 30})
	if got == nil || *got != 1 {
		t.Errorf("BreakEvenYear() = %v, expected 1 for zero cumulative", got)
	}

	if got := BreakEvenYear(years, []float64{-4, -3, -2, -1}); got != nil {
		t.Errorf("BreakEvenYear() = %d, expected nil", *got)
	}
}

func TestDiscountedSeries(t *testing.T) {
	flows := []float64{100, 100, 100}
	series := DiscountedSeries(flows, 100)
	if len(series) != 3 {
		t.Fatalf("expected 3 points, got %d", len(series))
	}
	expected := []float64{50, 25, 12.5}
	for i, point := range series {
		if point.Year != i+1 {
			t.Errorf("point %d year = %d", i, point.Year)
		}
		if math.Abs(point.Discounted-expected[i]) > 1e-9 {
			t.Errorf("point %d discounted = %f, expected %f", i, point.Discounted, expected[i])
		}
	}
	if math.Abs(series[2].CumulativeNPV-NPV(flows, 100)) > 1e-9 {
		t.Errorf("final cumulative NPV %f != NPV %f", series[2].CumulativeNPV, NPV(flows, 100))
	}
}

func TestSimplePayback(t *testing.T) {
	if got := SimplePayback(100000, 12500); got != 8 {
		t.Errorf("SimplePayback() = %f, expected 8", got)
	}
	if got := SimplePayback(100000, 0); got != 0 {
		t.Errorf("SimplePayback() with no savings = %f, expected 0", got)
	}
}
