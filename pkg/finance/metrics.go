// Package finance provides the discounted cash-flow metrics reported for a
// projection: NPV, IRR, ROI, break-even year and simple payback.
package finance

import (
	"math"

	"github.com/iwvelando/carbon-forecast/pkg/constants"
	"github.com/iwvelando/carbon-forecast/pkg/mathutil"
)

// NPV discounts cashFlows at ratePercent. cashFlows[0] is project year 1 and
// is discounted by one full period: cf[y] / (1 + rate/100)^(y+1).
func NPV(cashFlows []float64, ratePercent float64) float64 {
	return npvAtFraction(cashFlows, ratePercent/constants.PercentageMultiplier)
}

func npvAtFraction(cashFlows []float64, rate float64) float64 {
	npv := 0.0
	for y, cf := range cashFlows {
		npv += cf / math.Pow(1+rate, float64(y+1))
	}
	return npv
}

// IRRResult carries the outcome of the IRR search.
type IRRResult struct {
	// Rate is the internal rate of return in percent.
	Rate       float64
	Iterations int
	Converged  bool
}

// IRR returns the internal rate of return in percent, or nil when the
// series is empty, has a single entry, or never changes sign.
//
// The search is a plain bisection over [-99%, 100%] starting at 10% and
// assumes a conventional series (outflows first): a positive NPV moves the
// lower bound up. When 100 iterations pass without |NPV| < 0.001 the last
// guess is returned anyway; use SolveIRR to see whether it converged.
func IRR(cashFlows []float64) *float64 {
	result, ok := SolveIRR(cashFlows)
	if !ok {
		return nil
	}
	return &result.Rate
}

// SolveIRR runs the IRR bisection and reports iterations and convergence.
// ok is false for degenerate series.
func SolveIRR(cashFlows []float64) (IRRResult, bool) {
	if len(cashFlows) <= 1 || !hasSignChange(cashFlows) {
		return IRRResult{}, false
	}

	low := constants.IRRLowerBound
	high := constants.IRRUpperBound
	guess := constants.IRRInitialGuess

	for i := 0; i < constants.IRRMaxIterations; i++ {
		npv := npvAtFraction(cashFlows, guess)
		if math.Abs(npv) < constants.IRRConvergenceNPV {
			return IRRResult{Rate: guess * constants.PercentageMultiplier, Iterations: i + 1, Converged: true}, true
		}
		if npv > 0 {
			low = guess
		} else {
			high = guess
		}
		guess = (low + high) / 2
	}

	return IRRResult{
		Rate:       guess * constants.PercentageMultiplier,
		Iterations: constants.IRRMaxIterations,
		Converged:  false,
	}, true
}

func hasSignChange(cashFlows []float64) bool {
	hasPositive := false
	hasNegative := false
	for _, cf := range cashFlows {
		if cf > 0 {
			hasPositive = true
		} else if cf < 0 {
			hasNegative = true
		}
		if hasPositive && hasNegative {
			return true
		}
	}
	return false
}

// ROI is netProfit as a percentage of totalCost, or 0 without costs.
func ROI(netProfit, totalCost float64) float64 {
	return mathutil.CalculatePercentage(netProfit, totalCost)
}

// BreakEvenYear returns the first year whose cumulative cash flow is
// non-negative. years and cumulative are parallel slices in ascending year
// order; nil means break-even is never reached.
func BreakEvenYear(years []int, cumulative []float64) *int {
	for i, value := range cumulative {
		if i >= len(years) {
			break
		}
		if value >= 0 {
			year := years[i]
			return &year
		}
	}
	return nil
}

// DiscountedPoint is one year of the discounted cash-flow series.
type DiscountedPoint struct {
	Year          int     `json:"year"`
	CashFlow      float64 `json:"cashFlow"`
	Discounted    float64 `json:"discounted"`
	CumulativeNPV float64 `json:"cumulativeNpv"`
}

// DiscountedSeries discounts each flow with the NPV exponent convention and
// accumulates a running NPV. The last point's CumulativeNPV equals NPV.
func DiscountedSeries(cashFlows []float64, ratePercent float64) []DiscountedPoint {
	rate := ratePercent / constants.PercentageMultiplier
	series := make([]DiscountedPoint, len(cashFlows))
	cumulative := 0.0
	for y, cf := range cashFlows {
		discounted := cf / math.Pow(1+rate, float64(y+1))
		cumulative += discounted
		series[y] = DiscountedPoint{
			Year:          y + 1,
			CashFlow:      cf,
			Discounted:    discounted,
			CumulativeNPV: cumulative,
		}
	}
	return series
}

// SimplePayback is the number of years of savings needed to recover
// totalCost, or 0 when there are no savings.
func SimplePayback(totalCost, annualSavings float64) float64 {
	return mathutil.SafeDivide(totalCost, annualSavings)
}
