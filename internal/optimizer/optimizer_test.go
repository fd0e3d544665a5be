package optimizer

import (
	"context"
	"math"
	"testing"

	"github.com/iwvelando/carbon-forecast/internal/config"
	"github.com/iwvelando/carbon-forecast/internal/forecast"
	"github.com/iwvelando/carbon-forecast/pkg/costs"
	"github.com/iwvelando/carbon-forecast/pkg/pricing"
	"github.com/iwvelando/carbon-forecast/pkg/sequestration"
	"go.uber.org/zap"
)

func floatPtr(value float64) *float64 {
	return &value
}

// soilInput sequesters 150 t/yr for 5 years against a 6000 setup cost, so
// with no discounting it breaks even at exactly $8/t.
func soilInput() forecast.Input {
	return forecast.Input{
		Name:        "Soil",
		Parameters:  sequestration.Soil{Hectares: 100, Practice: "biochar"},
		Costs:       []costs.Entry{{Name: "Setup", Kind: costs.Fixed, Amount: 6000, Year: 1}},
		Years:       5,
		CarbonPrice: pricing.Config{Flat: 25},
	}
}

func TestSolveBreakEven(t *testing.T) {
	summary, err := SolveBreakEven(context.Background(), soilInput(), config.OptimizerConfig{})
	if err != nil {
		t.Fatalf("SolveBreakEven() error = %v", err)
	}
	if !summary.Converged {
		t.Fatalf("expected convergence, got %+v", summary)
	}
	if summary.Value < 8 || summary.Value-8 > 0.01 {
		t.Errorf("expected break-even price just above 8, got %f", summary.Value)
	}
	if summary.TargetValue < 0 {
		t.Errorf("expected a non-negative NPV at the solved price, got %f", summary.TargetValue)
	}
	if summary.Iterations == 0 || summary.Iterations > 100 {
		t.Errorf("unexpected iteration count %d", summary.Iterations)
	}
	if summary.Original != 25 || summary.OriginalDisplay != "$25.00" {
		t.Errorf("unexpected original value %f / %s", summary.Original, summary.OriginalDisplay)
	}
	if summary.Field != config.OptimizerFieldCarbonPrice || summary.Target != config.OptimizerTargetNPV {
		t.Errorf("unexpected field/target %s/%s", summary.Field, summary.Target)
	}
}

func TestSolveBreakEvenDiscountingRaisesPrice(t *testing.T) {
	undiscounted, err := SolveBreakEven(context.Background(), soilInput(), config.OptimizerConfig{})
	if err != nil {
		t.Fatalf("SolveBreakEven() error = %v", err)
	}

	input := soilInput()
	input.DiscountRate = 10
	discounted, err := SolveBreakEven(context.Background(), input, config.OptimizerConfig{})
	if err != nil {
		t.Fatalf("SolveBreakEven() error = %v", err)
	}
	if discounted.Value <= undiscounted.Value {
		t.Errorf("discounting should raise the break-even price: %f <= %f", discounted.Value, undiscounted.Value)
	}

	netProfit, err := SolveBreakEven(context.Background(), input, config.OptimizerConfig{Target: "netProfit"})
	if err != nil {
		t.Fatalf("SolveBreakEven() error = %v", err)
	}
	if math.Abs(netProfit.Value-undiscounted.Value) > 0.01 {
		t.Errorf("net profit ignores discounting: %f vs %f", netProfit.Value, undiscounted.Value)
	}
}

func TestSolveBreakEvenBounds(t *testing.T) {
	tests := []struct {
		name          string
		directive     config.OptimizerConfig
		expectedValue float64
		converged     bool
	}{
		{
			name:          "Feasible at minimum",
			directive:     config.OptimizerConfig{Min: floatPtr(10), Max: floatPtr(20)},
			expectedValue: 10,
			converged:     true,
		},
		{
			name:          "Infeasible at maximum",
			directive:     config.OptimizerConfig{Min: floatPtr(0), Max: floatPtr(5)},
			expectedValue: 5,
			converged:     false,
		},
		{
			name:          "Iteration cap",
			directive:     config.OptimizerConfig{Min: floatPtr(0), Max: floatPtr(100), MaxIterations: 2, Tolerance: 0.001},
			expectedValue: 25,
			converged:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summary, err := SolveBreakEven(context.Background(), soilInput(), tt.directive)
			if err != nil {
				t.Fatalf("SolveBreakEven() error = %v", err)
			}
			if summary.Value != tt.expectedValue {
				t.Errorf("Value = %f, expected %f", summary.Value, tt.expectedValue)
			}
			if summary.Converged != tt.converged {
				t.Errorf("Converged = %t, expected %t", summary.Converged, tt.converged)
			}
			if !tt.converged && len(summary.Notes) == 0 {
				t.Error("expected a note explaining the missing convergence")
			}
		})
	}
}

func TestSolveBreakEvenConstruction(t *testing.T) {
	input := forecast.Input{
		Name:        "Office",
		Parameters:  sequestration.Construction{AreaM2: 1000, BuildingType: "office", EnergyEfficiency: 0.3},
		Years:       10,
		CarbonPrice: pricing.Config{Flat: 40},
	}
	summary, err := SolveBreakEven(context.Background(), input, config.OptimizerConfig{})
	if err != nil {
		t.Fatalf("SolveBreakEven() error = %v", err)
	}
	if summary.Converged || summary.Value != 40 || len(summary.Notes) != 1 {
		t.Errorf("expected an unchanged, unconverged summary with a note, got %+v", summary)
	}
}

func TestSolveBreakEvenErrors(t *testing.T) {
	if _, err := SolveBreakEven(context.Background(), soilInput(), config.OptimizerConfig{Field: "hectares"}); err == nil {
		t.Error("expected an error for an unsupported field")
	}

	input := soilInput()
	input.Years = 0
	if _, err := SolveBreakEven(context.Background(), input, config.OptimizerConfig{}); err == nil {
		t.Error("expected an error for an invalid projection")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := SolveBreakEven(ctx, soilInput(), config.OptimizerConfig{}); err == nil {
		t.Error("expected a cancelled context to stop the search")
	}
}

func TestRunnerAppliesDirectives(t *testing.T) {
	conf := &config.Configuration{
		Common: config.Common{
			Years:       5,
			CarbonPrice: config.CarbonPrice{Flat: 25},
			Costs:       []config.Cost{{Name: "Setup", Kind: "fixed", Amount: 6000, Year: 1}},
		},
		Scenarios: []config.Scenario{
			{
				Name:    "Inactive",
				Active:  false,
				Project: config.Project{Type: "soil", Soil: &sequestration.Soil{Hectares: 1}},
			},
			{
				Name:      "Own directive",
				Active:    true,
				Project:   config.Project{Type: "soil", Soil: &sequestration.Soil{Hectares: 100, Practice: "biochar"}},
				Optimizer: &config.OptimizerConfig{Target: "net_profit", Max: floatPtr(50)},
			},
			{
				Name:    "Defaults",
				Active:  true,
				Project: config.Project{Type: "soil", Soil: &sequestration.Soil{Hectares: 200, Practice: "biochar"}},
			},
		},
	}

	runner, err := NewRunner(zap.NewNop(), conf, &config.OptimizerConfig{})
	if err != nil {
		t.Fatalf("NewRunner() error = %v", err)
	}
	result, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if result.Empty() || len(result.Summaries) != 2 {
		t.Fatalf("expected two summaries, got %+v", result.Summaries)
	}
	if _, ok := result.Summaries["Inactive"]; ok {
		t.Error("inactive scenario should not be optimized")
	}
	own := result.Summaries["Own directive"][0]
	if own.Target != config.OptimizerTargetNetProfit || math.Abs(own.Value-8) > 0.01 {
		t.Errorf("unexpected summary for own directive: %+v", own)
	}
	defaults := result.Summaries["Defaults"][0]
	if math.Abs(defaults.Value-4) > 0.01 {
		t.Errorf("expected a break-even price near 4 for twice the area, got %f", defaults.Value)
	}
	if conf.Scenarios[1].Optimizer.Field != "" {
		t.Error("Run should not normalize the configured directive in place")
	}

	forecasts := []forecast.Forecast{{Name: "Own directive"}, {Name: "Other"}}
	result.Apply(forecasts)
	if len(forecasts[0].Optimizations) != 1 || len(forecasts[1].Optimizations) != 0 {
		t.Errorf("Apply attached summaries incorrectly: %+v", forecasts)
	}
}

func TestRunnerWithoutDirectives(t *testing.T) {
	if _, err := NewRunner(nil, nil, nil); err == nil {
		t.Error("expected an error for a nil configuration")
	}

	conf := &config.Configuration{
		Common: config.Common{Years: 5},
		Scenarios: []config.Scenario{{
			Name:    "Plain",
			Active:  true,
			Project: config.Project{Type: "soil", Soil: &sequestration.Soil{Hectares: 10}},
		}},
	}
	runner, err := NewRunner(nil, conf, nil)
	if err != nil {
		t.Fatalf("NewRunner() error = %v", err)
	}
	result, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !result.Empty() {
		t.Errorf("expected no summaries, got %+v", result.Summaries)
	}
}
