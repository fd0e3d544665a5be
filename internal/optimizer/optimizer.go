// Package optimizer searches for break-even parameter values, such as the
// lowest flat carbon price at which a project's NPV reaches zero.
package optimizer

import (
	"context"
	"fmt"

	"github.com/iwvelando/carbon-forecast/internal/config"
	"github.com/iwvelando/carbon-forecast/internal/forecast"
	"github.com/iwvelando/carbon-forecast/pkg/format"
	"github.com/iwvelando/carbon-forecast/pkg/mathutil"
	"github.com/iwvelando/carbon-forecast/pkg/optimization"
	"github.com/iwvelando/carbon-forecast/pkg/sequestration"
	"go.uber.org/zap"
)

type Runner struct {
	logger   *zap.Logger
	conf     *config.Configuration
	defaults *config.OptimizerConfig
}

// Result summarizes optimizer adjustments keyed by scenario name.
type Result struct {
	Summaries map[string][]optimization.Summary
}

// Empty indicates whether any optimizer adjustments were produced.
func (r Result) Empty() bool {
	return len(r.Summaries) == 0
}

// Apply attaches optimizer summaries to the provided forecast results.
func (r Result) Apply(forecasts []forecast.Forecast) {
	if len(r.Summaries) == 0 {
		return
	}
	for i := range forecasts {
		summaries, ok := r.Summaries[forecasts[i].Name]
		if !ok {
			continue
		}
		forecasts[i].Optimizations = append(forecasts[i].Optimizations, summaries...)
	}
}

// NewRunner constructs a Runner for the provided configuration. When
// defaults is non-nil it applies to every active scenario without its own
// optimizer directive.
func NewRunner(logger *zap.Logger, conf *config.Configuration, defaults *config.OptimizerConfig) (*Runner, error) {
	if conf == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{logger: logger, conf: conf, defaults: defaults}, nil
}

// Run executes the optimizer directives of every active scenario.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	inputs, _, err := r.conf.Inputs()
	if err != nil {
		return nil, err
	}

	summaries := make(map[string][]optimization.Summary)
	index := 0
	for _, scenario := range r.conf.Scenarios {
		if !scenario.Active {
			continue
		}
		input := inputs[index]
		index++

		directive := r.directiveFor(scenario)
		if directive == nil {
			continue
		}
		if err := directive.Validate(); err != nil {
			return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
		}

		summary, err := SolveBreakEven(ctx, input, *directive)
		if err != nil {
			return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
		}
		summaries[scenario.Name] = append(summaries[scenario.Name], summary)

		r.logger.Info("optimizer solved break-even value",
			zap.String("op", "optimizer.Run"),
			zap.String("scenario", scenario.Name),
			zap.String("field", summary.Field),
			zap.String("target", summary.Target),
			zap.Float64("original", summary.Original),
			zap.Float64("value", summary.Value),
			zap.Float64("targetValue", summary.TargetValue),
			zap.Int("iterations", summary.Iterations),
			zap.Bool("converged", summary.Converged),
		)
	}

	return &Result{Summaries: summaries}, nil
}

func (r *Runner) directiveFor(scenario config.Scenario) *config.OptimizerConfig {
	var source *config.OptimizerConfig
	switch {
	case scenario.Optimizer != nil:
		source = scenario.Optimizer
	case r.defaults != nil:
		source = r.defaults
	default:
		return nil
	}
	directive := *source
	return &directive
}

// SolveBreakEven bisects the flat carbon price over [Min, Max] for the
// smallest price whose target metric is non-negative. The metric rises with
// price for any project with positive impact, so the search keeps the
// feasible upper bound and stops once the bracket is within Tolerance.
func SolveBreakEven(ctx context.Context, input forecast.Input, directive config.OptimizerConfig) (optimization.Summary, error) {
	if err := directive.Validate(); err != nil {
		return optimization.Summary{}, err
	}

	summary := optimization.Summary{
		Scope:           "scenario",
		TargetName:      input.Name,
		Field:           directive.Field,
		Target:          directive.Target,
		Original:        input.CarbonPrice.Flat,
		OriginalDisplay: format.Currency(input.CarbonPrice.Flat),
	}

	if input.Parameters != nil && input.Parameters.Type() == sequestration.TypeConstruction {
		summary.Value = summary.Original
		summary.ValueDisplay = summary.OriginalDisplay
		summary.Notes = []string{"construction projects earn no carbon revenue; the carbon price has no effect"}
		return summary, nil
	}
	if input.CarbonPrice.UseYearly && len(input.CarbonPrice.Table) > 0 {
		summary.Notes = append(summary.Notes, "solved for a flat price; the yearly price table is ignored")
	}

	evaluate := func(price float64) (float64, error) {
		trial := input
		trial.CarbonPrice = input.CarbonPrice.WithFlat(price)
		results, err := forecast.CalculateResults(trial)
		if err != nil {
			return 0, fmt.Errorf("optimizer evaluation at %s failed: %w", format.Currency(price), err)
		}
		if directive.Target == config.OptimizerTargetNetProfit {
			return results.NetProfit, nil
		}
		return results.NPV, nil
	}

	low, high := *directive.Min, *directive.Max

	lowValue, err := evaluate(low)
	if err != nil {
		return optimization.Summary{}, err
	}
	if lowValue >= 0 {
		return finish(summary, low, lowValue, 0, true, "project breaks even at the minimum price"), nil
	}

	highValue, err := evaluate(high)
	if err != nil {
		return optimization.Summary{}, err
	}
	if highValue < 0 {
		note := fmt.Sprintf("unable to reach break-even %s within bounds %s to %s",
			directive.Target, format.Currency(low), format.Currency(high))
		return finish(summary, high, highValue, 0, false, note), nil
	}

	iterations := 0
	for high-low > directive.Tolerance && iterations < directive.MaxIterations {
		if err := ctx.Err(); err != nil {
			return optimization.Summary{}, err
		}
		iterations++
		mid := (low + high) / 2
		value, err := evaluate(mid)
		if err != nil {
			return optimization.Summary{}, err
		}
		if value >= 0 {
			high, highValue = mid, value
		} else {
			low = mid
		}
	}

	converged := mathutil.WithinTolerance(high, low, directive.Tolerance)
	note := ""
	if !converged {
		note = fmt.Sprintf("search stopped after %d iterations with a bracket of %s", iterations, format.Currency(high-low))
	}
	return finish(summary, high, highValue, iterations, converged, note), nil
}

func finish(summary optimization.Summary, value, targetValue float64, iterations int, converged bool, note string) optimization.Summary {
	summary.Value = value
	summary.ValueDisplay = format.Currency(value)
	summary.TargetValue = targetValue
	summary.Iterations = iterations
	summary.Converged = converged
	if note != "" {
		summary.Notes = append(summary.Notes, note)
	}
	return summary
}
