package forecast

import (
	"context"
	"fmt"
	"runtime"

	"github.com/iwvelando/carbon-forecast/pkg/finance"
	"github.com/iwvelando/carbon-forecast/pkg/format"
	"github.com/iwvelando/carbon-forecast/pkg/optimization"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Forecast holds the results of one scenario.
type Forecast struct {
	Name          string                 `json:"name"`
	Results       *Results               `json:"results"`
	Notes         []string               `json:"notes,omitempty"`
	Optimizations []optimization.Summary `json:"optimizations,omitempty"`
}

// GetForecast calculates every input concurrently. The returned slice keeps
// the order of inputs; the first failing input cancels the rest.
func GetForecast(ctx context.Context, logger *zap.Logger, inputs []Input) ([]Forecast, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	forecasts := make([]Forecast, len(inputs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i := range inputs {
		input := inputs[i]
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results, err := CalculateResults(input)
			if err != nil {
				return fmt.Errorf("scenario %q: %w", input.Name, err)
			}
			forecasts[i] = Forecast{
				Name:    input.Name,
				Results: results,
				Notes:   notesFor(input, results),
			}
			logger.Debug(fmt.Sprintf("calculated scenario %s", input.Name),
				zap.String("op", "forecast.GetForecast"),
				zap.String("projectType", string(results.ProjectType)),
				zap.Float64("npv", results.NPV),
			)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		logger.Error("forecast calculation failed",
			zap.String("op", "forecast.GetForecast"),
			zap.Error(err),
		)
		return nil, err
	}
	return forecasts, nil
}

// AttachNotes prepends notes keyed by scenario name, such as skipped
// product adjustments, to the matching forecasts.
func AttachNotes(forecasts []Forecast, notes map[string][]string) {
	for i := range forecasts {
		extra, ok := notes[forecasts[i].Name]
		if !ok {
			continue
		}
		forecasts[i].Notes = append(append([]string(nil), extra...), forecasts[i].Notes...)
	}
}

// notesFor explains metrics that need a caveat when read.
func notesFor(input Input, results *Results) []string {
	var notes []string
	if results.BreakEvenYear == nil {
		notes = append(notes, fmt.Sprintf("cumulative cash flow stays negative through year %d", input.Years))
	}
	if results.Construction != nil {
		return notes
	}
	if results.IRR == nil {
		notes = append(notes, "IRR undefined: cash flows never change sign")
	} else if irr, ok := finance.SolveIRR(CashFlows(results.YearlyData)); ok && !irr.Converged {
		notes = append(notes, fmt.Sprintf("IRR search did not converge after %d iterations; reporting last estimate %s",
			irr.Iterations, format.Percent(results.IRR)))
	}
	return notes
}
