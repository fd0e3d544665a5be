// Package testutil provides common utility functions for testing.
package testutil

import (
	"math"

	"github.com/iwvelando/carbon-forecast/internal/forecast"
)

// FindScenario finds a scenario by name in the results slice.
// Returns a pointer to the forecast if found, nil otherwise.
func FindScenario(results []forecast.Forecast, name string) *forecast.Forecast {
	for i := range results {
		if results[i].Name == name {
			return &results[i]
		}
	}
	return nil
}

// YearlySums totals the yearly records of a result.
func YearlySums(results *forecast.Results) (sequestration, revenue, cost float64) {
	for _, record := range results.YearlyData {
		sequestration += record.Sequestration
		revenue += record.Revenue
		cost += record.Cost
	}
	return sequestration, revenue, cost
}

// Close reports whether got is within tolerance of want, scaled by the
// magnitude of want once it exceeds one.
func Close(got, want, tolerance float64) bool {
	scale := math.Max(1, math.Abs(want))
	return math.Abs(got-want) <= tolerance*scale
}
