// Package pricing resolves the carbon credit price applicable to a project year.
package pricing

import (
	"fmt"
	"math"

	"github.com/iwvelando/carbon-forecast/pkg/constants"
	"github.com/iwvelando/carbon-forecast/pkg/mathutil"
)

// Point is the credit price for one project year.
type Point struct {
	Year  int     `json:"year" yaml:"year"`
	Price float64 `json:"price" yaml:"price"`
}

// Config selects between a flat price and a per-year table.
type Config struct {
	Flat      float64 `json:"flat" yaml:"flat"`
	UseYearly bool    `json:"useYearly,omitempty" yaml:"useYearly,omitempty"`
	Table     []Point `json:"table,omitempty" yaml:"table,omitempty"`
}

// PriceForYear returns the table price for year when useYearly is set and
// the table has a matching point, and flat otherwise.
func PriceForYear(year int, useYearly bool, table []Point, flat float64) float64 {
	if !useYearly || len(table) == 0 {
		return flat
	}
	for _, point := range table {
		if point.Year == year {
			return point.Price
		}
	}
	return flat
}

// PriceForYear resolves the price for year under this configuration.
func (c Config) PriceForYear(year int) float64 {
	return PriceForYear(year, c.UseYearly, c.Table, c.Flat)
}

// WithFlat returns a copy priced at a single flat value.
func (c Config) WithFlat(price float64) Config {
	return Config{Flat: price}
}

// GrowthTable builds one point per year in [1, years], starting at start
// and compounding by growthPercent each year. Prices are rounded to cents.
func GrowthTable(start, growthPercent float64, years int) []Point {
	if years <= 0 {
		return nil
	}
	table := make([]Point, years)
	for i := range table {
		table[i] = Point{
			Year:  i + 1,
			Price: mathutil.Round(start * math.Pow(1+growthPercent/constants.PercentageMultiplier, float64(i))),
		}
	}
	return table
}

// Validate reports table coverage problems as warnings. A yearly table is
// expected to hold exactly one non-negative price for every year in
// [1, projectYears]; gaps fall back to the flat price at calculation time.
func (c Config) Validate(projectYears int) []string {
	var warnings []string
	if c.Flat < 0 {
		warnings = append(warnings, fmt.Sprintf("flat carbon price is negative (%.2f)", c.Flat))
	}
	if !c.UseYearly {
		return warnings
	}
	if len(c.Table) == 0 {
		return append(warnings, "yearly carbon pricing enabled with an empty table; the flat price applies to every year")
	}

	seen := make(map[int]int, len(c.Table))
	for _, point := range c.Table {
		seen[point.Year]++
		if point.Year < 1 || point.Year > projectYears {
			warnings = append(warnings, fmt.Sprintf("carbon price for year %d is outside the project horizon 1-%d", point.Year, projectYears))
		}
		if point.Price < 0 {
			warnings = append(warnings, fmt.Sprintf("carbon price for year %d is negative (%.2f)", point.Year, point.Price))
		}
	}
	for year := 1; year <= projectYears; year++ {
		switch seen[year] {
		case 0:
			warnings = append(warnings, fmt.Sprintf("no carbon price for year %d; the flat price applies", year))
		case 1:
		default:
			warnings = append(warnings, fmt.Sprintf("carbon price for year %d is defined %d times; the first entry applies", year, seen[year]))
		}
	}
	return warnings
}
