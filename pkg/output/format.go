// Package output provides utilities for formatting and displaying forecast results.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/iwvelando/carbon-forecast/internal/forecast"
	"github.com/iwvelando/carbon-forecast/pkg/constants"
	"github.com/iwvelando/carbon-forecast/pkg/format"
	"github.com/iwvelando/carbon-forecast/pkg/validation"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Write renders forecasts to w in the named format.
func Write(w io.Writer, outputFormat string, forecasts []forecast.Forecast) error {
	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		return err
	}
	switch outputFormat {
	case constants.OutputFormatCSV:
		return CsvFormat(w, forecasts)
	case constants.OutputFormatJSON:
		return JSONFormat(w, forecasts)
	case constants.OutputFormatXLSX:
		return XLSXFormat(w, forecasts)
	default:
		return PrettyFormat(w, forecasts)
	}
}

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(w io.Writer, forecasts []forecast.Forecast) error {
	p := message.NewPrinter(language.English)
	for i, fc := range forecasts {
		r := fc.Results
		if r == nil {
			continue
		}
		_, _ = fmt.Fprintf(w, "--- Results for scenario %s (%s) ---\n", fc.Name, r.ProjectType)
		_, _ = fmt.Fprintf(w, "Total sequestration: %s\n", format.Tonnes(r.TotalSequestration))
		_, _ = fmt.Fprintf(w, "Total revenue:       %s\n", format.Currency(r.TotalRevenue))
		_, _ = fmt.Fprintf(w, "Total cost:          %s\n", format.Currency(r.TotalCost))
		_, _ = fmt.Fprintf(w, "Net profit:          %s\n", format.Currency(r.NetProfit))
		if r.Construction == nil {
			_, _ = fmt.Fprintf(w, "NPV:                 %s\n", format.Currency(r.NPV))
			_, _ = fmt.Fprintf(w, "IRR:                 %s\n", format.Percent(r.IRR))
		}
		roi := r.ROI
		_, _ = fmt.Fprintf(w, "ROI:                 %s\n", format.Percent(&roi))
		_, _ = fmt.Fprintf(w, "Break-even year:     %s\n", format.Year(r.BreakEvenYear))

		if r.Livestock != nil {
			reduction := r.Livestock.ReductionPercent
			_, _ = p.Fprintf(w, "Emissions intensity: %.1f -> %.1f kg CO2e/head/yr (%s reduction)\n",
				r.Livestock.BaselinePerHead, r.Livestock.ReducedPerHead, format.Percent(&reduction))
		}
		if c := r.Construction; c != nil {
			_, _ = fmt.Fprintf(w, "Embodied savings:    %s\n", format.Tonnes(c.EmbodiedSavings))
			_, _ = fmt.Fprintf(w, "Operational savings: %s per year\n", format.Tonnes(c.AnnualOperationalSavings))
			_, _ = fmt.Fprintf(w, "Energy cost savings: %s per year\n", format.Currency(c.AnnualEnergyCostSavings))
			_, _ = p.Fprintf(w, "Simple payback:      %.1f years\n", c.SimplePaybackYears)
		}

		_, _ = fmt.Fprintf(w, "\nYear | Sequestration | Price | Revenue | Cost | Net | Cumulative\n")
		_, _ = fmt.Fprintf(w, "____ | _____________ | _____ | _______ | ____ | ___ | __________\n")
		for _, record := range r.YearlyData {
			_, _ = p.Fprintf(w, "%4d | %.1f | $%.2f | $%.2f | $%.2f | $%.2f | $%.2f\n",
				record.Year, record.Sequestration, record.CarbonPrice, record.Revenue,
				record.Cost, record.NetCashFlow, record.CumulativeCashFlow)
		}

		for _, summary := range fc.Optimizations {
			_, _ = fmt.Fprintf(w, "Break-even %s: %s (currently %s, %d iterations)\n",
				summary.Field, summary.ValueDisplay, summary.OriginalDisplay, summary.Iterations)
			for _, note := range summary.Notes {
				_, _ = fmt.Fprintf(w, "  * %s\n", note)
			}
		}
		for _, note := range fc.Notes {
			_, _ = fmt.Fprintf(w, "Note: %s\n", note)
		}
		if i < len(forecasts)-1 {
			_, _ = fmt.Fprintf(w, "\n")
		}
	}
	return nil
}

var csvHeader = []string{
	"scenario", "year", "sequestration", "carbonPrice", "revenue", "cost", "netCashFlow", "cumulativeCashFlow",
}

// CsvFormat outputs in comma-separated value format, one row per scenario
// year.
func CsvFormat(w io.Writer, forecasts []forecast.Forecast) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(csvHeader); err != nil {
		return err
	}
	for _, fc := range forecasts {
		if fc.Results == nil {
			continue
		}
		for _, record := range fc.Results.YearlyData {
			row := []string{
				fc.Name,
				strconv.Itoa(record.Year),
				formatFloat(record.Sequestration),
				formatFloat(record.CarbonPrice),
				formatFloat(record.Revenue),
				formatFloat(record.Cost),
				formatFloat(record.NetCashFlow),
				formatFloat(record.CumulativeCashFlow),
			}
			if err := writer.Write(row); err != nil {
				return err
			}
		}
	}
	writer.Flush()
	return writer.Error()
}

// JSONFormat outputs the full forecasts as indented JSON.
func JSONFormat(w io.Writer, forecasts []forecast.Forecast) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(forecasts)
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', 2, 64)
}
