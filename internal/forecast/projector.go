// Package forecast projects a carbon project year by year and aggregates
// the projection into Results.
package forecast

import (
	"github.com/iwvelando/carbon-forecast/pkg/costs"
	"github.com/iwvelando/carbon-forecast/pkg/pricing"
	"github.com/iwvelando/carbon-forecast/pkg/sequestration"
)

// YearRecord is one row of the yearly table.
type YearRecord struct {
	Year int `json:"year"`
	// Sequestration is tCO2e sequestered, or net emissions avoided.
	Sequestration      float64 `json:"sequestration"`
	Revenue            float64 `json:"revenue"`
	Cost               float64 `json:"cost"`
	NetCashFlow        float64 `json:"netCashFlow"`
	CumulativeCashFlow float64 `json:"cumulativeCashFlow"`
	CarbonPrice        float64 `json:"carbonPrice"`
	IsPositive         bool    `json:"isPositive"`
}

// Project runs the yearly loop for years 1..years: impact from the model,
// price from the schedule, revenue = impact * price, cost from the cost
// schedule scaled by sizeMultiplier, and a running cumulative net.
func Project(model sequestration.Model, price pricing.Config, entries []costs.Entry, years int, sizeMultiplier float64) []YearRecord {
	if years <= 0 {
		return nil
	}
	records := make([]YearRecord, 0, years)
	cumulative := 0.0
	for year := 1; year <= years; year++ {
		impact := model.ImpactForYear(year)
		carbonPrice := price.PriceForYear(year)
		revenue := impact * carbonPrice
		cost := costs.YearlyCost(entries, year, sizeMultiplier)
		net := revenue - cost
		cumulative += net
		records = append(records, YearRecord{
			Year:               year,
			Sequestration:      impact,
			Revenue:            revenue,
			Cost:               cost,
			NetCashFlow:        net,
			CumulativeCashFlow: cumulative,
			CarbonPrice:        carbonPrice,
			IsPositive:         net >= 0,
		})
	}
	return records
}

// CashFlows extracts the net cash flow column.
func CashFlows(records []YearRecord) []float64 {
	flows := make([]float64, len(records))
	for i, record := range records {
		flows[i] = record.NetCashFlow
	}
	return flows
}

func yearsAndCumulative(records []YearRecord) ([]int, []float64) {
	years := make([]int, len(records))
	cumulative := make([]float64, len(records))
	for i, record := range records {
		years[i] = record.Year
		cumulative[i] = record.CumulativeCashFlow
	}
	return years, cumulative
}
