package forecast

import (
	"errors"
	"fmt"

	"github.com/iwvelando/carbon-forecast/pkg/costs"
	"github.com/iwvelando/carbon-forecast/pkg/finance"
	"github.com/iwvelando/carbon-forecast/pkg/pricing"
	"github.com/iwvelando/carbon-forecast/pkg/sequestration"
)

// ErrInvalidYears is returned when the projection horizon is not positive.
var ErrInvalidYears = errors.New("project years must be positive")

// ErrMissingParameters is returned when no project variant is provided.
var ErrMissingParameters = errors.New("project parameters are required")

// Input is everything one calculation needs.
type Input struct {
	Name       string
	Parameters sequestration.Parameters
	Costs      []costs.Entry
	Years      int
	// DiscountRate in percent.
	DiscountRate float64
	CarbonPrice  pricing.Config
	// Registry resolves custom type ids; nil uses the built-in tables.
	Registry *sequestration.Registry
}

// CashFlowBar is one year of the cash-flow chart.
type CashFlowBar struct {
	Year    int     `json:"year"`
	Revenue float64 `json:"revenue"`
	Cost    float64 `json:"cost"`
	Net     float64 `json:"net"`
}

// CostBucket is the projection's total cost for one cost kind.
type CostBucket struct {
	Kind  costs.Kind `json:"kind"`
	Total float64    `json:"total"`
}

// Charts holds chart-ready series.
type Charts struct {
	CashFlow      []CashFlowBar             `json:"cashFlow"`
	Discounted    []finance.DiscountedPoint `json:"discounted,omitempty"`
	CostBreakdown []CostBucket              `json:"costBreakdown"`
}

// ConstructionSummary replaces the carbon-credit metrics for green building
// projects.
type ConstructionSummary struct {
	EmbodiedSavings          float64 `json:"embodiedSavings"`
	AnnualOperationalSavings float64 `json:"annualOperationalSavings"`
	TotalSavings             float64 `json:"totalSavings"`
	AnnualEnergyCostSavings  float64 `json:"annualEnergyCostSavings"`
	SimplePaybackYears       float64 `json:"simplePaybackYears"`
}

// Results is the outcome of one calculation. A new value is built on every
// call; nothing in it is shared with the input.
type Results struct {
	ProjectType        sequestration.ProjectType `json:"projectType"`
	TotalSequestration float64                   `json:"totalSequestration"`
	TotalRevenue       float64                   `json:"totalRevenue"`
	TotalCost          float64                   `json:"totalCost"`
	NetProfit          float64                   `json:"netProfit"`
	NPV                float64                   `json:"npv"`
	// IRR in percent; nil when the cash flows never change sign.
	IRR *float64 `json:"irr"`
	// ROI in percent. For construction projects this is 100 / payback years.
	ROI           float64      `json:"roi"`
	BreakEvenYear *int         `json:"breakEvenYear"`
	YearlyData    []YearRecord `json:"yearlyData"`
	Charts        Charts       `json:"charts"`

	Livestock    *sequestration.EmissionsIntensity `json:"livestock,omitempty"`
	Construction *ConstructionSummary              `json:"construction,omitempty"`
}

// CalculateResults projects the input and derives its metrics. Construction
// projects take a parallel path without carbon revenue or discounting.
func CalculateResults(input Input) (*Results, error) {
	if input.Years <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidYears, input.Years)
	}

	switch params := input.Parameters.(type) {
	case nil:
		return nil, ErrMissingParameters
	case sequestration.Construction:
		return calculateConstruction(input, params), nil
	case *sequestration.Construction:
		return calculateConstruction(input, *params), nil
	}

	model, err := sequestration.NewModel(input.Parameters, input.Registry)
	if err != nil {
		return nil, err
	}

	size := input.Parameters.Size()
	records := Project(model, input.CarbonPrice, input.Costs, input.Years, size)
	results := aggregate(input.Parameters.Type(), records)

	flows := CashFlows(records)
	results.NPV = finance.NPV(flows, input.DiscountRate)
	results.IRR = finance.IRR(flows)
	results.ROI = finance.ROI(results.NetProfit, results.TotalCost)
	results.Charts.Discounted = finance.DiscountedSeries(flows, input.DiscountRate)
	results.Charts.CostBreakdown = costBreakdown(input.Costs, input.Years, size)

	if livestock, ok := model.(sequestration.LivestockModel); ok {
		intensity := livestock.Intensity()
		results.Livestock = &intensity
	}

	return results, nil
}

func calculateConstruction(input Input, params sequestration.Construction) *Results {
	model := params.Model(input.Registry)
	annualSavings := model.EnergyCostSavings()

	records := make([]YearRecord, 0, input.Years)
	cumulative := 0.0
	for year := 1; year <= input.Years; year++ {
		cost := costs.YearlyCost(input.Costs, year, params.Size())
		net := annualSavings - cost
		cumulative += net
		records = append(records, YearRecord{
			Year:               year,
			Sequestration:      model.ImpactForYear(year),
			Revenue:            annualSavings,
			Cost:               cost,
			NetCashFlow:        net,
			CumulativeCashFlow: cumulative,
			IsPositive:         net >= 0,
		})
	}

	results := aggregate(sequestration.TypeConstruction, records)
	payback := finance.SimplePayback(results.TotalCost, annualSavings)
	if payback > 0 {
		results.ROI = 100 / payback
	}
	results.Charts.CostBreakdown = costBreakdown(input.Costs, input.Years, params.Size())
	results.Construction = &ConstructionSummary{
		EmbodiedSavings:          model.EmbodiedSavings(),
		AnnualOperationalSavings: model.OperationalSavings(),
		TotalSavings:             results.TotalSequestration,
		AnnualEnergyCostSavings:  annualSavings,
		SimplePaybackYears:       payback,
	}
	return results
}

// aggregate fills totals, break-even and the cash-flow chart from records.
func aggregate(projectType sequestration.ProjectType, records []YearRecord) *Results {
	results := &Results{
		ProjectType: projectType,
		YearlyData:  records,
	}
	bars := make([]CashFlowBar, 0, len(records))
	for _, record := range records {
		results.TotalSequestration += record.Sequestration
		results.TotalRevenue += record.Revenue
		results.TotalCost += record.Cost
		bars = append(bars, CashFlowBar{
			Year:    record.Year,
			Revenue: record.Revenue,
			Cost:    record.Cost,
			Net:     record.NetCashFlow,
		})
	}
	results.NetProfit = results.TotalRevenue - results.TotalCost
	results.Charts.CashFlow = bars

	years, cumulative := yearsAndCumulative(records)
	results.BreakEvenYear = finance.BreakEvenYear(years, cumulative)
	return results
}

func costBreakdown(entries []costs.Entry, years int, sizeMultiplier float64) []CostBucket {
	total := make(costs.Breakdown)
	for year := 1; year <= years; year++ {
		total.Add(costs.YearlyBreakdown(entries, year, sizeMultiplier))
	}
	buckets := make([]CostBucket, 0, len(costs.Kinds))
	for _, kind := range costs.Kinds {
		if amount := total[kind]; amount != 0 {
			buckets = append(buckets, CostBucket{Kind: kind, Total: amount})
		}
	}
	return buckets
}
