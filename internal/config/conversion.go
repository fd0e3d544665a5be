package config

import (
	"fmt"

	"github.com/iwvelando/carbon-forecast/internal/forecast"
	"github.com/iwvelando/carbon-forecast/pkg/catalog"
	"github.com/iwvelando/carbon-forecast/pkg/costs"
	"github.com/iwvelando/carbon-forecast/pkg/pricing"
	"github.com/iwvelando/carbon-forecast/pkg/sequestration"
	"github.com/iwvelando/carbon-forecast/pkg/validation"
)

// ToParameters returns the variant selected by Type.
func (p Project) ToParameters() (sequestration.Parameters, error) {
	projectType, err := sequestration.ParseProjectType(p.Type)
	if err != nil {
		return nil, err
	}

	var params sequestration.Parameters
	switch projectType {
	case sequestration.TypeForestry:
		if p.Forestry != nil {
			params = *p.Forestry
		}
	case sequestration.TypeLivestock:
		if p.Livestock != nil {
			params = *p.Livestock
		}
	case sequestration.TypeSoil:
		if p.Soil != nil {
			params = *p.Soil
		}
	case sequestration.TypeRenewable:
		if p.Renewable != nil {
			params = *p.Renewable
		}
	case sequestration.TypeBlueCarbon:
		if p.BlueCarbon != nil {
			params = *p.BlueCarbon
		}
	case sequestration.TypeREDD:
		if p.REDD != nil {
			params = *p.REDD
		}
	case sequestration.TypeConstruction:
		if p.Construction != nil {
			params = *p.Construction
		}
	}
	if params == nil {
		return nil, fmt.Errorf("project type %s has no %s parameters block", projectType, projectType)
	}
	return params, nil
}

// ToEntries converts configured costs, parsing each kind.
func ToEntries(configured []Cost) ([]costs.Entry, error) {
	entries := make([]costs.Entry, 0, len(configured))
	for _, cost := range configured {
		kind, err := costs.ParseKind(cost.Kind)
		if err != nil {
			return nil, fmt.Errorf("cost '%s': %w", cost.Name, err)
		}
		entries = append(entries, costs.Entry{
			Name:   cost.Name,
			Kind:   kind,
			Amount: cost.Amount,
			Year:   cost.Year,
		})
	}
	return entries, nil
}

// ToPricing converts the configured price for a projection of years.
func (c CarbonPrice) ToPricing(years int) pricing.Config {
	price := pricing.Config{Flat: c.Flat, UseYearly: c.UseYearly}
	for _, point := range c.Table {
		price.Table = append(price.Table, pricing.Point{Year: point.Year, Price: point.Price})
	}
	if len(price.Table) == 0 && c.GrowthRate != 0 {
		price.UseYearly = true
		price.Table = pricing.GrowthTable(c.Flat, c.GrowthRate, years)
	}
	return price
}

// Registry builds the type registry from CustomTypes, rejecting invalid
// entries.
func (conf *Configuration) Registry() (*sequestration.Registry, error) {
	registry := sequestration.NewRegistry(nil)
	for name, infos := range conf.CustomTypes {
		domain, err := sequestration.ParseDomain(name)
		if err != nil {
			return nil, err
		}
		for _, info := range infos {
			if err := validation.ValidateCustomType(domain, info); err != nil {
				return nil, err
			}
			registry.Add(domain, info)
		}
	}
	return registry, nil
}

// Catalog returns the built-in catalog extended with configured products.
func (conf *Configuration) Catalog() *catalog.Catalog {
	return catalog.Default().With(conf.Products...)
}

// Inputs converts every active scenario into an engine input. Scenario
// costs are appended to the common costs. The returned notes describe
// product adjustments that were skipped, keyed by scenario name.
func (conf *Configuration) Inputs() ([]forecast.Input, map[string][]string, error) {
	registry, err := conf.Registry()
	if err != nil {
		return nil, nil, err
	}
	products := conf.Catalog()

	commonCosts, err := ToEntries(conf.Common.Costs)
	if err != nil {
		return nil, nil, fmt.Errorf("common: %w", err)
	}

	var inputs []forecast.Input
	notes := make(map[string][]string)
	for _, scenario := range conf.Scenarios {
		if !scenario.Active {
			continue
		}
		input, scenarioNotes, err := conf.scenarioInput(scenario, commonCosts, registry, products)
		if err != nil {
			return nil, nil, fmt.Errorf("scenario '%s': %w", scenario.Name, err)
		}
		if len(scenarioNotes) > 0 {
			notes[scenario.Name] = scenarioNotes
		}
		inputs = append(inputs, input)
	}
	return inputs, notes, nil
}

func (conf *Configuration) scenarioInput(scenario Scenario, commonCosts []costs.Entry, registry *sequestration.Registry, products *catalog.Catalog) (forecast.Input, []string, error) {
	params, err := scenario.Project.ToParameters()
	if err != nil {
		return forecast.Input{}, nil, err
	}
	params, notes := products.Apply(params, scenario.Products)

	scenarioCosts, err := ToEntries(scenario.Costs)
	if err != nil {
		return forecast.Input{}, nil, err
	}
	entries := make([]costs.Entry, 0, len(commonCosts)+len(scenarioCosts))
	entries = append(entries, commonCosts...)
	entries = append(entries, scenarioCosts...)

	return forecast.Input{
		Name:         scenario.Name,
		Parameters:   params,
		Costs:        entries,
		Years:        conf.Common.Years,
		DiscountRate: scenario.discountRate(conf.Common),
		CarbonPrice:  scenario.carbonPrice(conf.Common).ToPricing(conf.Common.Years),
		Registry:     registry,
	}, notes, nil
}

func (s Scenario) discountRate(common Common) float64 {
	if s.DiscountRate != nil {
		return *s.DiscountRate
	}
	return common.DiscountRate
}

func (s Scenario) carbonPrice(common Common) CarbonPrice {
	if s.CarbonPrice != nil {
		return *s.CarbonPrice
	}
	return common.CarbonPrice
}
