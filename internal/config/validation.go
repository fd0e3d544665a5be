package config

import (
	"fmt"

	"github.com/iwvelando/carbon-forecast/pkg/costs"
	"github.com/iwvelando/carbon-forecast/pkg/validation"
)

// ValidateConfiguration performs general validation of the configuration and returns warnings
func (conf *Configuration) ValidateConfiguration() []string {
	var warnings []string

	years := conf.Common.Years
	if years <= 0 {
		warnings = append(warnings, fmt.Sprintf("Project length must be positive, got %d years", years))
	}
	if conf.Common.DiscountRate < 0 {
		warnings = append(warnings, fmt.Sprintf("Discount rate is negative (%v%%)", conf.Common.DiscountRate))
	}
	for _, warning := range conf.Common.CarbonPrice.ToPricing(years).Validate(years) {
		warnings = append(warnings, "Common carbon price: "+warning)
	}
	warnings = append(warnings, validateCosts("Common", conf.Common.Costs, years)...)

	registry, err := conf.Registry()
	if err != nil {
		warnings = append(warnings, fmt.Sprintf("Custom types: %v", err))
		registry = nil
	}

	active := 0
	for _, scenario := range conf.Scenarios {
		if !scenario.Active {
			continue
		}
		active++
		label := fmt.Sprintf("Scenario '%s'", scenario.Name)

		params, err := scenario.Project.ToParameters()
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("%s: %v", label, err))
		} else {
			warnings = append(warnings, validation.ValidateParameters(label, params, registry)...)
		}

		if scenario.DiscountRate != nil && *scenario.DiscountRate < 0 {
			warnings = append(warnings, fmt.Sprintf("%s discount rate is negative (%v%%)", label, *scenario.DiscountRate))
		}
		if scenario.CarbonPrice != nil {
			for _, warning := range scenario.CarbonPrice.ToPricing(years).Validate(years) {
				warnings = append(warnings, label+" carbon price: "+warning)
			}
		}
		warnings = append(warnings, validateCosts(label, scenario.Costs, years)...)
	}
	if active == 0 {
		warnings = append(warnings, "No active scenarios")
	}

	return warnings
}

func validateCosts(label string, configured []Cost, years int) []string {
	var warnings []string
	for _, cost := range configured {
		kind, err := costs.ParseKind(cost.Kind)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("%s cost '%s': %v", label, cost.Name, err))
			continue
		}
		if cost.Amount < 0 {
			warnings = append(warnings, fmt.Sprintf("%s cost '%s' has a negative amount (%v)", label, cost.Name, cost.Amount))
		}
		if !kind.Recurring() && (cost.Year < 1 || cost.Year > years) {
			warnings = append(warnings, fmt.Sprintf("%s one-time cost '%s' falls in year %d, outside 1-%d; it never applies",
				label, cost.Name, cost.Year, years))
		}
	}
	return warnings
}
