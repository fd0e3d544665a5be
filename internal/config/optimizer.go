package config

import (
	"fmt"
	"strings"

	"github.com/iwvelando/carbon-forecast/pkg/constants"
)

const (
	OptimizerFieldCarbonPrice = "carbonPrice"

	OptimizerKindBreakEven = "break_even"

	OptimizerTargetNPV       = "npv"
	OptimizerTargetNetProfit = "netProfit"
)

// OptimizerConfig defines a single-parameter optimization directive: find
// the smallest Field value in [Min, Max] at which Target reaches zero.
type OptimizerConfig struct {
	Field         string   `yaml:"field,omitempty" mapstructure:"field"`
	Kind          string   `yaml:"kind,omitempty" mapstructure:"kind"`
	Target        string   `yaml:"target,omitempty" mapstructure:"target"`
	Min           *float64 `yaml:"min,omitempty" mapstructure:"min"`
	Max           *float64 `yaml:"max,omitempty" mapstructure:"max"`
	Tolerance     float64  `yaml:"tolerance,omitempty" mapstructure:"tolerance"`
	MaxIterations int      `yaml:"maxIterations,omitempty" mapstructure:"maxIterations"`
}

// CanonicalOptimizerField returns the canonical identifier for an optimizer field.
func CanonicalOptimizerField(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return OptimizerFieldCarbonPrice
	}
	switch strings.ToLower(trimmed) {
	case "carbonprice", "carbon_price", "carbon-price", "price":
		return OptimizerFieldCarbonPrice
	default:
		return strings.ToLower(trimmed)
	}
}

// CanonicalOptimizerTarget returns the canonical identifier for an optimizer target.
func CanonicalOptimizerTarget(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return OptimizerTargetNPV
	}
	switch strings.ToLower(trimmed) {
	case "npv":
		return OptimizerTargetNPV
	case "netprofit", "net_profit", "net-profit":
		return OptimizerTargetNetProfit
	default:
		return strings.ToLower(trimmed)
	}
}

// Normalize ensures defaults and canonical values are applied before validation.
func (o *OptimizerConfig) Normalize() {
	if o == nil {
		return
	}
	o.Field = CanonicalOptimizerField(o.Field)
	o.Target = CanonicalOptimizerTarget(o.Target)

	o.Kind = strings.ToLower(strings.TrimSpace(o.Kind))
	if o.Kind == "" {
		o.Kind = OptimizerKindBreakEven
	}

	if o.Min == nil {
		lower := 0.0
		o.Min = &lower
	}
	if o.Max == nil {
		upper := constants.DefaultSolverMaxPrice
		o.Max = &upper
	}
	if o.Tolerance <= 0 {
		o.Tolerance = constants.DefaultSolverTolerance
	}
	if o.MaxIterations <= 0 {
		o.MaxIterations = constants.DefaultSolverMaxIterations
	}
}

// Validate returns an error when the optimizer configuration is unsupported.
func (o *OptimizerConfig) Validate() error {
	if o == nil {
		return fmt.Errorf("optimizer configuration cannot be nil")
	}

	o.Normalize()

	if o.Field != OptimizerFieldCarbonPrice {
		return fmt.Errorf("optimizer field %q is not supported", o.Field)
	}
	if o.Kind != OptimizerKindBreakEven {
		return fmt.Errorf("optimizer kind %q is not supported", o.Kind)
	}
	if o.Target != OptimizerTargetNPV && o.Target != OptimizerTargetNetProfit {
		return fmt.Errorf("optimizer target %q is not supported", o.Target)
	}
	if *o.Min < 0 {
		return fmt.Errorf("optimizer minimum %.2f must not be negative", *o.Min)
	}
	if *o.Min >= *o.Max {
		return fmt.Errorf("optimizer minimum %.2f must be less than maximum %.2f", *o.Min, *o.Max)
	}

	return nil
}
