package sequestration

import (
	"math"

	"github.com/iwvelando/carbon-forecast/pkg/constants"
)

// DefaultGridEmissionsFactor is the displaced grid intensity in tCO2e/MWh.
const DefaultGridEmissionsFactor = 0.5

// AnnualDegradation is the yearly output loss of a renewable installation.
const AnnualDegradation = 0.005

// Renewable is a grid-connected generation project displacing grid power.
type Renewable struct {
	CapacityMW float64 `json:"capacityMW" yaml:"capacityMW"`
	Technology string  `json:"technology,omitempty" yaml:"technology,omitempty"`
	// CapacityFactor overrides the technology's capacity factor when set.
	CapacityFactor *float64 `json:"capacityFactor,omitempty" yaml:"capacityFactor,omitempty"`
	// GridEmissionsFactor in tCO2e/MWh; DefaultGridEmissionsFactor when unset.
	GridEmissionsFactor *float64 `json:"gridEmissionsFactor,omitempty" yaml:"gridEmissionsFactor,omitempty"`
}

func (Renewable) isParameters() {}

// Type implements Parameters.
func (Renewable) Type() ProjectType { return TypeRenewable }

// Size implements Parameters.
func (p Renewable) Size() float64 { return p.CapacityMW }

// Scale implements Parameters. Supported fields: capacityMW, capacityFactor,
// gridEmissionsFactor.
func (p Renewable) Scale(field string, factor float64) (Parameters, bool) {
	switch field {
	case "capacityMW":
		scaleFloat(&p.CapacityMW, factor)
	case "capacityFactor":
		scaleOptional(&p.CapacityFactor, p.resolvedCapacityFactor(nil), factor)
	case "gridEmissionsFactor":
		scaleOptional(&p.GridEmissionsFactor, DefaultGridEmissionsFactor, factor)
	default:
		return p, false
	}
	return p, true
}

func (p Renewable) resolvedCapacityFactor(registry *Registry) float64 {
	if p.CapacityFactor != nil {
		return *p.CapacityFactor
	}
	tech, _ := registry.Resolve(DomainRenewable, p.Technology)
	return tech.CapacityFactor
}

// Model resolves the technology and returns the displacement model.
func (p Renewable) Model(registry *Registry) RenewableModel {
	return RenewableModel{
		CapacityMW:          p.CapacityMW,
		CapacityFactor:      p.resolvedCapacityFactor(registry),
		GridEmissionsFactor: optionalOr(p.GridEmissionsFactor, DefaultGridEmissionsFactor),
	}
}

// RenewableModel displaces grid emissions, degrading 0.5% per year.
type RenewableModel struct {
	CapacityMW          float64
	CapacityFactor      float64
	GridEmissionsFactor float64
}

// BaseRate is the displaced tCO2e per MW of capacity in the first year, or
// 0 for an installation without capacity.
func (m RenewableModel) BaseRate() float64 {
	if m.CapacityMW == 0 {
		return 0
	}
	annualMWh := m.CapacityMW * m.CapacityFactor * constants.HoursPerYear
	return annualMWh * m.GridEmissionsFactor / m.CapacityMW
}

// AnnualGenerationMWh returns first-year generation.
func (m RenewableModel) AnnualGenerationMWh() float64 {
	return m.CapacityMW * m.CapacityFactor * constants.HoursPerYear
}

// ImpactForYear implements Model.
func (m RenewableModel) ImpactForYear(year int) float64 {
	return m.BaseRate() * m.CapacityMW * math.Pow(1-AnnualDegradation, float64(year-1))
}
