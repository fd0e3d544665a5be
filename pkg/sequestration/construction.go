package sequestration

import "github.com/iwvelando/carbon-forecast/pkg/constants"

// DefaultEnergyPrice is the electricity price in $/kWh used for savings.
const DefaultEnergyPrice = 0.15

// Construction is a green building project. It earns no carbon credits;
// its benefit is embodied-carbon avoided at build time plus lower operating
// energy.
type Construction struct {
	AreaM2       float64 `json:"areaM2" yaml:"areaM2"`
	BuildingType string  `json:"buildingType,omitempty" yaml:"buildingType,omitempty"`
	// MaterialReduction is the fraction of baseline embodied carbon avoided.
	MaterialReduction float64 `json:"materialReduction,omitempty" yaml:"materialReduction,omitempty"`
	// EnergyEfficiency is the fraction of baseline operating energy avoided.
	EnergyEfficiency float64 `json:"energyEfficiency,omitempty" yaml:"energyEfficiency,omitempty"`
	// EnergyPrice in $/kWh; DefaultEnergyPrice when unset.
	EnergyPrice *float64 `json:"energyPrice,omitempty" yaml:"energyPrice,omitempty"`
	// GridEmissionsFactor in tCO2e/MWh; DefaultGridEmissionsFactor when unset.
	GridEmissionsFactor *float64 `json:"gridEmissionsFactor,omitempty" yaml:"gridEmissionsFactor,omitempty"`
}

func (Construction) isParameters() {}

// Type implements Parameters.
func (Construction) Type() ProjectType { return TypeConstruction }

// Size implements Parameters.
func (p Construction) Size() float64 { return p.AreaM2 }

// Scale implements Parameters. Supported fields: areaM2, materialReduction,
// energyEfficiency, energyPrice.
func (p Construction) Scale(field string, factor float64) (Parameters, bool) {
	switch field {
	case "areaM2":
		scaleFloat(&p.AreaM2, factor)
	case "materialReduction":
		scaleFloat(&p.MaterialReduction, factor)
	case "energyEfficiency":
		scaleFloat(&p.EnergyEfficiency, factor)
	case "energyPrice":
		scaleOptional(&p.EnergyPrice, DefaultEnergyPrice, factor)
	default:
		return p, false
	}
	return p, true
}

// Model resolves the building type.
func (p Construction) Model(registry *Registry) ConstructionModel {
	building, _ := registry.Resolve(DomainBuilding, p.BuildingType)
	return ConstructionModel{
		AreaM2:              p.AreaM2,
		EmbodiedIntensity:   building.Rate,
		EnergyIntensity:     building.EnergyIntensity,
		MaterialReduction:   p.MaterialReduction,
		EnergyEfficiency:    p.EnergyEfficiency,
		EnergyPrice:         optionalOr(p.EnergyPrice, DefaultEnergyPrice),
		GridEmissionsFactor: optionalOr(p.GridEmissionsFactor, DefaultGridEmissionsFactor),
	}
}

// ConstructionModel computes embodied and operational savings.
type ConstructionModel struct {
	AreaM2              float64
	EmbodiedIntensity   float64 // kg CO2e/m2
	EnergyIntensity     float64 // kWh/m2/yr
	MaterialReduction   float64
	EnergyEfficiency    float64
	EnergyPrice         float64 // $/kWh
	GridEmissionsFactor float64 // tCO2e/MWh
}

// EmbodiedSavings is the one-time tCO2e avoided by lower-carbon materials.
func (m ConstructionModel) EmbodiedSavings() float64 {
	return m.AreaM2 * m.EmbodiedIntensity * m.MaterialReduction / constants.KilogramsPerTonne
}

// EnergySavedKWh is the operating energy avoided each year.
func (m ConstructionModel) EnergySavedKWh() float64 {
	return m.AreaM2 * m.EnergyIntensity * m.EnergyEfficiency
}

// OperationalSavings is the tCO2e avoided each year of operation.
func (m ConstructionModel) OperationalSavings() float64 {
	return m.EnergySavedKWh() / constants.KWhPerMWh * m.GridEmissionsFactor
}

// EnergyCostSavings is the yearly energy bill reduction.
func (m ConstructionModel) EnergyCostSavings() float64 {
	return m.EnergySavedKWh() * m.EnergyPrice
}

// ImpactForYear implements Model. Embodied savings are booked in year 1.
func (m ConstructionModel) ImpactForYear(year int) float64 {
	impact := m.OperationalSavings()
	if year == 1 {
		impact += m.EmbodiedSavings()
	}
	return impact
}
