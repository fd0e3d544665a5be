package sequestration

import "math"

// Forestry is an afforestation or reforestation project.
type Forestry struct {
	Hectares float64 `json:"hectares" yaml:"hectares"`
	Species  string  `json:"species,omitempty" yaml:"species,omitempty"`
}

func (Forestry) isParameters() {}

// Type implements Parameters.
func (Forestry) Type() ProjectType { return TypeForestry }

// Size implements Parameters.
func (p Forestry) Size() float64 { return p.Hectares }

// Scale implements Parameters. Supported fields: hectares.
func (p Forestry) Scale(field string, factor float64) (Parameters, bool) {
	switch field {
	case "hectares":
		scaleFloat(&p.Hectares, factor)
	default:
		return p, false
	}
	return p, true
}

// Model resolves the species and returns the growth model.
func (p Forestry) Model(registry *Registry) ForestryModel {
	species, _ := registry.Resolve(DomainTree, p.Species)
	return ForestryModel{
		Rate:          species.Rate,
		Hectares:      p.Hectares,
		MaturityYears: species.MaturityYears,
	}
}

// ForestryModel sequesters at 60% of the mature rate initially and grows
// linearly to the full rate by the species' maturity year.
type ForestryModel struct {
	Rate          float64
	Hectares      float64
	MaturityYears int
}

// GrowthFactor returns min(1, 0.6 + 0.4*year/maturity). A non-positive
// maturity is treated as already mature.
func (m ForestryModel) GrowthFactor(year int) float64 {
	if m.MaturityYears <= 0 {
		return 1
	}
	return math.Min(1, 0.6+0.4*float64(year)/float64(m.MaturityYears))
}

// ImpactForYear implements Model.
func (m ForestryModel) ImpactForYear(year int) float64 {
	return m.Rate * m.Hectares * m.GrowthFactor(year)
}
