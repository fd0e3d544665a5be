package sequestration

// Soil is a soil carbon project adopting a management practice.
type Soil struct {
	Hectares float64 `json:"hectares" yaml:"hectares"`
	Practice string  `json:"practice,omitempty" yaml:"practice,omitempty"`
}

func (Soil) isParameters() {}

// Type implements Parameters.
func (Soil) Type() ProjectType { return TypeSoil }

// Size implements Parameters.
func (p Soil) Size() float64 { return p.Hectares }

// Scale implements Parameters. Supported fields: hectares.
func (p Soil) Scale(field string, factor float64) (Parameters, bool) {
	if field != "hectares" {
		return p, false
	}
	scaleFloat(&p.Hectares, factor)
	return p, true
}

// Model resolves the practice rate.
func (p Soil) Model(registry *Registry) SoilModel {
	return SoilModel{
		Rate:     registry.rate(DomainSoil, p.Practice),
		Hectares: p.Hectares,
	}
}

// SoilModel sequesters a constant amount every year.
type SoilModel struct {
	Rate     float64
	Hectares float64
}

// ImpactForYear implements Model.
func (m SoilModel) ImpactForYear(int) float64 {
	return m.Rate * m.Hectares
}
