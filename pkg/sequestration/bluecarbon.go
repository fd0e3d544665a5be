package sequestration

// BlueCarbon is a coastal ecosystem restoration project.
type BlueCarbon struct {
	Hectares  float64 `json:"hectares" yaml:"hectares"`
	Ecosystem string  `json:"ecosystem,omitempty" yaml:"ecosystem,omitempty"`
}

func (BlueCarbon) isParameters() {}

// Type implements Parameters.
func (BlueCarbon) Type() ProjectType { return TypeBlueCarbon }

// Size implements Parameters.
func (p BlueCarbon) Size() float64 { return p.Hectares }

// Scale implements Parameters. Supported fields: hectares.
func (p BlueCarbon) Scale(field string, factor float64) (Parameters, bool) {
	if field != "hectares" {
		return p, false
	}
	scaleFloat(&p.Hectares, factor)
	return p, true
}

// Model resolves the ecosystem rate.
func (p BlueCarbon) Model(registry *Registry) BlueCarbonModel {
	return BlueCarbonModel{
		Rate:     registry.rate(DomainBlueCarbon, p.Ecosystem),
		Hectares: p.Hectares,
	}
}

// BlueCarbonModel ramps up over three years to the full rate.
type BlueCarbonModel struct {
	Rate     float64
	Hectares float64
}

// DevelopmentFactor is 0.5, 0.7 and 0.85 for years 1 to 3 and 1 afterwards.
func DevelopmentFactor(year int) float64 {
	switch {
	case year <= 1:
		return 0.5
	case year == 2:
		return 0.7
	case year == 3:
		return 0.85
	default:
		return 1.0
	}
}

// ImpactForYear implements Model.
func (m BlueCarbonModel) ImpactForYear(year int) float64 {
	return m.Rate * m.Hectares * DevelopmentFactor(year)
}
