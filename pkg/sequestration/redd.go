package sequestration

// REDD defaults, as fractions.
const (
	DefaultDeforestationRate = 0.025
	DefaultLeakageRisk       = 0.2
	DefaultBufferRate        = 0.2
)

// REDD is an avoided-deforestation project protecting standing forest.
type REDD struct {
	Hectares   float64 `json:"hectares" yaml:"hectares"`
	ForestType string  `json:"forestType,omitempty" yaml:"forestType,omitempty"`
	// Fractions; defaults apply when unset.
	DeforestationRate *float64 `json:"deforestationRate,omitempty" yaml:"deforestationRate,omitempty"`
	LeakageRisk       *float64 `json:"leakageRisk,omitempty" yaml:"leakageRisk,omitempty"`
	BufferRate        *float64 `json:"bufferRate,omitempty" yaml:"bufferRate,omitempty"`
}

func (REDD) isParameters() {}

// Type implements Parameters.
func (REDD) Type() ProjectType { return TypeREDD }

// Size implements Parameters.
func (p REDD) Size() float64 { return p.Hectares }

// Scale implements Parameters. Supported fields: hectares, deforestationRate,
// leakageRisk, bufferRate.
func (p REDD) Scale(field string, factor float64) (Parameters, bool) {
	switch field {
	case "hectares":
		scaleFloat(&p.Hectares, factor)
	case "deforestationRate":
		scaleOptional(&p.DeforestationRate, DefaultDeforestationRate, factor)
	case "leakageRisk":
		scaleOptional(&p.LeakageRisk, DefaultLeakageRisk, factor)
	case "bufferRate":
		scaleOptional(&p.BufferRate, DefaultBufferRate, factor)
	default:
		return p, false
	}
	return p, true
}

// Model resolves the forest type and applies defaults.
func (p REDD) Model(registry *Registry) REDDModel {
	return REDDModel{
		Rate:              registry.rate(DomainForest, p.ForestType),
		Hectares:          p.Hectares,
		DeforestationRate: optionalOr(p.DeforestationRate, DefaultDeforestationRate),
		LeakageRisk:       optionalOr(p.LeakageRisk, DefaultLeakageRisk),
		BufferRate:        optionalOr(p.BufferRate, DefaultBufferRate),
	}
}

// REDDModel credits the carbon kept in forest that would otherwise have been
// cleared, net of leakage and the buffer pool.
type REDDModel struct {
	Rate              float64
	Hectares          float64
	DeforestationRate float64
	LeakageRisk       float64
	BufferRate        float64
}

// AvoidedHectares is the area protected from clearing each year.
func (m REDDModel) AvoidedHectares() float64 {
	return m.Hectares * m.DeforestationRate
}

// Gross is the carbon saved before deductions.
func (m REDDModel) Gross() float64 {
	return m.Rate * m.AvoidedHectares()
}

// ImpactForYear implements Model. The impact is constant over the project.
func (m REDDModel) ImpactForYear(int) float64 {
	return NetAvoided(m.Gross(), m.LeakageRisk, m.BufferRate)
}

// NetAvoided subtracts leakage and buffer from the same gross value:
// gross * (1 - leakage - buffer). The deductions are additive, not compounded.
func NetAvoided(gross, leakage, buffer float64) float64 {
	return gross * (1 - leakage - buffer)
}
