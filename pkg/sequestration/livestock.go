package sequestration

import (
	"github.com/iwvelando/carbon-forecast/pkg/constants"
	"github.com/iwvelando/carbon-forecast/pkg/mathutil"
)

// Reproductive efficiency reference points.
const (
	// BaselineCalvingRate is the herd calving rate (percent) at which the
	// calving factor is neutral.
	BaselineCalvingRate = 80.0
	// calvingSensitivity is the emissions change per percentage point of
	// calving rate, as a fraction.
	calvingSensitivity = 0.005
	// timeToCalfSensitivity is the emissions change per month of earlier
	// first calving.
	timeToCalfSensitivity = 0.01
)

// MixtureComponent is one ingredient of a custom feed mixture. Factor is the
// ingredient's emissions multiplier; Share is its weight in the mixture.
type MixtureComponent struct {
	Name   string  `json:"name" yaml:"name"`
	Share  float64 `json:"share" yaml:"share"`
	Factor float64 `json:"factor" yaml:"factor"`
}

// Livestock is a cattle emissions-reduction project. Each string field is a
// type id resolved through the Registry; empty ids resolve to neutral
// defaults.
type Livestock struct {
	HerdSize   float64 `json:"herdSize" yaml:"herdSize"`
	CattleType string  `json:"cattleType,omitempty" yaml:"cattleType,omitempty"`

	FeedType        string `json:"feedType,omitempty" yaml:"feedType,omitempty"`
	ManureSystem    string `json:"manureSystem,omitempty" yaml:"manureSystem,omitempty"`
	Additive        string `json:"additive,omitempty" yaml:"additive,omitempty"`
	GrazingPractice string `json:"grazingPractice,omitempty" yaml:"grazingPractice,omitempty"`
	ClimateRegion   string `json:"climateRegion,omitempty" yaml:"climateRegion,omitempty"`

	// CalvingRate in percent; 0 means the baseline rate.
	CalvingRate float64 `json:"calvingRate,omitempty" yaml:"calvingRate,omitempty"`
	// TimeToCalfReduction in months earlier than baseline.
	TimeToCalfReduction float64 `json:"timeToCalfReduction,omitempty" yaml:"timeToCalfReduction,omitempty"`
	Supplementation     string  `json:"supplementation,omitempty" yaml:"supplementation,omitempty"`

	EnergyProfile   string             `json:"energyProfile,omitempty" yaml:"energyProfile,omitempty"`
	SeasonalPattern string             `json:"seasonalPattern,omitempty" yaml:"seasonalPattern,omitempty"`
	FeedMixture     []MixtureComponent `json:"feedMixture,omitempty" yaml:"feedMixture,omitempty"`
}

func (Livestock) isParameters() {}

// Type implements Parameters.
func (Livestock) Type() ProjectType { return TypeLivestock }

// Size implements Parameters.
func (p Livestock) Size() float64 { return p.HerdSize }

// Scale implements Parameters. Supported fields: herdSize, calvingRate,
// timeToCalfReduction.
func (p Livestock) Scale(field string, factor float64) (Parameters, bool) {
	switch field {
	case "herdSize":
		scaleFloat(&p.HerdSize, factor)
	case "calvingRate":
		if p.CalvingRate == 0 {
			p.CalvingRate = BaselineCalvingRate
		}
		scaleFloat(&p.CalvingRate, factor)
	case "timeToCalfReduction":
		scaleFloat(&p.TimeToCalfReduction, factor)
	default:
		return p, false
	}
	p.FeedMixture = append([]MixtureComponent(nil), p.FeedMixture...)
	return p, true
}

// LivestockFactors records every multiplier applied to the baseline.
type LivestockFactors struct {
	Feed            float64 `json:"feed"`
	Manure          float64 `json:"manure"`
	Additive        float64 `json:"additive"`
	Grazing         float64 `json:"grazing"`
	Climate         float64 `json:"climate"`
	Combined        float64 `json:"combined"`
	Calving         float64 `json:"calving"`
	TimeToCalf      float64 `json:"timeToCalf"`
	Supplementation float64 `json:"supplementation"`
	Reproductive    float64 `json:"reproductive"`
	EnergyProfile   float64 `json:"energyProfile"`
	Seasonal        float64 `json:"seasonal"`
	Mixture         float64 `json:"mixture"`
	FeedEnergy      float64 `json:"feedEnergy"`
}

// Model resolves every factor and returns the reduction model.
func (p Livestock) Model(registry *Registry) LivestockModel {
	perHead := registry.rate(DomainCattle, p.CattleType)
	factors := p.Factors(registry)
	baseline := perHead * p.HerdSize
	return LivestockModel{
		HerdSize:   p.HerdSize,
		BaselineKg: baseline,
		AdjustedKg: baseline * factors.Combined * factors.Reproductive * factors.FeedEnergy,
		Factors:    factors,
	}
}

// Factors resolves the adjustment, reproductive and feed-energy multipliers.
func (p Livestock) Factors(registry *Registry) LivestockFactors {
	f := LivestockFactors{
		Feed:            registry.rate(DomainFeed, p.FeedType),
		Manure:          registry.rate(DomainManure, p.ManureSystem),
		Additive:        registry.rate(DomainAdditive, p.Additive),
		Grazing:         registry.rate(DomainGrazing, p.GrazingPractice),
		Climate:         registry.rate(DomainClimate, p.ClimateRegion),
		Calving:         CalvingFactor(p.CalvingRate),
		TimeToCalf:      TimeToCalfFactor(p.TimeToCalfReduction),
		Supplementation: registry.rate(DomainSupplement, p.Supplementation),
		EnergyProfile:   registry.rate(DomainEnergyProfile, p.EnergyProfile),
		Seasonal:        registry.rate(DomainSeasonal, p.SeasonalPattern),
		Mixture:         MixtureFactor(p.FeedMixture),
	}
	f.Combined = f.Feed * f.Manure * f.Additive * f.Grazing * f.Climate
	f.Reproductive = f.Calving * f.TimeToCalf * f.Supplementation
	f.FeedEnergy = f.EnergyProfile * f.Seasonal * f.Mixture
	return f
}

// CalvingFactor lowers emissions intensity as the calving rate rises above
// BaselineCalvingRate (and raises it below). A zero rate is neutral. The
// result is bounded to [0.8, 1.2].
func CalvingFactor(calvingRate float64) float64 {
	if calvingRate == 0 {
		return 1
	}
	return mathutil.Clamp(1-(calvingRate-BaselineCalvingRate)*calvingSensitivity, 0.8, 1.2)
}

// TimeToCalfFactor takes 1% off per month of earlier first calving, bounded
// to [0.8, 1].
func TimeToCalfFactor(reductionMonths float64) float64 {
	return mathutil.Clamp(1-reductionMonths*timeToCalfSensitivity, 0.8, 1)
}

// MixtureFactor is the share-weighted mean factor of a custom mixture, or 1
// when the mixture is empty or has no positive shares.
func MixtureFactor(components []MixtureComponent) float64 {
	totalShare := 0.0
	weighted := 0.0
	for _, c := range components {
		if c.Share <= 0 {
			continue
		}
		totalShare += c.Share
		weighted += c.Share * c.Factor
	}
	if totalShare == 0 {
		return 1
	}
	return weighted / totalShare
}

// LivestockModel holds baseline and adjusted herd emissions in kg CO2e/yr.
type LivestockModel struct {
	HerdSize   float64
	BaselineKg float64
	AdjustedKg float64
	Factors    LivestockFactors
}

// ImpactForYear implements Model: the yearly reduction in tCO2e.
func (m LivestockModel) ImpactForYear(int) float64 {
	return (m.BaselineKg - m.AdjustedKg) / constants.KilogramsPerTonne
}

// EmissionsIntensity compares per-head emissions before and after the
// project's practices.
type EmissionsIntensity struct {
	BaselinePerHead  float64          `json:"baselinePerHead"`
	ReducedPerHead   float64          `json:"reducedPerHead"`
	ReductionPercent float64          `json:"reductionPercent"`
	BaselineTotal    float64          `json:"baselineTotal"`
	ReducedTotal     float64          `json:"reducedTotal"`
	Factors          LivestockFactors `json:"factors"`
}

// Intensity summarises per-head emissions in kg CO2e/head/yr. A herd of zero
// yields zero rates.
func (m LivestockModel) Intensity() EmissionsIntensity {
	return EmissionsIntensity{
		BaselinePerHead:  mathutil.SafeDivide(m.BaselineKg, m.HerdSize),
		ReducedPerHead:   mathutil.SafeDivide(m.AdjustedKg, m.HerdSize),
		ReductionPercent: mathutil.CalculatePercentage(m.BaselineKg-m.AdjustedKg, m.BaselineKg),
		BaselineTotal:    m.BaselineKg / constants.KilogramsPerTonne,
		ReducedTotal:     m.AdjustedKg / constants.KilogramsPerTonne,
		Factors:          m.Factors,
	}
}
