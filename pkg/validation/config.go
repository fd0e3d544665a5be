package validation

import (
	"fmt"

	"github.com/iwvelando/carbon-forecast/pkg/mathutil"
	"github.com/iwvelando/carbon-forecast/pkg/sequestration"
)

// ValidateCustomType rejects a user-defined type entry that would produce
// meaningless results.
func ValidateCustomType(domain sequestration.Domain, info sequestration.TypeInfo) error {
	if info.ID == "" {
		return fmt.Errorf("custom %s type has an empty id", domain)
	}
	if info.Name == "" {
		return fmt.Errorf("custom %s type '%s' has an empty name", domain, info.ID)
	}

	switch domain {
	case sequestration.DomainRenewable:
		if !mathutil.IsFinite(info.CapacityFactor) || info.CapacityFactor <= 0 || info.CapacityFactor > 1 {
			return fmt.Errorf("custom %s type '%s' capacity factor must be in (0, 1], got %v",
				domain, info.ID, info.CapacityFactor)
		}
		return nil
	case sequestration.DomainBuilding:
		if !mathutil.IsFinite(info.EnergyIntensity) || info.EnergyIntensity < 0 {
			return fmt.Errorf("custom %s type '%s' energy intensity must be non-negative, got %v",
				domain, info.ID, info.EnergyIntensity)
		}
	case sequestration.DomainTree:
		if info.MaturityYears < 0 {
			return fmt.Errorf("custom %s type '%s' maturity must be non-negative, got %d",
				domain, info.ID, info.MaturityYears)
		}
	}

	if !mathutil.IsFinite(info.Rate) || info.Rate <= 0 {
		return fmt.Errorf("custom %s type '%s' rate must be positive, got %v", domain, info.ID, info.Rate)
	}
	return nil
}

// ValidateParameters returns warnings for values the engine accepts but that
// are likely mistakes: missing size, unknown type ids that fall back to a
// default, and fractions outside their meaningful range.
func ValidateParameters(label string, params sequestration.Parameters, registry *sequestration.Registry) []string {
	if params = deref(params); params == nil {
		return []string{fmt.Sprintf("%s has no project parameters", label)}
	}

	var warnings []string
	if params.Size() <= 0 {
		warnings = append(warnings, fmt.Sprintf("%s has a non-positive project size (%v)", label, params.Size()))
	}

	checkID := func(domain sequestration.Domain, id string) {
		if id == "" {
			return
		}
		if _, found := registry.Resolve(domain, id); !found {
			warnings = append(warnings, fmt.Sprintf("%s uses unknown %s type '%s'; the default applies",
				label, domain, id))
		}
	}
	checkFraction := func(name string, value *float64) {
		if value == nil {
			return
		}
		if *value < 0 || *value > 1 {
			warnings = append(warnings, fmt.Sprintf("%s %s is outside its valid range (%v)", label, name, *value))
		}
	}

	switch p := params.(type) {
	case sequestration.Forestry:
		checkID(sequestration.DomainTree, p.Species)
	case sequestration.Soil:
		checkID(sequestration.DomainSoil, p.Practice)
	case sequestration.BlueCarbon:
		checkID(sequestration.DomainBlueCarbon, p.Ecosystem)
	case sequestration.Livestock:
		checkID(sequestration.DomainCattle, p.CattleType)
		checkID(sequestration.DomainFeed, p.FeedType)
		checkID(sequestration.DomainManure, p.ManureSystem)
		checkID(sequestration.DomainAdditive, p.Additive)
		checkID(sequestration.DomainGrazing, p.GrazingPractice)
		checkID(sequestration.DomainClimate, p.ClimateRegion)
		checkID(sequestration.DomainSupplement, p.Supplementation)
		checkID(sequestration.DomainEnergyProfile, p.EnergyProfile)
		checkID(sequestration.DomainSeasonal, p.SeasonalPattern)
		if p.CalvingRate < 0 || p.CalvingRate > 100 {
			warnings = append(warnings, fmt.Sprintf("%s calving rate must be a percentage (%v)", label, p.CalvingRate))
		}
		if p.TimeToCalfReduction < 0 {
			warnings = append(warnings, fmt.Sprintf("%s time to calf reduction is negative (%v)", label, p.TimeToCalfReduction))
		}
		for _, component := range p.FeedMixture {
			if component.Share < 0 {
				warnings = append(warnings, fmt.Sprintf("%s feed mixture '%s' has a negative share", label, component.Name))
			}
		}
	case sequestration.Renewable:
		checkID(sequestration.DomainRenewable, p.Technology)
		if p.CapacityFactor != nil && (*p.CapacityFactor <= 0 || *p.CapacityFactor > 1) {
			warnings = append(warnings, fmt.Sprintf("%s capacity factor must be in (0, 1], got %v", label, *p.CapacityFactor))
		}
		if p.GridEmissionsFactor != nil && *p.GridEmissionsFactor < 0 {
			warnings = append(warnings, fmt.Sprintf("%s grid emissions factor is negative (%v)", label, *p.GridEmissionsFactor))
		}
	case sequestration.REDD:
		checkID(sequestration.DomainForest, p.ForestType)
		checkFraction("deforestation rate", p.DeforestationRate)
		checkFraction("leakage risk", p.LeakageRisk)
		checkFraction("buffer rate", p.BufferRate)
		leakage := valueOr(p.LeakageRisk, sequestration.DefaultLeakageRisk)
		buffer := valueOr(p.BufferRate, sequestration.DefaultBufferRate)
		if leakage+buffer >= 1 {
			warnings = append(warnings, fmt.Sprintf("%s leakage risk plus buffer rate is %v; no credits remain", label, leakage+buffer))
		}
	case sequestration.Construction:
		checkID(sequestration.DomainBuilding, p.BuildingType)
		material, efficiency := p.MaterialReduction, p.EnergyEfficiency
		checkFraction("material reduction", &material)
		checkFraction("energy efficiency", &efficiency)
		if p.EnergyPrice != nil && *p.EnergyPrice < 0 {
			warnings = append(warnings, fmt.Sprintf("%s energy price is negative (%v)", label, *p.EnergyPrice))
		}
	}

	return warnings
}

func deref(params sequestration.Parameters) sequestration.Parameters {
	switch p := params.(type) {
	case *sequestration.Forestry:
		return derefPtr(p)
	case *sequestration.Livestock:
		return derefPtr(p)
	case *sequestration.Soil:
		return derefPtr(p)
	case *sequestration.Renewable:
		return derefPtr(p)
	case *sequestration.BlueCarbon:
		return derefPtr(p)
	case *sequestration.REDD:
		return derefPtr(p)
	case *sequestration.Construction:
		return derefPtr(p)
	}
	return params
}

func derefPtr[T sequestration.Parameters](p *T) sequestration.Parameters {
	if p == nil {
		return nil
	}
	return *p
}

func valueOr(value *float64, fallback float64) float64 {
	if value == nil {
		return fallback
	}
	return *value
}

