package validation

import (
	"math"
	"strings"
	"testing"

	"github.com/iwvelando/carbon-forecast/pkg/sequestration"
)

func floatPtr(v float64) *float64 { return &v }

func TestValidateCustomType(t *testing.T) {
	tests := []struct {
		name      string
		domain    sequestration.Domain
		info      sequestration.TypeInfo
		expectErr bool
	}{
		{"Valid tree", sequestration.DomainTree, sequestration.TypeInfo{ID: "acacia", Name: "Acacia", Rate: 11, MaturityYears: 12}, false},
		{"Empty id", sequestration.DomainTree, sequestration.TypeInfo{Name: "Acacia", Rate: 11}, true},
		{"Empty name", sequestration.DomainSoil, sequestration.TypeInfo{ID: "mulch", Rate: 0.3}, true},
		{"Zero rate", sequestration.DomainSoil, sequestration.TypeInfo{ID: "mulch", Name: "Mulch"}, true},
		{"Negative rate", sequestration.DomainCattle, sequestration.TypeInfo{ID: "yak", Name: "Yak", Rate: -1}, true},
		{"NaN rate", sequestration.DomainAdditive, sequestration.TypeInfo{ID: "x", Name: "X", Rate: math.NaN()}, true},
		{"Infinite rate", sequestration.DomainAdditive, sequestration.TypeInfo{ID: "x", Name: "X", Rate: math.Inf(1)}, true},
		{"Negative maturity", sequestration.DomainTree, sequestration.TypeInfo{ID: "t", Name: "T", Rate: 1, MaturityYears: -5}, true},
		{"Renewable capacity factor", sequestration.DomainRenewable, sequestration.TypeInfo{ID: "tidal", Name: "Tidal", CapacityFactor: 0.4}, false},
		{"Renewable capacity factor above one", sequestration.DomainRenewable, sequestration.TypeInfo{ID: "tidal", Name: "Tidal", CapacityFactor: 1.2}, true},
		{"Building", sequestration.DomainBuilding, sequestration.TypeInfo{ID: "lab", Name: "Lab", Rate: 700, EnergyIntensity: 400}, false},
		{"Building negative energy", sequestration.DomainBuilding, sequestration.TypeInfo{ID: "lab", Name: "Lab", Rate: 700, EnergyIntensity: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCustomType(tt.domain, tt.info)
			if tt.expectErr && err == nil {
				t.Errorf("ValidateCustomType() expected error but got none")
			}
			if !tt.expectErr && err != nil {
				t.Errorf("ValidateCustomType() unexpected error: %v", err)
			}
		})
	}
}

func TestValidateParameters(t *testing.T) {
	tests := []struct {
		name     string
		params   sequestration.Parameters
		contains string
	}{
		{"Nil parameters", nil, "no project parameters"},
		{"Nil pointer", (*sequestration.Soil)(nil), "no project parameters"},
		{"Zero size", sequestration.Forestry{Species: "pine"}, "non-positive project size"},
		{"Unknown species", sequestration.Forestry{Hectares: 10, Species: "baobab"}, "unknown tree type 'baobab'"},
		{"Leakage plus buffer", sequestration.REDD{Hectares: 10, LeakageRisk: floatPtr(0.6), BufferRate: floatPtr(0.4)}, "no credits remain"},
		{"Negative deforestation rate", &sequestration.REDD{Hectares: 10, DeforestationRate: floatPtr(-0.1)}, "deforestation rate is outside"},
		{"Capacity factor above one", sequestration.Renewable{CapacityMW: 5, CapacityFactor: floatPtr(1.5)}, "capacity factor must be in (0, 1]"},
		{"Capacity factor zero", sequestration.Renewable{CapacityMW: 5, CapacityFactor: floatPtr(0)}, "capacity factor must be in (0, 1]"},
		{"Calving rate", sequestration.Livestock{HerdSize: 10, CalvingRate: 120}, "calving rate"},
		{"Material reduction", sequestration.Construction{AreaM2: 100, MaterialReduction: 1.5}, "material reduction"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			warnings := ValidateParameters("Scenario 'test'", tt.params, nil)
			found := false
			for _, warning := range warnings {
				if strings.Contains(warning, tt.contains) {
					found = true
				}
			}
			if !found {
				t.Errorf("expected a warning containing %q, got %v", tt.contains, warnings)
			}
		})
	}
}

func TestValidateParametersClean(t *testing.T) {
	registry := sequestration.NewRegistry(nil).
		Add(sequestration.DomainTree, sequestration.TypeInfo{ID: "acacia", Name: "Acacia", Rate: 11})

	clean := []sequestration.Parameters{
		sequestration.Forestry{Hectares: 100, Species: "acacia"},
		sequestration.Forestry{Hectares: 100, Species: "pine"},
		sequestration.Soil{Hectares: 50},
		sequestration.REDD{Hectares: 1000},
		sequestration.Renewable{CapacityMW: 10, Technology: "solar"},
		sequestration.Livestock{HerdSize: 200, CattleType: "dairy-cow", Additive: "3-nop"},
		sequestration.Construction{AreaM2: 2000, BuildingType: "office", MaterialReduction: 0.3, EnergyEfficiency: 0.4},
	}
	for _, params := range clean {
		if warnings := ValidateParameters("clean", params, registry); len(warnings) != 0 {
			t.Errorf("%s: unexpected warnings %v", params.Type(), warnings)
		}
	}
}
